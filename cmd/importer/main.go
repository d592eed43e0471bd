// Command importer pulls sets and cards from the external card API
// into the local catalog. Run it once to seed, and again whenever new
// sets release; inserts are idempotent upserts.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"cardbinder/internal/database"
	"cardbinder/internal/models"
	"cardbinder/internal/repositories"
	"cardbinder/internal/tcgapi"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

type cmdFlags struct {
	listSets   bool
	importSets bool
	setCode    string
	allCards   bool
	workers    int
}

func initCmdFlags() *cmdFlags {
	var flags cmdFlags
	pflag.BoolVarP(&flags.listSets, "list-sets", "l", false, "List all sets known to the card API")
	pflag.BoolVarP(&flags.importSets, "sets", "s", false, "Import all sets and series into the catalog")
	pflag.StringVarP(&flags.setCode, "cards", "c", "", "Import the cards of one set, by set code")
	pflag.BoolVarP(&flags.allCards, "all-cards", "a", false, "Import the cards of every set in the catalog")
	pflag.IntVarP(&flags.workers, "workers", "w", 4, "Concurrent set downloads for --all-cards")
	pflag.Parse()
	return &flags
}

func main() {
	flags := initCmdFlags()

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	ctx := context.Background()
	client := tcgapi.NewClient()

	if flags.listSets {
		sets, err := client.FetchSets(ctx)
		if err != nil {
			log.Fatalf("fetching sets: %v", err)
		}
		for _, set := range sets {
			fmt.Printf("%-12s %-40s %s\n", set.ID, set.Name, set.ReleaseDate)
		}
		os.Exit(0)
	}

	pool, err := database.Connect()
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer database.Close()

	if err := database.RunMigrations(pool); err != nil {
		log.Fatalf("running migrations: %v", err)
	}

	catalogRepo := repositories.NewCatalogRepository(pool)

	if flags.importSets {
		if err := importSets(ctx, client, catalogRepo); err != nil {
			log.Fatalf("importing sets: %v", err)
		}
	}

	if flags.setCode != "" {
		if err := importCards(ctx, client, catalogRepo, flags.setCode); err != nil {
			log.Fatalf("importing cards for %s: %v", flags.setCode, err)
		}
	}

	if flags.allCards {
		if err := importAllCards(ctx, client, catalogRepo, flags.workers); err != nil {
			log.Fatalf("importing all cards: %v", err)
		}
	}
}

func importSets(ctx context.Context, client *tcgapi.Client, repo *repositories.CatalogRepository) error {
	sets, err := client.FetchSets(ctx)
	if err != nil {
		return err
	}

	for _, data := range sets {
		seriesID, err := repo.UpsertSeries(data.Series)
		if err != nil {
			return err
		}

		set := &models.Set{
			SeriesID:     seriesID,
			Code:         data.ID,
			Name:         data.Name,
			ReleaseDate:  data.ParsedReleaseDate(),
			PrintedTotal: data.PrintedTotal,
			SecretTotal:  data.Total - data.PrintedTotal,
			LogoURL:      data.Images.Logo,
			SymbolURL:    data.Images.Symbol,
		}
		if err := repo.UpsertSet(set); err != nil {
			return fmt.Errorf("upserting set %s: %w", data.ID, err)
		}
	}

	log.Printf("Imported %d sets", len(sets))
	return nil
}

func importCards(ctx context.Context, client *tcgapi.Client, repo *repositories.CatalogRepository, setCode string) error {
	set, err := repo.FindSetByCode(setCode)
	if err != nil {
		return err
	}
	if set == nil {
		return fmt.Errorf("set %q not in catalog; run --sets first", setCode)
	}

	data, err := client.FetchAllCards(ctx, setCode)
	if err != nil {
		return err
	}

	cards := make([]models.Card, len(data))
	for i, d := range data {
		cards[i] = models.Card{
			SetID:      set.ID,
			ExternalID: d.ID,
			Number:     d.Number,
			Name:       d.Name,
			Rarity:     d.Rarity,
			Supertype:  d.Supertype,
			ImageURL:   d.Images.Large,
		}
	}

	if err := repo.UpsertCards(cards); err != nil {
		return err
	}

	log.Printf("Imported %d cards into %s", len(cards), setCode)
	return nil
}

func importAllCards(ctx context.Context, client *tcgapi.Client, repo *repositories.CatalogRepository, workers int) error {
	sets, err := repo.ListSets(nil)
	if err != nil {
		return err
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, set := range sets {
		code := set.Code
		g.Go(func() error {
			return importCards(gctx, client, repo, code)
		})
	}
	return g.Wait()
}
