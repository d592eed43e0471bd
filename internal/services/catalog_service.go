package services

import (
	"context"
	"errors"

	"cardbinder/internal/models"
	"cardbinder/internal/repositories"
	"cardbinder/internal/variants"

	"github.com/google/uuid"
)

var (
	ErrSetNotFound  = errors.New("set not found")
	ErrCardNotFound = errors.New("card not found")
)

type CatalogService struct {
	catalogRepo *repositories.CatalogRepository
	pricing     *PricingService
}

func NewCatalogService(catalogRepo *repositories.CatalogRepository, pricing *PricingService) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		pricing:     pricing,
	}
}

func (s *CatalogService) ListSeries() ([]models.Series, error) {
	return s.catalogRepo.ListSeries()
}

func (s *CatalogService) ListSets(seriesID *uuid.UUID) ([]models.Set, error) {
	return s.catalogRepo.ListSets(seriesID)
}

func (s *CatalogService) GetSet(setID uuid.UUID) (*models.Set, error) {
	set, err := s.catalogRepo.FindSetByID(setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrSetNotFound
	}
	return set, nil
}

// CardPage is one page of a set's card list.
type CardPage struct {
	Cards    []models.Card `json:"cards"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
	Total    int           `json:"total"`
}

func (s *CatalogService) ListCards(setID uuid.UUID, page, pageSize int) (*CardPage, error) {
	set, err := s.catalogRepo.FindSetByID(setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrSetNotFound
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 250 {
		pageSize = 60
	}

	cards, total, err := s.catalogRepo.ListCardsBySet(setID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &CardPage{Cards: cards, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *CatalogService) SearchCards(name string, limit int) ([]models.Card, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	return s.catalogRepo.SearchCardsByName(name, limit)
}

// GetCard assembles the card detail view: the card, its set, the
// variants the engine infers (pricing keys included as signals), and
// per-variant prices in the requested currency.
func (s *CatalogService) GetCard(ctx context.Context, cardID uuid.UUID, currency string) (*models.CardDetail, error) {
	card, err := s.catalogRepo.FindCardByID(cardID)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, ErrCardNotFound
	}

	set, err := s.catalogRepo.FindSetByID(card.SetID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrSetNotFound
	}

	sheet := s.pricing.PriceSheet(ctx, card.ExternalID)

	inferred := variants.Infer(variants.CardInfo{
		SetCode:     set.Code,
		ReleaseDate: set.ReleaseDate,
		Rarity:      card.Rarity,
		Supertype:   card.Supertype,
		PriceKeys:   sheet.Keys(),
	})
	names := make([]string, len(inferred))
	for i, v := range inferred {
		names[i] = string(v)
	}

	prices, err := s.pricing.VariantPrices(ctx, sheet, currency)
	if err != nil {
		return nil, err
	}

	return &models.CardDetail{
		Card:     *card,
		Set:      *set,
		Variants: names,
		Prices:   prices,
	}, nil
}

// VariantsFor runs the engine for a card already loaded alongside its
// set, without pricing signals. Used for completion math where a price
// fetch per card would not be reasonable.
func VariantsFor(set *models.Set, card *models.Card) []variants.Variant {
	return variants.Infer(variants.CardInfo{
		SetCode:     set.Code,
		ReleaseDate: set.ReleaseDate,
		Rarity:      card.Rarity,
		Supertype:   card.Supertype,
	})
}
