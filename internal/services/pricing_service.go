package services

import (
	"context"
	"log"
	"sort"

	"cardbinder/internal/models"
	"cardbinder/internal/rates"
	"cardbinder/internal/repositories"
	"cardbinder/internal/tcgapi"
)

// Display variant each pricing key belongs to.
var priceKeyVariant = map[string]string{
	"normal":             "normal",
	"unlimitedNormal":    "normal",
	"holofoil":           "holo",
	"unlimitedHolofoil":  "holo",
	"reverseHolofoil":    "reverse_holo",
	"1stEditionNormal":   "first_edition",
	"1stEditionHolofoil": "first_edition",
}

// Pricing keys to try, in order, when valuing an owned variant. Pattern
// reverses are valued at the plain reverse price when the market API
// has no dedicated key for them.
var variantPriceKeys = map[string][]string{
	"normal":             {"normal", "unlimitedNormal"},
	"holo":               {"holofoil", "unlimitedHolofoil"},
	"reverse_holo":       {"reverseHolofoil"},
	"pokeball_pattern":   {"reverseHolofoil"},
	"masterball_pattern": {"reverseHolofoil"},
	"first_edition":      {"1stEditionNormal", "1stEditionHolofoil"},
}

// PricingService serves per-card market prices: external API behind a
// Redis snapshot cache, converted into the caller's display currency.
type PricingService struct {
	tcg       *tcgapi.Client
	redisRepo *repositories.RedisRepository
	converter *rates.Converter
}

func NewPricingService(tcg *tcgapi.Client, redisRepo *repositories.RedisRepository, converter *rates.Converter) *PricingService {
	return &PricingService{
		tcg:       tcg,
		redisRepo: redisRepo,
		converter: converter,
	}
}

// PriceSheet returns the USD price sheet for a card, cache first. A
// pricing outage degrades to an empty sheet rather than failing the
// card view.
func (s *PricingService) PriceSheet(ctx context.Context, externalID string) tcgapi.PriceSheet {
	cached, err := s.redisRepo.FindPriceSheet(ctx, externalID)
	if err != nil {
		log.Printf("price cache lookup failed for %s: %v", externalID, err)
	}
	if cached != nil {
		return cached
	}

	card, err := s.tcg.FetchCard(ctx, externalID)
	if err != nil {
		log.Printf("price fetch failed for %s: %v", externalID, err)
		return tcgapi.PriceSheet{}
	}

	sheet := card.TCGPlayer.Prices
	if sheet == nil {
		sheet = tcgapi.PriceSheet{}
	}
	if err := s.redisRepo.StorePriceSheet(ctx, externalID, sheet); err != nil {
		log.Printf("price cache store failed for %s: %v", externalID, err)
	}
	return sheet
}

// VariantPrices converts a USD sheet into display prices.
func (s *PricingService) VariantPrices(ctx context.Context, sheet tcgapi.PriceSheet, currency string) ([]models.VariantPrice, error) {
	rate, err := s.converter.Rate(ctx, currency)
	if err != nil {
		return nil, err
	}

	prices := make([]models.VariantPrice, 0, len(sheet))
	for key, points := range sheet {
		variant, ok := priceKeyVariant[key]
		if !ok {
			variant = key
		}
		prices = append(prices, models.VariantPrice{
			Variant:  variant,
			PriceKey: key,
			Currency: currency,
			Low:      points.Low * rate,
			Market:   points.Market * rate,
		})
	}
	sort.Slice(prices, func(i, j int) bool { return prices[i].PriceKey < prices[j].PriceKey })
	return prices, nil
}

// MarketPriceUSD resolves the USD market price of one owned variant
// from a sheet, trying its candidate pricing keys in order.
func MarketPriceUSD(sheet tcgapi.PriceSheet, variant string) (float64, bool) {
	for _, key := range variantPriceKeys[variant] {
		if points, ok := sheet[key]; ok && points.Market > 0 {
			return points.Market, true
		}
	}
	return 0, false
}
