package services

import (
	"context"
	"errors"
	"log"

	"cardbinder/internal/models"
	"cardbinder/internal/repositories"
	"cardbinder/internal/utils"
	"cardbinder/internal/variants"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound   = errors.New("collection item not found")
	ErrInvalidVariant = errors.New("variant does not exist for this card")
	ErrInvalidInput   = errors.New("invalid collection input")
)

type CollectionService struct {
	collectionRepo *repositories.CollectionRepository
	catalogRepo    *repositories.CatalogRepository
	activityRepo   *repositories.ActivityRepository
	redisRepo      *repositories.RedisRepository
	pricing        *PricingService
}

func NewCollectionService(
	collectionRepo *repositories.CollectionRepository,
	catalogRepo *repositories.CatalogRepository,
	activityRepo *repositories.ActivityRepository,
	redisRepo *repositories.RedisRepository,
	pricing *PricingService,
) *CollectionService {
	return &CollectionService{
		collectionRepo: collectionRepo,
		catalogRepo:    catalogRepo,
		activityRepo:   activityRepo,
		redisRepo:      redisRepo,
		pricing:        pricing,
	}
}

// AddItemRequest is the POST body for adding cards to a collection.
type AddItemRequest struct {
	CardID    uuid.UUID `json:"card_id" binding:"required"`
	Variant   string    `json:"variant" binding:"required"`
	Quantity  int       `json:"quantity"`
	Condition string    `json:"condition"`
}

// Add puts quantity copies of a card variant into the collection,
// after checking the variant actually exists for that card.
func (s *CollectionService) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*models.CollectionItem, error) {
	if req.Quantity <= 0 {
		req.Quantity = 1
	}
	if req.Condition == "" {
		req.Condition = "near_mint"
	}
	if !utils.Contains(models.Conditions, req.Condition) {
		return nil, ErrInvalidInput
	}

	card, err := s.catalogRepo.FindCardByID(req.CardID)
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

	if !s.variantExists(ctx, set, card, req.Variant) {
		return nil, ErrInvalidVariant
	}

	item := &models.CollectionItem{
		UserID:    userID,
		CardID:    req.CardID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
		Condition: req.Condition,
	}
	if err := s.collectionRepo.AddOrIncrement(item); err != nil {
		return nil, err
	}

	s.recordActivity(ctx, userID, req.CardID, req.Variant, models.ActivityAdded, req.Quantity)
	s.adjustLeaderboard(ctx, userID, req.Quantity)

	return item, nil
}

// SetQuantity pins the owned count of a variant; zero removes it.
func (s *CollectionService) SetQuantity(ctx context.Context, userID, cardID uuid.UUID, variant string, quantity int) error {
	if quantity < 0 {
		return ErrInvalidInput
	}
	if quantity == 0 {
		return s.Remove(ctx, userID, cardID, variant)
	}

	existing, err := s.collectionRepo.FindItem(userID, cardID, variant)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrItemNotFound
	}

	if err := s.collectionRepo.SetQuantity(userID, cardID, variant, quantity); err != nil {
		return err
	}

	s.recordActivity(ctx, userID, cardID, variant, models.ActivityUpdated, quantity)
	s.adjustLeaderboard(ctx, userID, quantity-existing.Quantity)
	return nil
}

func (s *CollectionService) Remove(ctx context.Context, userID, cardID uuid.UUID, variant string) error {
	existing, err := s.collectionRepo.FindItem(userID, cardID, variant)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrItemNotFound
	}

	if err := s.collectionRepo.Remove(userID, cardID, variant); err != nil {
		return err
	}

	s.recordActivity(ctx, userID, cardID, variant, models.ActivityRemoved, existing.Quantity)
	s.adjustLeaderboard(ctx, userID, -existing.Quantity)
	return nil
}

func (s *CollectionService) List(userID uuid.UUID) ([]models.CollectionItem, error) {
	return s.collectionRepo.ListByUser(userID)
}

func (s *CollectionService) ListBySet(userID, setID uuid.UUID) ([]models.CollectionItem, error) {
	return s.collectionRepo.ListByUserAndSet(userID, setID)
}

// Progress computes set completion. Possible variants come from the
// era rules alone; fetching a price sheet per card here would hammer
// the market API for whole sets.
func (s *CollectionService) Progress(userID, setID uuid.UUID) (*models.SetProgress, error) {
	set, err := s.catalogRepo.FindSetByID(setID)
	if err != nil {
		return nil, err
	}
	if set == nil {
		return nil, ErrSetNotFound
	}

	cards, err := s.catalogRepo.AllCardsBySet(setID)
	if err != nil {
		return nil, err
	}

	totalVariants := 0
	for i := range cards {
		totalVariants += len(VariantsFor(set, &cards[i]))
	}

	ownedVariants, ownedCards, err := s.collectionRepo.CountOwnedVariantsBySet(userID, setID)
	if err != nil {
		return nil, err
	}

	progress := &models.SetProgress{
		SetID:         set.ID,
		SetCode:       set.Code,
		SetName:       set.Name,
		OwnedVariants: ownedVariants,
		TotalVariants: totalVariants,
		OwnedCards:    ownedCards,
		TotalCards:    len(cards),
	}
	if totalVariants > 0 {
		progress.PercentOwned = float64(ownedVariants) / float64(totalVariants) * 100
	}
	return progress, nil
}

// Value prices the whole collection in the given currency. Cards the
// market has no figure for are counted but contribute nothing.
func (s *CollectionService) Value(ctx context.Context, userID uuid.UUID, currency string) (*models.CollectionValue, error) {
	items, err := s.collectionRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	// One sheet per distinct card, not per item.
	externalIDs := make(map[uuid.UUID]string)
	for _, item := range items {
		if _, ok := externalIDs[item.CardID]; ok {
			continue
		}
		card, err := s.catalogRepo.FindCardByID(item.CardID)
		if err != nil {
			return nil, err
		}
		if card != nil {
			externalIDs[item.CardID] = card.ExternalID
		}
	}

	sheets := make(map[uuid.UUID]map[string]float64, len(externalIDs))
	totalUSD := 0.0
	cardCount := 0
	pricedCount := 0
	for _, item := range items {
		cardCount += item.Quantity

		priced, ok := sheets[item.CardID]
		if !ok {
			priced = make(map[string]float64)
			sheet := s.pricing.PriceSheet(ctx, externalIDs[item.CardID])
			for variant := range variantPriceKeys {
				if usd, found := MarketPriceUSD(sheet, variant); found {
					priced[variant] = usd
				}
			}
			sheets[item.CardID] = priced
		}

		if usd, found := priced[item.Variant]; found {
			totalUSD += usd * float64(item.Quantity)
			pricedCount += item.Quantity
		}
	}

	total, err := s.pricing.converter.Convert(ctx, totalUSD, "USD", currency)
	if err != nil {
		return nil, err
	}

	return &models.CollectionValue{
		Currency:    currency,
		Total:       total,
		CardCount:   cardCount,
		PricedCount: pricedCount,
	}, nil
}

// variantExists validates the requested variant against the engine,
// feeding in cached pricing keys when available so market-proven
// printings are accepted.
func (s *CollectionService) variantExists(ctx context.Context, set *models.Set, card *models.Card, variant string) bool {
	sheet := s.pricing.PriceSheet(ctx, card.ExternalID)
	inferred := variants.Infer(variants.CardInfo{
		SetCode:     set.Code,
		ReleaseDate: set.ReleaseDate,
		Rarity:      card.Rarity,
		Supertype:   card.Supertype,
		PriceKeys:   sheet.Keys(),
	})
	for _, v := range inferred {
		if string(v) == variant {
			return true
		}
	}
	return false
}

// Activity and leaderboard writes are best effort; a miss there must
// not fail the collection mutation.
func (s *CollectionService) recordActivity(ctx context.Context, userID, cardID uuid.UUID, variant, action string, quantity int) {
	event := &models.ActivityEvent{
		UserID:   userID,
		CardID:   cardID,
		Variant:  variant,
		Action:   action,
		Quantity: quantity,
	}
	if err := s.activityRepo.Create(event); err != nil {
		log.Printf("recording activity failed for user %s: %v", userID, err)
	}
}

func (s *CollectionService) adjustLeaderboard(ctx context.Context, userID uuid.UUID, delta int) {
	if delta == 0 {
		return
	}
	if err := s.redisRepo.AdjustLeaderboard(ctx, userID, delta); err != nil {
		log.Printf("leaderboard update failed for user %s: %v", userID, err)
	}
}
