package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blocus/internal/domain"
	"blocus/internal/repository"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const cardsPageSize = 5

// CreateCardInput is the user-supplied part of a new card
type CreateCardInput struct {
	UserID   int64  `validate:"required"`
	Question string `validate:"required,max=1000"`
	Answer   string `validate:"required,max=2000"`
	Category string `validate:"max=64"`
}

// CardService handles card management
type CardService struct {
	cardRepo repository.CardRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCardService creates a new card service
func NewCardService(cardRepo repository.CardRepository, logger *zap.Logger) *CardService {
	return &CardService{
		cardRepo: cardRepo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// CreateCard validates the input and stores a card with a default schedule.
// It returns the new card id.
func (s *CardService) CreateCard(ctx context.Context, in CreateCardInput) (string, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	in.Category = strings.TrimSpace(in.Category)

	if err := s.validate.Struct(in); err != nil {
		return "", validationError(err)
	}

	card := domain.NewCard(in.UserID, in.Question, in.Answer, in.Category, time.Now())
	if err := s.cardRepo.CreateCard(ctx, card); err != nil {
		return "", err
	}

	s.logger.Info("Card created",
		zap.Int64("user_id", in.UserID),
		zap.String("card_id", card.ID),
		zap.String("category", card.Category),
	)

	return card.ID, nil
}

// DeleteCard removes one of the user's cards
func (s *CardService) DeleteCard(ctx context.Context, userID int64, cardID string) error {
	if cardID == "" {
		return fmt.Errorf("%w: card id is empty", domain.ErrValidation)
	}
	return s.cardRepo.DeleteCard(ctx, userID, cardID)
}

// ListCards returns a page of the user's cards and the total number of pages
func (s *CardService) ListCards(ctx context.Context, userID int64, page int) ([]domain.Card, int, error) {
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * cardsPageSize
	cards, err := s.cardRepo.ListCards(ctx, userID, cardsPageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.cardRepo.CountCards(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	return cards, totalPages(total, cardsPageSize), nil
}

// GetDecks returns the user's categories with total and due counts
func (s *CardService) GetDecks(ctx context.Context, userID int64) ([]domain.Deck, error) {
	return s.cardRepo.GetDecks(ctx, userID, time.Now())
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(fields, ", "))
}

func totalPages(total, pageSize int) int {
	pages := (total + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}
	return pages
}
