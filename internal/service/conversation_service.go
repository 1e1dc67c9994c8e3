package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/akashduggal/passr-backend/internal/model"
	"github.com/akashduggal/passr-backend/internal/repository"
	"github.com/akashduggal/passr-backend/internal/timeutil"
)

// offerGreeting is the seller message injected when an offer is accepted.
const offerGreeting = "Hi"

type ConversationService interface {
	StartSession(ctx context.Context, p model.SessionParams) (*model.Conversation, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error)
	End(ctx context.Context, id uuid.UUID) error
	ListMessages(ctx context.Context, id uuid.UUID) ([]model.Message, bool, error)
	SendMessage(ctx context.Context, id uuid.UUID, text string) (*model.Message, error)
	AcceptOffer(ctx context.Context, id uuid.UUID) (*model.Message, error)
}

type conversationService struct {
	sessions repository.SessionRepository
	clock    timeutil.Clock
}

func NewConversationService(sessions repository.SessionRepository, clock timeutil.Clock) ConversationService {
	return &conversationService{sessions: sessions, clock: clock}
}

// StartSession creates the screen-scoped conversation. The timeline is
// seeded with the buyer's opening offer; a pre-accepted offer additionally
// seeds the seller greeting and opens the gate at construction.
func (s *conversationService) StartSession(ctx context.Context, p model.SessionParams) (*model.Conversation, error) {
	now := s.clock.Now()
	cv := &model.Conversation{
		ID:                 uuid.New(),
		IsSeller:           p.IsSeller,
		CounterpartyName:   p.CounterpartyName,
		ProductTitle:       p.ProductTitle,
		ProductPrice:       p.ProductPrice,
		InitialOfferAmount: p.InitialOfferAmount,
		CreatedAt:          now,
		LastActive:         now,
	}
	cv.Append(offerText(p.InitialOfferAmount, p.ProductTitle), model.SenderBuyer, now)
	if p.OfferPreAccepted {
		cv.Append(offerGreeting, model.SenderSeller, now)
		cv.OfferAccepted = true
	}
	if err := s.sessions.Create(ctx, cv); err != nil {
		return nil, err
	}
	return cv.Clone(), nil
}

func (s *conversationService) Get(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	return cv.Clone(), nil
}

func (s *conversationService) End(ctx context.Context, id uuid.UUID) error {
	if err := s.sessions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ListMessages returns an ordered snapshot of the timeline plus the
// perspective flag needed to compute alignment.
func (s *conversationService) ListMessages(ctx context.Context, id uuid.UUID) ([]model.Message, bool, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, false, err
	}
	cv.Lock()
	defer cv.Unlock()
	msgs := make([]model.Message, len(cv.Messages))
	copy(msgs, cv.Messages)
	return msgs, cv.IsSeller, nil
}

// SendMessage appends a user-typed message. Composition is gated on the
// offer being accepted; the sender follows the session's perspective.
func (s *conversationService) SendMessage(ctx context.Context, id uuid.UUID, text string) (*model.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	if !cv.ComposeEnabled() {
		return nil, ErrComposeDisabled
	}
	sender := model.SenderBuyer
	if cv.IsSeller {
		sender = model.SenderSeller
	}
	now := s.clock.Now()
	msg := cv.Append(text, sender, now)
	cv.LastActive = now
	return &msg, nil
}

// AcceptOffer fires the Pending -> Accepted transition: buyer perspective
// only, irreversible, appends exactly one seller greeting.
func (s *conversationService) AcceptOffer(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	cv, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	cv.Lock()
	defer cv.Unlock()
	if cv.IsSeller {
		return nil, ErrNotBuyer
	}
	if cv.OfferAccepted {
		return nil, ErrOfferAlreadyAccepted
	}
	now := s.clock.Now()
	msg := cv.Append(offerGreeting, model.SenderSeller, now)
	cv.OfferAccepted = true
	cv.LastActive = now
	return &msg, nil
}

func (s *conversationService) find(ctx context.Context, id uuid.UUID) (*model.Conversation, error) {
	cv, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cv, nil
}

func offerText(amount float64, title string) string {
	return fmt.Sprintf("Offered %s for %s", formatAmount(amount), title)
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return "$" + strconv.FormatInt(int64(v), 10)
	}
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
