package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/Mim-rose/nexthire-server/internal/apperr"
	"github.com/Mim-rose/nexthire-server/internal/database"
	"github.com/Mim-rose/nexthire-server/internal/models"
)

type SubscriptionService struct {
	Store database.SubscriptionStore
	now   func() time.Time
}

func NewSubscriptionService(store database.SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{Store: store, now: time.Now}
}

// Subscribe records a newsletter sign-up.
func (s *SubscriptionService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return apperr.BadRequest("Email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return apperr.BadRequest("Invalid email")
	}

	sub := &models.Subscription{Email: strings.ToLower(email), SubscribedAt: s.now().UTC()}
	if _, err := s.Store.InsertSubscription(ctx, sub); err != nil {
		return storeErr("Failed to subscribe", err)
	}
	return nil
}
