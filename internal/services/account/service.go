package account

import (
	"context"
	"errors"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"
	"piclips/internal/services/auth"

	log "github.com/sirupsen/logrus"
)

// Service exposes account reads and administrative balance changes
type Service interface {
	Me(ctx context.Context, identity auth.Identity) (*models.Account, error)
	// AdjustBalance credits (delta > 0) or debits (delta < 0) an account. Admin only.
	AdjustBalance(ctx context.Context, actor auth.Identity, accountID string, delta int64) (*models.Account, error)
}

type service struct {
	accounts repositories.AccountRepository
}

func NewService(accounts repositories.AccountRepository) Service {
	if accounts == nil {
		panic("account repository is required")
	}
	return &service{accounts: accounts}
}

func (s *service) Me(ctx context.Context, identity auth.Identity) (*models.Account, error) {
	account, err := s.accounts.GetByID(ctx, identity.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}

func (s *service) AdjustBalance(ctx context.Context, actor auth.Identity, accountID string, delta int64) (*models.Account, error) {
	if !actor.IsAdmin() {
		return nil, domainErrors.New(domainErrors.KindForbidden, "ADMIN_ONLY", "admin role required")
	}
	if delta == 0 {
		return nil, domainErrors.Validation("delta must not be zero")
	}

	if err := s.accounts.AdjustBalance(ctx, accountID, delta); err != nil {
		switch {
		case errors.Is(err, repositories.ErrAccountNotFound):
			return nil, domainErrors.ErrAccountNotFound
		case errors.Is(err, repositories.ErrInsufficientBalance):
			return nil, domainErrors.ErrNegativeBalance
		}
		return nil, err
	}

	log.WithFields(log.Fields{
		"admin_id":   actor.AccountID,
		"account_id": accountID,
		"delta":      delta,
	}).Info("Token balance adjusted")

	return s.accounts.GetByID(ctx, accountID)
}
