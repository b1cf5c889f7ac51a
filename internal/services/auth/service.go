package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "piclips/internal/errors"
	"piclips/internal/models"
	"piclips/internal/repositories"
	"piclips/internal/utils"
	"piclips/internal/validation"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(ctx context.Context, input RegisterInput) (*models.Account, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, accountID string) error
	// Verify resolves a bearer token to the identity it was issued for
	Verify(ctx context.Context, token string) (Identity, error)
}

type RegisterInput struct {
	Username    string `json:"username" validate:"required,alphanum,min=3,max=30"`
	DisplayName string `json:"displayName" validate:"max=60"`
	Password    string `json:"password" validate:"required"`
	Avatar      string `json:"avatar" validate:"max=2048"`
}

type LoginResult struct {
	Account   *models.Account `json:"user"`
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
}

type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	SignupBalance int64
	// Role given to new accounts; defaults to user
	Role string
	Now  func() time.Time
}

type service struct {
	accounts repositories.AccountRepository
	config   Config
}

func NewService(accounts repositories.AccountRepository, config Config) Service {
	if accounts == nil {
		panic("account repository is required")
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	if config.Role == "" {
		config.Role = models.RoleUser
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &service{accounts: accounts, config: config}
}

func (s *service) Register(ctx context.Context, input RegisterInput) (*models.Account, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	v := validation.New()
	v.Password("password", input.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	displayName := input.DisplayName
	if displayName == "" {
		displayName = input.Username
	}
	account := &models.Account{
		Username:     input.Username,
		DisplayName:  displayName,
		Avatar:       input.Avatar,
		PasswordHash: string(hash),
		Role:         s.config.Role,
		TokenBalance: s.config.SignupBalance,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, domainErrors.ErrUsernameTaken
		}
		return nil, err
	}

	log.WithFields(log.Fields{"account_id": account.ID, "username": account.Username}).Info("Account registered")
	return account, nil
}

func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			log.WithField("username", username).Info("Login failed: unknown username")
			return nil, domainErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		log.WithField("account_id", account.ID).Info("Login failed: incorrect password")
		return nil, domainErrors.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(s.config.JWTSecret, models.AccountClaims{
		AccountID:    account.ID,
		Username:     account.Username,
		Role:         account.Role,
		TokenVersion: account.TokenVersion,
	}, s.config.Now(), s.config.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{Account: account, Token: token, ExpiresAt: expiresAt}, nil
}

// Logout revokes every token issued so far by bumping the token version.
func (s *service) Logout(ctx context.Context, accountID string) error {
	if err := s.accounts.IncrementTokenVersion(ctx, accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return domainErrors.ErrAccountNotFound
		}
		return err
	}
	return nil
}

func (s *service) Verify(ctx context.Context, token string) (Identity, error) {
	claims, err := utils.ParseToken(s.config.JWTSecret, token)
	if err != nil {
		log.WithError(err).Debug("Token validation failed")
		return Identity{}, domainErrors.ErrUnauthorized.WithMessage("invalid token")
	}

	account, err := s.accounts.GetByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return Identity{}, domainErrors.ErrUnauthorized.WithMessage("invalid token")
		}
		return Identity{}, err
	}
	if account.TokenVersion != claims.TokenVersion {
		return Identity{}, domainErrors.ErrSessionExpired
	}

	return Identity{
		AccountID: account.ID,
		Username:  account.Username,
		Role:      account.Role,
	}, nil
}
