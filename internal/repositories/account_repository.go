package repositories

import (
	"context"
	"fmt"

	"piclips/internal/models"

	"gorm.io/gorm"
)

// AccountRepository defines the interface for account-related database operations
type AccountRepository interface {
	// Create inserts a new account; ErrDuplicateKey when the username is taken
	Create(ctx context.Context, account *models.Account) error

	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)

	// Debit subtracts amount only if the balance covers it, in a single
	// statement. ErrInsufficientBalance when no row qualified.
	Debit(ctx context.Context, id string, amount int64) error

	// Credit adds amount; ErrAccountNotFound when the account does not exist
	Credit(ctx context.Context, id string, amount int64) error

	// AdjustBalance applies a signed delta without letting the balance go negative
	AdjustBalance(ctx context.Context, id string, delta int64) error

	// IncrementVideoCount applies delta to the uploaded videos counter, never below zero
	IncrementVideoCount(ctx context.Context, id string, delta int64) error
	IncrementTokenVersion(ctx context.Context, id string) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := r.db.WithContext(ctx).Create(account).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&account).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

func (r *accountRepository) Debit(ctx context.Context, id string, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND token_balance >= ?", id, amount).
		UpdateColumn("token_balance", gorm.Expr("token_balance - ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to debit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrInsufficientBalance
	}
	return nil
}

func (r *accountRepository) Credit(ctx context.Context, id string, amount int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("token_balance", gorm.Expr("token_balance + ?", amount))
	if result.Error != nil {
		return fmt.Errorf("failed to credit account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) AdjustBalance(ctx context.Context, id string, delta int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ? AND token_balance + ? >= 0", id, delta).
		UpdateColumn("token_balance", gorm.Expr("token_balance + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to adjust balance: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrInsufficientBalance
}

func (r *accountRepository) IncrementVideoCount(ctx context.Context, id string, delta int64) error {
	expr := gorm.Expr("uploaded_videos_count + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN uploaded_videos_count + ? < 0 THEN 0 ELSE uploaded_videos_count + ? END", delta, delta)
	}
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("uploaded_videos_count", expr)
	if result.Error != nil {
		return fmt.Errorf("failed to update video count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) IncrementTokenVersion(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("id = ?", id).
		UpdateColumn("token_version", gorm.Expr("token_version + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to increment token version: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}
