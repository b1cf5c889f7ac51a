package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrVideoNotFound       = errors.New("video not found")
	ErrCommentNotFound     = errors.New("comment not found")
	ErrTipNotFound         = errors.New("tip not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicateKey        = errors.New("duplicate key")
)

// Store groups the repositories that share one database handle. Inside
// ExecuteInTransaction every repository returned by the Store passed to fn
// runs on the same transaction.
type Store interface {
	Accounts() AccountRepository
	Videos() VideoRepository
	Comments() CommentRepository
	Tips() TipRepository

	ExecuteInTransaction(ctx context.Context, fn func(Store) error) error
	Ping(ctx context.Context) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Accounts() AccountRepository { return NewAccountRepository(s.db) }
func (s *store) Videos() VideoRepository     { return NewVideoRepository(s.db) }
func (s *store) Comments() CommentRepository { return NewCommentRepository(s.db) }
func (s *store) Tips() TipRepository         { return NewTipRepository(s.db) }

func (s *store) ExecuteInTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&store{db: tx})
	})
}

func (s *store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
