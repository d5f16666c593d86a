package history

import (
	"context"
	"errors"
)

// DefaultMaxEntries caps how many recent texts are kept per user.
const DefaultMaxEntries = 10

// anonymousKey groups submissions that carry no user id.
const anonymousKey = "anonymous"

// Repository stores the most recent decision texts per user,
// most-recent-first, capped with oldest entries dropped first.
type Repository interface {
	Push(ctx context.Context, userID, text string) error
	List(ctx context.Context, userID string) ([]string, error)
}

var ErrEmptyText = errors.New("history: empty text")

// Service fronts the repository with key normalization.
// History writes are best-effort; callers log failures and continue.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service { return &Service{repo: repo} }

func (s *Service) Push(ctx context.Context, userID, text string) error {
	if s.repo == nil {
		return errors.New("history: repository not configured")
	}
	if text == "" {
		return ErrEmptyText
	}
	return s.repo.Push(ctx, userKey(userID), text)
}

func (s *Service) List(ctx context.Context, userID string) ([]string, error) {
	if s.repo == nil {
		return nil, errors.New("history: repository not configured")
	}
	return s.repo.List(ctx, userKey(userID))
}

func userKey(userID string) string {
	if userID == "" {
		return anonymousKey
	}
	return userID
}
