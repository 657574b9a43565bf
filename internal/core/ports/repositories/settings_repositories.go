package repositories

import (
	"context"

	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
)

// SettingsRepositoryFacade stores the singleton business settings and the numbering counters.
type SettingsRepositoryFacade interface {
	// GetSettings returns the current settings.
	GetSettings(ctx context.Context) (*domain.Settings, error)

	// EnsureSettings stores defaults unless settings already exist.
	EnsureSettings(ctx context.Context, defaults domain.Settings) error

	// UpdateSettings writes every field except the numbering counters.
	UpdateSettings(ctx context.Context, settings domain.Settings) error

	// NextSequence atomically returns the next counter for kind and advances it.
	// Values handed out are never reused, even when the caller fails afterwards.
	NextSequence(ctx context.Context, kind domain.DocumentKind) (int64, error)
}
