package resolve

import (
	"context"
	"log/slog"

	"github.com/roach88/aliasdex/internal/catalog"
)

// Store is the subset of the store accessor the resolvers need.
// *store.Store satisfies it.
type Store interface {
	EntityByName(ctx context.Context, name string) (catalog.Entity, bool, error)
	Forms(ctx context.Context, entityID int64) ([]catalog.Form, error)
	FormIDForLabel(ctx context.Context, entityID int64, label string) (int64, bool, error)
	Aliases(ctx context.Context, key catalog.Key) ([]string, error)
	InsertAlias(ctx context.Context, alias catalog.Alias) error
	UpdateAlias(ctx context.Context, key catalog.Key, oldText, newText string) (int64, error)
	DeleteAlias(ctx context.Context, key catalog.Key, text string) (int64, error)
}

func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
