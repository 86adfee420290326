package facet

import (
	"context"

	"github.com/matst80/slask-layer/pkg/types"
)

type ItemsCounter interface {
	ItemsCount() int
}

// SizeLoader computes the result size at most once and returns the same
// size or error on every call.
type SizeLoader interface {
	Size(ctx context.Context) (int, error)
}

// CanShowOptions reports whether at least one filter has an item.
func CanShowOptions[F ItemsCounter](filters []F) bool {
	for _, f := range filters {
		if f.ItemsCount() > 0 {
			return true
		}
	}
	return false
}

// CanShowBlock loads the result size first, so the filters hold their
// items. A failed load is reported on every call. The block stays visible
// while selections exist.
func CanShowBlock[F ItemsCounter](ctx context.Context, results SizeLoader, state *types.LayerState, filters []F) (bool, error) {
	if results != nil {
		if _, err := results.Size(ctx); err != nil {
			return false, err
		}
	}
	return CanShowOptions(filters) || state.Len() > 0, nil
}
