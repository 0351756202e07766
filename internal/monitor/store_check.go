package monitor

import (
	"context"

	"github.com/dreamware/redsearch/internal/store"
)

// StoreCheck builds a Monitor check function that probes s for liveness by
// running a harmless, zero-result KEYS scan. Any error surfaced by the
// underlying client (a connection failure, an auth error) fails the check;
// an empty result set does not.
func StoreCheck(s store.Store) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := s.Keys(ctx, []byte("__redsearch_health_probe__"))
		return err
	}
}
