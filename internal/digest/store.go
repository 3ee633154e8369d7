// Package digest persists the daily digest document. Each batch run fully
// replaces the document; readers always see a complete snapshot.
package digest

import (
	"context"
	"errors"

	"marketmind/internal/model"
)

// ErrNotFound means no digest document exists yet (first run, or a prior
// run never completed). Readers surface this as "no digest available".
var ErrNotFound = errors.New("digest not found")

type Store interface {
	Save(ctx context.Context, d *model.DailyDigest) error
	Load(ctx context.Context) (*model.DailyDigest, error)
}
