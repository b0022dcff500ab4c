// Package hexoracle answers per hex questions asked when scoring coverage: how the hex is
// classified, whether it is boosted and whether a radio may receive boosted rewards.
package hexoracle

import (
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/sql"
	"github.com/hexmobile/mobile-verifier/sql/hexes"
)

const DefaultCacheSize = 100_000

type Opt func(*Oracle)

func WithLogger(logger *zap.Logger) Opt {
	return func(o *Oracle) {
		o.logger = logger
	}
}

// WithCacheSize sets the number of hex assignments kept in memory.
func WithCacheSize(size int) Opt {
	return func(o *Oracle) {
		o.cacheSize = size
	}
}

// Oracle reads hex data imported into the database.
type Oracle struct {
	logger    *zap.Logger
	db        sql.Executor
	cacheSize int

	assignments *lru.Cache[types.Hex, types.Assignments]
}

func New(db sql.Executor, opts ...Opt) (*Oracle, error) {
	o := &Oracle{
		logger:    zap.NewNop(),
		db:        db,
		cacheSize: DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(o)
	}
	cache, err := lru.New[types.Hex, types.Assignments](o.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create assignments cache: %w", err)
	}
	o.assignments = cache
	return o, nil
}

// Assignments returns classification of the hex.
// Hexes that were never classified are outside of the serviceable territory.
func (o *Oracle) Assignments(hex types.Hex) (types.Assignments, error) {
	if a, ok := o.assignments.Get(hex); ok {
		return a, nil
	}
	a, err := hexes.Assignments(o.db, hex)
	switch {
	case errors.Is(err, sql.ErrNotFound):
		o.logger.Debug("hex is not classified", zap.Stringer("hex", hex))
		a = types.OutsideTerritory
	case err != nil:
		return types.Assignments{}, err
	}
	o.assignments.Add(hex, a)
	return a, nil
}

// Boosts returns multipliers of hexes boosted during the epoch.
func (o *Oracle) Boosts(epoch types.Epoch) (map[types.Hex]uint32, error) {
	return hexes.ActiveBoosts(o.db, epoch)
}

// IsVerified returns true if the radio passed the verified threshold before the given time.
func (o *Oracle) IsVerified(radio string, at time.Time) (bool, error) {
	return hexes.IsVerified(o.db, radio, at)
}

// Purge drops cached assignments. It must be called after importing new data into the database
// the oracle reads from.
func (o *Oracle) Purge() {
	o.assignments.Purge()
}
