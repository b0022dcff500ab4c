package rewards

import (
	"context"
	"time"

	"github.com/hexmobile/mobile-verifier/common/types"
	"github.com/hexmobile/mobile-verifier/follower"
)

//go:generate mockgen -typed -package=rewards -destination=./mocks.go -source=./interface.go

type chainStateClient interface {
	ChainState(ctx context.Context, epoch types.Epoch) (*follower.ChainState, error)
}

// HexOracle provides per hex data used to score coverage.
type HexOracle interface {
	Assignments(hex types.Hex) (types.Assignments, error)
	Boosts(epoch types.Epoch) (map[types.Hex]uint32, error)
	IsVerified(radio string, at time.Time) (bool, error)
}

// Writer persists records and reports when they are durable.
type Writer interface {
	Write(ctx context.Context, records ...any) (<-chan error, error)
}
