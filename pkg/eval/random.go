package eval

import (
	"context"
	"math/rand"

	"github.com/herohde/lunarr/pkg/board"
)

// Random adds a small amount of randomness to evaluations, in the range
// [-limit/2, limit/2] centipawns. The zero value always returns zero, so it
// is safe to use without explicit construction.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) CP {
	if n.limit <= 0 || n.rand == nil {
		return 0
	}
	return CP(n.rand.Intn(n.limit) - n.limit/2)
}
