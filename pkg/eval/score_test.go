package eval_test

import (
	"testing"

	"github.com/herohde/lunarr/pkg/eval"
	"github.com/stretchr/testify/assert"
)

func TestMateScores(t *testing.T) {
	assert.True(t, eval.IsMateScore(eval.Mate(1)))
	assert.True(t, eval.IsMateScore(eval.Mated(3)))
	assert.False(t, eval.IsMateScore(eval.CP(500)))
	assert.False(t, eval.IsMateScore(eval.MaxPlyScore))

	plies, ok := eval.Mate(3).MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 3, plies)

	plies, ok = eval.Mated(5).MateDistance()
	assert.True(t, ok)
	assert.Equal(t, 5, plies)

	_, ok = eval.CP(250).MateDistance()
	assert.False(t, ok)
}

func TestMateOrdering(t *testing.T) {
	// A shorter mate must score strictly higher than a longer one.
	assert.Greater(t, eval.Mate(1), eval.Mate(3))
	assert.Less(t, eval.Mated(1), eval.Mated(3))
	assert.Greater(t, eval.Mate(1), eval.CP(0))
	assert.Less(t, eval.Mated(1), eval.CP(0))
}

func TestCrop(t *testing.T) {
	assert.Equal(t, eval.Inf, eval.Crop(eval.Inf+1000))
	assert.Equal(t, -eval.Inf, eval.Crop(-eval.Inf-1000))
	assert.Equal(t, eval.CP(17), eval.Crop(eval.CP(17)))
}

func TestTapered(t *testing.T) {
	a := eval.T(10, 20)
	b := eval.T(3, 4)

	assert.Equal(t, eval.T(13, 24), a.Add(b))
	assert.Equal(t, eval.T(7, 16), a.Sub(b))
	assert.Equal(t, eval.T(-10, -20), a.Neg())
	assert.Equal(t, eval.T(20, 40), a.Mul(2))
}

func TestTaperedInterpolate(t *testing.T) {
	t1 := eval.T(100, 0)

	assert.Equal(t, eval.CP(100), t1.Interpolate(eval.MaxPhase))
	assert.Equal(t, eval.CP(0), t1.Interpolate(0))
	assert.Equal(t, eval.CP(50), t1.Interpolate(eval.MaxPhase/2))

	// Out-of-range phase is clamped rather than producing a nonsensical score.
	assert.Equal(t, eval.CP(100), t1.Interpolate(eval.MaxPhase+10))
	assert.Equal(t, eval.CP(0), t1.Interpolate(-10))
}

func TestScoreString(t *testing.T) {
	assert.Equal(t, "1.00", eval.CP(100).String())
	assert.Equal(t, "-0.50", eval.CP(-50).String())
	assert.Equal(t, "mate 1", eval.Mate(1).String())
	assert.Equal(t, "mate -2", eval.Mated(3).String())
}
