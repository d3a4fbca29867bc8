package searchctl

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl represents time control information, in the shape UCI's "go
// wtime btime winc binc movestogo" supplies it.
type TimeControl struct {
	White, Black         time.Duration
	WhiteInc, BlackInc   time.Duration
	Moves                int // 0 == rest of game, moves-to-go unknown
}

const (
	xScale = 6.85
	xShift = 64.5
	skew   = 0.171

	optimumMaxRatio, optimumStealRatio = 1.0, 0.0
	maximumMaxRatio, maximumStealRatio = 7.3, 0.34

	maxHypotheticalMovesToGo = 50
)

// moveImportance is a skew-logistic curve of a move's relative urgency as a
// function of the ply it is played at: high early, tapering as the game
// goes on and time pressure (rather than move quality) starts to dominate.
func moveImportance(ply int) float64 {
	return math.Pow(1+math.Exp((float64(ply)-xShift)/xScale), -skew)
}

// remaining estimates how much of myTime should be spent on the current
// move, assuming movesToGo further moves of decreasing importance remain.
func remaining(myTime time.Duration, movesToGo, ply int, maxRatio, stealRatio float64) time.Duration {
	if myTime <= 0 {
		return 0
	}

	thisMove := moveImportance(ply)
	var otherMoves float64
	for i := 1; i < movesToGo; i++ {
		otherMoves += moveImportance(ply + 2*i)
	}

	ratio1 := (maxRatio * thisMove) / (maxRatio*thisMove + otherMoves)
	ratio2 := (thisMove + stealRatio*otherMoves) / (thisMove + otherMoves)

	ratio := math.Min(ratio1, ratio2)
	return time.Duration(float64(myTime) * ratio)
}

// Limits returns the optimum (soft) and maximum (hard) time to spend on the
// move about to be played at the given ply, racing every hypothetical
// moves-to-go value up to 50 (or the known value, if smaller) and taking the
// minimum across them, per the classical skew-logistic time manager.
func (t TimeControl) Limits(c board.Color, ply int) (time.Duration, time.Duration) {
	myTime, inc := t.White, t.WhiteInc
	if c == board.Black {
		myTime, inc = t.Black, t.BlackInc
	}

	maxHyp := maxHypotheticalMovesToGo
	if t.Moves > 0 && t.Moves < maxHyp {
		maxHyp = t.Moves
	}

	optimum := time.Duration(math.MaxInt64)
	maximum := time.Duration(math.MaxInt64)

	for hyp := 1; hyp <= maxHyp; hyp++ {
		hypMyTime := myTime + inc*time.Duration(hyp-1)
		if hypMyTime < 0 {
			hypMyTime = 0
		}

		t1 := remaining(hypMyTime, hyp, ply, optimumMaxRatio, optimumStealRatio)
		t2 := remaining(hypMyTime, hyp, ply, maximumMaxRatio, maximumStealRatio)

		if t1 < optimum {
			optimum = t1
		}
		if t2 < maximum {
			maximum = t2
		}
	}
	if maximum > myTime {
		maximum = myTime
	}
	return optimum, maximum
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// Ply returns the zero-based game ply for a board about to make its
// fullmoveNumber'th move, used to evaluate the move-importance curve.
func Ply(b *board.Board) int {
	ply := 2 * (b.FullmoveNumber() - 1)
	if b.SideToMove() == board.Black {
		ply++
	}
	return ply
}

// EnforceTimeControl enforces the time control limits, if any. Returns the
// soft (optimum) limit and whether a limit is in effect.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], b *board.Board) (time.Duration, bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(b.SideToMove(), Ply(b))
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
