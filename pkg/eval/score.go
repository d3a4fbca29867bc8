package eval

import (
	"fmt"

	"github.com/herohde/lunarr/pkg/board"
)

// CP is a signed centipawn score, always from the perspective of the side
// to move (negamax convention): positive favors whoever is about to move.
// Mate scores are encoded as CP values close to +/-MateScore, biased by the
// number of plies to mate so that shorter mates sort as more extreme
// scores; TT storage/retrieval adjusts this bias relative to the probing
// node's ply (see toTT/fromTT in package search).
type CP int32

const (
	Zero     CP = 0
	Inf      CP = 32000
	MateScore CP = 31000
	MaxPlyScore CP = MateScore - CP(board.MaxPly)
	Draw     CP = 0
)

// Mate returns the score, from the mating side's perspective, for
// delivering mate in the given number of plies; Mated(ply) is its negation.
func Mate(pliesToMate int) CP {
	return MateScore - CP(pliesToMate)
}

// Mated is the score for having just been checkmated, ply plies from the
// search root.
func Mated(ply int) CP {
	return -MateScore + CP(ply)
}

// IsMateScore reports whether s represents a forced mate rather than a
// material/positional evaluation.
func IsMateScore(s CP) bool {
	return s > MaxPlyScore || s < -MaxPlyScore
}

// PliesToMate returns the number of plies to deliver (positive) or suffer
// (negative) mate, given a mate score.
func PliesToMate(s CP) int {
	if s > 0 {
		return int(MateScore - s)
	}
	return -int(MateScore + s)
}

// Crop clamps s into [-Inf, Inf]; mate scores pass through unchanged.
func Crop(s CP) CP {
	switch {
	case s > Inf:
		return Inf
	case s < -Inf:
		return -Inf
	default:
		return s
	}
}

func Max(a, b CP) CP {
	if a > b {
		return a
	}
	return b
}

func Min(a, b CP) CP {
	if a < b {
		return a
	}
	return b
}

// MateDistance returns the number of plies to mate (for either side) and
// true, if s is a mate score; otherwise false.
func (s CP) MateDistance() (int, bool) {
	if !IsMateScore(s) {
		return 0, false
	}
	plies := PliesToMate(s)
	if plies < 0 {
		plies = -plies
	}
	return plies, true
}

func (s CP) String() string {
	if IsMateScore(s) {
		plies := PliesToMate(s)
		if plies < 0 {
			return fmt.Sprintf("mate %d", -((-plies + 1) / 2))
		}
		return fmt.Sprintf("mate %d", (plies+1)/2)
	}
	return fmt.Sprintf("%.2f", float64(s)/100)
}

// Tapered is an evaluation term accumulator carrying separate opening
// ("middlegame") and endgame contributions, interpolated by game phase at
// the end of static evaluation. Modeled as a plain struct rather than a
// single packed int: simpler to get right without the toolchain available
// to catch a sign error in a bit-packing trick.
type Tapered struct {
	MG, EG int32
}

func T(mg, eg int32) Tapered {
	return Tapered{MG: mg, EG: eg}
}

func (t Tapered) Add(o Tapered) Tapered {
	return Tapered{MG: t.MG + o.MG, EG: t.EG + o.EG}
}

func (t Tapered) Sub(o Tapered) Tapered {
	return Tapered{MG: t.MG - o.MG, EG: t.EG - o.EG}
}

func (t Tapered) Neg() Tapered {
	return Tapered{MG: -t.MG, EG: -t.EG}
}

func (t Tapered) Mul(n int32) Tapered {
	return Tapered{MG: t.MG * n, EG: t.EG * n}
}

// MaxPhase is the total phase weight with all non-pawn, non-king material on
// the board (4 knights + 4 bishops + 4 rooks + 2 queens, standard weights).
const MaxPhase = 24

// PhaseWeight is the game-phase contribution of one piece of the given kind.
func PhaseWeight(p board.Piece) int32 {
	switch p {
	case board.Knight, board.Bishop:
		return 1
	case board.Rook:
		return 2
	case board.Queen:
		return 4
	default:
		return 0
	}
}

// Interpolate blends the opening and endgame components by phase (0 =
// endgame, MaxPhase = full middlegame material on board).
func (t Tapered) Interpolate(phase int32) CP {
	if phase > MaxPhase {
		phase = MaxPhase
	}
	if phase < 0 {
		phase = 0
	}
	return CP((t.MG*phase + t.EG*(MaxPhase-phase)) / MaxPhase)
}
