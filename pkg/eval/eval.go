// Package eval contains static position evaluation logic and utilities.
package eval

import (
	"context"

	"github.com/herohde/lunarr/pkg/board"
)

// Evaluator is a static position evaluator.
type Evaluator interface {
	// Evaluate returns the position score in centipawns, from the
	// perspective of the side to move.
	Evaluate(ctx context.Context, b *board.Board) CP
}

// NominalValue is the rough material value of a piece, in centipawns. The
// king has an arbitrary large value so NominalValueGain never underrates
// capturing into check.
func NominalValue(p board.Piece) CP {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 300
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 10000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of making move m, used for
// MVV-LVA move ordering rather than full static evaluation.
func NominalValueGain(m board.Move) CP {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

// material reads the running material-plus-PSQT sum Board.Make/Unmake
// maintain incrementally, converted to eval's own Tapered type.
func material(b *board.Board, c board.Color) Tapered {
	m := b.Material(c)
	return T(m.MG, m.EG)
}

// phase returns the current game-phase weight (MaxPhase at the start of the
// game, trending to 0 as non-pawn material is traded off), maintained
// incrementally by Board.Make/Unmake.
func phase(b *board.Board) int32 {
	return b.Phase()
}

// Classical is the default static evaluator: material and piece-square
// placement, pawn structure, mobility, king safety and minor-piece outposts,
// each computed per color as positive for that color, then White's total
// minus Black's, tapered by game phase and negated when Black is to move,
// plus optional noise from an embedded Random term.
type Classical struct {
	Noise Random
}

func (e Classical) Evaluate(ctx context.Context, b *board.Board) CP {
	var white, black Tapered

	white = white.Add(material(b, board.White)).
		Add(PawnStructure(b, board.White)).
		Add(Mobility(b, board.White)).
		Add(KingSafety(b, board.White)).
		Add(Outposts(b, board.White))

	black = black.Add(material(b, board.Black)).
		Add(PawnStructure(b, board.Black)).
		Add(Mobility(b, board.Black)).
		Add(KingSafety(b, board.Black)).
		Add(Outposts(b, board.Black))

	total := white.Sub(black).Interpolate(phase(b))

	if b.SideToMove() == board.Black {
		total = -total
	}
	return Crop(total + e.Noise.Evaluate(ctx, b))
}
