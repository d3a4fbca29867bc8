package search_test

import (
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/stretchr/testify/assert"
)

func TestOrderingTTMoveFirst(t *testing.T) {
	o := search.NewOrdering()

	tt := board.Move{Type: board.Normal, From: board.E2, To: board.E4, Piece: board.Pawn}
	other := board.Move{Type: board.Normal, From: board.G1, To: board.F3, Piece: board.Knight}
	capture := board.Move{Type: board.Capture, From: board.D1, To: board.D8, Piece: board.Queen, Capture: board.Queen}

	moves := []board.Move{other, capture, tt}
	o.Order(moves, tt, 0)

	assert.True(t, moves[0].Equals(tt))
}

func TestOrderingCapturesBeforeQuiet(t *testing.T) {
	o := search.NewOrdering()

	quiet := board.Move{Type: board.Normal, From: board.G1, To: board.F3, Piece: board.Knight}
	capture := board.Move{Type: board.Capture, From: board.E4, To: board.D5, Piece: board.Pawn, Capture: board.Pawn}

	moves := []board.Move{quiet, capture}
	o.Order(moves, board.Move{}, 0)

	assert.True(t, moves[0].Equals(capture))
}

func TestOrderingKillerBeforeOtherQuiet(t *testing.T) {
	o := search.NewOrdering()

	killer := board.Move{Type: board.Normal, From: board.G1, To: board.F3, Piece: board.Knight}
	quiet := board.Move{Type: board.Normal, From: board.B1, To: board.C3, Piece: board.Knight}

	o.RecordKiller(2, killer)

	moves := []board.Move{quiet, killer}
	o.Order(moves, board.Move{}, 2)

	assert.True(t, moves[0].Equals(killer))
}

func TestOrderingHistoryBreaksQuietTies(t *testing.T) {
	o := search.NewOrdering()

	low := board.Move{Type: board.Normal, From: board.B1, To: board.C3, Piece: board.Knight}
	high := board.Move{Type: board.Normal, From: board.G1, To: board.F3, Piece: board.Knight}

	o.RecordHistory(high, 6)
	o.RecordHistory(low, 1)

	moves := []board.Move{low, high}
	o.Order(moves, board.Move{}, 0)

	assert.True(t, moves[0].Equals(high))
}

func TestOrderCapturesMVVLVA(t *testing.T) {
	pxq := board.Move{Type: board.Capture, From: board.E4, To: board.D5, Piece: board.Pawn, Capture: board.Queen}
	nxp := board.Move{Type: board.Capture, From: board.F3, To: board.E5, Piece: board.Knight, Capture: board.Pawn}

	moves := []board.Move{nxp, pxq}
	search.OrderCaptures(moves)

	assert.True(t, moves[0].Equals(pxq))
}
