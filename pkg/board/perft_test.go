package board_test

import (
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// perft counts the leaf nodes reachable in depth plies, via the legal move
// generator and the Make/Unmake cycle.
func perft(b *board.Board, depth int) int64 {
	if depth == 0 {
		return 1
	}

	var nodes int64
	for _, m := range b.LegalMoves() {
		done := b.Make(m)
		nodes += perft(b, depth-1)
		b.Unmake(done)
	}
	return nodes
}

// Reference counts from https://www.chessprogramming.org/Perft_Results.
func TestPerftInitial(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		{4, 197281},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(b, tt.depth), "depth=%v", tt.depth)
	}
}

func TestPerftKiwipete(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 48},
		{2, 2039},
		{3, 97862},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(b, tt.depth), "depth=%v", tt.depth)
	}
}

func TestPerftPosition3(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1")
	require.NoError(t, err)

	tests := []struct {
		depth int
		nodes int64
	}{
		{1, 14},
		{2, 191},
		{3, 2812},
		{4, 43238},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.nodes, perft(b, tt.depth), "depth=%v", tt.depth)
	}
}

func TestMakeUnmakePreservesHash(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, "r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3")
	require.NoError(t, err)

	before := b.Hash()
	for _, m := range b.LegalMoves() {
		done := b.Make(m)
		assert.NotEqual(t, before, b.Hash(), "move %v should change the hash", m)
		b.Unmake(done)
		assert.Equal(t, before, b.Hash(), "move %v should round-trip the hash", m)
	}
}
