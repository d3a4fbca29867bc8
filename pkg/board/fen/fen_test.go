package fen_test

import (
	"testing"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"r1bqkbnr/pppp1ppp/2n5/4p3/2B1P3/5N2/PPPP1PPP/RNBQK2R b KQkq - 3 3",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"8/8/8/4k3/8/8/4P3/4K3 w - - 0 1",
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
	}

	for _, tt := range tests {
		zt := board.NewZobristTable(0)
		b, err := fen.Decode(zt, tt)
		require.NoError(t, err)
		assert.Equal(t, tt, fen.Encode(b))
	}
}

func TestDecodeInitial(t *testing.T) {
	zt := board.NewZobristTable(0)
	b, err := fen.Decode(zt, fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, board.White, b.SideToMove())
	assert.Equal(t, board.NoSquare, b.EnPassant())
	assert.Equal(t, 0, b.HalfmoveClock())
	assert.Equal(t, 1, b.FullmoveNumber())

	color, piece, ok := b.PieceAt(board.E1)
	require.True(t, ok)
	assert.Equal(t, board.White, color)
	assert.Equal(t, board.King, piece)
}

func TestDecodeInvalid(t *testing.T) {
	zt := board.NewZobristTable(0)

	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/ppppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w XQkq - 0 1",
	}
	for _, tt := range tests {
		_, err := fen.Decode(zt, tt)
		assert.Error(t, err, tt)
	}
}
