// Package fen contains utilities for reading and writing positions in FEN notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/herohde/lunarr/pkg/board"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode parses a FEN record and populates a fresh Board from it.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(zt *board.ZobristTable, fen string) (*board.Board, error) {
	parts := strings.Fields(strings.TrimSpace(fen))
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: '%v'", fen)
	}

	b := board.NewBoard(zt)

	// (1) Piece placement, from white's perspective: rank 8 down to rank 1,
	// file a through file h within each rank.

	rank := board.Rank8
	file := board.FileA
	count := 0
	for _, r := range parts[0] {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return nil, fmt.Errorf("invalid rank length in FEN: '%v'", fen)
			}
			if rank == board.Rank1 {
				return nil, fmt.Errorf("too many ranks in FEN: '%v'", fen)
			}
			rank--
			file = board.FileA

		case unicode.IsDigit(r):
			file += board.File(r - '0')

		case unicode.IsLetter(r):
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece '%v' in FEN: '%v'", r, fen)
			}
			if file >= board.NumFiles {
				return nil, fmt.Errorf("invalid rank length in FEN: '%v'", fen)
			}
			b.SetPiece(color, piece, board.NewSquare(file, rank))
			file++
			count++

		default:
			return nil, fmt.Errorf("invalid character in FEN: '%v'", fen)
		}
	}
	if file != board.NumFiles || rank != board.Rank1 {
		return nil, fmt.Errorf("invalid number of ranks/squares in FEN: '%v'", fen)
	}

	// (2) Active color.

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: '%v'", fen)
	}

	// (3) Castling availability.

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: '%v'", fen)
	}

	// (4) En passant target square.

	ep := board.NoSquare
	if parts[3] != "-" {
		sq, err := board.ParseSquareStr(parts[3])
		if err != nil {
			return nil, fmt.Errorf("invalid en passant in FEN: '%v'", fen)
		}
		ep = sq
	}

	// (5) Halfmove clock.

	hm, err := strconv.Atoi(parts[4])
	if err != nil || hm < 0 {
		return nil, fmt.Errorf("invalid halfmove in FEN: '%v'", fen)
	}

	// (6) Fullmove number.

	fm, err := strconv.Atoi(parts[5])
	if err != nil || fm < 1 {
		return nil, fmt.Errorf("invalid fullmove in FEN: '%v'", fen)
	}

	b.Finalize(active, castling, ep, hm, fm)
	return b, nil
}

// Encode renders the board's current state as a FEN record.
func Encode(b *board.Board) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			color, piece, ok := b.PieceAt(board.NewSquare(f, board.Rank(r)))
			if !ok {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(color, piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > int(board.Rank1) {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if b.EnPassant() != board.NoSquare {
		ep = b.EnPassant().String()
	}

	return fmt.Sprintf("%v %v %v %v %v %v", sb.String(), b.SideToMove(), printCastling(b.Castling()), ep, b.HalfmoveClock(), b.FullmoveNumber())
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range str {
		switch r {
		case 'K':
			ret |= board.WhiteKingSideCastle
		case 'Q':
			ret |= board.WhiteQueenSideCastle
		case 'k':
			ret |= board.BlackKingSideCastle
		case 'q':
			ret |= board.BlackQueenSideCastle
		default:
			return 0, false
		}
	}
	return ret, true
}

func printCastling(c board.Castling) string {
	return c.String()
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w":
		return board.White, true
	case "b":
		return board.Black, true
	default:
		return 0, false
	}
}

func parsePiece(r rune) (board.Color, board.Piece, bool) {
	p, ok := board.ParsePiece(unicode.ToLower(r))
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, p, true
	}
	return board.Black, p, true
}

func printPiece(c board.Color, p board.Piece) rune {
	r := []rune(p.String())[0]
	if c == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
