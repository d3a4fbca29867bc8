package board

import "strings"

// Castling represents the set of castling rights. 4 bits.
type Castling uint8

const (
	WhiteKingSideCastle Castling = 1 << iota
	WhiteQueenSideCastle
	BlackKingSideCastle
	BlackQueenSideCastle
)

const (
	ZeroCastling      Castling = 0
	NumCastling       Castling = 16
	FullCastingRights          = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// kingSideRight and queenSideRight return the castling right bit for a side.
func kingSideRight(c Color) Castling {
	if c == White {
		return WhiteKingSideCastle
	}
	return BlackKingSideCastle
}

func queenSideRight(c Color) Castling {
	if c == White {
		return WhiteQueenSideCastle
	}
	return BlackQueenSideCastle
}

// castleSquares describes the king/rook squares involved in one castling right.
type castleSquares struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	// path is every square that must be empty between king and rook, and safe
	// is every square the king passes through or lands on, none of which may
	// be attacked.
	path, safe Bitboard
}

var castleInfo = map[Castling]castleSquares{
	WhiteKingSideCastle:  {kingFrom: E1, kingTo: G1, rookFrom: H1, rookTo: F1, path: BitMask(F1) | BitMask(G1), safe: BitMask(E1) | BitMask(F1) | BitMask(G1)},
	WhiteQueenSideCastle: {kingFrom: E1, kingTo: C1, rookFrom: A1, rookTo: D1, path: BitMask(B1) | BitMask(C1) | BitMask(D1), safe: BitMask(C1) | BitMask(D1) | BitMask(E1)},
	BlackKingSideCastle:  {kingFrom: E8, kingTo: G8, rookFrom: H8, rookTo: F8, path: BitMask(F8) | BitMask(G8), safe: BitMask(E8) | BitMask(F8) | BitMask(G8)},
	BlackQueenSideCastle: {kingFrom: E8, kingTo: C8, rookFrom: A8, rookTo: D8, path: BitMask(B8) | BitMask(C8) | BitMask(D8), safe: BitMask(C8) | BitMask(D8) | BitMask(E8)},
}

// rightsLostBySquare returns the castling right(s) revoked when a piece
// moves to or from the given square (a king or rook leaving home, or a rook
// being captured on its home square).
func rightsLostBySquare(sq Square) Castling {
	switch sq {
	case E1:
		return WhiteKingSideCastle | WhiteQueenSideCastle
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case E8:
		return BlackKingSideCastle | BlackQueenSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}

// IsAllowed returns true if any of the given rights is allowed.
func (c Castling) IsAllowed(right Castling) bool {
	return c&right != 0
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.IsAllowed(WhiteKingSideCastle) {
		sb.WriteString("K")
	}
	if c.IsAllowed(WhiteQueenSideCastle) {
		sb.WriteString("Q")
	}
	if c.IsAllowed(BlackKingSideCastle) {
		sb.WriteString("k")
	}
	if c.IsAllowed(BlackQueenSideCastle) {
		sb.WriteString("q")
	}
	return sb.String()
}
