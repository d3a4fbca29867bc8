package board

import "fmt"

// MoveType indicates the kind of move. The no-progress counter is reset by
// any move that isn't Normal.
type MoveType uint8

const (
	Normal    MoveType = iota
	Push               // Pawn single-square move
	Jump               // Pawn two-square move
	EnPassant          // Implicitly a pawn capture
	QueenSideCastle
	KingSideCastle
	Capture
	Promotion
	CapturePromotion
)

// Move represents a not-necessarily-legal move along with enough contextual
// metadata to make and unmake it on a mutable Board in O(1), without a
// parallel undo stack: the board state needed to reverse the move (castling
// rights and en passant square/target before the move was made) rides on
// the move itself.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // the piece that moves
	Promotion Piece // desired piece for promotion, if any
	Capture   Piece // captured piece, if any (including en passant)

	prevCastling  Castling    // rights before the move, for Unmake
	prevEnPassant Square      // en passant target before the move, for Unmake
	prevHalfmove  uint16      // halfmove clock before the move, for Unmake
	prevFullmove  uint16      // fullmove number before the move, for Unmake
	prevHash      ZobristHash // zobrist hash before the move, for Unmake
}

// ParseMove parses a move in pure algebraic coordinate notation, such as
// "a2a4" or "a7a8q". The parsed move carries no contextual metadata; it must
// be resolved against a Board (matched by From/To/Promotion against the
// legal move list) before it can be made.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return Move{From: from, To: to, Promotion: promo}, nil
	}

	return Move{From: from, To: to}, nil
}

// IsZero reports whether m is the zero-value move (no move).
func (m Move) IsZero() bool {
	return m == Move{}
}

// Equals compares two moves by their user-visible identity (from/to/promotion),
// ignoring make/unmake metadata. Suitable for matching a ParseMove result or a
// TT-stored move against a legal move list entry.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// IsCapture reports whether the move removes an enemy piece from the board.
func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

// IsCastle reports whether the move is a castling move.
func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", m.From, m.To, m.Promotion)
	}
	return fmt.Sprintf("%v%v", m.From, m.To)
}
