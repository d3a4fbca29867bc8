// Package board contains the chess board representation and its mutation,
// attack and move-generation primitives.
package board

import (
	"fmt"
)

const (
	repetition3Limit   = 3
	noprogressPlyLimit = 100

	// MaxGameLength is a generous, not exact, bound on the combined length of
	// the game played so far and the deepest search stack rooted at it.
	// Nothing in this package sizes storage by it; the history slices grow
	// as needed.
	MaxGameLength = 2048
)

// occupant records what, if anything, sits on a square for O(1) lookup
// without scanning bitboards.
type occupant struct {
	color Color
	piece Piece
	set   bool
}

// Board is a mutable chess position plus the history needed to adjudicate
// draws. Make/Unmake must be called in matching LIFO order; Unmake restores
// the position to the state before the corresponding Make, since every
// reversible piece of state (castling rights, en passant square, the
// halfmove clock and the hash) is backed up on the Move itself. The one
// exception is the adjudicated result, which Unmake clears rather than
// restores.
//
// Not thread-safe: concurrent search workers each need their own Board,
// produced with Clone.
type Board struct {
	zt *ZobristTable

	pieces   [NumColors][NumPieces]Bitboard
	occupied [NumColors]Bitboard
	occAll   Bitboard
	mailbox  [NumSquares]occupant
	king     [NumColors]Square

	sideToMove     Color
	castling       Castling
	epSquare       Square // NoSquare if none
	halfmoveClock  int
	fullmoveNumber int
	hash           ZobristHash

	// material is the running material-plus-PSQT sum per color, maintained
	// incrementally by SetPiece/addPiece/removePiece so evaluation never has
	// to rescan bitboards. phase is its game-phase counterpart, summed over
	// both colors.
	material [NumColors]Tapered
	phase    int32

	result Result

	// history is every zobrist hash seen so far, root game moves followed by
	// in-search moves; Make appends, Unmake truncates. Used for repetition
	// detection (count(key) >= 3 over the whole stack) and HasCastled.
	history     []ZobristHash
	moveHistory []Move
}

// NewBoard constructs an empty board with no pieces placed; callers place
// pieces via SetPiece before calling Finalize, or use fen.Decode to build a
// fully-populated board directly.
func NewBoard(zt *ZobristTable) *Board {
	b := &Board{zt: zt, epSquare: NoSquare, fullmoveNumber: 1}
	return b
}

// SetPiece places a piece on an empty square. Must not be called once the
// board is in play; used only while constructing a position (e.g. from FEN).
func (b *Board) SetPiece(c Color, p Piece, sq Square) {
	b.pieces[c][p] |= BitMask(sq)
	b.occupied[c] |= BitMask(sq)
	b.occAll |= BitMask(sq)
	b.mailbox[sq] = occupant{color: c, piece: p, set: true}
	if p == King {
		b.king[c] = sq
	}

	b.material[c] = b.material[c].Add(PieceValue[p]).Add(PSQT(c, p, sq))
	b.phase += PhaseWeight(p)
	if p == Bishop && b.pieces[c][Bishop].PopCount() == 2 {
		b.material[c] = b.material[c].Add(bishopPairBonus)
	}
}

// Finalize sets the remaining game state and computes the initial hash. Call
// once after all pieces have been placed with SetPiece.
func (b *Board) Finalize(side Color, castling Castling, ep Square, halfmove, fullmove int) {
	b.sideToMove = side
	b.castling = castling
	b.epSquare = ep
	b.halfmoveClock = halfmove
	b.fullmoveNumber = fullmove
	b.hash = b.zt.Hash(b)
	b.history = append(b.history[:0], b.hash)
}

// Clone returns a deep, independent copy of the board, safe for a separate
// search goroutine to Make/Unmake on.
func (b *Board) Clone() *Board {
	nb := *b
	nb.history = append([]ZobristHash(nil), b.history...)
	nb.moveHistory = append([]Move(nil), b.moveHistory...)
	return &nb
}

func (b *Board) PieceAt(sq Square) (Color, Piece, bool) {
	o := b.mailbox[sq]
	return o.color, o.piece, o.set
}

func (b *Board) SideToMove() Color       { return b.sideToMove }
func (b *Board) Castling() Castling      { return b.castling }
func (b *Board) EnPassant() Square       { return b.epSquare }
func (b *Board) HalfmoveClock() int      { return b.halfmoveClock }
func (b *Board) FullmoveNumber() int     { return b.fullmoveNumber }
func (b *Board) Hash() ZobristHash       { return b.hash }
func (b *Board) KingSquare(c Color) Square { return b.king[c] }
func (b *Board) Result() Result          { return b.result }

// Material returns the running material-plus-PSQT sum of one side's own
// pieces, positive for that side, maintained incrementally across
// Make/Unmake.
func (b *Board) Material(c Color) Tapered { return b.material[c] }

// Phase returns the running game-phase weight (MaxPhase worth of non-pawn,
// non-king material at the start of the game, trending to 0), maintained
// incrementally across Make/Unmake.
func (b *Board) Phase() int32 { return b.phase }

// Occupied returns the occupancy bitboard for one side.
func (b *Board) Occupied(c Color) Bitboard { return b.occupied[c] }

// OccupiedAll returns the full-board occupancy bitboard.
func (b *Board) OccupiedAll() Bitboard { return b.occAll }

// Pieces returns the bitboard of one piece kind for one side.
func (b *Board) Pieces(c Color, p Piece) Bitboard { return b.pieces[c][p] }

// AllPieces returns the union of every piece kind for one side.
func (b *Board) AllPieces(c Color) Bitboard { return b.occupied[c] }

func (b *Board) addPiece(c Color, p Piece, sq Square) {
	mask := BitMask(sq)
	b.pieces[c][p] |= mask
	b.occupied[c] |= mask
	b.occAll |= mask
	b.mailbox[sq] = occupant{color: c, piece: p, set: true}
	b.hash ^= b.zt.Piece(c, p, sq)
	if p == King {
		b.king[c] = sq
	}

	b.material[c] = b.material[c].Add(PieceValue[p]).Add(PSQT(c, p, sq))
	b.phase += PhaseWeight(p)
	if p == Bishop && b.pieces[c][Bishop].PopCount() == 2 {
		b.material[c] = b.material[c].Add(bishopPairBonus)
	}
}

func (b *Board) removePiece(c Color, p Piece, sq Square) {
	if p == Bishop && b.pieces[c][Bishop].PopCount() == 2 {
		b.material[c] = b.material[c].Sub(bishopPairBonus)
	}
	b.material[c] = b.material[c].Sub(PieceValue[p]).Sub(PSQT(c, p, sq))
	b.phase -= PhaseWeight(p)

	mask := ^BitMask(sq)
	b.pieces[c][p] &= mask
	b.occupied[c] &= mask
	b.occAll &= mask
	b.mailbox[sq] = occupant{}
	b.hash ^= b.zt.Piece(c, p, sq)
}

// Make applies a pseudo-legal move to the board, mutating every piece of
// state in place. It does not check legality (see LegalMoves); the
// caller is responsible for only making moves drawn from the legal move
// list. Returns the fully-populated Move (with backups filled in) that must
// be passed to Unmake to reverse it.
func (b *Board) Make(m Move) Move {
	us := b.sideToMove
	them := us.Opponent()

	m.prevCastling = b.castling
	m.prevEnPassant = b.epSquare
	m.prevHalfmove = uint16(b.halfmoveClock)
	m.prevHash = b.hash
	m.prevFullmove = uint16(b.fullmoveNumber)

	// (1) Clear old metadata contribution from the hash.
	b.hash ^= b.zt.CastlingHash(b.castling)
	b.hash ^= b.zt.EnPassant(b.epSquare)
	b.hash ^= b.zt.Turn(us)

	// (2) Move the piece, handling captures/promotion/castling/en passant.
	switch m.Type {
	case EnPassant:
		capSq := NewSquare(m.To.File(), m.From.Rank())
		b.removePiece(them, Pawn, capSq)
		b.removePiece(us, Pawn, m.From)
		b.addPiece(us, Pawn, m.To)

	case Capture:
		b.removePiece(them, m.Capture, m.To)
		b.removePiece(us, m.Piece, m.From)
		b.addPiece(us, m.Piece, m.To)

	case Promotion:
		b.removePiece(us, Pawn, m.From)
		b.addPiece(us, m.Promotion, m.To)

	case CapturePromotion:
		b.removePiece(them, m.Capture, m.To)
		b.removePiece(us, Pawn, m.From)
		b.addPiece(us, m.Promotion, m.To)

	case KingSideCastle, QueenSideCastle:
		info := castleInfo[rightForCastleType(m.Type, us)]
		b.removePiece(us, King, m.From)
		b.addPiece(us, King, m.To)
		b.removePiece(us, Rook, info.rookFrom)
		b.addPiece(us, Rook, info.rookTo)

	default: // Normal, Push, Jump
		b.removePiece(us, m.Piece, m.From)
		b.addPiece(us, m.Piece, m.To)
	}

	// (3) Update castling rights, en passant square, clocks.
	b.castling &^= rightsLostBySquare(m.From) | rightsLostBySquare(m.To)

	if m.Type == Jump {
		b.epSquare = NewSquare(m.From.File(), midRank(m.From, m.To))
	} else {
		b.epSquare = NoSquare
	}

	if m.Type == Normal || m.Type == Jump || m.Type == Push {
		if m.Piece == Pawn {
			b.halfmoveClock = 0
		} else {
			b.halfmoveClock++
		}
	} else {
		b.halfmoveClock = 0
	}

	if us == Black {
		b.fullmoveNumber++
	}

	// (4) Fold in new metadata contribution and flip side to move.
	b.hash ^= b.zt.CastlingHash(b.castling)
	b.hash ^= b.zt.EnPassant(b.epSquare)
	b.hash ^= b.zt.Turn(them)
	b.sideToMove = them

	b.history = append(b.history, b.hash)
	b.moveHistory = append(b.moveHistory, m)

	b.updateResult(m)

	return m
}

// Unmake reverses the most recent call to Make. m must be the (populated)
// Move value returned by that call.
func (b *Board) Unmake(m Move) {
	them := b.sideToMove
	us := them.Opponent()

	b.history = b.history[:len(b.history)-1]
	b.moveHistory = b.moveHistory[:len(b.moveHistory)-1]
	b.result = Result{}

	switch m.Type {
	case EnPassant:
		capSq := NewSquare(m.To.File(), m.From.Rank())
		b.removePiece(us, Pawn, m.To)
		b.addPiece(us, Pawn, m.From)
		b.addPiece(them, Pawn, capSq)

	case Capture:
		b.removePiece(us, m.Piece, m.To)
		b.addPiece(us, m.Piece, m.From)
		b.addPiece(them, m.Capture, m.To)

	case Promotion:
		b.removePiece(us, m.Promotion, m.To)
		b.addPiece(us, Pawn, m.From)

	case CapturePromotion:
		b.removePiece(us, m.Promotion, m.To)
		b.addPiece(us, Pawn, m.From)
		b.addPiece(them, m.Capture, m.To)

	case KingSideCastle, QueenSideCastle:
		info := castleInfo[rightForCastleType(m.Type, us)]
		b.removePiece(us, Rook, info.rookTo)
		b.addPiece(us, Rook, info.rookFrom)
		b.removePiece(us, King, m.To)
		b.addPiece(us, King, m.From)

	default:
		b.removePiece(us, m.Piece, m.To)
		b.addPiece(us, m.Piece, m.From)
	}

	b.castling = m.prevCastling
	b.epSquare = m.prevEnPassant
	b.halfmoveClock = int(m.prevHalfmove)
	b.fullmoveNumber = int(m.prevFullmove)
	b.hash = m.prevHash
	b.sideToMove = us
}

// MakeNull flips the side to move without moving a piece, used by null-move
// pruning. Returns the backup needed for UnmakeNull.
func (b *Board) MakeNull() (prevEP Square, prevHash ZobristHash) {
	prevEP, prevHash = b.epSquare, b.hash
	b.hash ^= b.zt.EnPassant(b.epSquare)
	b.epSquare = NoSquare
	b.hash ^= b.zt.Turn(b.sideToMove) ^ b.zt.Turn(b.sideToMove.Opponent())
	b.sideToMove = b.sideToMove.Opponent()
	return prevEP, prevHash
}

func (b *Board) UnmakeNull(prevEP Square, prevHash ZobristHash) {
	b.sideToMove = b.sideToMove.Opponent()
	b.epSquare = prevEP
	b.hash = prevHash
}

// UndoLastMove reverses the most recently made move on the root game line,
// for a UI or protocol "takeback". Returns the move undone and false if
// there is no move to undo.
func (b *Board) UndoLastMove() (Move, bool) {
	if len(b.moveHistory) == 0 {
		return Move{}, false
	}
	m := b.moveHistory[len(b.moveHistory)-1]
	b.Unmake(m)
	return m, true
}

// MoveHistory returns the moves made so far on the root game line, oldest
// first.
func (b *Board) MoveHistory() []Move {
	return append([]Move(nil), b.moveHistory...)
}

func midRank(from, to Square) Rank {
	if to.Rank() > from.Rank() {
		return from.Rank() + 1
	}
	return from.Rank() - 1
}

func rightForCastleType(t MoveType, c Color) Castling {
	if t == KingSideCastle {
		return kingSideRight(c)
	}
	return queenSideRight(c)
}

// RepetitionCount returns how many times the current position (by hash) has
// occurred in the full history stack (root game plus in-search moves).
func (b *Board) RepetitionCount() int {
	count := 0
	for _, h := range b.history {
		if h == b.hash {
			count++
		}
	}
	return count
}

// HasCastled reports whether the given color has castled at any point in
// the recorded move history.
func (b *Board) HasCastled(c Color) bool {
	side := b.sideToMove
	for i := len(b.moveHistory) - 1; i >= 0; i-- {
		side = side.Opponent()
		if side == c && (b.moveHistory[i].IsCastle()) {
			return true
		}
	}
	return false
}

// updateResult recomputes the draw-by-repetition / fifty-move / insufficient
// material status after a move has been made. Checkmate/stalemate are
// decided by the caller (movegen has no legal replies), via Adjudicate.
func (b *Board) updateResult(m Move) {
	if b.RepetitionCount() >= repetition3Limit {
		b.result = Result{Outcome: Draw, Reason: ThreefoldRepetition}
		return
	}
	if b.halfmoveClock >= noprogressPlyLimit {
		b.result = Result{Outcome: Draw, Reason: FiftyMoveRule}
		return
	}
	if b.HasInsufficientMaterial() {
		b.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
		return
	}
	b.result = Result{}
}

// Adjudicate forces a terminal result, used once movegen reports no legal
// moves (checkmate or stalemate).
func (b *Board) Adjudicate(r Result) {
	b.result = r
}

// HasInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate: K v K, K+N v K, K+B v K, or K+B v K+B with
// same-colored bishops.
func (b *Board) HasInsufficientMaterial() bool {
	for c := ZeroColor; c < NumColors; c++ {
		if b.pieces[c][Pawn] != 0 || b.pieces[c][Rook] != 0 || b.pieces[c][Queen] != 0 {
			return false
		}
	}

	minorCount := func(c Color) int {
		return b.pieces[c][Knight].PopCount() + b.pieces[c][Bishop].PopCount()
	}
	wMinor, bMinor := minorCount(White), minorCount(Black)

	if wMinor == 0 && bMinor == 0 {
		return true
	}
	if wMinor+bMinor == 1 {
		return true // lone minor vs bare king
	}
	if wMinor == 1 && bMinor == 1 && b.pieces[White][Knight] == 0 && b.pieces[Black][Knight] == 0 {
		wSq := b.pieces[White][Bishop].LSB()
		bSq := b.pieces[Black][Bishop].LSB()
		return squareColor(wSq) == squareColor(bSq)
	}
	return false
}

func squareColor(sq Square) Color {
	if (int(sq.Rank())+int(sq.File()))%2 == 0 {
		return Black
	}
	return White
}

func (b *Board) String() string {
	return fmt.Sprintf("board{turn=%v, castling=%v, ep=%v, halfmove=%v, fullmove=%v, hash=%x, result=%v}",
		b.sideToMove, b.castling, b.epSquare, b.halfmoveClock, b.fullmoveNumber, b.hash, b.result)
}
