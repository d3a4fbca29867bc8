package board

// Outcome represents the terminal status of a game, if any.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Reason records why a game ended, distinguishing the several ways a Draw
// or decisive result can arise.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	ThreefoldRepetition
	FiftyMoveRule
	InsufficientMaterial
)

// Result bundles the outcome of a game with the reason it occurred.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

func (r Result) String() string {
	switch r.Outcome {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}
