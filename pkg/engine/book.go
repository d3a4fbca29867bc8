package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/eval"
)

// Book represents an opening book.
type Book interface {
	// Find returns a list -- potentially empty -- of moves given a position. Once an empty
	// list is returned, the book should not be consulted again for the game.
	Find(ctx context.Context, fen string) ([]board.Move, error)
}

// Line represents an opening line: e2e4 d7d5.
type Line []string

func (l Line) String() string {
	return strings.Join(l, " ")
}

// NoBook is an empty opening book.
var NoBook = &book{moves: map[string][]board.Move{}}

// NewBook creates an opening book from a set of opening lines, keyed by the
// position (ignoring halfmove/fullmove counters) each line move is played
// from.
func NewBook(lines []Line) (Book, error) {
	zt := board.NewZobristTable(0)
	m := map[string]map[board.Move]bool{}

	for _, line := range lines {
		key := fen.Initial
		for _, str := range line {
			next, err := board.ParseMove(str)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			b, err := fen.Decode(zt, key)
			if err != nil {
				return nil, fmt.Errorf("invalid line '%v': %v", line, err)
			}

			found := false
			for _, candidate := range b.LegalMoves() {
				if !candidate.Equals(next) {
					continue
				}
				found = true

				k := fenKey(key)
				if m[k] == nil {
					m[k] = map[board.Move]bool{}
				}
				m[k][candidate] = true

				b.Make(candidate)
				key = fen.Encode(b)
				break
			}

			if !found {
				return nil, fmt.Errorf("invalid line '%v': move %v not found", line, next)
			}
		}
	}

	dedup := map[string][]board.Move{}
	for k, v := range m {
		var list []board.Move
		for move := range v {
			list = append(list, move)
		}
		sortByNominalGain(list)
		dedup[k] = list
	}
	return &book{moves: dedup}, nil
}

// sortByNominalGain orders book candidates by MVV-LVA-style nominal capture
// gain, highest first, breaking ties by algebraic notation for a
// deterministic order independent of map iteration.
func sortByNominalGain(moves []board.Move) {
	sort.Slice(moves, func(i, j int) bool {
		gi, gj := eval.NominalValueGain(moves[i]), eval.NominalValueGain(moves[j])
		if gi != gj {
			return gi > gj
		}
		return moves[i].String() < moves[j].String()
	})
}

type book struct {
	moves map[string][]board.Move // cropped fen -> []move
}

func (b *book) Find(ctx context.Context, fen string) ([]board.Move, error) {
	return b.moves[fenKey(fen)], nil
}

func fenKey(pos string) string {
	parts := strings.Split(pos, " ")
	return strings.Join(parts[:4], " ")
}
