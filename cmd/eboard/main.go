// eboard is an adaptor for using a DGT EBoard via LiveChess as a UCI engine.
// The adaptor allows use of DGT EBoards in chess programs, such as
// CuteChess, by pretending to be an engine: each "search" simply waits
// for the physical board to report a move matching one of the legal
// candidates from the current position.
package main

import (
	"context"
	"flag"
	"strings"

	"sync/atomic"

	"github.com/herohde/livechess-go/pkg/livechess"
	"github.com/herohde/lunarr/pkg/board"
	"github.com/herohde/lunarr/pkg/board/fen"
	"github.com/herohde/lunarr/pkg/engine"
	"github.com/herohde/lunarr/pkg/engine/uci"
	"github.com/herohde/lunarr/pkg/eval"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

var (
	serial = flag.String("serial", "auto", "Board selection by serial number (default: auto)")
	flip   = flag.Bool("flip", false, "Flip board")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	id := livechess.EBoardSerial(*serial)
	if id == "auto" {
		auto, err := livechess.AutoDetect(ctx, livechess.DefaultClient)
		if err != nil {
			logw.Exitf(ctx, "Watch failed to autodetect board: %v", err)
		}
		id = auto
	}

	client, events, err := livechess.NewFeed(ctx, id)
	if err != nil {
		logw.Exitf(ctx, "Feed for %v failed: %v", id, err)
	}
	if *flip {
		if err := client.Flip(ctx, true); err != nil {
			logw.Exitf(ctx, "Flip board %v failed: %v", id, err)
		}
	}
	if err := client.Setup(ctx, fen.Initial); err != nil {
		logw.Exitf(ctx, "Setup board %v failed: %v", id, err)
	}

	s := newAdaptor(ctx, client, events)

	e := engine.New(ctx, "eboard", "herohde", s, engine.WithOptions(engine.Options{Depth: 1}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// adaptor implements search.Search by polling a physical DGT board for the
// move the opponent actually played, rather than computing one.
type adaptor struct {
	client livechess.FeedClient

	last  atomic.Pointer[livechess.EBoardEventResponse]
	pulse *iox.Pulse
}

func newAdaptor(ctx context.Context, client livechess.FeedClient, events <-chan livechess.EBoardEventResponse) *adaptor {
	ret := &adaptor{
		client: client,
		pulse:  iox.NewPulse(),
	}
	go ret.process(ctx, events)
	return ret
}

func (a *adaptor) Search(ctx context.Context, sctx *search.Context, b *board.Board, depth int) (uint64, int, eval.CP, []board.Move, error) {
	candidates := map[string]board.Move{}
	for _, m := range b.LegalMoves() {
		done := b.Make(m)
		candidates[strings.Split(fen.Encode(b), " ")[0]] = m
		b.Unmake(done)
	}

	if len(candidates) == 0 {
		if b.InCheck(b.SideToMove()) {
			return 1, 0, -eval.Inf, nil, nil
		}
		return 1, 0, eval.Zero, nil, nil
	}

	for {
		if last := a.last.Load(); last != nil {
			if m, ok := candidates[last.Board]; ok {
				return 1, 0, eval.Zero, []board.Move{m}, nil
			}
		}

		select {
		case <-a.pulse.Chan():
			// board state changed: re-check candidates
		case <-ctx.Done():
			return 0, 0, eval.Zero, nil, search.ErrHalted
		}
	}
}

func (a *adaptor) process(ctx context.Context, events <-chan livechess.EBoardEventResponse) {
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}

			if len(event.San) > 0 {
				a.last.Store(&event)
				a.pulse.Emit()
			}

		case <-ctx.Done():
			return
		}
	}
}
