package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/herohde/lunarr/pkg/engine"
	"github.com/herohde/lunarr/pkg/engine/console"
	"github.com/herohde/lunarr/pkg/engine/uci"
	"github.com/herohde/lunarr/pkg/search"
	"github.com/seekerror/logw"
)

var (
	hash  = flag.Uint("hash", 64, "Transposition table size in MB (zero disables it)")
	depth = flag.Uint("depth", 0, "Search depth limit (zero for no limit)")
	noise = flag.Uint("noise", 0, "Evaluation noise in millipawns (zero if deterministic)")
	book  = flag.String("book", "", "Opening book file, one line per game: e2e4 e7e5 g1f3 ...")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: lunarr [options]

LUNARR is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	s := search.NewNegamax()
	e := engine.New(ctx, "lunarr", "herohde", s, engine.WithOptions(engine.Options{
		Depth: *depth,
		Hash:  *hash,
		Noise: *noise,
	}))

	var uciOpts []uci.Option
	if *book != "" {
		lines, err := loadBook(*book)
		if err != nil {
			logw.Exitf(ctx, "Invalid book '%v': %v", *book, err)
		}
		b, err := engine.NewBook(lines)
		if err != nil {
			logw.Exitf(ctx, "Invalid book '%v': %v", *book, err)
		}
		uciOpts = append(uciOpts, uci.UseBook(b, time.Now().UnixNano()))
	}

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		// Use UCI protocol.

		driver, out := uci.NewDriver(ctx, e, in, uciOpts...)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// loadBook reads an opening book file, one line per game, each line a
// space-separated list of moves in long algebraic notation from the
// starting position.
func loadBook(path string) ([]engine.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []engine.Line
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := scanner.Text()
		if text == "" {
			continue
		}

		moves := engine.Line(strings.Fields(text))
		if len(moves) > 0 {
			lines = append(lines, moves)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
