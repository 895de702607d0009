package cliconfig

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/introscreen/pkg/log"
)

// Logger returns the CLI logger writing to w at the given level. Terminal
// output uses the zerolog console writer.
func Logger(w io.Writer, level string) log.Logger {
	if f, ok := w.(*os.File); ok && isTerminal(f) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return log.NewZerologAdapterWithLogger(
		zerolog.New(w).Level(log.ParseLevel(level)).With().Timestamp().Logger(),
	)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
