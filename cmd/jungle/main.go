// Command jungle renders or plays audio through the pitch shifter and
// 10-band equalizer.
//
// Usage:
//
//	jungle render [flags] IN OUT
//	jungle play [flags] [FILE]
//
// Examples:
//
//	jungle render --pitch 7 song.wav song-up.wav
//	jungle render --eq 0=6 --eq 9=-4 --report song.wav song-eq.wav
//	jungle play song.wav
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/cwbudde/algo-jungle/internal/engine"
)

// CLI defines the command-line interface.
type CLI struct {
	LogFile   string `help:"Write lifecycle logs to this file instead of stderr." type:"path" env:"JUNGLE_LOG_FILE"`
	Quiet     bool   `short:"q" help:"Discard lifecycle logs."`
	BlockSize int    `help:"Processing block size in frames." default:"128" env:"JUNGLE_BLOCK_SIZE"`

	Render RenderCmd `cmd:"" help:"Render a WAV file through the engine."`
	Play   PlayCmd   `cmd:"" help:"Play a WAV file with an interactive control prompt."`
}

// app carries what every command needs.
type app struct {
	ctx    context.Context
	logger *log.Logger
	opts   []engine.Option
	stdout io.Writer
}

func main() {
	cli := &CLI{}
	kctx := kong.Parse(cli,
		kong.Name("jungle"),
		kong.Description("Real-time pitch shifter and 10-band equalizer"),
		kong.UsageOnError(),
	)

	logger, closeLog, err := openLogger(cli.LogFile, cli.Quiet)
	if err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{
		ctx:    ctx,
		logger: logger,
		opts:   []engine.Option{engine.WithBlockSize(cli.BlockSize), engine.WithLogger(logger)},
		stdout: os.Stdout,
	}

	if err := kctx.Run(a); err != nil {
		printError(os.Stderr, err)
		stop()
		closeLog()
		os.Exit(1)
	}
}

func openLogger(path string, quiet bool) (*log.Logger, func(), error) {
	switch {
	case quiet:
		return log.New(io.Discard, "", 0), func() {}, nil
	case path == "":
		return log.New(os.Stderr, "jungle: ", log.LstdFlags), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return log.New(f, "", log.LstdFlags|log.Lmicroseconds), func() { f.Close() }, nil
}
