package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/cwbudde/algo-jungle/internal/engine"
	"github.com/cwbudde/algo-jungle/internal/host"
)

// PlayCmd plays a file live with a control prompt.
type PlayCmd struct {
	File string `arg:"" optional:"" type:"existingfile" help:"WAV file to open on start."`
}

// Run opens the speaker and reads commands until quit or EOF.
func (p *PlayCmd) Run(a *app) error {
	player := host.NewPlayer(nil, 0, a.logger)
	defer player.Close()

	e := engine.New(player, a.opts...)
	defer e.Close()

	player.SetProcessor(e)

	ctx, cancel := context.WithCancel(a.ctx)
	defer cancel()

	go player.Run(ctx, e)

	s := &session{ctx: ctx, engine: e, player: player}
	if p.File != "" {
		out, err := openCommand(s, []string{p.File})
		if err != nil {
			return err
		}

		fmt.Fprintln(a.stdout, out)
	}

	return repl(s, a.stdout)
}

// session is the state shared by the prompt commands.
type session struct {
	ctx    context.Context
	engine *engine.Engine
	player *host.Player
}

var errQuit = errors.New("quit")

type command struct {
	name  string
	usage string
	arity int // -n means at least n arguments
	run   func(*session, []string) (string, error)
}

var commands []command

func init() {
	commands = []command{
		{"open", "open FILE", 1, openCommand},
		{"play", "play", 0, func(s *session, _ []string) (string, error) { return fmtBool(s.engine.Play()), nil }},
		{"pause", "pause", 0, func(s *session, _ []string) (string, error) { return fmtBool(s.engine.Pause()), nil }},
		{"back", "back SECONDS", 1, numberCommand(func(s *session, v float64) float64 { return s.engine.Back(v) })},
		{"seek", "seek SECONDS", 1, numberCommand(func(s *session, v float64) float64 { return s.engine.SetCurrentTime(v) })},
		{"volume", "volume 0..1", 1, numberCommand(func(s *session, v float64) float64 { return s.engine.SetVolume(v) })},
		{"speed", "speed 0.25..5", 1, numberCommand(func(s *session, v float64) float64 { return s.engine.SetSpeed(v) })},
		{"pitch", "pitch -12..12", 1, numberCommand(func(s *session, v float64) float64 { return s.engine.SetPitch(v) })},
		{"eq", "eq BAND GAIN", 2, eqCommand},
		{"reset", "reset", 0, func(s *session, _ []string) (string, error) { return fmt.Sprint(s.engine.ResetEq()), nil }},
		{"loop", "loop on|off|start SECONDS|end SECONDS", -1, loopCommand},
		{"state", "state", 0, stateCommand},
		{"graph", "graph", 0, graphCommand},
		{"help", "help", 0, helpCommand},
		{"quit", "quit", 0, func(*session, []string) (string, error) { return "", errQuit }},
	}
}

func repl(s *session, out io.Writer) error {
	rl, err := readline.New("jungle> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}

		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		result, err := eval(s, line)
		if errors.Is(err, errQuit) {
			return nil
		}

		switch {
		case err != nil:
			printError(out, err)
		case result != "":
			fmt.Fprintln(out, result)
		}
	}
}

func eval(s *session, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	name, args := fields[0], fields[1:]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}

		if cmd.arity < 0 && len(args) < -cmd.arity || cmd.arity >= 0 && len(args) != cmd.arity {
			return "", fmt.Errorf("usage: %s", cmd.usage)
		}

		result, err := cmd.run(s, args)
		if err != nil && !errors.Is(err, errQuit) {
			return "", fmt.Errorf("%s: %w", name, err)
		}

		return result, err
	}

	return "", fmt.Errorf("unknown command: %s (try help)", name)
}

func openCommand(s *session, args []string) (string, error) {
	if err := s.player.Open(args[0]); err != nil {
		return "", err
	}

	if !s.engine.Initialize(s.ctx) {
		return "", errors.New("engine did not attach")
	}

	return fmt.Sprintf("%s %.1fs", keyStyle.Render("ready:"), s.engine.TimeUpdate().Duration), nil
}

func numberCommand(set func(*session, float64) float64) func(*session, []string) (string, error) {
	return func(s *session, args []string) (string, error) {
		v, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return "", err
		}

		return fmtNumber(set(s, v)), nil
	}
}

func eqCommand(s *session, args []string) (string, error) {
	band, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}

	gain, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return "", err
	}

	g, err := s.engine.SetEqBand(band, gain)
	if err != nil {
		return "", err
	}

	return fmtNumber(g), nil
}

func loopCommand(s *session, args []string) (string, error) {
	switch args[0] {
	case "on", "off":
		return fmtBool(s.engine.SetLoopEnabled(args[0] == "on")), nil
	case "start", "end":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: loop %s SECONDS", args[0])
		}

		t, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return "", err
		}

		if args[0] == "start" {
			return fmtNumber(s.engine.SetLoopStart(t)), nil
		}

		return fmtNumber(s.engine.SetLoopEnd(t)), nil
	default:
		return "", fmt.Errorf("unknown loop action %q", args[0])
	}
}

func stateCommand(s *session, _ []string) (string, error) {
	data, err := json.MarshalIndent(s.engine.Snapshot(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func graphCommand(s *session, _ []string) (string, error) {
	data, err := json.MarshalIndent(s.engine.Graph(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(data), nil
}

func helpCommand(*session, []string) (string, error) {
	var b strings.Builder
	for _, cmd := range commands {
		fmt.Fprintf(&b, "  %s\n", cmd.usage)
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func fmtNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func fmtBool(v bool) string {
	return strconv.FormatBool(v)
}
