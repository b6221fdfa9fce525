package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-jungle/dsp/filter/bank"
	"github.com/cwbudde/algo-jungle/dsp/spectrum"
	"github.com/cwbudde/algo-jungle/internal/engine"
	"github.com/cwbudde/algo-jungle/internal/host"
)

// RenderCmd renders a file offline.
type RenderCmd struct {
	Input  string   `arg:"" type:"existingfile" help:"Input WAV file."`
	Output string   `arg:"" type:"path" help:"Output WAV file (16-bit PCM)."`
	Pitch  float64  `help:"Pitch shift in semitones (-12..12)." default:"0" env:"JUNGLE_PITCH"`
	EQ     []string `name:"eq" placeholder:"I=G" help:"Band gain in dB as INDEX=GAIN, repeatable."`
	Report bool     `help:"Print dominant frequency and band levels of input and output."`
}

// Run renders r.Input to r.Output.
func (r *RenderCmd) Run(a *app) error {
	gains, err := parseEQ(r.EQ)
	if err != nil {
		return err
	}

	clip, err := host.LoadWAV(r.Input)
	if err != nil {
		return err
	}

	e := engine.New(host.StaticLocator{Media: clip}, a.opts...)
	defer e.Close()

	e.SetPitch(r.Pitch)

	for i, g := range gains {
		if _, err := e.SetEqBand(i, g); err != nil {
			return err
		}
	}

	out, err := host.Render(a.ctx, e, clip, e.Config().Processing.BlockSize)
	if err != nil {
		return fmt.Errorf("render %s: %w", r.Input, err)
	}

	if err := host.SaveWAV(r.Output, clip.SampleRate(), out); err != nil {
		return err
	}

	a.logger.Printf("rendered %s -> %s (pitch %+g, %d frames)", r.Input, r.Output, e.Pitch(), clip.Frames())

	if !r.Report {
		return nil
	}

	return writeReport(a.stdout, clip.SampleRate(), e.EqGains(), clip.Data()[0], out[0])
}

// parseEQ parses INDEX=GAIN pairs. Later pairs for the same band win.
func parseEQ(pairs []string) (map[int]float64, error) {
	gains := make(map[int]float64, len(pairs))

	for _, p := range pairs {
		idx, gain, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("eq %q: want INDEX=GAIN", p)
		}

		i, err := strconv.Atoi(strings.TrimSpace(idx))
		if err != nil || i < 0 || i >= bank.NumBands {
			return nil, fmt.Errorf("eq %q: band index must be 0..%d", p, bank.NumBands-1)
		}

		g, err := strconv.ParseFloat(strings.TrimSpace(gain), 64)
		if err != nil {
			return nil, fmt.Errorf("eq %q: %w", p, err)
		}

		gains[i] = g
	}

	return gains, nil
}

// writeReport prints the dominant frequency shift and, per band, the
// measured level change next to the response the EQ settings predict.
func writeReport(w io.Writer, sampleRate float64, gains [bank.NumBands]float64, in, out []float64) error {
	eq, err := bank.NewEqualizer(sampleRate)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	for i, g := range gains {
		if _, err := eq.SetBandGain(i, g); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}

	inPeak, err := spectrum.PeakFrequency(in, sampleRate)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	outPeak, err := spectrum.PeakFrequency(out, sampleRate)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	inLevels, err := spectrum.LevelsDB(in, bank.Frequencies[:], sampleRate)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	outLevels, err := spectrum.LevelsDB(out, bank.Frequencies[:], sampleRate)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	printTitle(w, "Render report")

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "dominant\t%.1f Hz\t%.1f Hz\t%+.2f st\t\n", inPeak, outPeak, 12*math.Log2(outPeak/inPeak))
	fmt.Fprintf(tw, "band\tin dB\tout dB\tdelta\teq dB\t\n")

	for i, b := range eq.Bands() {
		expected := math.Inf(-1)
		if b.Frequency < sampleRate/2 {
			expected = eq.MagnitudeDB(b.Frequency)
		}

		fmt.Fprintf(tw, "%g Hz\t%s\t%s\t%s\t%s\t\n", b.Frequency,
			formatDB(inLevels[i]), formatDB(outLevels[i]), formatDB(outLevels[i]-inLevels[i]), formatDB(expected))
	}

	return tw.Flush()
}

func formatDB(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}

	return strconv.FormatFloat(v, 'f', 1, 64)
}
