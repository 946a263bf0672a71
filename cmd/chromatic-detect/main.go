package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/algo-chromatic/analysis"
	"github.com/cwbudde/algo-chromatic/internal/wavio"
	"github.com/cwbudde/algo-chromatic/tuning"
)

func main() {
	input := flag.String("input", "", "Input WAV path")
	configPath := flag.String("config", "", "Tuning file (.json, .yaml or .yml), optional")
	ref := flag.Float64("ref", 0, "Reference frequency in Hz for A4 (overrides config)")
	jsonOut := flag.Bool("json", false, "Print detection as JSON")
	writeMono := flag.String("write-mono", "", "Optional path to write the mono downmix that was analysed")
	flag.Parse()

	if *input == "" {
		die("input must not be empty")
	}

	cfg := tuning.Default()
	if *configPath != "" {
		var err error
		cfg, err = tuning.LoadFile(*configPath)
		if err != nil {
			die("Error loading tuning %q: %v", *configPath, err)
		}
	}
	if *ref != 0 {
		cfg.ReferenceHz = float32(*ref)
	}
	if err := cfg.Validate(); err != nil {
		die("Error: %v", err)
	}

	d, err := detectFile(*input, float64(cfg.ReferenceHz), *writeMono)
	if err != nil {
		die("Error analysing %q: %v", *input, err)
	}
	if err := report(os.Stdout, d, *jsonOut); err != nil {
		die("Error writing result: %v", err)
	}
}

// detectFile analyses path and, when monoPath is set, also writes the
// downmixed signal there.
func detectFile(path string, referenceHz float64, monoPath string) (analysis.Detection, error) {
	samples, sampleRate, err := wavio.ReadMono(path)
	if err != nil {
		return analysis.Detection{}, err
	}
	if monoPath != "" {
		if err := wavio.WriteMono64(monoPath, samples, sampleRate); err != nil {
			return analysis.Detection{}, fmt.Errorf("write mono downmix: %w", err)
		}
	}
	return analysis.Detect(samples, sampleRate, referenceHz)
}

func report(w io.Writer, d analysis.Detection, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	}
	_, err := fmt.Fprintf(w, "%s (offset %+d): peak %.3f Hz, note %.3f Hz, %+.1f cents\n",
		d.Name, d.Offset, d.PeakHz, d.NoteHz, d.Cents)
	return err
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
