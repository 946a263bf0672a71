package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/cwbudde/algo-chromatic/chromatic"
	"github.com/cwbudde/algo-chromatic/tuning"
)

type row struct {
	Offset int     `json:"offset"`
	Name   string  `json:"name"`
	MIDI   int     `json:"midi"`
	Ratio  float32 `json:"ratio"`
	Hz     float32 `json:"hz"`
}

func main() {
	configPath := flag.String("config", "", "Tuning file (.json, .yaml or .yml), optional")
	ref := flag.Float64("ref", 0, "Reference frequency in Hz for A4 (overrides config)")
	low := flag.String("low", "", "Lowest offset to print, as an integer or note name like C3 (overrides config)")
	high := flag.String("high", "", "Highest offset to print, as an integer or note name like C6 (overrides config)")
	direct := flag.Bool("direct", false, "Use x^n without octave folding")
	jsonOut := flag.Bool("json", false, "Print rows as JSON")
	tmpl := flag.String("template", "", "Go text/template for each row, with sprig functions (e.g. '{{.Name}} {{printf \"%.2f\" .Hz}}')")
	flag.Parse()

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
	if *low != "" {
		v, err := parseOffset(*low)
		if err != nil {
			die("Error parsing -low: %v", err)
		}
		cfg.Low = v
	}
	if *high != "" {
		v, err := parseOffset(*high)
		if err != nil {
			die("Error parsing -high: %v", err)
		}
		cfg.High = v
	}
	rows, err := buildRows(cfg, *direct)
	if err != nil {
		die("Error: %v", err)
	}
	switch {
	case *jsonOut:
		err = writeJSON(os.Stdout, rows)
	case *tmpl != "":
		err = writeTemplate(os.Stdout, rows, *tmpl)
	default:
		err = writeText(os.Stdout, rows)
	}
	if err != nil {
		die("Error writing table: %v", err)
	}
}

func buildRows(cfg *tuning.Config, direct bool) ([]row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ratio := chromatic.FrequencyRatio
	if direct {
		ratio = chromatic.DirectRatio
	}
	rows := make([]row, 0, uint64(cfg.High)-uint64(cfg.Low)+1)
	// Stop on High itself so High == math.MaxInt cannot wrap n.
	for n := cfg.Low; ; n++ {
		r := ratio(n)
		rows = append(rows, row{
			Offset: n,
			Name:   chromatic.NoteName(n),
			MIDI:   chromatic.OffsetToMIDI(n),
			Ratio:  r,
			Hz:     cfg.ReferenceHz * r,
		})
		if n == cfg.High {
			break
		}
	}
	return rows, nil
}

// parseOffset accepts a signed integer or a note name.
func parseOffset(raw string) (int, error) {
	v := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	return chromatic.ParseNote(v)
}

func writeText(w io.Writer, rows []row) error {
	if _, err := fmt.Fprintf(w, "%7s  %-5s  %4s  %12s  %12s\n", "offset", "note", "midi", "ratio", "hz"); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%7d  %-5s  %4d  %12.6f  %12.4f\n", r.Offset, r.Name, r.MIDI, r.Ratio, r.Hz); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, rows []row) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func writeTemplate(w io.Writer, rows []row, text string) error {
	t, err := template.New("row").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}
	for _, r := range rows {
		if err := t.Execute(w, r); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
