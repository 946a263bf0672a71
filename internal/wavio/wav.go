// Package wavio reads and writes the mono WAV files used for pitch analysis.
package wavio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cwbudde/wav"
	"github.com/go-audio/audio"
)

// ReadMono decodes path and downmixes every channel to a single track.
func ReadMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("invalid wav file: %s", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if buf == nil || buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("invalid wav buffer: %s", path)
	}
	sampleRate := buf.Format.SampleRate
	if sampleRate <= 0 {
		return nil, 0, fmt.Errorf("invalid wav sample-rate: %d", sampleRate)
	}

	numCh := buf.Format.NumChannels
	frames := len(buf.Data) / numCh
	if frames == 0 {
		return nil, 0, fmt.Errorf("empty wav data: %s", path)
	}
	mono := make([]float64, frames)
	gain := 1.0 / float64(numCh)
	for i := range mono {
		frame := buf.Data[i*numCh : (i+1)*numCh]
		var sum float64
		for _, v := range frame {
			sum += float64(v)
		}
		mono[i] = sum * gain
	}
	return mono, sampleRate, nil
}

// WriteMono writes samples as 16-bit PCM, creating parent directories as
// needed. Samples outside [-1,1] are clipped.
func WriteMono(path string, samples []float32, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample-rate: %d", sampleRate)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	clipped := make([]float32, len(samples))
	for i, v := range samples {
		switch {
		case v > 1:
			v = 1
		case v < -1:
			v = -1
		}
		clipped[i] = v
	}

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)
	err = enc.Write(&audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           clipped,
		SourceBitDepth: 16,
	})
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	return err
}

// WriteMono64 is WriteMono for float64 samples such as those ReadMono returns.
func WriteMono64(path string, samples []float64, sampleRate int) error {
	out := make([]float32, len(samples))
	for i, v := range samples {
		out[i] = float32(v)
	}
	return WriteMono(path, out, sampleRate)
}
