package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LeadSilence is the duration of silence prepended to normalized audio, in
// samples at the target rate. Half a second keeps recognizers from clipping
// the first word.
const LeadSilence = SampleRate / 2

// Normalizer converts uploaded audio files into recognition-ready WAV files:
// 16 kHz, mono, PCM16, with leading silence.
type Normalizer struct {
	decoder Decoder
}

// NewNormalizer returns a Normalizer using the given decoder for non-WAV input.
func NewNormalizer(decoder Decoder) *Normalizer {
	return &Normalizer{decoder: decoder}
}

// Normalize produces a normalized WAV file next to the input and returns its
// path. The caller owns the returned file and must remove it when done. On
// failure no output file is left behind.
func (n *Normalizer) Normalize(ctx context.Context, path string) (string, error) {
	samples, err := n.decode(ctx, path)
	if err != nil {
		return "", err
	}

	padded := make([]int16, LeadSilence+len(samples))
	copy(padded[LeadSilence:], samples)

	outPath := filepath.Join(filepath.Dir(path),
		fmt.Sprintf("norm_%d_%s.wav", os.Getpid(), filepath.Base(path)))

	f, err := os.Create(outPath) //nolint:gosec // path is derived from our own staging dir
	if err != nil {
		return "", fmt.Errorf("create normalized file: %w", err)
	}
	if err := EncodeWAV(f, padded, SampleRate); err != nil {
		f.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("encode normalized file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(outPath)
		return "", fmt.Errorf("close normalized file: %w", err)
	}
	return outPath, nil
}

// decode reads the input and returns PCM16 mono samples at SampleRate.
// Native 16 kHz mono WAV input skips the ffmpeg round trip.
func (n *Normalizer) decode(ctx context.Context, path string) ([]int16, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is derived from our own staging dir
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	if isRIFF(data) {
		samples, rate, err := DecodeWAV(bytes.NewReader(data))
		if err == nil && rate == SampleRate {
			return samples, nil
		}
		// Wrong rate or exotic WAV variant, let ffmpeg resample.
	}

	if n.decoder == nil {
		return nil, fmt.Errorf("%w: no decoder for non-wav input", ErrDecodeFailed)
	}
	return n.decoder.Decode(ctx, path, SampleRate)
}

func isRIFF(data []byte) bool {
	return len(data) >= 12 && string(data[0:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}
