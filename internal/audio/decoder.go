package audio

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/skillsenselab/audioscribe/internal/process"
)

// ErrDecodeFailed signals that the input could not be decoded as audio.
// Callers treat it as a bad upload rather than a system fault.
var ErrDecodeFailed = errors.New("audio: decode failed")

// Decoder converts an audio file on disk to PCM16 mono samples at the
// requested sample rate.
type Decoder interface {
	Decode(ctx context.Context, path string, sampleRate int) ([]int16, error)
}

// FFmpegDecoder decodes any container/codec ffmpeg understands by piping raw
// PCM out of a subprocess.
type FFmpegDecoder struct {
	// Binary is the ffmpeg executable. Defaults to "ffmpeg".
	Binary string
	// Timeout bounds a single decode. Defaults to 60 seconds.
	Timeout time.Duration
}

// Decode runs ffmpeg to produce s16le mono PCM at the given sample rate.
func (d *FFmpegDecoder) Decode(ctx context.Context, path string, sampleRate int) ([]int16, error) {
	binary := d.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := process.Run(ctx, process.Command{
		Binary: binary,
		Args: []string{
			"-hide_banner", "-loglevel", "error",
			"-i", path,
			"-f", "s16le",
			"-acodec", "pcm_s16le",
			"-ac", "1",
			"-ar", fmt.Sprintf("%d", sampleRate),
			"-",
		},
	})
	if err != nil {
		detail := ""
		if result != nil && len(result.Stderr) > 0 {
			detail = ": " + string(result.Stderr)
		}
		return nil, fmt.Errorf("%w: ffmpeg%s", ErrDecodeFailed, detail)
	}
	if len(result.Stdout) == 0 {
		return nil, fmt.Errorf("%w: no audio stream", ErrDecodeFailed)
	}
	return bytesToSamples(result.Stdout), nil
}
