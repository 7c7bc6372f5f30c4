// Package audio prepares uploaded audio for speech recognition. It decodes
// arbitrary container formats to 16 kHz mono PCM and writes normalized WAV
// files with leading silence so recognizers do not clip the first word.
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// SampleRate is the target sample rate for recognition input.
	SampleRate = 16000

	wavHeaderSize = 44
)

// EncodeWAV writes PCM16 mono samples as a WAV file.
func EncodeWAV(w io.Writer, samples []int16, sampleRate int) error {
	dataSize := len(samples) * 2

	var header bytes.Buffer
	header.WriteString("RIFF")
	binary.Write(&header, binary.LittleEndian, uint32(36+dataSize)) //nolint:errcheck
	header.WriteString("WAVE")
	header.WriteString("fmt ")
	binary.Write(&header, binary.LittleEndian, uint32(16))           //nolint:errcheck // fmt chunk size
	binary.Write(&header, binary.LittleEndian, uint16(1))            //nolint:errcheck // PCM
	binary.Write(&header, binary.LittleEndian, uint16(1))            //nolint:errcheck // mono
	binary.Write(&header, binary.LittleEndian, uint32(sampleRate))   //nolint:errcheck
	binary.Write(&header, binary.LittleEndian, uint32(sampleRate*2)) //nolint:errcheck // byte rate
	binary.Write(&header, binary.LittleEndian, uint16(2))            //nolint:errcheck // block align
	binary.Write(&header, binary.LittleEndian, uint16(16))           //nolint:errcheck // bits per sample
	header.WriteString("data")
	binary.Write(&header, binary.LittleEndian, uint32(dataSize)) //nolint:errcheck

	if _, err := w.Write(header.Bytes()); err != nil {
		return fmt.Errorf("write wav header: %w", err)
	}

	buf := make([]byte, dataSize)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write wav data: %w", err)
	}
	return nil
}

// DecodeWAV reads a PCM16 mono WAV stream and returns its samples and sample rate.
func DecodeWAV(r io.Reader) ([]int16, int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read wav: %w", err)
	}
	if len(data) < wavHeaderSize {
		return nil, 0, fmt.Errorf("wav too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, 0, fmt.Errorf("not a wav file")
	}

	// Walk chunks to find fmt and data. Some encoders insert LIST chunks.
	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		pcm           []byte
	)
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8
		if body+chunkSize > len(data) {
			chunkSize = len(data) - body
		}
		switch chunkID {
		case "fmt ":
			if chunkSize < 16 {
				return nil, 0, fmt.Errorf("fmt chunk too short")
			}
			format := binary.LittleEndian.Uint16(data[body : body+2])
			if format != 1 {
				return nil, 0, fmt.Errorf("unsupported wav format %d, only PCM is supported", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+chunkSize]
		}
		offset = body + chunkSize
		if chunkSize%2 == 1 {
			offset++ // chunks are word-aligned
		}
	}

	if sampleRate == 0 || pcm == nil {
		return nil, 0, fmt.Errorf("wav missing fmt or data chunk")
	}
	if bitsPerSample != 16 {
		return nil, 0, fmt.Errorf("unsupported bit depth %d, only 16-bit is supported", bitsPerSample)
	}

	samples := bytesToSamples(pcm)
	if channels == 2 {
		samples = downmixStereo(samples)
	} else if channels != 1 {
		return nil, 0, fmt.Errorf("unsupported channel count %d", channels)
	}
	return samples, sampleRate, nil
}

// bytesToSamples converts little-endian PCM16 bytes to samples.
func bytesToSamples(pcm []byte) []int16 {
	samples := make([]int16, len(pcm)/2)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}
	return samples
}

// downmixStereo averages interleaved stereo samples to mono.
func downmixStereo(samples []int16) []int16 {
	mono := make([]int16, len(samples)/2)
	for i := range mono {
		mono[i] = int16((int32(samples[i*2]) + int32(samples[i*2+1])) / 2)
	}
	return mono
}
