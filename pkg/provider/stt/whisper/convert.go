package whisper

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// decodeWAV parses a RIFF/WAV container holding 16-bit signed little-endian
// PCM and returns the raw sample data together with the declared sample rate
// and channel count. Chunks other than "fmt " and "data" (e.g. "LIST") are
// skipped.
func decodeWAV(data []byte) (pcm []byte, sampleRate, channels int, err error) {
	if len(data) < 12 {
		return nil, 0, 0, fmt.Errorf("wav: file too short (%d bytes)", len(data))
	}
	if !bytes.Equal(data[0:4], []byte("RIFF")) || !bytes.Equal(data[8:12], []byte("WAVE")) {
		return nil, 0, 0, fmt.Errorf("wav: missing RIFF/WAVE header")
	}

	var (
		haveFmt       bool
		audioFormat   uint16
		bitsPerSample uint16
	)

	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			return nil, 0, 0, fmt.Errorf("wav: chunk %q overruns file", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, 0, 0, fmt.Errorf("wav: fmt chunk too short (%d bytes)", size)
			}
			audioFormat = binary.LittleEndian.Uint16(data[body : body+2])
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = binary.LittleEndian.Uint16(data[body+14 : body+16])
			haveFmt = true
		case "data":
			if !haveFmt {
				return nil, 0, 0, fmt.Errorf("wav: data chunk before fmt chunk")
			}
			if audioFormat != 1 {
				return nil, 0, 0, fmt.Errorf("wav: unsupported audio format %d (want PCM)", audioFormat)
			}
			if bitsPerSample != 16 {
				return nil, 0, 0, fmt.Errorf("wav: unsupported bit depth %d (want 16)", bitsPerSample)
			}
			if channels < 1 {
				return nil, 0, 0, fmt.Errorf("wav: invalid channel count %d", channels)
			}
			return data[body : body+size], sampleRate, channels, nil
		}

		// Chunks are word-aligned; odd sizes carry a pad byte.
		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	return nil, 0, 0, fmt.Errorf("wav: no data chunk found")
}

// pcmToFloat32Mono converts 16-bit signed little-endian PCM to mono float32
// samples normalised to [-1.0, 1.0], averaging all channels per frame.
// Any trailing partial frame is ignored.
func pcmToFloat32Mono(pcm []byte, channels int) []float32 {
	if channels < 1 {
		channels = 1
	}
	frames := len(pcm) / (2 * channels)
	mono := make([]float32, frames)
	for i := range frames {
		var sum float32
		for ch := range channels {
			idx := (i*channels + ch) * 2
			sample := int16(binary.LittleEndian.Uint16(pcm[idx : idx+2]))
			sum += float32(sample) / 32768.0
		}
		mono[i] = sum / float32(channels)
	}
	return mono
}

// resampleMono converts mono samples from srcRate to dstRate using linear
// interpolation. Good enough for speech; whisper is tolerant of the minor
// aliasing this introduces.
func resampleMono(samples []float32, srcRate, dstRate int) []float32 {
	if srcRate == dstRate || len(samples) == 0 {
		return samples
	}
	ratio := float64(srcRate) / float64(dstRate)
	outLen := int(float64(len(samples)) / ratio)
	out := make([]float32, outLen)
	for i := range outLen {
		pos := float64(i) * ratio
		j := int(pos)
		frac := float32(pos - float64(j))
		if j+1 < len(samples) {
			out[i] = samples[j]*(1-frac) + samples[j+1]*frac
		} else {
			out[i] = samples[j]
		}
	}
	return out
}
