package speech

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"fmt"
)

// SampleRate is the fixed output rate of the speech endpoints.
const SampleRate = 24000

// DecodeBase64PCM decodes the base64-encoded little-endian 16-bit mono PCM
// payload the speech endpoint embeds in its response.
func DecodeBase64PCM(data string) (*Audio, error) {
	pcm, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio payload: %w", err)
	}
	if len(pcm)%2 != 0 {
		// Trailing odd byte cannot form a 16-bit sample.
		pcm = pcm[:len(pcm)-1]
	}
	return &Audio{PCM: pcm, SampleRate: SampleRate, Channels: 1}, nil
}

// WAV wraps raw PCM audio in a RIFF/WAVE container so the caller's
// environment can play it directly.
func WAV(a *Audio) []byte {
	const (
		bitsPerSample = 16
		headerSize    = 44
	)

	channels := a.Channels
	if channels == 0 {
		channels = 1
	}
	rate := a.SampleRate
	if rate == 0 {
		rate = SampleRate
	}

	byteRate := rate * channels * bitsPerSample / 8
	blockAlign := channels * bitsPerSample / 8

	buf := bytes.NewBuffer(make([]byte, 0, headerSize+len(a.PCM)))
	buf.WriteString("RIFF")
	binary.Write(buf, binary.LittleEndian, uint32(36+len(a.PCM)))
	buf.WriteString("WAVE")
	buf.WriteString("fmt ")
	binary.Write(buf, binary.LittleEndian, uint32(16))
	binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM format
	binary.Write(buf, binary.LittleEndian, uint16(channels))
	binary.Write(buf, binary.LittleEndian, uint32(rate))
	binary.Write(buf, binary.LittleEndian, uint32(byteRate))
	binary.Write(buf, binary.LittleEndian, uint16(blockAlign))
	binary.Write(buf, binary.LittleEndian, uint16(bitsPerSample))
	buf.WriteString("data")
	binary.Write(buf, binary.LittleEndian, uint32(len(a.PCM)))
	buf.Write(a.PCM)
	return buf.Bytes()
}
