package audio

import (
	"bytes"
	"encoding/binary"
	"math"
)

// TargetSampleRate is the rate the transcription API receives, regardless
// of the capture device's native rate.
const TargetSampleRate = 16000

// EncodeWAV packages mono float32 samples as a PCM16 WAV file at
// TargetSampleRate. Samples are scaled to the 16-bit signed range and
// clamped, so out-of-range input never corrupts the output. Zero samples
// still produce a valid 44-byte RIFF/WAVE file.
func EncodeWAV(samples []float32) []byte {
	var buf bytes.Buffer

	const channels = 1
	const bitsPerSample = 16
	const byteRate = TargetSampleRate * channels * bitsPerSample / 8
	const blockAlign = channels * bitsPerSample / 8

	dataSize := len(samples) * 2
	fileSize := 36 + dataSize

	// WAV header
	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(fileSize))
	buf.WriteString("WAVE")

	// fmt chunk
	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))               // fmt chunk size
	binary.Write(&buf, binary.LittleEndian, uint16(1))                // PCM format
	binary.Write(&buf, binary.LittleEndian, uint16(channels))         // number of channels
	binary.Write(&buf, binary.LittleEndian, uint32(TargetSampleRate)) // sample rate
	binary.Write(&buf, binary.LittleEndian, uint32(byteRate))         // byte rate
	binary.Write(&buf, binary.LittleEndian, uint16(blockAlign))       // block align
	binary.Write(&buf, binary.LittleEndian, uint16(bitsPerSample))    // bits per sample

	// data chunk
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for _, s := range samples {
		binary.Write(&buf, binary.LittleEndian, pcm16(s))
	}

	return buf.Bytes()
}

// pcm16 scales a [-1,1] float sample to int16, clamping out-of-range input.
func pcm16(s float32) int16 {
	scaled := float64(s) * math.MaxInt16
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}
