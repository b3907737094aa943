package audio

// Resample converts samples from fromRate to toRate using linear
// interpolation. Interpolation error is inaudible for speech-to-text
// input, which is all this is used for.
//
// An empty input or equal rates return the input unchanged. The output
// length is always within one sample of len(samples)*toRate/fromRate.
func Resample(samples []float32, fromRate, toRate int) []float32 {
	if len(samples) == 0 || fromRate == toRate {
		return samples
	}

	ratio := float64(fromRate) / float64(toRate)
	outLen := int(float64(len(samples)) / ratio)
	out := make([]float32, 0, outLen)

	for i := 0; i < outLen; i++ {
		pos := float64(i) * ratio
		base := int(pos)
		frac := pos - float64(base)

		var s float32
		if base+1 < len(samples) {
			s = samples[base]*float32(1-frac) + samples[base+1]*float32(frac)
		} else {
			s = samples[min(base, len(samples)-1)]
		}
		out = append(out, s)
	}

	return out
}
