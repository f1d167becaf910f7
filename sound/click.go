package sound

import (
	"encoding/binary"
	"math"
	"time"
)

// ClickLength is how long the synthesized click lasts.
const ClickLength = time.Millisecond * 60

// SynthClick makes the soft tick played when the focus state changes.
// It is a decaying sine that sweeps down from 1800Hz to 900Hz.
func SynthClick(sampleRate int) []byte {
	if sampleRate <= 0 {
		return nil
	}

	frames := int(int64(sampleRate) * int64(ClickLength) / int64(time.Second))
	buf := make([]byte, frames*BytesPerSample)

	const (
		startFreq = 1800
		endFreq   = 900
		decay     = 60 // per second
		amplitude = 0.5
	)

	phase := 0.0

	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		p := float64(i) / float64(frames)

		freq := startFreq + (endFreq-startFreq)*p
		phase += 2 * math.Pi * freq / float64(sampleRate)

		// short linear attack so the click doesn't pop
		attack := min(float64(i)/(float64(sampleRate)*0.002), 1)

		v := math.Sin(phase) * math.Exp(-t*decay) * attack * amplitude
		sample := int16(v * math.MaxInt16)

		for ch := 0; ch < ChannelCount; ch++ {
			binary.LittleEndian.PutUint16(buf[i*BytesPerSample+ch*2:], uint16(sample))
		}
	}

	return buf
}
