package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
)

const (
	boomDuration   = 450 * time.Millisecond
	pointsDuration = 180 * time.Millisecond
)

// tone is a decaying oscillator; noise mixes white noise into the sine.
type tone struct {
	rate     beep.SampleRate
	freq     float64
	decay    float64
	noise    float64
	length   int
	position int
	seed     uint32
}

func newTone(rate beep.SampleRate, freq, decay, noise float64, duration time.Duration) *tone {
	return &tone{
		rate:   rate,
		freq:   freq,
		decay:  decay,
		noise:  noise,
		length: rate.N(duration),
		seed:   0x2545f491,
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		at := float64(t.position) / float64(t.rate)
		envelope := math.Exp(-at * t.decay)

		t.seed ^= t.seed << 13
		t.seed ^= t.seed >> 17
		t.seed ^= t.seed << 5
		white := float64(t.seed)/float64(math.MaxUint32)*2 - 1

		v := envelope * ((1-t.noise)*math.Sin(2*math.Pi*t.freq*at) + t.noise*white)
		samples[i][0] = v
		samples[i][1] = v
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

func volume(s beep.Streamer, v float64) beep.Streamer {
	if v <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(v)}
}

// Sound synthesises the streamer for cue. Unknown cues yield nil.
func Sound(cue behaviour.Cue, rate beep.SampleRate) beep.Streamer {
	switch cue {
	case behaviour.CueBoom:
		return beep.Mix(
			volume(newTone(rate, 70, 6, 0.6, boomDuration), 0.5),
			volume(newTone(rate, 140, 10, 0, boomDuration), 0.2),
		)
	case behaviour.CuePoints:
		return beep.Mix(
			volume(newTone(rate, 880, 12, 0, pointsDuration), 0.35),
			volume(newTone(rate, 1760, 18, 0, pointsDuration), 0.15),
		)
	default:
		return nil
	}
}
