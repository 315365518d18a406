package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/zeusync/sceneedit/internal/core/behaviour"
	"github.com/zeusync/sceneedit/internal/core/observability/log"
)

const sampleRate = beep.SampleRate(44100)

var _ behaviour.CuePlayer = (*Player)(nil)

// Player plays behaviour cues through the system speaker.
type Player struct {
	mx     sync.Mutex
	mixer  *beep.Mixer
	closed bool
	logger log.Log
}

// New opens the speaker. When audio is disabled or the speaker cannot be
// opened it returns a silent player instead.
func New(enabled bool, logger log.Log) (behaviour.CuePlayer, func()) {
	if !enabled {
		return behaviour.Silent, func() {}
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		logger.Warn("audio unavailable, cues are silent", log.Error(err))
		return behaviour.Silent, func() {}
	}

	p := &Player{mixer: &beep.Mixer{}, logger: logger.Named("audio")}
	speaker.Play(p.mixer)
	return p, p.Close
}

func (p *Player) Play(cue behaviour.Cue) {
	s := Sound(cue, sampleRate)
	if s == nil {
		p.logger.Debug("no sound for cue", log.String("cue", string(cue)))
		return
	}

	p.mx.Lock()
	defer p.mx.Unlock()
	if p.closed {
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences every playing cue.
func (p *Player) Close() {
	p.mx.Lock()
	defer p.mx.Unlock()
	if p.closed {
		return
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
}
