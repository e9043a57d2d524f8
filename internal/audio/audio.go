package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/shocktheblock/atom/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)
	volume     = 0.2
)

var (
	mu          sync.Mutex
	initialized bool
)

// Init initializes the audio system
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/30)); err != nil {
		return err
	}
	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if initialized {
		speaker.Close()
		initialized = false
	}
}

func enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return initialized
}

// slide is a square wave (retro/8-bit feel) whose pitch moves linearly
// from one frequency to another over the duration.
func slide(from, to float64, duration time.Duration) beep.Streamer {
	total := sampleRate.N(duration)
	remaining := total
	phase := 0.0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if remaining <= 0 {
				return i, i > 0
			}
			progress := float64(total-remaining) / float64(total)
			freq := from + (to-from)*progress

			val := volume
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += freq / float64(sampleRate)
			remaining--
		}
		return len(samples), true
	})
}

// cue is one tone of a sound effect.
type cue struct {
	from, to float64 // Hz
	duration time.Duration
	delay    time.Duration // earliest start, from the beginning of the effect
}

// cuesFor returns the tones for a game event; nil means silent.
func cuesFor(e game.Event) []cue {
	switch e.Type {
	case game.EventLaunch:
		// rising whoosh, higher for harder launches
		top := 300 + 150*float64(e.Tier)
		return []cue{{from: 150, to: top, duration: 120 * time.Millisecond}}
	case game.EventWallBounce:
		return []cue{{from: 440, to: 440, duration: 30 * time.Millisecond}}
	case game.EventBlockHit:
		return []cue{{from: 660, to: 660, duration: 40 * time.Millisecond}}
	case game.EventBlockDestroyed:
		return []cue{{from: 880, to: 880, duration: 50 * time.Millisecond}}
	case game.EventAreaBlast:
		return []cue{
			{from: 1200, to: 200, duration: 250 * time.Millisecond},
			{from: 990, to: 990, duration: 60 * time.Millisecond, delay: 60 * time.Millisecond},
		}
	case game.EventBallLost:
		return []cue{{from: 330, to: 110, duration: 200 * time.Millisecond}}
	case game.EventLevelComplete:
		return []cue{
			{from: 523, to: 523, duration: 90 * time.Millisecond},
			{from: 659, to: 659, duration: 90 * time.Millisecond, delay: 100 * time.Millisecond},
			{from: 784, to: 784, duration: 150 * time.Millisecond, delay: 200 * time.Millisecond},
		}
	case game.EventGameOver:
		return []cue{
			{from: 440, to: 440, duration: 150 * time.Millisecond},
			{from: 330, to: 330, duration: 150 * time.Millisecond, delay: 160 * time.Millisecond},
			{from: 220, to: 110, duration: 300 * time.Millisecond, delay: 320 * time.Millisecond},
		}
	}
	return nil
}

// effect builds the streamer for a list of cues, silences included.
func effect(cues []cue) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(cues)*2)
	at := time.Duration(0)
	for _, c := range cues {
		if gap := c.delay - at; gap > 0 {
			parts = append(parts, beep.Silence(sampleRate.N(gap)))
			at += gap
		}
		parts = append(parts, slide(c.from, c.to, c.duration))
		at += c.duration
	}
	return beep.Seq(parts...)
}

// Play plays the sound for each event. Hits within one frame collapse to a
// single sound per event type.
func Play(events []game.Event) {
	if !enabled() {
		return
	}
	seen := make(map[game.EventType]bool, len(events))
	for _, e := range events {
		if seen[e.Type] {
			continue
		}
		seen[e.Type] = true
		if cues := cuesFor(e); cues != nil {
			speaker.Play(effect(cues))
		}
	}
}
