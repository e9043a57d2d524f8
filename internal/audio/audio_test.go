package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/shocktheblock/atom/internal/game"
)

func drain(s beep.Streamer) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestSlideLength(t *testing.T) {
	want := sampleRate.N(50 * time.Millisecond)
	if got := drain(slide(880, 880, 50*time.Millisecond)); got != want {
		t.Errorf("samples = %d, want %d", got, want)
	}
}

func TestSlideAmplitude(t *testing.T) {
	buf := make([][2]float64, 64)
	n, _ := slide(440, 440, 10*time.Millisecond).Stream(buf)
	for i := 0; i < n; i++ {
		if v := buf[i][0]; v != volume && v != -volume {
			t.Fatalf("sample %d = %v", i, v)
		}
		if buf[i][0] != buf[i][1] {
			t.Fatalf("channels differ at %d", i)
		}
	}
}

func TestEffectIncludesDelays(t *testing.T) {
	cues := cuesFor(game.Event{Type: game.EventLevelComplete})
	last := cues[len(cues)-1]
	want := sampleRate.N(last.delay + last.duration)
	if got := drain(effect(cues)); got != want {
		t.Errorf("effect samples = %d, want %d", got, want)
	}
}

func TestEveryEventHasASound(t *testing.T) {
	for _, typ := range []game.EventType{
		game.EventLaunch, game.EventWallBounce, game.EventBlockHit, game.EventBlockDestroyed,
		game.EventAreaBlast, game.EventBallLost, game.EventLevelComplete, game.EventGameOver,
	} {
		if cuesFor(game.Event{Type: typ}) == nil {
			t.Errorf("no sound for %s", typ)
		}
	}
	if cuesFor(game.Event{Type: "unknown"}) != nil {
		t.Error("unknown event should be silent")
	}
}

func TestLaunchPitchRisesWithTier(t *testing.T) {
	soft := cuesFor(game.Event{Type: game.EventLaunch, Tier: 1})[0]
	hard := cuesFor(game.Event{Type: game.EventLaunch, Tier: 4})[0]
	if hard.to <= soft.to {
		t.Errorf("tier 4 top %v <= tier 1 top %v", hard.to, soft.to)
	}
}

func TestPlayWithoutInitIsNoop(t *testing.T) {
	Play([]game.Event{{Type: game.EventGameOver}})
}
