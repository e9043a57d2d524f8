package game

import (
	"context"
	"time"
)

// Loop drives a session at a fixed tick interval. Inputs received between
// ticks are applied in arrival order before the next tick.
type Loop struct {
	Session  *Session
	Interval time.Duration
	Inputs   <-chan Input

	// OnFrame is called after every tick with the new snapshot and the
	// events produced since the previous frame.
	OnFrame func(Snapshot, []Event)
	// OnReject is called for every refused input.
	OnReject func(Input, error)
}

// NewLoop creates a loop running at the given ticks per second.
func NewLoop(s *Session, tickRate int, inputs <-chan Input) *Loop {
	if tickRate <= 0 {
		tickRate = TickRate
	}
	return &Loop{
		Session:  s,
		Interval: time.Second / time.Duration(tickRate),
		Inputs:   inputs,
	}
}

// Run ticks until ctx is cancelled or the input channel is closed.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	inputs := l.Inputs
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				return nil
			}
			l.apply(in)
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick steps the session once and publishes the frame.
func (l *Loop) Tick() {
	l.Session.Step()
	if l.OnFrame != nil {
		l.OnFrame(l.Session.Snapshot(), l.Session.DrainEvents())
	}
}

func (l *Loop) apply(in Input) {
	if err := l.Session.Apply(in); err != nil && l.OnReject != nil {
		l.OnReject(in, err)
	}
}
