package visualizer

import "time"

// FrameID identifies a requested frame callback. The zero value never
// refers to a pending callback.
type FrameID uint64

// Scheduler is the host's "call me on the next display frame" primitive.
type Scheduler interface {
	RequestFrame(fn func(now time.Time)) FrameID
	CancelFrame(id FrameID)
}

type pendingFrame struct {
	id FrameID
	fn func(now time.Time)
}

// TickScheduler runs requested callbacks when the host calls Tick. Callbacks
// requested while a tick is running are deferred to the next tick, so a loop
// that re-requests itself runs exactly once per tick.
type TickScheduler struct {
	nextID  FrameID
	pending []pendingFrame
	running []pendingFrame
}

func (s *TickScheduler) RequestFrame(fn func(now time.Time)) FrameID {
	s.nextID++
	s.pending = append(s.pending, pendingFrame{id: s.nextID, fn: fn})
	return s.nextID
}

// CancelFrame drops a callback that has not run yet, including one queued
// behind the callback currently executing in Tick.
func (s *TickScheduler) CancelFrame(id FrameID) {
	if id == 0 {
		return
	}
	for i := range s.pending {
		if s.pending[i].id == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	for i := range s.running {
		if s.running[i].id == id {
			s.running[i].fn = nil
			return
		}
	}
}

// Tick runs every callback that was pending when it was called.
func (s *TickScheduler) Tick(now time.Time) {
	s.running, s.pending = s.pending, s.running[:0]
	for i := 0; i < len(s.running); i++ {
		if fn := s.running[i].fn; fn != nil {
			s.running[i].fn = nil
			fn(now)
		}
	}
	s.running = s.running[:0]
}

// Pending reports how many callbacks wait for the next tick.
func (s *TickScheduler) Pending() int { return len(s.pending) }
