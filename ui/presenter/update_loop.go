package presenter

import "time"

// Loop drives periodic presenter updates on the UI context.
//
// It ticks the mirror presenter and invokes a scheduler callback that arranges
// the next tick. The zero value is usable (methods are nil-safe).
type Loop struct {
	Mirror   *MirrorPresenter
	Schedule func()
}

func NewLoop(mirror *MirrorPresenter, schedule func()) *Loop {
	return &Loop{Mirror: mirror, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Mirror != nil {
		l.Mirror.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
