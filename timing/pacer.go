package timing

import (
	"fmt"
	"time"
)

// Pacing selects how often a frame may be presented.
//
// The zero value is Vsync: presentation is throttled by the display and the
// engine draws whenever it is asked to. A positive interval gates drawing at
// the engine level instead.
type Pacing struct {
	interval time.Duration
}

// Vsync returns the pacing that leaves throttling to the presentation engine.
func Vsync() Pacing {
	return Pacing{}
}

// FixedInterval returns the pacing that allows at most one frame per d.
// A non-positive d degrades to Vsync.
func FixedInterval(d time.Duration) Pacing {
	if d <= 0 {
		return Vsync()
	}
	return Pacing{interval: d}
}

// Framerate returns FixedInterval(1s / fps).
// A non-positive fps degrades to Vsync.
func Framerate(fps float64) Pacing {
	if fps <= 0 {
		return Vsync()
	}
	return FixedInterval(time.Duration(float64(time.Second) / fps))
}

// IsVsync reports whether p leaves throttling to the presentation engine.
func (p Pacing) IsVsync() bool {
	return p.interval <= 0
}

// Interval returns the minimum time between frames, or 0 for Vsync.
func (p Pacing) Interval() time.Duration {
	return p.interval
}

// String implements fmt.Stringer.
func (p Pacing) String() string {
	if p.IsVsync() {
		return "vsync"
	}
	return fmt.Sprintf("fixed(%s)", p.interval)
}

// Pacer decides whether a frame may be drawn at a given instant.
//
// The next eligible instant only moves forward, and only after a frame has
// actually been presented. After a stall the pacer allows one frame at the
// first opportunity and schedules the next one a single interval after it;
// missed frames are never caught up.
type Pacer struct {
	pacing Pacing
	next   time.Time
}

// NewPacer creates a pacer for the given pacing. The first frame is always
// eligible.
func NewPacer(p Pacing) *Pacer {
	return &Pacer{pacing: p}
}

// Pacing returns the configured pacing.
func (p *Pacer) Pacing() Pacing {
	return p.pacing
}

// MayDraw reports whether a frame may be drawn at now.
func (p *Pacer) MayDraw(now time.Time) bool {
	if p.pacing.IsVsync() {
		return true
	}
	return !now.Before(p.next)
}

// OnDrawn advances the pacer after a frame was presented at now.
// It is a no-op under Vsync.
func (p *Pacer) OnDrawn(now time.Time) {
	if p.pacing.IsVsync() {
		return
	}
	next := now.Add(p.pacing.interval)
	if next.After(p.next) {
		p.next = next
	}
}

// NextEligible returns the earliest instant at which MayDraw reports true.
// It is the zero time until the first frame is drawn, and always under Vsync.
func (p *Pacer) NextEligible() time.Time {
	return p.next
}
