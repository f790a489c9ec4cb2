package timing

import (
	"testing"
	"time"
)

func TestPacingConstructors(t *testing.T) {
	tests := []struct {
		name      string
		p         Pacing
		wantVsync bool
		want      time.Duration
	}{
		{"vsync", Vsync(), true, 0},
		{"zero value", Pacing{}, true, 0},
		{"fixed", FixedInterval(10 * time.Millisecond), false, 10 * time.Millisecond},
		{"fixed zero", FixedInterval(0), true, 0},
		{"fixed negative", FixedInterval(-time.Second), true, 0},
		{"framerate 50", Framerate(50), false, 20 * time.Millisecond},
		{"framerate zero", Framerate(0), true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsVsync(); got != tt.wantVsync {
				t.Errorf("IsVsync() = %v, want %v", got, tt.wantVsync)
			}
			if got := tt.p.Interval(); got != tt.want {
				t.Errorf("Interval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPacingString(t *testing.T) {
	if got := Vsync().String(); got != "vsync" {
		t.Errorf("Vsync().String() = %q", got)
	}
	if got := FixedInterval(time.Second).String(); got != "fixed(1s)" {
		t.Errorf("FixedInterval(1s).String() = %q", got)
	}
}

func TestPacerVsyncAlwaysDraws(t *testing.T) {
	p := NewPacer(Vsync())
	for _, d := range []time.Duration{0, time.Nanosecond, time.Millisecond, time.Hour} {
		now := epoch.Add(d)
		if !p.MayDraw(now) {
			t.Errorf("MayDraw(+%v) = false under vsync", d)
		}
		p.OnDrawn(now)
	}
	if !p.NextEligible().IsZero() {
		t.Errorf("NextEligible() = %v under vsync, want zero", p.NextEligible())
	}
}

func TestPacerFirstFrameEligible(t *testing.T) {
	p := NewPacer(FixedInterval(time.Second))
	if !p.MayDraw(epoch) {
		t.Error("first frame should be eligible")
	}
}

func TestPacerFixedInterval(t *testing.T) {
	const d = 16 * time.Millisecond
	p := NewPacer(FixedInterval(d))
	p.OnDrawn(epoch)

	for _, off := range []time.Duration{0, time.Millisecond, d - time.Nanosecond} {
		if p.MayDraw(epoch.Add(off)) {
			t.Errorf("MayDraw(t0+%v) = true, want false", off)
		}
	}
	for _, off := range []time.Duration{d, d + time.Nanosecond, 10 * d} {
		if !p.MayDraw(epoch.Add(off)) {
			t.Errorf("MayDraw(t0+%v) = false, want true", off)
		}
	}
	if want := epoch.Add(d); !p.NextEligible().Equal(want) {
		t.Errorf("NextEligible() = %v, want %v", p.NextEligible(), want)
	}
}

func TestPacerNoCatchUpAfterStall(t *testing.T) {
	const d = 10 * time.Millisecond
	p := NewPacer(FixedInterval(d))
	p.OnDrawn(epoch)

	late := epoch.Add(time.Second)
	if !p.MayDraw(late) {
		t.Fatal("MayDraw after stall = false")
	}
	p.OnDrawn(late)
	if p.MayDraw(late.Add(d - time.Nanosecond)) {
		t.Error("pacer allowed a catch-up frame after a stall")
	}
	if want := late.Add(d); !p.NextEligible().Equal(want) {
		t.Errorf("NextEligible() = %v, want %v", p.NextEligible(), want)
	}
}

func TestPacerMonotonic(t *testing.T) {
	const d = 10 * time.Millisecond
	p := NewPacer(FixedInterval(d))
	p.OnDrawn(epoch.Add(time.Second))
	before := p.NextEligible()

	p.OnDrawn(epoch)
	if p.NextEligible().Before(before) {
		t.Errorf("NextEligible moved backwards: %v -> %v", before, p.NextEligible())
	}
}

func TestPacerPacing(t *testing.T) {
	want := Framerate(60)
	if got := NewPacer(want).Pacing(); got != want {
		t.Errorf("Pacing() = %v, want %v", got, want)
	}
}
