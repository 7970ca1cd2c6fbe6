package effect

import (
	"errors"
	"math"
	"testing"

	"github.com/user/storyshow/pkg/storyerr"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestFloatAnimation_Offset(t *testing.T) {
	f := DefaultFloatAnimation()

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{math.Pi / 6, -10},
		{math.Pi / 2, 10},
	}

	for _, tt := range tests {
		if got := f.Offset(tt.t); !almostEqual(got, tt.want) {
			t.Errorf("Offset(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	s := f.Transform(NewState(100, 200, 50, 50), math.Pi/6, Clip{})
	if !almostEqual(s.Y, 190) || s.X != 100 {
		t.Errorf("expected vertical bob only, got (%v, %v)", s.X, s.Y)
	}

	fx, err := NewFloatAnimation(AxisX, 5)
	if err != nil {
		t.Fatalf("NewFloatAnimation failed: %v", err)
	}
	s = fx.Transform(NewState(100, 200, 50, 50), math.Pi/6, Clip{})
	if !almostEqual(s.X, 95) || s.Y != 200 {
		t.Errorf("expected horizontal bob only, got (%v, %v)", s.X, s.Y)
	}
}

func TestSwing_Periodicity(t *testing.T) {
	tests := []struct {
		name         string
		start, end   float64
		period       float64
	}{
		{"symmetric", -5, 5, 1},
		{"offset", 10, 40, 2.5},
		{"reversed", 30, -30, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sw, err := NewSwing(tt.start, tt.end, tt.period)
			if err != nil {
				t.Fatalf("NewSwing failed: %v", err)
			}

			mid := (tt.start + tt.end) / 2
			if got := sw.Angle(0); !almostEqual(got, mid) {
				t.Errorf("Angle(0) = %v, want %v", got, mid)
			}

			for _, ts := range []float64{0.1, 0.33, 0.5, 1.25, 3.9} {
				a, b := sw.Angle(ts), sw.Angle(ts+tt.period)
				if !almostEqual(a, b) {
					t.Errorf("Angle(%v) = %v but Angle(t+T) = %v", ts, a, b)
				}
			}

			amp := math.Abs(tt.end-tt.start) / 2
			if got := sw.Angle(tt.period / 4); !almostEqual(got, mid+amp) {
				t.Errorf("Angle(T/4) = %v, want %v", got, mid+amp)
			}
		})
	}
}

func TestSwing_Radians(t *testing.T) {
	sw, err := NewSwing(0, math.Pi, 4, WithUnit("rad"))
	if err != nil {
		t.Fatalf("NewSwing failed: %v", err)
	}
	if got := sw.Degrees(0); !almostEqual(got, 90) {
		t.Errorf("Degrees(0) = %v, want 90", got)
	}
}

func TestSwing_Validation(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		opts   []SwingOption
	}{
		{"zero period", 0, nil},
		{"negative period", -1, nil},
		{"bad unit", 1, []SwingOption{WithUnit("grad")}},
		{"bad filter", 1, []SwingOption{WithFilter("lanczos")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSwing(0, 10, tt.period, tt.opts...)
			if !errors.Is(err, storyerr.ErrConfig) {
				t.Errorf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestSwing_TransformSetsPivotAndFilter(t *testing.T) {
	sw, err := NewSwing(0, 20, 1, WithCenter(5, 40), WithFilter("nearest"))
	if err != nil {
		t.Fatalf("NewSwing failed: %v", err)
	}

	s := sw.Transform(NewState(0, 0, 10, 40), 0, Clip{})
	if !almostEqual(s.Angle, 10) {
		t.Errorf("expected angle 10, got %v", s.Angle)
	}
	if s.Pivot == nil || s.Pivot.X != 5 || s.Pivot.Y != 40 {
		t.Errorf("expected pivot (5, 40), got %+v", s.Pivot)
	}
	if s.Resample != Nearest {
		t.Errorf("expected nearest resample, got %v", s.Resample)
	}
}

func TestSquishBounce_BottomLeftAnchored(t *testing.T) {
	sb := DefaultSquishBounce()
	base := NewState(300, 400, 120, 80)
	bottom := base.Y + base.H

	for _, ts := range []float64{0, 0.05, 0.125, 0.3, 0.71, 1.9} {
		s := sb.Transform(base, ts, Clip{})

		if s.X != base.X {
			t.Errorf("t=%v: left edge moved from %v to %v", ts, base.X, s.X)
		}
		if !almostEqual(s.Y+s.H, bottom) {
			t.Errorf("t=%v: bottom edge moved from %v to %v", ts, bottom, s.Y+s.H)
		}

		dw, dh := sb.Delta(ts)
		if !almostEqual(s.W, base.W+dw) || !almostEqual(s.H, base.H+dh) {
			t.Errorf("t=%v: size = %vx%v, want %vx%v", ts, s.W, s.H, base.W+dw, base.H+dh)
		}
	}
}

func TestSquishBounce_Validation(t *testing.T) {
	if _, err := NewSquishBounce(0, 10); !errors.Is(err, storyerr.ErrConfig) {
		t.Errorf("expected configuration error for zero frequency, got %v", err)
	}
}

func TestUniformMotion_Endpoints(t *testing.T) {
	m := NewUniformMotion(Point{X: -960, Y: 0}, Point{X: 960, Y: 100})
	clip := Clip{Duration: 2}
	base := NewState(0, 0, 1920, 1080)

	start, err := Chain{m}.Apply(base, 0, clip)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !almostEqual(start.X, -960) || !almostEqual(start.Y, 0) {
		t.Errorf("pos(0) = (%v, %v), want (-960, 0)", start.X, start.Y)
	}

	mid, _ := Chain{m}.Apply(base, 1, clip)
	if !almostEqual(mid.X, 0) || !almostEqual(mid.Y, 50) {
		t.Errorf("pos(D/2) = (%v, %v), want (0, 50)", mid.X, mid.Y)
	}

	end, _ := Chain{m}.Apply(base, 2, clip)
	if !almostEqual(end.X, 960) || !almostEqual(end.Y, 100) {
		t.Errorf("pos(D) = (%v, %v), want (960, 100)", end.X, end.Y)
	}
}

func TestUniformMotion_AfterResizeKeepsCenterOnPath(t *testing.T) {
	resize, err := NewResize(200, 100)
	if err != nil {
		t.Fatalf("NewResize failed: %v", err)
	}
	m := NewUniformMotion(Point{X: 0, Y: 0}, Point{X: 100, Y: 0})
	clip := Clip{Duration: 1}

	s, err := Chain{resize, m}.Apply(NewState(0, 0, 100, 50), 0, clip)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// The unresized element centered at (50, 25) must stay centered there.
	if cx, cy := s.X+s.W/2, s.Y+s.H/2; !almostEqual(cx, 50) || !almostEqual(cy, 25) {
		t.Errorf("center drifted to (%v, %v)", cx, cy)
	}
}

func TestUniformScale_Factor(t *testing.T) {
	us, err := NewUniformScale(0.5, 1.0, 2.0)
	if err != nil {
		t.Fatalf("NewUniformScale failed: %v", err)
	}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0.5},
		{1.0, 0.75},
		{2.0, 1.0},
		{3.0, 1.0},
	}
	for _, tt := range tests {
		if got := us.Factor(tt.t, Clip{}); !almostEqual(got, tt.want) {
			t.Errorf("Factor(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}

	if us.NeedsDuration() {
		t.Error("explicit duration should not need the clip duration")
	}
}

func TestUniformScale_ClipDuration(t *testing.T) {
	us, err := NewUniformScale(1, 2, 0)
	if err != nil {
		t.Fatalf("NewUniformScale failed: %v", err)
	}
	if !us.NeedsDuration() {
		t.Fatal("expected clip duration to be required")
	}

	if got := us.Factor(2, Clip{Duration: 4}); !almostEqual(got, 1.5) {
		t.Errorf("Factor(2) = %v, want 1.5", got)
	}

	s, err := Chain{us}.Apply(NewState(0, 0, 100, 100), 4, Clip{Duration: 4})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !almostEqual(s.W, 200) || !almostEqual(s.X, -50) {
		t.Errorf("expected 200px wide centered scale, got w=%v x=%v", s.W, s.X)
	}
}

func TestUniformScale_Validation(t *testing.T) {
	for _, args := range [][3]float64{{0, 1, 1}, {1, -1, 1}, {1, 1, -1}} {
		if _, err := NewUniformScale(args[0], args[1], args[2]); !errors.Is(err, storyerr.ErrConfig) {
			t.Errorf("NewUniformScale%v: expected configuration error, got %v", args, err)
		}
	}
}

func TestChain_UnboundedDuration(t *testing.T) {
	m := NewUniformMotion(Point{}, Point{X: 10})

	_, err := Chain{DefaultFloatAnimation(), m}.Apply(NewState(0, 0, 1, 1), 0, Clip{})
	if !errors.Is(err, ErrUnboundedDuration) {
		t.Fatalf("expected ErrUnboundedDuration, got %v", err)
	}
	if !errors.Is(err, storyerr.ErrConfig) {
		t.Error("unbounded duration should be a configuration error")
	}

	if err := (Chain{DefaultFloatAnimation()}).Validate(Clip{}); err != nil {
		t.Errorf("time-invariant chain should not need a duration: %v", err)
	}
}

func TestChain_OrderMatters(t *testing.T) {
	by2 := Must(NewResizeBy(2))
	scale := Must(NewUniformScale(0.5, 0.5, 1))
	base := NewState(0, 0, 100, 100)

	a, _ := Chain{by2, scale}.Apply(base, 0, Clip{})
	b, _ := Chain{scale, by2}.Apply(base, 0, Clip{})

	if !almostEqual(a.W, b.W) {
		t.Fatalf("expected equal widths, got %v and %v", a.W, b.W)
	}
	if almostEqual(a.X, b.X) {
		t.Errorf("expected different positions for different orders, both %v", a.X)
	}
}

func TestCrossFades(t *testing.T) {
	in := Must(NewCrossFadeIn(0.5))
	out := Must(NewCrossFadeOut(0.5))
	clip := Clip{Duration: 4}
	chain := Chain{in, out}

	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.25, 0.5},
		{2, 1},
		{3.75, 0.5},
		{4, 0},
	}
	for _, tt := range tests {
		s, err := chain.Apply(NewState(0, 0, 1, 1), tt.t, clip)
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		if !almostEqual(s.Opacity, tt.want) {
			t.Errorf("opacity(%v) = %v, want %v", tt.t, s.Opacity, tt.want)
		}
	}
}

func TestBlink_Visible(t *testing.T) {
	b := Must(NewBlink(0.1, 0.2))

	tests := []struct {
		t    float64
		want bool
	}{
		{0, true},
		{0.05, true},
		{0.15, false},
		{0.29, false},
		{0.31, true},
	}
	for _, tt := range tests {
		if got := b.Visible(tt.t); got != tt.want {
			t.Errorf("Visible(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestSlideInAndOut(t *testing.T) {
	in := Must(NewSlideIn(SideLeft, 1))
	out := Must(NewSlideOut(SideRight, 1))
	clip := Clip{Duration: 3, CanvasW: 1920, CanvasH: 1080}
	base := NewState(500, 100, 200, 100)

	s := in.Transform(base, 0, clip)
	if !almostEqual(s.X, -200) {
		t.Errorf("slide in should start just off the left edge, got x=%v", s.X)
	}
	s = in.Transform(base, 1, clip)
	if !almostEqual(s.X, 500) {
		t.Errorf("slide in should end at rest position, got x=%v", s.X)
	}

	s = out.Transform(base, 1.5, clip)
	if !almostEqual(s.X, 500) {
		t.Errorf("slide out should not move before its window, got x=%v", s.X)
	}
	s = out.Transform(base, 3, clip)
	if !almostEqual(s.X, 1920) {
		t.Errorf("slide out should end off the right edge, got x=%v", s.X)
	}

	if _, err := NewSlideIn("diagonal", 1); !errors.Is(err, storyerr.ErrConfig) {
		t.Errorf("expected configuration error for unknown side, got %v", err)
	}
}

func TestMirror_Toggles(t *testing.T) {
	s := Chain{MirrorX(), MirrorX(), MirrorY()}
	got, _ := s.Apply(NewState(0, 0, 1, 1), 0, Clip{})
	if got.FlipX || !got.FlipY {
		t.Errorf("expected FlipX=false FlipY=true, got %v %v", got.FlipX, got.FlipY)
	}
}

func TestValidation_PositiveParams(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"float scale", func() error { _, err := NewFloatAnimation(AxisY, 0); return err }()},
		{"float axis", func() error { _, err := NewFloatAnimation("z", 1); return err }()},
		{"blur sigma", func() error { _, err := NewBlur(0); return err }()},
		{"blink on", func() error { _, err := NewBlink(0, 1); return err }()},
		{"crossfade", func() error { _, err := NewCrossFadeIn(-1); return err }()},
		{"resize", func() error { _, err := NewResize(0, 10); return err }()},
	}
	for _, tt := range tests {
		if !errors.Is(tt.err, storyerr.ErrConfig) {
			t.Errorf("%s: expected configuration error, got %v", tt.name, tt.err)
		}
	}
}
