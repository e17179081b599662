package window

import "testing"

func TestBounds(t *testing.T) {
	tests := []struct {
		name      string
		mode      Mode
		total     int
		lookback  int
		wantStart int
		wantEnd   int
	}{
		{"streaming full lookback", Streaming{}, 1000, 384, 616, 999},
		{"streaming short series", Streaming{}, 100, 384, 0, 99},
		{"streaming single sample", Streaming{}, 1, 384, 0, 0},
		{"static mid series", Static{Size: 100, Offset: 50}, 1000, 384, 50, 150},
		{"static clipped at end", Static{Size: 100, Offset: 950}, 1000, 384, 950, 999},
		{"static offset beyond total", Static{Size: 10, Offset: 2000}, 1000, 384, 1000, 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Bounds(tt.mode, tt.total, tt.lookback)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("Bounds() = [%d, %d], want [%d, %d]", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	const minSize = 32

	m := Toggle(Streaming{}, minSize)
	s, ok := m.(Static)
	if !ok {
		t.Fatalf("Toggle(Streaming) = %T, want Static", m)
	}
	if s.Size != minSize || s.Offset != 0 {
		t.Errorf("fresh static window = %+v, want {Size: %d, Offset: 0}", s, minSize)
	}

	// Adjusted parameters are discarded on the way back.
	s.Size, s.Offset = 500, 123
	back := Toggle(s, minSize)
	if _, ok := back.(Streaming); !ok {
		t.Fatalf("Toggle(Static) = %T, want Streaming", back)
	}
	again, _ := Toggle(back, minSize).(Static)
	if again.Size != minSize || again.Offset != 0 {
		t.Errorf("static parameters leaked across toggle: %+v", again)
	}
}

func TestClampStatic(t *testing.T) {
	tests := []struct {
		name  string
		in    Static
		total int
		want  Static
	}{
		{"too small", Static{Size: 1, Offset: 0}, 1000, Static{Size: 32, Offset: 0}},
		{"too large", Static{Size: 5000, Offset: 0}, 1000, Static{Size: 999, Offset: 0}},
		{"negative offset", Static{Size: 100, Offset: -5}, 1000, Static{Size: 100, Offset: 0}},
		{"offset past end", Static{Size: 100, Offset: 5000}, 1000, Static{Size: 100, Offset: 999}},
		{"tiny series", Static{Size: 100, Offset: 10}, 8, Static{Size: 32, Offset: 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampStatic(tt.in, tt.total, 32); got != tt.want {
				t.Errorf("ClampStatic(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
