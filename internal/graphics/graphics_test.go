package graphics

import "testing"

func TestWindowSize(t *testing.T) {
	tests := []struct {
		name string
		o    WindowOptions
		w, h int32
	}{
		{"windowed", WindowOptions{Width: 1280, Height: 720}, 1280, 720},
		{"fullscreen uses monitor", WindowOptions{Width: 1280, Height: 720, Fullscreen: true}, 0, 0},
	}
	for _, tt := range tests {
		if w, h := windowSize(tt.o); w != tt.w || h != tt.h {
			t.Errorf("%s: windowSize() = %dx%d, want %dx%d", tt.name, w, h, tt.w, tt.h)
		}
	}
}

func TestProjectionMatrixIsColumnMajor(t *testing.T) {
	var p [16]float32
	for i := range p {
		p[i] = float32(i)
	}
	m := projectionMatrix(p)
	if m.M0 != 0 || m.M5 != 5 || m.M11 != 11 || m.M14 != 14 {
		t.Errorf("projectionMatrix() = %+v", m)
	}
}
