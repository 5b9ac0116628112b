package viewport

import "testing"

type fakeSurface struct {
	w, h  int
	calls int
}

func (s *fakeSurface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.calls++
}

func TestResize(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{1920, 1080},
		{800, 600},
		{333, 777},
		{1, 1},
	}
	cam := NewCamera(75, 0.1, 2000, 1280, 720)
	surf := &fakeSurface{}
	a := New(cam, surf, 1280, 720)
	for _, tt := range tests {
		a.Resize(tt.w, tt.h)
		if want := float32(tt.w) / float32(tt.h); cam.Aspect != want {
			t.Errorf("%dx%d: aspect %g, want %g", tt.w, tt.h, cam.Aspect, want)
		}
		if surf.w != tt.w || surf.h != tt.h {
			t.Errorf("%dx%d: surface %dx%d", tt.w, tt.h, surf.w, surf.h)
		}
		if f := cam.Projection[5]; cam.Projection[0] != f/cam.Aspect {
			t.Errorf("%dx%d: projection not refreshed", tt.w, tt.h)
		}
	}
}

func TestResizeIsIdempotent(t *testing.T) {
	cam := NewCamera(75, 0.1, 2000, 800, 600)
	surf := &fakeSurface{}
	a := New(cam, surf, 800, 600)
	if a.Resize(800, 600) {
		t.Error("Resize to current size reported a change")
	}
	a.Resize(1024, 768)
	a.Resize(1024, 768)
	if surf.calls != 1 {
		t.Errorf("surface resized %d times, want 1", surf.calls)
	}
}

func TestResizeIgnoresMinimized(t *testing.T) {
	cam := NewCamera(75, 0.1, 2000, 800, 600)
	a := New(cam, &fakeSurface{}, 800, 600)
	if a.Resize(0, 0) {
		t.Error("Resize(0, 0) applied")
	}
	if w, h := a.Size(); w != 800 || h != 600 {
		t.Errorf("Size() = %dx%d", w, h)
	}
}
