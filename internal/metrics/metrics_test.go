package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollectorExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordFrame(16 * time.Millisecond)
	c.RecordFrame(20 * time.Millisecond)
	c.RecordTexture("Earth", nil)
	c.RecordTexture("Mars", errors.New("missing"))
	c.SetViewport(1280, 720)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	text := string(body)
	for _, want := range []string{
		"solarsystem_frames_total 2",
		`solarsystem_texture_loads_total{body="Earth",result="ok"} 1`,
		`solarsystem_texture_loads_total{body="Mars",result="placeholder"} 1`,
		`solarsystem_viewport_pixels{dimension="width"} 1280`,
		"solarsystem_frame_duration_seconds_count 2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
