package motion

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/zoobzio/clockz"
)

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"invalid json", `{"steps": [`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "click"}]}`, `unknown action "click"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.in))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

// runScript updates p until the runner finishes, advancing the clock by one
// 60 Hz frame per update.
func runScript(t *testing.T, p *Page, clock *clockz.FakeClock, r *ScriptRunner) int {
	t.Helper()
	p.SetScriptRunner(r)
	for i := 0; i < 1000; i++ {
		if r.Done() {
			return i
		}
		p.Update()
		clock.Advance(16 * time.Millisecond)
	}
	t.Fatal("script did not finish within 1000 frames")
	return 0
}

func TestScriptRunnerScrollSession(t *testing.T) {
	p, clock := newTestPage()
	contact := p.NewSection("contact", Rect{Y: 2000, Width: 800, Height: 600})
	stats := p.NewSection("stats", Rect{Y: 700, Width: 800, Height: 200})
	statsObs := NewViewportObserver(p, NewElementRef(stats))
	contactObs := NewViewportObserver(p, NewElementRef(contact))

	r, err := LoadScript([]byte(`{"steps": [
		{"action": "sweep", "fromY": 0, "toY": 900, "frames": 10},
		{"action": "wait", "frames": 3},
		{"action": "scrollBy", "y": -200},
		{"action": "smooth", "section": "contact", "y": 64, "duration": 0.4}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	runScript(t, p, clock, r)

	if got := p.ScrollPosition().Y; got != 1936 {
		t.Errorf("Y = %f, want 1936", got)
	}
	if !statsObs.HasAnimated() || statsObs.InView() {
		t.Errorf("stats state = %+v, want animated and out of view", statsObs.State())
	}
	p.Update()
	if !contactObs.InView() {
		t.Error("contact not in view at the end of the session")
	}
}

func TestScriptRunnerResizeAndDocument(t *testing.T) {
	p, clock := newTestPage()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "scroll", "y": 2000},
		{"action": "resize", "width": 390, "height": 844},
		{"action": "document", "height": 1500}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	runScript(t, p, clock, r)

	if w, h := p.Size(); w != 390 || h != 844 {
		t.Errorf("Size = %vx%v, want 390x844", w, h)
	}
	if got := p.ScrollPosition().Y; got != 656 {
		t.Errorf("Y = %f, want 656", got)
	}
}

func TestScriptRunnerWait(t *testing.T) {
	p, clock := newTestPage()
	r, err := LoadScript([]byte(`{"steps": [{"action": "wait", "frames": 5}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	frames := runScript(t, p, clock, r)
	if frames < 5 {
		t.Errorf("script finished after %d frames, want at least 5", frames)
	}
}

func TestScriptRunnerSmoothWithoutSection(t *testing.T) {
	p, clock := newTestPage()
	r, err := LoadScript([]byte(`{"steps": [{"action": "smooth", "y": 1200, "duration": 0.25}]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	runScript(t, p, clock, r)
	if got := p.ScrollPosition().Y; got != 1200 {
		t.Errorf("Y = %f, want 1200", got)
	}
}

func TestScriptRunnerUnknownSection(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	p, clock := newTestPage()
	r, err := LoadScript([]byte(`{"steps": [
		{"action": "scroll", "y": 300},
		{"action": "smooth", "section": "pricing", "duration": 0.3},
		{"action": "scrollBy", "y": 100}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	runScript(t, p, clock, r)

	if got := p.ScrollPosition().Y; got != 400 {
		t.Errorf("Y = %f, want 400", got)
	}
	if !strings.Contains(buf.String(), `unknown section "pricing"`) {
		t.Errorf("expected unknown section warning, got: %q", buf.String())
	}
}
