package loop

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/asshbanner/internal/settings"
)

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func runSession(t *testing.T, s *Session) {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- s.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("session did not stop")
	}
}

func TestSessionDrawsAndQuits(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(100, 40),
		Logger:       log.New(io.Discard),
		Rand:         rand.New(rand.NewSource(1)),
	})
	runSession(t, s)

	got := out.String()
	for _, want := range []string{panelTitle, settings.DefaultText, "Particle Count"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if s.engine.Interval() != 0 {
		t.Error("expected the particle timer to be stopped")
	}
}

func TestSessionUsesSeedSettings(t *testing.T) {
	seed := settings.Default()
	seed.Banner.Text = "Seeded"
	seed.Particles.Count = 20

	var out bytes.Buffer
	s := NewSession(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(100, 40),
		Settings:     &seed,
		Logger:       log.New(io.Discard),
	})
	if s.state.Settings.Particles.Count != 20 {
		t.Errorf("expected seeded count, got %d", s.state.Settings.Particles.Count)
	}
	runSession(t, s)

	if !strings.Contains(out.String(), "Seeded") {
		t.Error("expected seeded banner text in output")
	}
}

func TestSessionTooSmall(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(context.Background(), bufio.NewReader(strings.NewReader("q")), &out, Options{
		TermSizeFunc: fixedSize(20, 10),
		Logger:       log.New(io.Discard),
	})
	runSession(t, s)

	if !strings.Contains(out.String(), "Terminal too") {
		t.Error("expected a resize hint")
	}
	if strings.Contains(out.String(), panelTitle) {
		t.Error("panel should not be drawn on a tiny terminal")
	}
}

func TestSessionIdleTimeout(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	s := NewSession(context.Background(), bufio.NewReader(pr), io.Discard, Options{
		TermSizeFunc: fixedSize(100, 40),
		Logger:       log.New(io.Discard),
		IdleTimeout:  200 * time.Millisecond,
	})
	runSession(t, s)
}

func TestSessionEndsOnInputEOF(t *testing.T) {
	s := NewSession(context.Background(), bufio.NewReader(strings.NewReader("")), io.Discard, Options{
		TermSizeFunc: fixedSize(100, 40),
		Logger:       log.New(io.Discard),
	})
	runSession(t, s)
}

func TestBannerRows(t *testing.T) {
	tests := []struct {
		height int
		want   int
	}{
		{18, 8},
		{30, 13},
		{60, 18},
	}
	for _, tt := range tests {
		if got := bannerRows(tt.height); got != tt.want {
			t.Errorf("bannerRows(%d) = %d, expected %d", tt.height, got, tt.want)
		}
	}
}

func TestScrollKeepsSelectionVisible(t *testing.T) {
	s := &Session{state: newTestState()}

	s.state.Field = FieldReset
	s.scrollTo(5)
	if s.scroll != int(fieldCount)-5 {
		t.Errorf("expected scroll %d, got %d", int(fieldCount)-5, s.scroll)
	}

	s.state.Field = FieldText
	s.scrollTo(5)
	if s.scroll != 0 {
		t.Errorf("expected scroll 0, got %d", s.scroll)
	}
}

func TestSessionStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	s := NewSession(ctx, bufio.NewReader(pr), io.Discard, Options{
		TermSizeFunc: fixedSize(100, 40),
		Logger:       log.New(io.Discard),
	})
	time.AfterFunc(100*time.Millisecond, cancel)
	runSession(t, s)
}
