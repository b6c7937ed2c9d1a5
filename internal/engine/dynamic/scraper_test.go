package dynamic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/shelf/internal/auth"
	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine"
	"github.com/law-makers/shelf/pkg/models"
)

func TestSearch_InvalidQueryStartsNoBrowser(t *testing.T) {
	s := New(config.Default(), RunOptions{})

	result, err := s.Search(context.Background(), models.Query{Keyword: "  ", Count: 10})
	if !errors.Is(err, engine.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if result == nil || !result.Empty() {
		t.Error("a failed search must still return an empty result")
	}
	if result.SearchURL != "https://www.amazon.in/s?k=" {
		t.Errorf("unexpected search url %q", result.SearchURL)
	}
}

func TestSearch_MissingSession(t *testing.T) {
	t.Setenv(auth.DirEnv, t.TempDir())
	s := New(config.Default(), RunOptions{SessionName: "nope"})

	_, err := s.Search(context.Background(), models.Query{Keyword: "mouse", Count: 5})
	if !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("expected auth.ErrNotFound, got %v", err)
	}
	if !errors.Is(err, &engine.EngineError{Code: engine.ErrCodeSessionError}) {
		t.Errorf("expected a session error code, got %v", err)
	}
}

func TestNew_DefaultsToLiveMode(t *testing.T) {
	s := New(config.Default(), RunOptions{})
	if s.opts.Mode != models.ModeLive {
		t.Errorf("expected live mode, got %q", s.opts.Mode)
	}
	if s.Name() != "DynamicScraper" {
		t.Errorf("unexpected name %q", s.Name())
	}
}

func TestWaitError(t *testing.T) {
	s := New(config.Default(), RunOptions{})

	err := s.waitError(context.Background(), fmt.Errorf("wait: %w", context.DeadlineExceeded))
	if !errors.Is(err, engine.ErrTimeout) {
		t.Errorf("expired wait should be ErrTimeout, got %v", err)
	}

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.waitError(cancelled, context.Canceled)
	if !engine.IsCancelled(err) {
		t.Errorf("abandoned run should be a cancellation, got %v", err)
	}
}

func TestBrowserError(t *testing.T) {
	err := browserError(fmt.Errorf("exec: %w", exec.ErrNotFound))
	if !errors.Is(err, engine.ErrBrowserNotFound) {
		t.Errorf("missing executable should map to ErrBrowserNotFound, got %v", err)
	}

	err = browserError(errors.New("websocket url timeout reached"))
	if !errors.Is(err, &engine.EngineError{Code: engine.ErrCodeBrowser}) {
		t.Errorf("expected a browser error, got %v", err)
	}
}

func TestSessionState_MergesHeaders(t *testing.T) {
	t.Setenv(auth.DirEnv, t.TempDir())
	err := auth.SaveSession(&auth.SessionData{
		Name:    "home",
		URL:     "https://www.amazon.in/",
		Cookies: []auth.Cookie{{Name: "i18n-prefs", Value: "INR", Domain: ".amazon.in"}},
		Headers: map[string]string{"Accept-Language": "en-IN", "DNT": "1"},
	})
	if err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	s := New(config.Default(), RunOptions{
		SessionName: "home",
		Headers:     map[string]string{"Accept-Language": "hi-IN"},
	})
	cookies, hdrs, err := s.sessionState()
	if err != nil {
		t.Fatalf("sessionState() error = %v", err)
	}
	if len(cookies) != 1 || cookies[0].Path != "/" {
		t.Errorf("unexpected cookies: %+v", cookies)
	}
	if hdrs["Accept-Language"] != "hi-IN" || hdrs["DNT"] != "1" {
		t.Errorf("unexpected headers: %v", hdrs)
	}
}

func TestSessionState_NoSession(t *testing.T) {
	s := New(config.Default(), RunOptions{Headers: map[string]string{"DNT": "1"}})
	cookies, hdrs, err := s.sessionState()
	if err != nil || cookies != nil || hdrs["DNT"] != "1" {
		t.Errorf("sessionState() = %v, %v, %v", cookies, hdrs, err)
	}
}

func TestDiagnose(t *testing.T) {
	const page = `<html><body><div id="captcha">Type the characters you see</div></body></html>`

	newScraper := func(t *testing.T) *Scraper {
		cfg := config.Default()
		cfg.DebugFile = filepath.Join(t.TempDir(), "debug.html")
		return New(cfg, RunOptions{})
	}

	t.Run("empty result dumps the page", func(t *testing.T) {
		s := newScraper(t)
		calls := 0
		path := s.diagnose(context.Background(), []models.ProductRecord{}, "https://www.amazon.in/s?k=mouse", func() (string, error) {
			calls++
			return page, nil
		})

		if calls != 1 {
			t.Errorf("expected the page source to be read once, got %d", calls)
		}
		if path != s.cfg.DebugFile {
			t.Fatalf("diagnose() = %q, want %q", path, s.cfg.DebugFile)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading dump: %v", err)
		}
		if !strings.Contains(string(data), "captcha") {
			t.Errorf("dump does not hold the page source: %q", data)
		}
	})

	t.Run("kept records write nothing", func(t *testing.T) {
		s := newScraper(t)
		records := []models.ProductRecord{{Title: "Widget", Price: "₹100", Rating: "4.5", ReviewCount: "10", URL: "https://x/y"}}
		path := s.diagnose(context.Background(), records, "https://www.amazon.in/s?k=mouse", func() (string, error) {
			t.Error("page source must not be read when records were kept")
			return page, nil
		})

		if path != "" {
			t.Errorf("diagnose() = %q, want no dump", path)
		}
		if _, err := os.Stat(s.cfg.DebugFile); !os.IsNotExist(err) {
			t.Errorf("expected no dump file, stat err = %v", err)
		}
	})

	t.Run("unreadable page source", func(t *testing.T) {
		s := newScraper(t)
		path := s.diagnose(context.Background(), nil, "https://www.amazon.in/s?k=mouse", func() (string, error) {
			return "", errors.New("target closed")
		})

		if path != "" {
			t.Errorf("diagnose() = %q, want no dump", path)
		}
		if _, err := os.Stat(s.cfg.DebugFile); !os.IsNotExist(err) {
			t.Errorf("expected no dump file, stat err = %v", err)
		}
	})
}
