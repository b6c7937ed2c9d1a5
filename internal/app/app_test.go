package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/engine/dynamic"
	"github.com/rs/zerolog"
)

func TestNew_RequiresConfig(t *testing.T) {
	if _, err := New(context.Background(), nil); err == nil {
		t.Error("expected an error without config")
	}
}

func TestNew_LogLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg := config.Default()
	cfg.LogLevel = "debug"
	if _, err := New(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", zerolog.GlobalLevel())
	}

	cfg.LogLevel = "info"
	if _, err := New(context.Background(), cfg); err != nil {
		t.Fatal(err)
	}
	if zerolog.GlobalLevel() != zerolog.ErrorLevel {
		t.Errorf("info should stay quiet, got %s", zerolog.GlobalLevel())
	}
}

func TestApplication_SearcherAndParse(t *testing.T) {
	a, err := New(context.Background(), config.Default())
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close(context.Background())

	if name := a.Searcher(dynamic.RunOptions{}).Name(); name != "DynamicScraper" {
		t.Errorf("unexpected searcher %q", name)
	}

	path := filepath.Join(t.TempDir(), "debug.html")
	page := `<div data-component-type="s-search-result"><h2><a href="/p/dp/X1?tag=1"><span>Saved</span></a></h2></div>`
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := a.ParseSaved(path)
	if err != nil {
		t.Fatalf("ParseSaved: %v", err)
	}
	batch := p.Extract(a.Extractor(p.URL), 10, nil)
	if len(batch.Records) != 1 || batch.Records[0].URL != "https://www.amazon.in/p/dp/X1" {
		t.Errorf("unexpected records %+v", batch.Records)
	}
}
