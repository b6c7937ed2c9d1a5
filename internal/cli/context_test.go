package cli

import (
	"context"
	"testing"

	"github.com/law-makers/shelf/internal/app"
	"github.com/law-makers/shelf/internal/config"
	"github.com/spf13/cobra"
)

func TestSetApp(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	if GetAppFromCmd(cmd) != nil {
		t.Fatal("expected no app on a fresh command")
	}

	a, err := app.New(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("app.New() error = %v", err)
	}

	SetApp(cmd, a)
	if got := GetAppFromCmd(cmd); got != a {
		t.Errorf("GetAppFromCmd() = %v, want %v", got, a)
	}

	SetApp(cmd, nil)
	if GetAppFromCmd(cmd) != nil {
		t.Error("expected app to be cleared")
	}
}
