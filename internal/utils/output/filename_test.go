package output

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeKeyword(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wireless mouse", "wireless_mouse"},
		{"usb-c hub/dock", "usb_c_hub_dock"},
		{"already_safe_123", "already_safe_123"},
		{"  padded ", "__padded_"},
		{"café crème", "café_crème"},
		{"50% off!", "50__off_"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeKeyword(tt.in); got != tt.want {
				t.Errorf("SanitizeKeyword(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.Local)

	got := Filename("wireless mouse", "amazon", FormatXLSX, at)
	if got != "wireless_mouse_amazon_20260102_030405.xlsx" {
		t.Errorf("unexpected filename %q", got)
	}
	if got := Filename("mouse", "amazon", FormatCSV, at); filepath.Ext(got) != ".csv" {
		t.Errorf("csv export should end in .csv, got %q", got)
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatXLSX, "XLSX": FormatXLSX, "csv": FormatCSV, " json ": FormatJSON} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("expected an error for pdf")
	}
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	got, err := EnsureDir(base, false)
	if err != nil || got != base {
		t.Errorf("existing dir: got %q, %v", got, err)
	}

	missing := filepath.Join(base, "exports", "2026")
	if _, err := EnsureDir(missing, false); err == nil {
		t.Error("missing dir without create should fail")
	}
	if _, err := EnsureDir(missing, true); err != nil {
		t.Fatalf("create: %v", err)
	}
	if info, err := os.Stat(missing); err != nil || !info.IsDir() {
		t.Errorf("directory was not created: %v", err)
	}

	file := filepath.Join(base, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := EnsureDir(file, true); err == nil {
		t.Error("a regular file is not a usable directory")
	}

	wd, _ := os.Getwd()
	if got, err := EnsureDir("", false); err != nil || got != wd {
		t.Errorf("empty dir should mean the working directory, got %q, %v", got, err)
	}
}
