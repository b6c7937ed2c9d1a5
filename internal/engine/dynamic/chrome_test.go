package dynamic

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestChromeCandidates(t *testing.T) {
	tests := []struct {
		goos     string
		home     string
		programs []string
		contains string
	}{
		{"linux", "/home/u", nil, "/usr/bin/google-chrome-stable"},
		{"linux", "/home/u", nil, filepath.Join("/home/u", ".local/share/flatpak/exports/bin/com.google.Chrome")},
		{"darwin", "/Users/u", nil, filepath.Join("/Applications", "Google Chrome.app/Contents/MacOS/Google Chrome")},
		{"darwin", "/Users/u", nil, filepath.Join("/Users/u", "Applications", "Chromium.app/Contents/MacOS/Chromium")},
		{"windows", "", []string{"", `C:\Program Files`}, filepath.Join(`C:\Program Files`, "Google", "Chrome", "Application", "chrome.exe")},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+filepath.Base(tt.contains), func(t *testing.T) {
			got := chromeCandidates(tt.goos, tt.home, tt.programs)
			found := false
			for _, c := range got {
				if c == tt.contains {
					found = true
				}
				if c == "" {
					t.Error("empty candidate")
				}
			}
			if !found {
				t.Errorf("expected %q among %v", tt.contains, got)
			}
		})
	}
}

func TestFindChrome_Override(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "chrome")
	if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	if got := FindChrome(exe); got != exe {
		t.Errorf("executable override should win, got %q", got)
	}

	plain := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(plain, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if isExecutable(plain) {
		t.Error("a non-executable file must be skipped")
	}
	if isExecutable(dir) {
		t.Error("a directory is not a browser")
	}
}

func TestAllocatorOptions(t *testing.T) {
	base := len(allocatorOptions(SessionOptions{ChromePath: "/nonexistent/chrome", Headless: true}))

	withProxy := allocatorOptions(SessionOptions{ChromePath: "/nonexistent/chrome", Headless: true, Proxy: "http://127.0.0.1:3128", UserAgent: "ua"})
	if len(withProxy) != base+2 {
		t.Errorf("proxy and user agent should add two options, got %d vs %d", len(withProxy), base)
	}

}

func TestStealthScript(t *testing.T) {
	if !strings.Contains(stealthScript, "navigator, 'webdriver'") {
		t.Error("stealth script must hide navigator.webdriver")
	}
}
