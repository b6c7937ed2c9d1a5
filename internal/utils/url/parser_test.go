package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://www.amazon.in/s?k=usb+cable",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestStripQuery(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.amazon.in/Widget/dp/ABC123?ref=xyz", "https://www.amazon.in/Widget/dp/ABC123"},
		{"https://www.amazon.in/dp/ABC123", "https://www.amazon.in/dp/ABC123"},
		{"https://x/y?a=1?b=2", "https://x/y"},
		{"?only=query", ""},
		{"N/A", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := StripQuery(tt.in)
			if got != tt.want {
				t.Errorf("StripQuery(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := StripQuery(got); again != got {
				t.Errorf("StripQuery is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://www.amazon.in/s?k=usb+cable"

	if got := ResolveURL(base, "/Cable/dp/B0X?ref=sr_1"); got != "https://www.amazon.in/Cable/dp/B0X?ref=sr_1" {
		t.Errorf("relative href resolved to %q", got)
	}
	if got := ResolveURL(base, "https://other.example/p"); got != "https://other.example/p" {
		t.Errorf("absolute href changed to %q", got)
	}
	if got := ResolveURL("", "/dp/B0X"); got != "/dp/B0X" {
		t.Errorf("empty base should leave href untouched, got %q", got)
	}
}

func TestSearchURL(t *testing.T) {
	tests := []struct {
		host    string
		keyword string
		want    string
	}{
		{"www.amazon.in", "usb cable", "https://www.amazon.in/s?k=usb+cable"},
		{"https://www.amazon.in/", " phone case ", "https://www.amazon.in/s?k=phone+case"},
		{"www.amazon.in", "a&b", "https://www.amazon.in/s?k=a%26b"},
	}

	for _, tt := range tests {
		if got := SearchURL(tt.host, tt.keyword); got != tt.want {
			t.Errorf("SearchURL(%q, %q) = %q, want %q", tt.host, tt.keyword, got, tt.want)
		}
	}
}
