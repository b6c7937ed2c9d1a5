// internal/cli/sessions_import.go
package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/law-makers/shelf/internal/auth"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/law-makers/shelf/internal/utils/headers"
	urlutil "github.com/law-makers/shelf/internal/utils/url"
	"github.com/spf13/cobra"
)

var (
	importURL    string
	importFormat string
	importHeader []string
)

// sessionsImportCmd represents the sessions import command
var sessionsImportCmd = &cobra.Command{
	Use:   "import <session-name>",
	Short: "Import cookies from your browser to create a session",
	Long: `Import cookies from your browser's developer tools to create a session.

This is useful in headless environments (Codespaces, dev containers) where
"sessions capture" cannot open a browser window.

Steps:
1. Open the storefront in your regular browser
2. Set the delivery location, sign in if you want
3. Open DevTools (F12) → Application → Cookies
4. Copy the cookies
5. Use this command to import them`,
	Example: `  # Import cookies interactively
  shelf sessions import home

  # Import from a Netscape/curl cookie file
  shelf sessions import home --format=netscape < cookies.txt

  # Import from JSON for another storefront
  shelf sessions import uk --url=https://www.amazon.co.uk --format=json < cookies.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsImport,
}

func init() {
	sessionsCmd.AddCommand(sessionsImportCmd)

	sessionsImportCmd.Flags().StringVar(&importURL, "url", "", "Storefront URL for this session (default: the --marketplace storefront)")
	sessionsImportCmd.Flags().StringVar(&importFormat, "format", "interactive", "Import format: interactive, json, netscape")
	sessionsImportCmd.Flags().StringArrayVarP(&importHeader, "header", "H", []string{}, "Header saved with the session (e.g., -H \"Accept-Language: en-IN\")")
}

func runSessionsImport(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	out := cmd.OutOrStdout()
	sessionName := args[0]

	siteURL := importURL
	if siteURL == "" {
		siteURL = a.Config.Marketplace.BaseURL()
	}
	if err := urlutil.ValidateURL(siteURL); err != nil {
		return err
	}
	hdrs, err := headers.Parse(importHeader)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n🔐 Import Session: %s\n", sessionName)
	fmt.Fprintf(out, "%s\n\n", ui.Rule("━"))

	var cookies []auth.Cookie

	switch importFormat {
	case "interactive":
		cookies, err = importInteractive(newPrompter(cmd.Context(), cmd.InOrStdin(), out), auth.CookieDomain(siteURL))
	case "json":
		cookies, err = parseCookieJSON(cmd.InOrStdin())
	case "netscape":
		cookies, err = parseNetscape(cmd.InOrStdin())
	default:
		return fmt.Errorf("unsupported format: %s (use: interactive, json, netscape)", importFormat)
	}

	if err != nil {
		return fmt.Errorf("failed to import cookies: %w", err)
	}

	if len(cookies) == 0 {
		return fmt.Errorf("no cookies imported")
	}

	return saveImportedSession(out, sessionName, siteURL, cookies, hdrs)
}

func importInteractive(p *prompter, domain string) ([]auth.Cookie, error) {
	fmt.Fprintln(p.out, "📋 Cookie Import Guide:")
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "1. Open the storefront in your browser and set your delivery location")
	fmt.Fprintln(p.out, "2. Press F12 to open DevTools")
	fmt.Fprintln(p.out, "3. Go to: Application → Storage → Cookies")
	fmt.Fprintln(p.out, "4. For each important cookie, copy the Name and Value")
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "💡 TIP: session-id, ubid and i18n-prefs carry the location and currency")

	var cookies []auth.Cookie
	for {
		fmt.Fprintf(p.out, "\n%s\n", ui.Rule("━"))

		name, err := p.line("\nCookie Name (or press Enter to finish): ")
		if err != nil {
			return nil, err
		}
		if name == "" {
			break
		}

		value, err := p.line("Cookie Value: ")
		if err != nil {
			return nil, err
		}
		if value == "" {
			fmt.Fprintln(p.out, ui.Warn("⚠️  Skipping cookie with empty value"))
			continue
		}

		cookieDomain, err := p.line(fmt.Sprintf("Domain [%s]: ", domain))
		if err != nil {
			return nil, err
		}
		if cookieDomain == "" {
			cookieDomain = domain
		}

		cookie := auth.Cookie{
			Name:   name,
			Value:  value,
			Domain: cookieDomain,
			Path:   "/",
			Secure: true,
		}
		cookies = append(cookies, cookie)
		fmt.Fprintf(p.out, "✅ Added: %s (domain: %s)\n", cookie.Name, cookie.Domain)
	}

	if len(cookies) == 0 {
		fmt.Fprintln(p.out, ui.Warn("\n⚠️  No cookies added"))
	} else {
		fmt.Fprintf(p.out, "\n✅ Total cookies added: %d\n", len(cookies))
	}
	return cookies, nil
}

func parseCookieJSON(r io.Reader) ([]auth.Cookie, error) {
	var cookies []auth.Cookie
	if err := json.NewDecoder(r).Decode(&cookies); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	return cookies, nil
}

// parseNetscape reads the tab-separated cookies.txt format written by curl
// and browser extensions: domain, subdomains, path, secure, expiry, name, value
func parseNetscape(r io.Reader) ([]auth.Cookie, error) {
	var cookies []auth.Cookie
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		httpOnly := false
		if rest, ok := strings.CutPrefix(line, "#HttpOnly_"); ok {
			line = rest
			httpOnly = true
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 7 {
			continue
		}

		cookie := auth.Cookie{
			Domain:   fields[0],
			Path:     fields[2],
			Secure:   strings.EqualFold(fields[3], "TRUE"),
			Name:     fields[5],
			Value:    fields[6],
			HTTPOnly: httpOnly,
		}
		if expiry, err := strconv.ParseInt(fields[4], 10, 64); err == nil && expiry > 0 {
			cookie.Expires = float64(expiry)
		}

		cookies = append(cookies, cookie)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}
