// internal/cli/sessions.go
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/law-makers/shelf/internal/auth"
	"github.com/law-makers/shelf/internal/engine/dynamic"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/spf13/cobra"
)

var sessionsDeleteYes bool

// sessionsCmd represents the sessions command
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage saved storefront sessions",
	Long: `List, view, capture, import, and delete saved sessions.

A session is a set of storefront cookies loaded into the browser before a
search. It usually carries the delivery location and language, which change
the prices and listings a search returns.

Sessions are stored in your OS keyring, or under ~/.shelf/sessions when no
keyring is available. Set SHELF_SESSION_DIR to choose the directory.`,
	Example: `  # Open a browser, set a delivery pincode, then save the cookies
  shelf sessions capture home

  # List all saved sessions
  shelf sessions list

  # View details of a specific session
  shelf sessions view home

  # Delete a session
  shelf sessions delete old-session`,
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all saved sessions",
	RunE:  runSessionsList,
}

var sessionsViewCmd = &cobra.Command{
	Use:   "view <session-name>",
	Short: "View details of a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsView,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-name>",
	Short: "Delete a saved session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

var sessionsCaptureCmd = &cobra.Command{
	Use:   "capture <session-name>",
	Short: "Save cookies from a visible browser window",
	Long: `Opens the storefront in a visible Chrome window. Set the delivery location,
language, or sign in, then press Enter in the terminal to save the cookies.`,
	Args: cobra.ExactArgs(1),
	RunE: runSessionsCapture,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsViewCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsCaptureCmd)

	sessionsDeleteCmd.Flags().BoolVarP(&sessionsDeleteYes, "yes", "y", false, "Delete without asking")
}

func runSessionsList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	sessions, err := auth.ListSessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "\nNo saved sessions found.")
		fmt.Fprintln(out, "\nCreate a session with:")
		fmt.Fprintln(out, "  shelf sessions capture <name>")
		fmt.Fprintln(out)
		return nil
	}

	fmt.Fprintf(out, "\n📋 Saved Sessions (%d)\n", len(sessions))
	fmt.Fprintln(out, ui.Rule("━"))
	fmt.Fprintln(out)

	now := time.Now()
	for i, name := range sessions {
		fmt.Fprintf(out, "%d. %s\n", i+1, ui.Bold(name))

		session, err := auth.InspectSession(name)
		if err != nil {
			fmt.Fprintf(out, "   %s\n", ui.Warn(fmt.Sprintf("⚠️  Error loading: %v", err)))
			continue
		}

		fmt.Fprintf(out, "   URL: %s\n", session.URL)
		fmt.Fprintf(out, "   Cookies: %d\n", len(session.Cookies))
		fmt.Fprintf(out, "   Created: %s\n", session.CreatedAt.Format(time.RFC1123))
		fmt.Fprintf(out, "   Status: %s\n", sessionStatus(session, now))

		if i < len(sessions)-1 {
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out)
	return nil
}

func runSessionsView(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	session, err := auth.InspectSession(name)
	if err != nil {
		return fmt.Errorf("failed to load session '%s': %w", name, err)
	}

	fmt.Fprintf(out, "\n🔍 Session Details: %s\n", name)
	fmt.Fprintln(out, ui.Rule("━"))
	fmt.Fprintln(out)

	pairs := [][2]string{
		{"Name", session.Name},
		{"URL", session.URL},
		{"Created", session.CreatedAt.Format(time.RFC1123)},
	}
	if !session.ExpiresAt.IsZero() {
		pairs = append(pairs, [2]string{"Expires", session.ExpiresAt.Format(time.RFC1123)})
	}
	pairs = append(pairs, [2]string{"Status", sessionStatus(session, time.Now())})
	ui.KeyValues(out, pairs)

	printCookieNames(out, session.Cookies, 5)

	if len(session.Headers) > 0 {
		fmt.Fprintf(out, "\nCustom Headers (%d):\n", len(session.Headers))
		for key, value := range session.Headers {
			fmt.Fprintf(out, "  • %s: %s\n", key, value)
		}
	}

	fmt.Fprintln(out)
	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	name := args[0]

	if !sessionsDeleteYes {
		p := newPrompter(cmd.Context(), cmd.InOrStdin(), out)
		ok, err := p.yesNo(fmt.Sprintf("\n⚠️  Delete session '%s'?", name))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	if err := auth.DeleteSession(name); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Fprintf(out, "\n%s Session '%s' deleted successfully.\n\n", ui.Success("✓"), name)
	return nil
}

func runSessionsCapture(cmd *cobra.Command, args []string) error {
	a := GetAppFromCmd(cmd)
	if a == nil {
		return fmt.Errorf("application not initialized")
	}
	out := cmd.OutOrStdout()
	name := args[0]
	startURL := a.Config.Marketplace.BaseURL()

	fmt.Fprintf(out, "\n🔐 Capture Session: %s\n", name)
	fmt.Fprintln(out, ui.Rule("━"))
	fmt.Fprintf(out, "\nA browser window will open on %s.\n", startURL)
	fmt.Fprintln(out, "Set your delivery location or sign in, then come back here.")

	p := newPrompter(cmd.Context(), cmd.InOrStdin(), out)
	cookies, err := dynamic.CaptureCookies(cmd.Context(), dynamic.SessionOptions{
		ChromePath: a.Config.ChromePath,
		UserAgent:  a.Config.UserAgent,
		Proxy:      a.Config.Proxy,
	}, startURL, func() error {
		_, err := p.line("\nPress Enter when you're done...")
		return err
	})
	if err != nil {
		return fmt.Errorf("capture failed: %w", err)
	}

	return saveImportedSession(out, name, startURL, cookies, nil)
}

// saveImportedSession stores cookies and headers under name and prints how
// to use them
func saveImportedSession(out io.Writer, name, siteURL string, cookies []auth.Cookie, hdrs map[string]string) error {
	if len(cookies) == 0 {
		return errors.New("no cookies to save")
	}

	session := &auth.SessionData{
		Name:      name,
		URL:       siteURL,
		Cookies:   cookies,
		Headers:   hdrs,
		CreatedAt: time.Now(),
		ExpiresAt: auth.EarliestExpiry(cookies),
	}
	if err := auth.SaveSession(session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Fprintf(out, "\n✅ Session '%s' saved!\n", name)
	fmt.Fprintf(out, "   Cookies: %d\n", len(cookies))
	if len(hdrs) > 0 {
		fmt.Fprintf(out, "   Headers: %d\n", len(hdrs))
	}
	if !session.ExpiresAt.IsZero() {
		fmt.Fprintf(out, "   Expires: %s\n", session.ExpiresAt.Format(time.RFC1123))
	}
	fmt.Fprintf(out, "\nUse with:\n")
	fmt.Fprintf(out, "  shelf search <keyword> --session=%s\n\n", name)
	return nil
}

func sessionStatus(s *auth.SessionData, now time.Time) string {
	switch {
	case s.ExpiresAt.IsZero():
		return ui.Success("✓ Valid (no expiry)")
	case s.Expired(now):
		return ui.Warn(fmt.Sprintf("⚠️  Expired (%s ago)", now.Sub(s.ExpiresAt).Round(time.Hour)))
	default:
		return ui.Success(fmt.Sprintf("✓ Valid (expires in %s)", s.ExpiresAt.Sub(now).Round(time.Hour)))
	}
}

func printCookieNames(out io.Writer, cookies []auth.Cookie, max int) {
	fmt.Fprintf(out, "\nCookies (%d):\n", len(cookies))
	for i, cookie := range cookies {
		if i >= max {
			fmt.Fprintf(out, "  ... and %d more\n", len(cookies)-max)
			break
		}
		fmt.Fprintf(out, "  • %s (domain: %s)\n", cookie.Name, cookie.Domain)
	}
}
