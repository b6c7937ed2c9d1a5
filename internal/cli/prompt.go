// internal/cli/prompt.go
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/law-makers/shelf/internal/config"
	"github.com/law-makers/shelf/internal/ui"
	"github.com/mattn/go-isatty"
)

var errCountRange = fmt.Errorf("count must be between %d and %d", config.MinCount, config.MaxCount)

// prompter asks questions on out and reads answers line by line from in.
// A single goroutine owns the reader so an abandoned read never races a
// later one.
type prompter struct {
	ctx   context.Context
	in    *bufio.Reader
	out   io.Writer
	once  sync.Once
	lines chan answer
}

type answer struct {
	text string
	err  error
}

// newPrompter returns a prompter whose reads give up when ctx is done
func newPrompter(ctx context.Context, in io.Reader, out io.Writer) *prompter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &prompter{ctx: ctx, in: bufio.NewReader(in), out: out}
}

func (p *prompter) start() {
	p.once.Do(func() {
		p.lines = make(chan answer)
		go func() {
			defer close(p.lines)
			for {
				s, err := p.in.ReadString('\n')
				if s != "" {
					p.lines <- answer{text: s}
				}
				if err != nil {
					if !errors.Is(err, io.EOF) {
						p.lines <- answer{err: err}
					}
					return
				}
			}
		}()
	})
}

// receive waits for the next input line. It returns io.EOF once the input
// is exhausted and ctx.Err() when ctx is done first.
func (p *prompter) receive(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p.start()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case a, ok := <-p.lines:
		if !ok {
			return "", io.EOF
		}
		return a.text, a.err
	}
}

// line prints label and returns the trimmed answer. A closed input yields
// an empty answer so callers fall back to their defaults.
func (p *prompter) line(label string) (string, error) {
	return p.lineCtx(p.ctx, label)
}

func (p *prompter) lineCtx(ctx context.Context, label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.receive(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(p.out)
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(s), nil
}

// keyword asks for the search term
func (p *prompter) keyword() (string, error) {
	return p.line("\n🔍 Enter product keyword to search: ")
}

// count asks until it gets a number in range. An empty answer takes def.
func (p *prompter) count(def int) (int, error) {
	fmt.Fprintln(p.out, "\n🔢 How many products would you like to scrape?")
	fmt.Fprintf(p.out, "   (Enter a number between %d-%d, default is %d)\n", config.MinCount, config.MaxCount, def)
	for {
		s, err := p.line("   Number of products: ")
		if err != nil {
			return 0, err
		}
		n, err := parseCount(s, def)
		if err == nil {
			return n, nil
		}
		if errors.Is(err, errCountRange) {
			fmt.Fprintf(p.out, "   %s\n", ui.Warn(fmt.Sprintf("⚠ Please enter a number between %d and %d", config.MinCount, config.MaxCount)))
		} else {
			fmt.Fprintf(p.out, "   %s\n", ui.Warn("⚠ Please enter a valid number"))
		}
	}
}

// saveDir asks where to save. An empty answer is the working directory.
func (p *prompter) saveDir() (string, error) {
	fmt.Fprintln(p.out, "\n📁 Where would you like to save the file?")
	fmt.Fprintln(p.out, "   (Press Enter for current directory)")
	return p.line("   Enter full path: ")
}

// yesNo asks a y/n question. Anything but y or yes is a no.
func (p *prompter) yesNo(label string) (bool, error) {
	s, err := p.line(label + " (y/n): ")
	if err != nil {
		return false, err
	}
	return isYes(s), nil
}

// pause blocks until the user presses Enter, also after an interrupt
func (p *prompter) pause() {
	_, _ = p.lineCtx(context.Background(), "\nPress Enter to exit...")
}

// parseCount reads a product count; empty input means def
func parseCount(s string, def int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if n < config.MinCount || n > config.MaxCount {
		return 0, fmt.Errorf("%w, got %d", errCountRange, n)
	}
	return n, nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	}
	return false
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
