// Package console prints the progress of memoized commands to the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/muesli/termenv"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/ui/output"
	"go.trai.ch/memo/internal/ui/style"
)

// Reporter implements ports.Reporter.
// Progress goes to stderr so that stdout carries only the command's own output.
type Reporter struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output
	base   string
	now    func() time.Time

	mu sync.Mutex
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithBase sets the directory dependency paths are shown relative to.
func WithBase(dir string) Option {
	return func(r *Reporter) { r.base = dir }
}

// WithClock replaces the clock used to render dependency ages.
func WithClock(now func() time.Time) Option {
	return func(r *Reporter) { r.now = now }
}

// New creates a Reporter. Nil writers default to the process streams.
func New(stdout, stderr io.Writer, opts ...Option) *Reporter {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Reporter{
		stdout: stdout,
		stderr: stderr,
		output: output.New(stderr),
		now:    time.Now,
	}
	if wd, err := os.Getwd(); err == nil {
		r.base = wd
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Running echoes the command that is about to execute.
func (r *Reporter) Running(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line := r.output.String(style.Dollar + " " + command).Faint().String()
	_, _ = fmt.Fprintln(r.stderr, line)
}

// Skipped announces a command whose dependencies are unchanged.
func (r *Reporter) Skipped(command string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	icon := r.output.String(style.Check).Foreground(r.output.Color(string(style.Green))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s Skipping %s\n", icon, command)
}

// Dependencies lists the files a traced command read.
func (r *Reporter) Dependencies(_ string, deps []domain.Dependency) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintln(r.stderr, r.output.String("  depends on:").Faint().String())
	for _, dep := range deps {
		_, _ = fmt.Fprintf(r.stderr, "    %s %s\n", style.Arrow, r.display(dep.Path))
	}
}

// Recorded prints a table of the stored dependencies of a command with the
// current size of each file and the age of its recorded modification time.
func (r *Reporter) Recorded(command string, deps []domain.Dependency) {
	r.mu.Lock()
	defer r.mu.Unlock()

	header := r.output.String(command).Bold().String()
	_, _ = fmt.Fprintf(r.stdout, "%s (%s)\n", header, plural(len(deps), "dependency", "dependencies"))

	rows := make([][3]string, 0, len(deps))
	widths := [2]int{}
	for _, dep := range deps {
		row := [3]string{r.display(dep.Path), sizeOf(dep.Path), r.age(dep.ModTime)}
		widths[0] = max(widths[0], len(row[0]))
		widths[1] = max(widths[1], len(row[1]))
		rows = append(rows, row)
	}

	for _, row := range rows {
		line := fmt.Sprintf("  %-*s  %-*s  %s", widths[0], row[0], widths[1], row[1], row[2])
		_, _ = fmt.Fprintln(r.stdout, strings.TrimRight(line, " "))
	}
}

func (r *Reporter) display(path string) string {
	if r.base == "" {
		return path
	}
	rel, err := filepath.Rel(r.base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

func (r *Reporter) age(nanos int64) string {
	if nanos == 0 {
		return ""
	}
	return "modified " + humanize.RelTime(time.Unix(0, nanos), r.now(), "ago", "from now")
}

func sizeOf(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "missing"
	}
	return humanize.Bytes(uint64(info.Size())) //nolint:gosec // file sizes are non-negative
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
