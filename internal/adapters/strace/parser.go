package strace

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const (
	unfinishedSuffix = " <unfinished ...>"
	resumedMarker    = " resumed>"
	atFDCWD          = "AT_FDCWD"
	maxLineSize      = 1 << 20
)

var (
	pidPrefixRe = regexp.MustCompile(`^(\d+)\s+(.*)$`)
	killedRe    = regexp.MustCompile(`^\+\+\+ killed by (SIG[A-Z0-9]+)`)
	exitedRe    = regexp.MustCompile(`^\+\+\+ exited with (\d+)`)
	// openTailRe matches what follows the path argument: flags, optional mode, result.
	openTailRe = regexp.MustCompile(`^(?:\.\.\.)?,\s*([A-Z0-9_|]+)(?:,[^)]*)?\)\s*=\s*(-?\d+)`)
)

// openCall is one open or openat syscall as recorded by strace.
type openCall struct {
	dirfd  string
	path   string
	flags  []string
	result int
}

func (c openCall) readOnly() bool {
	if c.result < 0 {
		return false
	}
	for _, f := range c.flags {
		if f == "O_RDONLY" {
			return true
		}
	}
	return false
}

// resolve returns the absolute path that was opened, or false when the path
// is relative to a directory descriptor other than the working directory.
func (c openCall) resolve(base string) (string, bool) {
	if filepath.IsAbs(c.path) {
		return filepath.Clean(c.path), true
	}
	if c.dirfd != atFDCWD {
		return "", false
	}
	return filepath.Join(base, c.path), true
}

// traceLog is the parsed content of one strace output file.
type traceLog struct {
	opens  []openCall
	exits  int
	killed bool
	signal string
}

// observed reports whether strace recorded the end of at least one process.
func (l traceLog) observed() bool {
	return l.exits > 0 || l.killed
}

// readOnlyPaths returns the absolute paths of successful read-only opens, in order.
func (l traceLog) readOnlyPaths(base string) []string {
	var paths []string
	for _, c := range l.opens {
		if !c.readOnly() {
			continue
		}
		if p, ok := c.resolve(base); ok {
			paths = append(paths, p)
		}
	}
	return paths
}

// parseTrace reads an strace log written with -f.
// Calls interrupted by another process are stitched back together per PID.
func parseTrace(r io.Reader) (traceLog, error) {
	var log traceLog
	pending := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		pid, rest := splitPID(scanner.Text())

		switch {
		case strings.HasPrefix(rest, "+++ "):
			if m := killedRe.FindStringSubmatch(rest); m != nil {
				if !log.killed {
					log.signal = m[1]
				}
				log.killed = true
			} else if exitedRe.MatchString(rest) {
				log.exits++
			}
			continue
		case strings.HasPrefix(rest, "--- "):
			continue
		case strings.HasSuffix(rest, unfinishedSuffix):
			pending[pid] = strings.TrimSuffix(rest, unfinishedSuffix)
			continue
		case strings.HasPrefix(rest, "<... "):
			head, ok := pending[pid]
			idx := strings.Index(rest, resumedMarker)
			if !ok || idx < 0 {
				continue
			}
			delete(pending, pid)
			rest = head + rest[idx+len(resumedMarker):]
		}

		if call, ok := parseOpen(rest); ok {
			log.opens = append(log.opens, call)
		}
	}

	return log, scanner.Err()
}

func splitPID(line string) (string, string) {
	if m := pidPrefixRe.FindStringSubmatch(line); m != nil {
		return m[1], m[2]
	}
	return "", line
}

func parseOpen(line string) (openCall, bool) {
	call := openCall{dirfd: atFDCWD}

	var args string
	switch {
	case strings.HasPrefix(line, "open("):
		args = strings.TrimPrefix(line, "open(")
	case strings.HasPrefix(line, "openat("):
		dirfd, after, ok := strings.Cut(strings.TrimPrefix(line, "openat("), ",")
		if !ok {
			return openCall{}, false
		}
		call.dirfd = strings.TrimSpace(dirfd)
		args = strings.TrimLeft(after, " ")
	default:
		return openCall{}, false
	}

	path, tail, ok := unquote(args)
	if !ok {
		return openCall{}, false
	}

	m := openTailRe.FindStringSubmatch(tail)
	if m == nil {
		return openCall{}, false
	}
	result, err := strconv.Atoi(m[2])
	if err != nil {
		return openCall{}, false
	}

	call.path = path
	call.flags = strings.Split(m[1], "|")
	call.result = result
	return call, true
}

// unquote decodes the C string literal at the start of s and returns it with
// the text following the closing quote.
func unquote(s string) (string, string, bool) {
	if !strings.HasPrefix(s, `"`) {
		return "", "", false
	}

	var b strings.Builder
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '"' {
			return b.String(), s[i+1:], true
		}
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		i++
		if i >= len(s) {
			return "", "", false
		}
		switch e := s[i]; e {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'x':
			n, width := parseDigits(s[i+1:], 16, 2)
			if width == 0 {
				return "", "", false
			}
			b.WriteByte(byte(n))
			i += width
		default:
			if e >= '0' && e <= '7' {
				n, width := parseDigits(s[i:], 8, 3)
				b.WriteByte(byte(n))
				i += width - 1
				continue
			}
			b.WriteByte(e)
		}
	}

	return "", "", false
}

// parseDigits reads up to limit leading digits of s in the given base.
func parseDigits(s string, base, limit int) (int, int) {
	n, width := 0, 0
	for width < limit && width < len(s) {
		d, err := strconv.ParseUint(s[width:width+1], base, 8)
		if err != nil {
			break
		}
		n = n*base + int(d)
		width++
	}
	return n, width
}
