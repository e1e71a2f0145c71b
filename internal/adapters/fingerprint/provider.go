// Package fingerprint computes the content and modification-time fingerprints
// of dependency files.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"os"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"golang.org/x/sync/singleflight"
)

var _ ports.Fingerprinter = (*Provider)(nil)

// Provider fingerprints files in one mode and caches the results until Invalidate.
// It is safe for concurrent use; concurrent requests for one path share a single read.
type Provider struct {
	mode   domain.FingerprintMode
	digest domain.Digest

	mu    sync.RWMutex
	cache map[string]domain.Fingerprint
	group singleflight.Group
}

// New creates a Provider for the given mode and content digest.
func New(mode domain.FingerprintMode, digest domain.Digest) *Provider {
	return &Provider{
		mode:   mode,
		digest: digest,
		cache:  make(map[string]domain.Fingerprint),
	}
}

// Fingerprint returns the current fingerprint of path in the active mode.
func (p *Provider) Fingerprint(path string) domain.Fingerprint {
	p.mu.RLock()
	fp, ok := p.cache[path]
	p.mu.RUnlock()
	if ok {
		return fp
	}

	v, _, _ := p.group.Do(path, func() (any, error) {
		fp := p.compute(path)
		p.mu.Lock()
		p.cache[path] = fp
		p.mu.Unlock()
		return fp, nil
	})
	return v.(domain.Fingerprint) //nolint:forcetypeassert // the group only stores fingerprints
}

// Snapshot captures both fingerprint kinds of a regular file.
func (p *Provider) Snapshot(path string) (domain.Dependency, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return domain.Dependency{}, false
	}

	dep := domain.Dependency{
		Path:    path,
		ModTime: info.ModTime().UnixNano(),
	}

	var content domain.Fingerprint
	if p.mode == domain.ModeHash {
		content = p.Fingerprint(path)
	} else {
		content = p.contentHash(path)
	}
	if content.Present {
		dep.Hash = content.Value
	}

	return dep, true
}

// Invalidate forgets every cached fingerprint.
func (p *Provider) Invalidate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	clear(p.cache)
}

func (p *Provider) compute(path string) domain.Fingerprint {
	if p.mode == domain.ModeModTime {
		return modTime(path)
	}
	return p.contentHash(path)
}

func (p *Provider) contentHash(path string) domain.Fingerprint {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Absent
	}
	if info.IsDir() {
		return domain.PresentFingerprint(domain.DirSentinel)
	}

	f, err := os.Open(path) //nolint:gosec // paths come from the trace of a user command
	if err != nil {
		return domain.Absent
	}
	defer f.Close() //nolint:errcheck // read-only file

	prefix, h := p.newHash()
	if _, err := io.Copy(h, f); err != nil {
		return domain.Absent
	}

	return domain.PresentFingerprint(prefix + hex.EncodeToString(h.Sum(nil)))
}

func (p *Provider) newHash() (string, hash.Hash) {
	if p.digest == domain.DigestXXHash {
		return "xxh64:", xxhash.New()
	}
	return "sha256:", sha256.New()
}

func modTime(path string) domain.Fingerprint {
	info, err := os.Stat(path)
	if err != nil {
		return domain.Absent
	}
	if info.IsDir() {
		return domain.PresentFingerprint(domain.FormatModTime(domain.DirModTime))
	}
	return domain.PresentFingerprint(domain.FormatModTime(info.ModTime().UnixNano()))
}
