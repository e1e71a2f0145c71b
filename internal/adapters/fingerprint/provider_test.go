package fingerprint_test

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/fingerprint"
	"go.trai.ch/memo/internal/core/domain"
)

const helloSHA256 = "sha256:2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

func TestProvider_Hash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "hello")

	tests := []struct {
		name   string
		digest domain.Digest
		want   string
	}{
		{name: "sha256", digest: domain.DigestSHA256, want: helloSHA256},
		{name: "xxhash", digest: domain.DigestXXHash, want: fmt.Sprintf("xxh64:%016x", xxhash.Sum64String("hello"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fingerprint.New(domain.ModeHash, tt.digest)
			assert.Equal(t, domain.PresentFingerprint(tt.want), p.Fingerprint(path))
		})
	}
}

func TestProvider_Absent(t *testing.T) {
	for _, mode := range []domain.FingerprintMode{domain.ModeHash, domain.ModeModTime} {
		t.Run(string(mode), func(t *testing.T) {
			p := fingerprint.New(mode, domain.DigestSHA256)
			assert.Equal(t, domain.Absent, p.Fingerprint(filepath.Join(t.TempDir(), "missing")))
		})
	}
}

func TestProvider_DirectorySentinel(t *testing.T) {
	dir := t.TempDir()

	hashed := fingerprint.New(domain.ModeHash, domain.DigestSHA256)
	assert.Equal(t, domain.PresentFingerprint(domain.DirSentinel), hashed.Fingerprint(dir))

	timed := fingerprint.New(domain.ModeModTime, domain.DigestSHA256)
	assert.Equal(t, domain.PresentFingerprint("1"), timed.Fingerprint(dir))
}

func TestProvider_ModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "hello")

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	p := fingerprint.New(domain.ModeModTime, domain.DigestSHA256)
	assert.Equal(t, domain.PresentFingerprint(domain.FormatModTime(stamp.UnixNano())), p.Fingerprint(path))
}

func TestProvider_CacheAndInvalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "hello")

	p := fingerprint.New(domain.ModeHash, domain.DigestSHA256)
	first := p.Fingerprint(path)

	writeFile(t, path, "world")
	assert.Equal(t, first, p.Fingerprint(path), "cached value is reused within one invocation")

	p.Invalidate()
	assert.NotEqual(t, first, p.Fingerprint(path))
}

func TestProvider_Snapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	writeFile(t, path, "hello")

	stamp := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	for _, mode := range []domain.FingerprintMode{domain.ModeHash, domain.ModeModTime} {
		t.Run(string(mode), func(t *testing.T) {
			p := fingerprint.New(mode, domain.DigestSHA256)

			dep, ok := p.Snapshot(path)
			require.True(t, ok)
			assert.Equal(t, domain.Dependency{
				Path:    path,
				Hash:    helloSHA256,
				ModTime: stamp.UnixNano(),
			}, dep)

			assert.Equal(t, p.Fingerprint(path), dep.Recorded(mode))
		})
	}
}

func TestProvider_Snapshot_SkipsNonRegular(t *testing.T) {
	dir := t.TempDir()
	p := fingerprint.New(domain.ModeHash, domain.DigestSHA256)

	_, ok := p.Snapshot(dir)
	assert.False(t, ok, "directories are not dependencies")

	_, ok = p.Snapshot(filepath.Join(dir, "missing"))
	assert.False(t, ok, "missing files are not dependencies")
}

func TestProvider_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "hello")

	p := fingerprint.New(domain.ModeHash, domain.DigestSHA256)

	var wg sync.WaitGroup
	results := make([]domain.Fingerprint, 16)
	for i := range results {
		wg.Go(func() {
			results[i] = p.Fingerprint(path)
		})
	}
	wg.Wait()

	for _, fp := range results {
		assert.Equal(t, domain.PresentFingerprint(helloSHA256), fp)
	}
}
