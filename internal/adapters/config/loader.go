// Package config provides the configuration loader for memo.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the defaults overlaid with the file at path.
// A missing file is not an error.
func (l *Loader) Load(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	var memofile Memofile
	found, err := readAndUnmarshalYAML(path, &memofile)
	if err != nil {
		return domain.Config{}, err
	}
	if !found {
		return cfg, nil
	}

	l.apply(&cfg, &memofile)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, zerr.With(err, "config_path", path)
	}
	return cfg, nil
}

func (l *Loader) apply(cfg *domain.Config, m *Memofile) {
	if m.Store != "" {
		cfg.StorePath = m.Store
	}
	if m.Fingerprint != "" {
		cfg.Mode = domain.FingerprintMode(m.Fingerprint)
	}
	if m.Digest != "" {
		cfg.Digest = domain.Digest(m.Digest)
	}
	if m.Strace != "" {
		cfg.Strace = m.Strace
	}
	if m.Shell != "" {
		cfg.Shell = m.Shell
	}
	if m.Telemetry != "" {
		cfg.Telemetry = domain.Telemetry(m.Telemetry)
	}

	for _, dir := range m.Irrelevant {
		if !filepath.IsAbs(dir) {
			l.Logger.Warn(fmt.Sprintf("irrelevant prefix %q is not absolute and will never match", dir))
		}
	}
	cfg.AddIrrelevantDirs(m.Irrelevant...)
}

// readAndUnmarshalYAML decodes path into v and reports whether the file existed.
// Unknown keys are rejected.
func readAndUnmarshalYAML(path string, v any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "config_path", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "config_path", path)
	}
	return true, nil
}
