package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/adapters/config"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	loader := config.NewLoader(mockLogger)

	path := writeConfig(t, `
store: build/.deps
fingerprint: mtime
digest: xxhash
irrelevant: [/opt/sdk, /etc/]
strace: /usr/local/bin/strace
shell: /bin/bash
telemetry: stdout
`)

	cfg, err := loader.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "build/.deps", cfg.StorePath)
	assert.Equal(t, domain.ModeModTime, cfg.Mode)
	assert.Equal(t, domain.DigestXXHash, cfg.Digest)
	assert.Equal(t, "/usr/local/bin/strace", cfg.Strace)
	assert.Equal(t, "/bin/bash", cfg.Shell)
	assert.Equal(t, domain.TelemetryStdout, cfg.Telemetry)
	assert.Equal(t, append(domain.DefaultIrrelevantDirs(), "/opt/sdk"), cfg.IrrelevantDirs)
}

func TestLoader_Load_Defaults(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "missing file",
			path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.yaml") },
		},
		{
			name: "empty file",
			path: func(t *testing.T) string { return writeConfig(t, "") },
		},
		{
			name: "partial file",
			path: func(t *testing.T) string { return writeConfig(t, "shell: /bin/sh\n") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))

			cfg, err := loader.Load(tt.path(t))
			require.NoError(t, err)
			assert.Equal(t, domain.DefaultConfig(), cfg)
		})
	}
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "malformed yaml", content: "store: [unclosed", wantErr: domain.ErrConfigParseFailed.Error()},
		{name: "unknown key", content: "stroe: .deps\n", wantErr: domain.ErrConfigParseFailed.Error()},
		{name: "bad mode", content: "fingerprint: size\n", wantErr: domain.ErrInvalidFingerprintMode.Error()},
		{name: "bad digest", content: "digest: md5\n", wantErr: domain.ErrInvalidDigest.Error()},
		{name: "bad telemetry", content: "telemetry: jaeger\n", wantErr: domain.ErrInvalidTelemetry.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))

			_, err := loader.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_InvalidSettingIsClassified(t *testing.T) {
	loader := config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))

	_, err := loader.Load(writeConfig(t, "fingerprint: size\n"))
	require.ErrorIs(t, err, domain.ErrInvalidFingerprintMode)
}

func TestLoader_Load_WarnsOnRelativePrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(`irrelevant prefix "vendor" is not absolute and will never match`)

	cfg, err := config.NewLoader(mockLogger).Load(writeConfig(t, "irrelevant: [vendor]\n"))
	require.NoError(t, err)
	assert.Contains(t, cfg.IrrelevantDirs, "vendor")
}

func TestLoader_Load_Unreadable(t *testing.T) {
	loader := config.NewLoader(mocks.NewMockLogger(gomock.NewController(t)))

	_, err := loader.Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigReadFailed.Error())
}
