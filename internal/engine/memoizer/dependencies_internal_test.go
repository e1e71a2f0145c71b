package memoizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestCollectDependencies_PreservesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	fp := mocks.NewMockFingerprinter(ctrl)

	paths := []string{"/w/c", "/w/a", "/w/b", "/w/a", "/w/d"}
	fp.EXPECT().Snapshot(gomock.Any()).DoAndReturn(func(path string) (domain.Dependency, bool) {
		if path == "/w/d" {
			return domain.Dependency{}, false
		}
		return domain.Dependency{Path: path, Hash: "h:" + path}, true
	}).Times(4)

	deps, err := collectDependencies(context.Background(), fp, NewRelevanceFilter(nil), paths)
	require.NoError(t, err)

	got := make([]string, 0, len(deps))
	for _, d := range deps {
		got = append(got, d.Path)
	}
	assert.Equal(t, []string{"/w/c", "/w/a", "/w/b"}, got)
}

func TestCollectDependencies_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	fp := mocks.NewMockFingerprinter(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := collectDependencies(ctx, fp, NewRelevanceFilter(nil), []string{"/w/a"})
	require.ErrorIs(t, err, context.Canceled)
	assert.ErrorContains(t, err, domain.ErrFingerprintFailed.Error())
}

func TestCollectDependencies_Empty(t *testing.T) {
	deps, err := collectDependencies(context.Background(), nil, NewRelevanceFilter(nil), nil)
	require.NoError(t, err)
	assert.Empty(t, deps)
}
