package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virsat-catia/internal/adapters"
	"virsat-catia/internal/testutil"
)

type fakeWatcher struct {
	events  chan string
	started bool
	stopped bool
}

func (w *fakeWatcher) Start() error {
	w.started = true
	return nil
}

func (w *fakeWatcher) Events() <-chan string {
	return w.events
}

func (w *fakeWatcher) Stop() {
	w.stopped = true
}

func TestWatchReimportsOnChange(t *testing.T) {
	scenario := testutil.NewScenario()
	modelPath := writeModel(t, scenario.Repo)
	docPath := filepath.Join(t.TempDir(), "import.json")
	require.NoError(t, adapters.NewDocumentFileAdapter().Write(docPath, scenario.MappedDocument()))

	watcher := &fakeWatcher{events: make(chan string, 1)}
	watcher.events <- docPath

	ctx, cancel := context.WithTimeout(t.Context(), 5*time.Second)
	defer cancel()
	var results []ImportResult
	err := newTestService().Watch(ctx, ImportRequest{
		ModelPath:    modelPath,
		RootUUID:     "ct",
		DocumentPath: docPath,
	}, watcher, func(result ImportResult, err error) {
		assert.NoError(t, err)
		results = append(results, result)
		cancel()
	})
	require.NoError(t, err)

	assert.True(t, watcher.started)
	assert.True(t, watcher.stopped)
	require.Len(t, results, 1)
	assert.True(t, results[0].Applied)
	assert.NotNil(t, lookup(t, loadModel(t, modelPath), "ec-rw1").Visualisation)
}

func TestWatchStopsWhenEventsClose(t *testing.T) {
	watcher := &fakeWatcher{events: make(chan string)}
	close(watcher.events)

	err := newTestService().Watch(t.Context(), ImportRequest{}, watcher, nil)
	require.NoError(t, err)
	assert.True(t, watcher.stopped)
}
