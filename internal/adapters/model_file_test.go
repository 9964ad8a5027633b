package adapters

import (
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virsat-catia/internal/testutil"
	"virsat-catia/internal/types"
)

func TestModelFileRoundTrip(t *testing.T) {
	scenario := testutil.NewScenario()
	path := filepath.Join(t.TempDir(), "nested", "model.yaml")
	adapter := NewModelFileAdapter()

	require.NoError(t, adapter.Save(path, scenario.Repo))
	loaded, err := adapter.Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(scenario.Repo, loaded, cmpopts.IgnoreUnexported(types.Repository{})); diff != "" {
		t.Fatalf("model mismatch (-want +got):\n%s", diff)
	}
	element, ok := loaded.Lookup("ec-rw1")
	require.True(t, ok)
	assert.Equal(t, []string{"ed-rw"}, element.SuperUUIDs)
}

func TestModelFileLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "model.yaml", `api_version: v1
name: demo
root_entities:
  - uuid: ct
    name: ConfigurationTree
    kind: ConfigurationTree
    children:
      - uuid: ec-1
        name: Box
        kind: ElementConfiguration
        visualisation:
          uuid: vis-1
          shape: BOX
          color: 255
          size_x: 1.5
`)

	repo, err := NewModelFileAdapter().Load(path)
	require.NoError(t, err)
	element, ok := repo.Lookup("ec-1")
	require.True(t, ok)
	require.NotNil(t, element.Visualisation)
	assert.Equal(t, types.ShapeBox, element.Visualisation.Shape)
	assert.Equal(t, int64(255), element.Visualisation.Color)
	assert.InDelta(t, 1.5, element.Visualisation.SizeX, testutil.Epsilon)
}

func TestModelFileLoadErrors(t *testing.T) {
	dir := t.TempDir()
	adapter := NewModelFileAdapter()

	_, err := adapter.Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	bad := testutil.WriteFile(t, dir, "bad.yaml", "root_entities: [unclosed\n")
	_, err = adapter.Load(bad)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	err = adapter.Save(filepath.Join(dir, "out.yaml"), nil)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
