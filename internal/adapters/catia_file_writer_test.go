package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virsat-catia/internal/testutil"
	"virsat-catia/internal/types"
)

func TestCatiaFileWriterWritesJSONAndGeometry(t *testing.T) {
	scenario := testutil.NewScenario()
	workspace := t.TempDir()
	store := NewGeometryStoreAdapter(workspace)

	src := testutil.WriteFile(t, t.TempDir(), "wheel.stl", "solid wheel\n")
	ref, err := store.Store(scenario.ReactionWheelDefinition, src)
	require.NoError(t, err)
	scenario.ReactionWheelDefinitionVis.Shape = types.ShapeGeometry
	scenario.ReactionWheelDefinitionVis.GeometryFile = ref

	outDir := t.TempDir()
	jsonPath := filepath.Join(outDir, "aocs.json")
	writer := NewCatiaFileWriter(NewDocumentFileAdapter(), store)

	doc, err := writer.WriteFiles(t.Context(), jsonPath, scenario.Repo, scenario.ConfigurationTree)
	require.NoError(t, err)

	require.Len(t, doc.Parts, 1)
	require.NotNil(t, doc.Parts[0].STLPath)
	assert.Equal(t, filepath.Join(outDir, "wheel.stl"), *doc.Parts[0].STLPath)

	written, err := NewDocumentFileAdapter().Read(jsonPath)
	require.NoError(t, err)
	require.Len(t, written.Parts, 1)
	assert.Equal(t, "ed-rw", written.Parts[0].UUID)

	data, err := os.ReadFile(filepath.Join(outDir, "wheel.stl"))
	require.NoError(t, err)
	assert.Equal(t, "solid wheel\n", string(data))
}

func TestCatiaFileWriterOutputInsideDocumentFolder(t *testing.T) {
	scenario := testutil.NewScenario()
	store := NewGeometryStoreAdapter(t.TempDir())

	src := testutil.WriteFile(t, t.TempDir(), "wheel.stl", "solid wheel\n")
	ref, err := store.Store(scenario.ReactionWheelDefinition, src)
	require.NoError(t, err)
	scenario.ReactionWheelDefinitionVis.Shape = types.ShapeGeometry
	scenario.ReactionWheelDefinitionVis.GeometryFile = ref

	folder, err := store.DocumentFolder(scenario.ReactionWheelDefinition)
	require.NoError(t, err)
	writer := NewCatiaFileWriter(NewDocumentFileAdapter(), store)

	doc, err := writer.WriteFiles(t.Context(), filepath.Join(folder, "aocs.json"), scenario.Repo, scenario.ConfigurationTree)
	require.NoError(t, err)
	require.Len(t, doc.Parts, 1)
	require.NotNil(t, doc.Parts[0].STLPath)
	assert.Equal(t, filepath.Join(folder, "wheel.stl"), *doc.Parts[0].STLPath)

	data, err := os.ReadFile(filepath.Join(folder, "wheel.stl"))
	require.NoError(t, err)
	assert.Equal(t, "solid wheel\n", string(data))
}

func TestCatiaFileWriterEmptyTree(t *testing.T) {
	root := &types.StructuralElement{UUID: "ct", Kind: types.ElementKindConfigurationTree}
	repo := &types.Repository{APIVersion: "v1", Name: "empty", RootEntities: []*types.StructuralElement{root}}
	jsonPath := filepath.Join(t.TempDir(), "empty.json")
	writer := NewCatiaFileWriter(NewDocumentFileAdapter(), NewGeometryStoreAdapter(t.TempDir()))

	_, err := writer.WriteFiles(t.Context(), jsonPath, repo, root)
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"parts":[]}`, string(data))
}

func TestCatiaFileWriterMissingGeometry(t *testing.T) {
	scenario := testutil.NewScenario()
	scenario.ReactionWheelDefinitionVis.Shape = types.ShapeGeometry
	scenario.ReactionWheelDefinitionVis.GeometryFile = "data/ed-rw/documents/missing.stl"
	writer := NewCatiaFileWriter(NewDocumentFileAdapter(), NewGeometryStoreAdapter(t.TempDir()))

	_, err := writer.WriteFiles(t.Context(), filepath.Join(t.TempDir(), "out.json"), scenario.Repo, scenario.ConfigurationTree)
	require.Error(t, err)
}

func TestCatiaFileWriterRejectsEmptyArguments(t *testing.T) {
	scenario := testutil.NewScenario()
	writer := NewCatiaFileWriter(NewDocumentFileAdapter(), NewGeometryStoreAdapter(t.TempDir()))

	_, err := writer.WriteFiles(t.Context(), "", scenario.Repo, scenario.ConfigurationTree)
	require.Error(t, err)
	_, err = writer.WriteFiles(t.Context(), filepath.Join(t.TempDir(), "out.json"), scenario.Repo, nil)
	require.Error(t, err)
}
