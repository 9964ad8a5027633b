package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virsat-catia/internal/testutil"
	"virsat-catia/internal/types"
)

func TestInheritanceCopierPropagatesThroughAllTrees(t *testing.T) {
	s := testutil.NewScenario()

	updated, err := NewInheritanceCopier().UpdateAllInOrder(t.Context(), s.Repo)
	require.NoError(t, err)

	assert.Equal(t, 4, updated, "two configurations and two occurrences")
	for _, element := range []*types.StructuralElement{
		s.ReactionWheel1, s.ReactionWheel2, s.ReactionWheelOccurence1, s.ReactionWheelOccurence2,
	} {
		require.NotNil(t, element.Visualisation, element.UUID)
		assert.True(t, element.Visualisation.Inherited)
		assert.Equal(t, types.ShapeCylinder, element.Visualisation.Shape)
		assert.NotEqual(t, s.ReactionWheelDefinitionVis.UUID, element.Visualisation.UUID)
	}
	assert.Equal(t, "ec-rw1", s.ReactionWheelOccurence1.Visualisation.SuperUUID)
	assert.Nil(t, s.AOCSOccurence.Visualisation)
}

func TestInheritanceCopierKeepsOverrides(t *testing.T) {
	s := testutil.NewScenario()
	s.ReactionWheel1.Visualisation = &types.Visualisation{UUID: "own", Shape: types.ShapeBox, PositionX: 3}

	_, err := NewInheritanceCopier().UpdateAllInOrder(t.Context(), s.Repo)
	require.NoError(t, err)

	assert.Equal(t, "own", s.ReactionWheel1.Visualisation.UUID)
	assert.Equal(t, types.ShapeBox, s.ReactionWheel1.Visualisation.Shape)
	assert.InDelta(t, 3, s.ReactionWheelOccurence1.Visualisation.PositionX, testutil.Epsilon, "occurrence inherits the override")
}

func TestInheritanceCopierRefreshesInheritedCopies(t *testing.T) {
	s := testutil.NewScenario()
	copier := NewInheritanceCopier()
	_, err := copier.UpdateAllInOrder(t.Context(), s.Repo)
	require.NoError(t, err)
	inheritedUUID := s.ReactionWheel2.Visualisation.UUID

	s.ReactionWheelDefinitionVis.Radius = 0.75
	updated, err := copier.UpdateAllInOrder(t.Context(), s.Repo)
	require.NoError(t, err)

	assert.Equal(t, 4, updated)
	assert.InDelta(t, 0.75, s.ReactionWheel2.Visualisation.Radius, testutil.Epsilon)
	assert.Equal(t, inheritedUUID, s.ReactionWheel2.Visualisation.UUID, "refresh keeps the annotation identity")

	updated, err = copier.UpdateAllInOrder(t.Context(), s.Repo)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestInheritanceCopierRejectsCycles(t *testing.T) {
	a := &types.StructuralElement{UUID: "a", Kind: types.ElementKindElementConfiguration, SuperUUIDs: []string{"b"}}
	b := &types.StructuralElement{UUID: "b", Kind: types.ElementKindElementConfiguration, SuperUUIDs: []string{"a"}}
	repo := &types.Repository{RootEntities: []*types.StructuralElement{a, b}}
	repo.Reindex()

	_, err := NewInheritanceCopier().UpdateAllInOrder(t.Context(), repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inheritance cycle")
}
