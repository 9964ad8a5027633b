// Package testutil provides shared test helpers used across core, adapter
// and application tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"virsat-catia/internal/types"
)

const (
	TestPosXProduct = 1.0
	TestPosYProduct = 2.0
	TestPosZProduct = 3.0
	TestRotXProduct = 4.0
	TestRotYProduct = 5.0
	TestRotZProduct = 6.0

	TestSizeXPart  = 7.0
	TestSizeYPart  = 8.0
	TestSizeZPart  = 9.0
	TestRadiusPart = 10.0
	TestColorPart  = int64(30)

	TestShape = types.ShapeBox

	Epsilon = 0.001
)

// Scenario is a small AOCS model: a product tree with one reaction wheel
// definition, a configuration tree with two wheel configurations that
// inherit from it and an assembly tree with two occurrences.
type Scenario struct {
	Repo *types.Repository

	ProductTree                *types.StructuralElement
	DomainAOCS                 *types.StructuralElement
	ReactionWheelDefinition    *types.StructuralElement
	ConfigurationTree          *types.StructuralElement
	SubSystemAOCS              *types.StructuralElement
	ReactionWheel1             *types.StructuralElement
	ReactionWheel2             *types.StructuralElement
	AssemblyTree               *types.StructuralElement
	AOCSOccurence              *types.StructuralElement
	ReactionWheelOccurence1    *types.StructuralElement
	ReactionWheelOccurence2    *types.StructuralElement
	ReactionWheelDefinitionVis *types.Visualisation
}

func NewScenario() *Scenario {
	s := &Scenario{}
	s.ReactionWheelDefinitionVis = &types.Visualisation{UUID: "vis-rw-def", Shape: types.ShapeCylinder, Radius: 0.5, SizeZ: 0.2}
	s.ReactionWheelDefinition = &types.StructuralElement{
		UUID: "ed-rw", Name: "ReactionWheel", Kind: types.ElementKindElementDefinition,
		Visualisation: s.ReactionWheelDefinitionVis,
	}
	s.DomainAOCS = &types.StructuralElement{
		UUID: "ptd-aocs", Name: "AOCS", Kind: types.ElementKindProductTreeDomain,
		Children: []*types.StructuralElement{s.ReactionWheelDefinition},
	}
	s.ProductTree = &types.StructuralElement{
		UUID: "pt", Name: "ProductTree", Kind: types.ElementKindProductTree,
		Children: []*types.StructuralElement{s.DomainAOCS},
	}

	s.ReactionWheel1 = &types.StructuralElement{
		UUID: "ec-rw1", Name: "RW1", Kind: types.ElementKindElementConfiguration,
		SuperUUIDs: []string{"ed-rw"},
	}
	s.ReactionWheel2 = &types.StructuralElement{
		UUID: "ec-rw2", Name: "RW2", Kind: types.ElementKindElementConfiguration,
		SuperUUIDs: []string{"ed-rw"},
	}
	s.SubSystemAOCS = &types.StructuralElement{
		UUID: "ec-aocs", Name: "AOCS", Kind: types.ElementKindElementConfiguration,
		Children: []*types.StructuralElement{s.ReactionWheel1, s.ReactionWheel2},
	}
	s.ConfigurationTree = &types.StructuralElement{
		UUID: "ct", Name: "ConfigurationTree", Kind: types.ElementKindConfigurationTree,
		Children: []*types.StructuralElement{s.SubSystemAOCS},
	}

	s.ReactionWheelOccurence1 = &types.StructuralElement{
		UUID: "eo-rw1", Name: "RW1", Kind: types.ElementKindElementOccurence,
		SuperUUIDs: []string{"ec-rw1"},
	}
	s.ReactionWheelOccurence2 = &types.StructuralElement{
		UUID: "eo-rw2", Name: "RW2", Kind: types.ElementKindElementOccurence,
		SuperUUIDs: []string{"ec-rw1"},
	}
	s.AOCSOccurence = &types.StructuralElement{
		UUID: "eo-aocs", Name: "AOCS", Kind: types.ElementKindElementOccurence,
		SuperUUIDs: []string{"ec-aocs"},
		Children:   []*types.StructuralElement{s.ReactionWheelOccurence1, s.ReactionWheelOccurence2},
	}
	s.AssemblyTree = &types.StructuralElement{
		UUID: "at", Name: "AssemblyTree", Kind: types.ElementKindAssemblyTree,
		Children: []*types.StructuralElement{s.AOCSOccurence},
	}

	s.Repo = &types.Repository{
		APIVersion:   "v1",
		Name:         "aocs",
		RootEntities: []*types.StructuralElement{s.ProductTree, s.ConfigurationTree, s.AssemblyTree},
	}
	s.Repo.Reindex()
	return s
}

// MappedDocument returns a document whose records all map onto the
// scenario: one part for the wheel definition and a product tree rooted at
// the AOCS subsystem with both wheel configurations.
func (s *Scenario) MappedDocument() types.Document {
	part := &types.Record{
		UUID:    s.ReactionWheelDefinition.UUID,
		Color:   types.IntPtr(TestColorPart),
		LengthX: types.FloatPtr(TestSizeXPart),
		LengthY: types.FloatPtr(TestSizeYPart),
		LengthZ: types.FloatPtr(TestSizeZPart),
		Radius:  types.FloatPtr(TestRadiusPart),
		Shape:   types.StringPtr(string(TestShape)),
	}
	return types.Document{
		Parts: []*types.Record{part},
		Products: &types.Record{
			UUID: s.SubSystemAOCS.UUID,
			Children: []*types.Record{
				ProductRecord(s.ReactionWheel1.UUID),
				ProductRecord(s.ReactionWheel2.UUID),
			},
		},
	}
}

// ProductRecord returns a complete product record with the test position,
// rotation and shape.
func ProductRecord(id string) *types.Record {
	return &types.Record{
		UUID:  id,
		PosX:  types.FloatPtr(TestPosXProduct),
		PosY:  types.FloatPtr(TestPosYProduct),
		PosZ:  types.FloatPtr(TestPosZProduct),
		RotX:  types.FloatPtr(TestRotXProduct),
		RotY:  types.FloatPtr(TestRotYProduct),
		RotZ:  types.FloatPtr(TestRotZProduct),
		Shape: types.StringPtr(string(TestShape)),
	}
}

// WriteFile writes content below dir and returns the full path.
func WriteFile(t *testing.T, dir string, name string, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
