package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"virsat-catia/internal/testutil"
	"virsat-catia/internal/types"
)

func uuidsOf(elements []*types.StructuralElement) []string {
	out := make([]string, 0, len(elements))
	for _, element := range elements {
		out = append(out, element.UUID)
	}
	return out
}

func TestDeepChildrenPreOrder(t *testing.T) {
	s := testutil.NewScenario()
	got := uuidsOf(DeepChildren(s.ConfigurationTree))
	want := []string{"ec-aocs", "ec-rw1", "ec-rw2"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected deep children (-want +got):\n%s", diff)
	}
	assert.Empty(t, DeepChildren(nil))
}

func TestAllSupersIsTransitive(t *testing.T) {
	s := testutil.NewScenario()
	got := uuidsOf(AllSupers(s.Repo, s.ReactionWheelOccurence1))
	want := []string{"ec-rw1", "ed-rw"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected supers (-want +got):\n%s", diff)
	}
}

func TestAllSupersSkipsUnknownAndCycles(t *testing.T) {
	a := &types.StructuralElement{UUID: "a", Kind: types.ElementKindElementConfiguration, SuperUUIDs: []string{"b", "missing"}}
	b := &types.StructuralElement{UUID: "b", Kind: types.ElementKindElementConfiguration, SuperUUIDs: []string{"a"}}
	repo := &types.Repository{RootEntities: []*types.StructuralElement{a, b}}
	repo.Reindex()

	assert.Equal(t, []string{"b"}, uuidsOf(AllSupers(repo, a)))
	assert.Equal(t, []string{"a"}, uuidsOf(AllSupers(repo, b)))
}

func TestFindElement(t *testing.T) {
	s := testutil.NewScenario()
	found, ok := FindElement(s.ConfigurationTree, "ec-rw2")
	assert.True(t, ok)
	assert.Same(t, s.ReactionWheel2, found)

	found, ok = FindElement(s.ConfigurationTree, "ct")
	assert.True(t, ok)
	assert.Same(t, s.ConfigurationTree, found)

	_, ok = FindElement(s.ConfigurationTree, "ed-rw")
	assert.False(t, ok)
}
