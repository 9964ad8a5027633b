package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"virsat-catia/internal/types"
)

type Mapper struct{}

func NewMapper() Mapper {
	return Mapper{}
}

// Map associates every document record id with the element of the same
// uuid in the tree below root, or with one of the supers of those
// elements. Ids without a match are left out.
func (m Mapper) Map(ctx context.Context, repo *types.Repository, doc types.Document, root *types.StructuralElement) types.Mapping {
	index := m.index(repo, root)
	mapping := types.Mapping{}
	for _, record := range doc.AllRecords() {
		if element, ok := index[record.UUID]; ok && element != nil {
			mapping[record.UUID] = element
		}
	}
	log.Ctx(ctx).Debug().
		Int("indexed", len(index)).
		Int("mapped", len(mapping)).
		Msg("document mapped to model")
	return mapping
}

func (m Mapper) index(repo *types.Repository, root *types.StructuralElement) map[string]*types.StructuralElement {
	index := map[string]*types.StructuralElement{}
	if root == nil {
		return index
	}
	for _, element := range append([]*types.StructuralElement{root}, DeepChildren(root)...) {
		index[element.UUID] = element
		for _, super := range AllSupers(repo, element) {
			index[super.UUID] = super
		}
	}
	return index
}

// Unmapped returns the records of doc whose id has no entry in mapping,
// in document order.
func Unmapped(doc types.Document, mapping types.Mapping) []*types.Record {
	var out []*types.Record
	for _, record := range doc.AllRecords() {
		if _, ok := mapping[record.UUID]; !ok {
			out = append(out, record)
		}
	}
	return out
}
