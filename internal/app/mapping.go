package app

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/core"
	"virsat-catia/internal/types"
)

func (s Service) Map(ctx context.Context, req MapRequest) (MapResult, error) {
	repo, root, err := s.loadRoot(req.ModelPath, req.RootUUID)
	if err != nil {
		return MapResult{}, err
	}
	doc, err := s.loadDocument(req.DocumentPath, req.Document)
	if err != nil {
		return MapResult{}, err
	}
	mapping := core.NewMapper().Map(ctx, repo, doc, root)
	return MapResult{
		Mapping:  mappingUUIDs(mapping),
		Unmapped: recordUUIDs(core.Unmapped(doc, mapping)),
	}, nil
}

// extendMapping adds user chosen pairs to mapping. Every target must exist
// in the repository.
func extendMapping(repo *types.Repository, mapping types.Mapping, manual map[string]string) error {
	for documentUUID, elementUUID := range manual {
		element, ok := repo.Lookup(elementUUID)
		if !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("mapping target %s for %s not found", elementUUID, documentUUID))
		}
		mapping[documentUUID] = element
	}
	return nil
}

func mappingUUIDs(mapping types.Mapping) map[string]string {
	out := make(map[string]string, len(mapping))
	for documentUUID, element := range mapping {
		out[documentUUID] = element.UUID
	}
	return out
}

func logUnmapped(ctx context.Context, records []*types.Record) {
	for _, record := range records {
		event := log.Ctx(ctx).Warn().Str("uuid", record.UUID)
		if record.Name != nil {
			event = event.Str("name", *record.Name)
		}
		event.Msg("document record has no model element")
	}
}
