package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/types"
)

type ModelValidator struct{}

func NewModelValidator() ModelValidator {
	return ModelValidator{}
}

func (v ModelValidator) Validate(ctx context.Context, repo *types.Repository) error {
	if repo == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("model is empty")
	}
	if repo.APIVersion == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("api_version must be set")
	}
	if repo.Name == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("name must be set")
	}
	seen := map[string]struct{}{}
	elements := repo.Elements()
	for _, element := range elements {
		if err := validateElement(element); err != nil {
			return err
		}
		if _, dup := seen[element.UUID]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate element uuid: %s", element.UUID))
		}
		seen[element.UUID] = struct{}{}
	}
	repo.Reindex()
	for _, element := range elements {
		assert.NotEmpty(ctx, indexedUUID(repo, element), "element must resolve to itself after reindex")
		for _, id := range element.SuperUUIDs {
			if _, ok := repo.Lookup(id); !ok {
				return errbuilder.New().
					WithCode(errbuilder.CodeNotFound).
					WithMsg(fmt.Sprintf("element %s references unknown super %s", element.UUID, id))
			}
		}
	}
	if _, err := NewInheritanceCopier().order(repo); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("model", repo.Name).Int("elements", len(elements)).Msg("model validated")
	return nil
}

func validateElement(element *types.StructuralElement) error {
	if element.UUID == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("element %q has no uuid", element.Name))
	}
	if !element.Kind.Valid() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("element %s has invalid kind %q", element.UUID, element.Kind))
	}
	if vis := element.Visualisation; vis != nil && !vis.Shape.Valid() {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("element %s has invalid shape %q", element.UUID, vis.Shape))
	}
	return nil
}

// indexedUUID returns the uuid of element when the repository index maps
// that uuid back to the same element, and "" otherwise.
func indexedUUID(repo *types.Repository, element *types.StructuralElement) string {
	found, ok := repo.Lookup(element.UUID)
	if !ok || found != element {
		return ""
	}
	return found.UUID
}
