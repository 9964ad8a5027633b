package core

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/types"
)

// InheritanceCopier propagates visualisations from super elements to the
// elements that inherit from them. Owned visualisations are never touched.
type InheritanceCopier struct {
	NewUUID func() string
}

func NewInheritanceCopier() InheritanceCopier {
	return InheritanceCopier{NewUUID: uuid.NewString}
}

// UpdateAllInOrder visits the repository supers-first and returns the
// number of elements whose inherited visualisation was created or
// refreshed.
func (c InheritanceCopier) UpdateAllInOrder(ctx context.Context, repo *types.Repository) (int, error) {
	order, err := c.order(repo)
	if err != nil {
		return 0, err
	}
	updated := 0
	for _, element := range order {
		if c.update(repo, element) {
			updated++
		}
	}
	log.Ctx(ctx).Debug().Int("updated", updated).Msg("inherited visualisations updated")
	return updated, nil
}

func (c InheritanceCopier) update(repo *types.Repository, element *types.StructuralElement) bool {
	current := element.Visualisation
	if current != nil && !current.Inherited {
		return false
	}
	for _, super := range DirectSupers(repo, element) {
		source := super.Visualisation
		if source == nil {
			continue
		}
		copied := source.Clone()
		copied.Inherited = true
		copied.SuperUUID = super.UUID
		if current != nil {
			copied.UUID = current.UUID
		} else {
			copied.UUID = c.NewUUID()
		}
		if current != nil && *current == *copied {
			return false
		}
		element.Visualisation = copied
		return true
	}
	return false
}

// order sorts all elements so that every super precedes the elements that
// reference it.
func (c InheritanceCopier) order(repo *types.Repository) ([]*types.StructuralElement, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := map[string]int{}
	var out []*types.StructuralElement
	var visit func(element *types.StructuralElement) error
	visit = func(element *types.StructuralElement) error {
		switch state[element.UUID] {
		case done:
			return nil
		case visiting:
			return errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("inheritance cycle at element %s", element.UUID))
		}
		state[element.UUID] = visiting
		for _, super := range DirectSupers(repo, element) {
			if err := visit(super); err != nil {
				return err
			}
		}
		state[element.UUID] = done
		out = append(out, element)
		return nil
	}
	for _, element := range repo.Elements() {
		if err := visit(element); err != nil {
			return nil, err
		}
	}
	return out, nil
}
