package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"virsat-catia/internal/types"
)

// Journal records the state of every element touched by an applied
// command so that the command can be reverted as a whole.
type Journal struct {
	entries []journalEntry
}

type journalEntry struct {
	element *types.StructuralElement
	name    string
	vis     *types.Visualisation
	visCopy types.Visualisation
}

// ApplyCommand applies all edits of cmd to repo. Either every edit is
// applied or, on the first failing edit, the already applied ones are
// reverted and the error is returned.
func ApplyCommand(repo *types.Repository, cmd types.ImportCommand) (Journal, error) {
	if !cmd.CanExecute() {
		return Journal{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("command is not executable")
	}
	var journal Journal
	for _, edit := range cmd.Edits {
		element, ok := repo.Lookup(edit.ElementUUID)
		if !ok {
			journal.Revert()
			return Journal{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("edit targets unknown element %s", edit.ElementUUID))
		}
		journal.record(element)
		if err := applyEdit(element, edit); err != nil {
			journal.Revert()
			return Journal{}, err
		}
	}
	return journal, nil
}

// Revert restores the recorded state, newest entry first.
func (j Journal) Revert() {
	for i := len(j.entries) - 1; i >= 0; i-- {
		entry := j.entries[i]
		entry.element.Name = entry.name
		entry.element.Visualisation = entry.vis
		if entry.vis != nil {
			*entry.vis = entry.visCopy
		}
	}
}

func (j *Journal) record(element *types.StructuralElement) {
	entry := journalEntry{element: element, name: element.Name, vis: element.Visualisation}
	if element.Visualisation != nil {
		entry.visCopy = *element.Visualisation
	}
	j.entries = append(j.entries, entry)
}

func applyEdit(element *types.StructuralElement, edit types.Edit) error {
	switch edit.Kind {
	case types.EditKindSetName:
		element.Name = edit.Text
		return nil
	case types.EditKindAddVisualisation:
		if element.Visualisation != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("element %s already has a visualisation", element.UUID))
		}
		if edit.Visualisation == nil {
			return invalidEdit(element, edit, "missing visualisation")
		}
		element.Visualisation = edit.Visualisation.Clone()
		return nil
	}

	vis := element.Visualisation
	if vis == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("element %s has no visualisation", element.UUID))
	}
	switch edit.Kind {
	case types.EditKindSetNumber:
		target := vis.Number(edit.Field)
		if target == nil {
			return invalidEdit(element, edit, fmt.Sprintf("unknown field %q", edit.Field))
		}
		*target = edit.Number
	case types.EditKindSetColor:
		vis.Color = edit.Integer
	case types.EditKindSetShape:
		shape := types.Shape(edit.Text)
		if !shape.Valid() {
			return invalidEdit(element, edit, fmt.Sprintf("unknown shape %q", edit.Text))
		}
		vis.Shape = shape
	case types.EditKindSetGeometryFile:
		vis.GeometryFile = edit.Text
	default:
		return invalidEdit(element, edit, "unknown edit kind")
	}
	// A local edit turns an inherited visualisation into an override.
	vis.Inherited = false
	return nil
}

func invalidEdit(element *types.StructuralElement, edit types.Edit, reason string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("invalid %s edit on %s: %s", edit.Kind, element.UUID, reason))
}
