package ports

import "virsat-catia/internal/types"

// CommandExecutorPort applies composite import commands as one undoable
// unit.
type CommandExecutorPort interface {
	Execute(cmd types.ImportCommand) error
	Undo() error
	Redo() error
	CanUndo() bool
	CanRedo() bool
}
