package adapters

import (
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"virsat-catia/internal/core"
	"virsat-catia/internal/ports"
	"virsat-catia/internal/types"
)

// CommandStack executes import commands against one repository and keeps
// them undoable. Executing a new command clears the redo history.
type CommandStack struct {
	mu   sync.Mutex
	repo *types.Repository
	done []stackEntry
	redo []types.ImportCommand
}

type stackEntry struct {
	cmd     types.ImportCommand
	journal core.Journal
}

func NewCommandStack(repo *types.Repository) *CommandStack {
	return &CommandStack{repo: repo}
}

func (s *CommandStack) Execute(cmd types.ImportCommand) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	journal, err := core.ApplyCommand(s.repo, cmd)
	if err != nil {
		return err
	}
	s.done = append(s.done, stackEntry{cmd: cmd, journal: journal})
	s.redo = nil
	return nil
}

func (s *CommandStack) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.done) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("nothing to undo")
	}
	last := s.done[len(s.done)-1]
	s.done = s.done[:len(s.done)-1]
	last.journal.Revert()
	s.redo = append(s.redo, last.cmd)
	return nil
}

func (s *CommandStack) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.redo) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("nothing to redo")
	}
	cmd := s.redo[len(s.redo)-1]
	journal, err := core.ApplyCommand(s.repo, cmd)
	if err != nil {
		return err
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.done = append(s.done, stackEntry{cmd: cmd, journal: journal})
	return nil
}

func (s *CommandStack) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.done) > 0
}

func (s *CommandStack) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo) > 0
}

var _ ports.CommandExecutorPort = (*CommandStack)(nil)
