package types

// Edit is a single model change collected by the importer. Edits carry
// intent only; an executor applies and reverts them.
type Edit struct {
	Kind          EditKind
	ElementUUID   string
	Field         NumberField
	Number        float64
	Integer       int64
	Text          string
	Visualisation *Visualisation
}

type RecordFailure struct {
	UUID    string
	Section string
	Missing []string
	Reason  string
}

// ImportCommand is the composite edit produced by one import. A command
// that is not executable still carries the edits of the records that were
// complete so that callers can report them.
type ImportCommand struct {
	Edits      []Edit
	Failures   []RecordFailure
	Executable bool
}

func (c ImportCommand) CanExecute() bool {
	return c.Executable
}
