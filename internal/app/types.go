package app

import "virsat-catia/internal/types"

type ValidateRequest struct {
	ModelPath string
}

type ValidateResult struct {
	ModelName string
	Elements  int
}

type ExportRequest struct {
	ModelPath string
	RootUUID  string
	// OutputPath is the JSON file to write. When empty the document is only
	// returned and geometry files are not copied.
	OutputPath string
	Workspace  string
}

type ExportResult struct {
	Document   types.Document
	OutputPath string
}

type MapRequest struct {
	ModelPath    string
	RootUUID     string
	DocumentPath string
	// Document takes precedence over DocumentPath when set.
	Document *types.Document
}

type MapResult struct {
	// Mapping maps document record uuids to element uuids.
	Mapping  map[string]string
	Unmapped []string
}

type ImportRequest struct {
	ModelPath    string
	RootUUID     string
	DocumentPath string
	Document     *types.Document
	Workspace    string
	// Mappings extends the computed mapping with document uuid to element
	// uuid pairs chosen by the user.
	Mappings map[string]string
	DryRun   bool
	// Propagate refreshes inherited visualisations after the import.
	Propagate bool
	// OutputModel is where the updated model is saved. Defaults to
	// ModelPath.
	OutputModel string
	// Strict refuses the import before any edit is built when document
	// records remain unmapped.
	Strict bool
}

type ImportResult struct {
	Edits      int
	Failures   []types.RecordFailure
	Unmapped   []string
	Executable bool
	Applied    bool
	Inherited  int
	ModelPath  string
}
