package ports

import (
	"context"

	"virsat-catia/internal/types"
)

// GeometryStoragePort manages geometry files that belong to structural
// elements.
type GeometryStoragePort interface {
	// DocumentFolder returns the absolute folder that holds the files of
	// the element.
	DocumentFolder(element *types.StructuralElement) (string, error)

	// Store copies src into the element's document folder, replacing an
	// existing file of the same base name, and returns the managed
	// reference to record in the visualisation.
	Store(element *types.StructuralElement, src string) (string, error)

	// Resolve turns a managed reference into an absolute path.
	Resolve(ref string) (string, error)
}

// CatiaFileWriterPort writes an exported document together with its
// geometry files.
type CatiaFileWriterPort interface {
	WriteFiles(ctx context.Context, jsonPath string, repo *types.Repository, root *types.StructuralElement) (types.Document, error)
}
