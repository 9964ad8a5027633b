package adapters

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/ports"
	"virsat-catia/internal/shared"
	"virsat-catia/internal/types"
)

const (
	dataFolder      = "data"
	documentsFolder = "documents"
)

// GeometryStoreAdapter keeps geometry files in a workspace below
// data/<element uuid>/documents. References are workspace relative and use
// forward slashes.
type GeometryStoreAdapter struct {
	Root string
}

func NewGeometryStoreAdapter(root string) GeometryStoreAdapter {
	return GeometryStoreAdapter{Root: root}
}

func (a GeometryStoreAdapter) DocumentFolder(element *types.StructuralElement) (string, error) {
	if strings.TrimSpace(a.Root) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("workspace directory is empty")
	}
	if element == nil || element.UUID == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("element has no uuid")
	}
	return filepath.Join(a.Root, dataFolder, element.UUID, documentsFolder), nil
}

func (a GeometryStoreAdapter) Store(element *types.StructuralElement, src string) (string, error) {
	name, err := shared.BaseName(src)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid geometry file path").
			WithCause(err)
	}
	folder, err := a.DocumentFolder(element)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(folder, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document folder").
			WithCause(err)
	}
	if err := shared.CopyFile(src, filepath.Join(folder, name)); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to copy geometry file").
			WithCause(err)
	}
	ref := path.Join(dataFolder, element.UUID, documentsFolder, name)
	log.Debug().Str("source", src).Str("ref", ref).Msg("geometry file stored")
	return ref, nil
}

func (a GeometryStoreAdapter) Resolve(ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("geometry reference is empty")
	}
	local := filepath.FromSlash(ref)
	if filepath.IsAbs(local) {
		return local, nil
	}
	return filepath.Join(a.Root, local), nil
}

var _ ports.GeometryStoragePort = GeometryStoreAdapter{}
