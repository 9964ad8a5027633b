package adapters

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/core"
	"virsat-catia/internal/ports"
	"virsat-catia/internal/shared"
	"virsat-catia/internal/types"
)

// CatiaFileWriter exports a subtree into a JSON document and places every
// referenced geometry file next to it.
type CatiaFileWriter struct {
	Documents ports.DocumentPort
	Storage   ports.GeometryStoragePort
}

func NewCatiaFileWriter(documents ports.DocumentPort, storage ports.GeometryStoragePort) CatiaFileWriter {
	return CatiaFileWriter{Documents: documents, Storage: storage}
}

func (w CatiaFileWriter) WriteFiles(ctx context.Context, jsonPath string, repo *types.Repository, root *types.StructuralElement) (types.Document, error) {
	if strings.TrimSpace(jsonPath) == "" {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output json path is empty")
	}
	if root == nil {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("export root is empty")
	}
	outputDir := filepath.Dir(jsonPath)

	result := core.NewExporter(outputDir).Transform(ctx, repo, root)
	if err := w.Documents.Write(jsonPath, result.Document); err != nil {
		return types.Document{}, err
	}

	for _, vis := range result.Geometry {
		src, err := w.Storage.Resolve(vis.GeometryFile)
		if err != nil {
			return types.Document{}, err
		}
		name, err := shared.BaseName(src)
		if err != nil {
			return types.Document{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid geometry reference %q", vis.GeometryFile)).
				WithCause(err)
		}
		dst := filepath.Join(outputDir, name)
		if err := shared.CopyFile(src, dst); err != nil {
			return types.Document{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to copy geometry file %s", src)).
				WithCause(err)
		}
		log.Ctx(ctx).Debug().Str("source", src).Str("destination", dst).Msg("geometry file copied")
	}

	log.Ctx(ctx).Info().
		Str("path", jsonPath).
		Int("parts", len(result.Document.Parts)).
		Int("geometry", len(result.Geometry)).
		Msg("catia files written")
	return result.Document, nil
}

var _ ports.CatiaFileWriterPort = CatiaFileWriter{}
