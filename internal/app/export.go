package app

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"virsat-catia/internal/core"
)

func (s Service) Export(ctx context.Context, req ExportRequest) (ExportResult, error) {
	repo, root, err := s.loadRoot(req.ModelPath, req.RootUUID)
	if err != nil {
		return ExportResult{}, err
	}
	outputPath := strings.TrimSpace(req.OutputPath)
	if outputPath == "" {
		result := core.NewExporter("").Transform(ctx, repo, root)
		return ExportResult{Document: result.Document}, nil
	}

	storage := s.Storage(workspaceFor(req.Workspace, req.ModelPath))
	doc, err := s.Writer(storage).WriteFiles(ctx, outputPath, repo, root)
	if err != nil {
		return ExportResult{}, err
	}
	log.Ctx(ctx).Info().Str("root", root.UUID).Str("output", outputPath).Msg("export completed")
	return ExportResult{Document: doc, OutputPath: outputPath}, nil
}
