package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/core"
	"virsat-catia/internal/types"
)

// UnmappedRecordsMsg prefixes the error a strict import returns.
const UnmappedRecordsMsg = "unmapped records left"

func (s Service) Import(ctx context.Context, req ImportRequest) (ImportResult, error) {
	repo, root, err := s.loadRoot(req.ModelPath, req.RootUUID)
	if err != nil {
		return ImportResult{}, err
	}
	doc, err := s.loadDocument(req.DocumentPath, req.Document)
	if err != nil {
		return ImportResult{}, err
	}
	if req.Document == nil {
		resolveGeometryPaths(doc, filepath.Dir(req.DocumentPath))
	}

	mapping := core.NewMapper().Map(ctx, repo, doc, root)
	if err := extendMapping(repo, mapping, req.Mappings); err != nil {
		return ImportResult{}, err
	}
	unmapped := core.Unmapped(doc, mapping)
	logUnmapped(ctx, unmapped)
	if req.Strict && len(unmapped) > 0 {
		uuids := recordUUIDs(unmapped)
		return ImportResult{Unmapped: uuids}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%s: %s", UnmappedRecordsMsg, strings.Join(uuids, ", ")))
	}

	workspace := workspaceFor(req.Workspace, req.ModelPath)
	if req.DryRun {
		// Geometry files are copied while the command is built, so a dry run
		// stores them in a scratch workspace.
		scratch, err := os.MkdirTemp("", "virsat-catia-dry-run-")
		if err != nil {
			return ImportResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create dry run workspace").
				WithCause(err)
		}
		defer os.RemoveAll(scratch)
		workspace = scratch
	}

	importer := core.NewImporter(s.Storage(workspace))
	if s.NewUUID != nil {
		importer.NewUUID = s.NewUUID
	}
	cmd := importer.Transform(ctx, doc, mapping)
	result := ImportResult{
		Edits:      len(cmd.Edits),
		Failures:   cmd.Failures,
		Unmapped:   recordUUIDs(unmapped),
		Executable: cmd.CanExecute(),
	}
	if req.DryRun {
		return result, nil
	}
	if !cmd.CanExecute() {
		return result, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(describeFailures(cmd.Failures))
	}

	if err := s.Executor(repo).Execute(cmd); err != nil {
		return result, err
	}
	result.Applied = true

	if req.Propagate {
		copier := core.NewInheritanceCopier()
		if s.NewUUID != nil {
			copier.NewUUID = s.NewUUID
		}
		updated, err := copier.UpdateAllInOrder(ctx, repo)
		if err != nil {
			return result, err
		}
		result.Inherited = updated
	}

	result.ModelPath = req.ModelPath
	if strings.TrimSpace(req.OutputModel) != "" {
		result.ModelPath = req.OutputModel
	}
	if err := s.Models.Save(result.ModelPath, repo); err != nil {
		return result, err
	}
	log.Ctx(ctx).Info().
		Str("root", root.UUID).
		Int("edits", result.Edits).
		Int("unmapped", len(result.Unmapped)).
		Str("model", result.ModelPath).
		Msg("import completed")
	return result, nil
}

// resolveGeometryPaths makes relative stlPath entries relative to the
// document directory.
func resolveGeometryPaths(doc types.Document, dir string) {
	for _, record := range doc.AllRecords() {
		if record.STLPath == nil || *record.STLPath == "" || filepath.IsAbs(*record.STLPath) {
			continue
		}
		resolved := filepath.Join(dir, *record.STLPath)
		record.STLPath = &resolved
	}
}

func describeFailures(failures []types.RecordFailure) string {
	parts := make([]string, 0, len(failures))
	for _, failure := range failures {
		detail := failure.Reason
		if len(failure.Missing) > 0 {
			detail = "missing " + strings.Join(failure.Missing, ", ")
		}
		parts = append(parts, fmt.Sprintf("%s %s: %s", failure.Section, failure.UUID, detail))
	}
	return fmt.Sprintf("document has %d incomplete records: %s", len(failures), strings.Join(parts, "; "))
}
