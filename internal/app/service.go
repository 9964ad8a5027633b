package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"virsat-catia/internal/adapters"
	"virsat-catia/internal/ports"
	"virsat-catia/internal/types"
)

type Service struct {
	Models    ports.ModelStorePort
	Documents ports.DocumentPort
	// Storage returns the geometry storage of a workspace directory.
	Storage func(workspace string) ports.GeometryStoragePort
	// Writer returns the file writer used by exports to a file.
	Writer func(storage ports.GeometryStoragePort) ports.CatiaFileWriterPort
	// Executor returns the command executor that edits repo.
	Executor func(repo *types.Repository) ports.CommandExecutorPort
	NewUUID  func() string
}

func NewService() Service {
	documents := adapters.NewDocumentFileAdapter()
	return Service{
		Models:    adapters.NewModelFileAdapter(),
		Documents: documents,
		Storage: func(workspace string) ports.GeometryStoragePort {
			return adapters.NewGeometryStoreAdapter(workspace)
		},
		Writer: func(storage ports.GeometryStoragePort) ports.CatiaFileWriterPort {
			return adapters.NewCatiaFileWriter(documents, storage)
		},
		Executor: func(repo *types.Repository) ports.CommandExecutorPort {
			return adapters.NewCommandStack(repo)
		},
	}
}

func (s Service) loadModel(path string) (*types.Repository, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("model path is required")
	}
	return s.Models.Load(path)
}

func (s Service) loadRoot(modelPath string, rootUUID string) (*types.Repository, *types.StructuralElement, error) {
	repo, err := s.loadModel(modelPath)
	if err != nil {
		return nil, nil, err
	}
	rootUUID = strings.TrimSpace(rootUUID)
	if rootUUID == "" {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("root element uuid is required")
	}
	root, ok := repo.Lookup(rootUUID)
	if !ok {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("root element %s not found", rootUUID))
	}
	return repo, root, nil
}

func (s Service) loadDocument(path string, doc *types.Document) (types.Document, error) {
	if doc != nil {
		if doc.Parts == nil {
			doc.Parts = []*types.Record{}
		}
		return *doc, nil
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return types.Document{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is required")
	}
	return s.Documents.Read(path)
}

// workspaceFor defaults the geometry workspace to the model directory.
func workspaceFor(workspace string, modelPath string) string {
	if strings.TrimSpace(workspace) != "" {
		return workspace
	}
	return filepath.Dir(modelPath)
}

func recordUUIDs(records []*types.Record) []string {
	out := make([]string, 0, len(records))
	for _, record := range records {
		out = append(out, record.UUID)
	}
	return out
}
