package adapters

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"virsat-catia/internal/ports"
	"virsat-catia/internal/types"
)

type ModelFileAdapter struct{}

func NewModelFileAdapter() ModelFileAdapter {
	return ModelFileAdapter{}
}

func (a ModelFileAdapter) Load(path string) (*types.Repository, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("model file not found").
			WithCause(err)
	}
	var repo types.Repository
	if err := yaml.Unmarshal(data, &repo); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse model yaml").
			WithCause(err)
	}
	repo.Reindex()
	return &repo, nil
}

func (a ModelFileAdapter) Save(path string, repo *types.Repository) error {
	if repo == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("model is empty")
	}
	data, err := yaml.Marshal(repo)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode model yaml").
			WithCause(err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create model directory").
				WithCause(err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write model file").
			WithCause(err)
	}
	return nil
}

var _ ports.ModelStorePort = ModelFileAdapter{}
