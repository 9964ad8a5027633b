package ports

import "virsat-catia/internal/types"

// ModelStorePort persists a repository of structural elements.
type ModelStorePort interface {
	Load(path string) (*types.Repository, error)
	Save(path string, repo *types.Repository) error
}
