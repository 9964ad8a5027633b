package app

import (
	"context"

	"virsat-catia/internal/core"
)

func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	repo, err := s.loadModel(req.ModelPath)
	if err != nil {
		return ValidateResult{}, err
	}
	if err := core.NewModelValidator().Validate(ctx, repo); err != nil {
		return ValidateResult{}, err
	}
	return ValidateResult{ModelName: repo.Name, Elements: len(repo.Elements())}, nil
}
