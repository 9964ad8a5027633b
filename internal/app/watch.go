package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"virsat-catia/internal/ports"
)

// Watch re-runs the import of req every time watcher reports a change,
// until ctx is done or the watcher stops. Import errors are passed to
// report and do not end the loop.
func (s Service) Watch(ctx context.Context, req ImportRequest, watcher ports.DocumentWatcherPort, report func(ImportResult, error)) error {
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-watcher.Events():
			if !ok {
				return nil
			}
			log.Ctx(ctx).Info().Str("document", path).Msg("document changed")
			result, err := s.Import(ctx, req)
			if report != nil {
				report(result, err)
			}
		}
	}
}
