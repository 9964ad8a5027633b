package cli

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"virsat-catia/internal/adapters"
	"virsat-catia/internal/app"
)

func newWatchCommand() *cobra.Command {
	opts := importOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-import a CATIA document every time it changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd.Context(), cmd, opts)
		},
	}
	addImportFlags(cmd, &opts)
	return cmd
}

func runWatch(ctx context.Context, cmd *cobra.Command, opts importOptions) error {
	req, err := importRequest(cmd, opts)
	if err != nil {
		return err
	}
	req.DryRun = false
	if req.DocumentPath == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document path is required")
	}
	watcher, err := adapters.NewDocumentWatcher(req.DocumentPath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create document watcher").
			WithCause(err)
	}

	log.Ctx(ctx).Info().Str("document", req.DocumentPath).Msg("watching document")
	return newAppService().Watch(ctx, req, watcher, func(result app.ImportResult, err error) {
		printImportResult(result)
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("import failed")
		}
	})
}
