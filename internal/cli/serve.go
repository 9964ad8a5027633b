package cli

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"virsat-catia/internal/server"
)

type serveOptions struct {
	Listen    string
	Model     string
	Root      string
	Workspace string
	Propagate bool
}

func newServeCommand() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve export, map and import over HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Listen, "listen", ":8080", "Listen address")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "Default root element UUID")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", "", "Geometry workspace directory (defaults to the model directory)")
	cmd.Flags().BoolVar(&opts.Propagate, "propagate", false, "Refresh inherited visualisations after each import")
	return cmd
}

func runServe(ctx context.Context, cmd *cobra.Command, opts serveOptions) error {
	listen := opts.Listen
	if !flagChanged(cmd, "listen") && viper.IsSet("listen") {
		listen = viper.GetString("listen")
	}
	if viper.GetString("log_level") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := server.New(newAppService(), server.Config{
		ModelPath: resolveString(cmd, opts.Model, "model", "model"),
		RootUUID:  resolveString(cmd, opts.Root, "root", "root"),
		Workspace: resolveString(cmd, opts.Workspace, "workspace", "workspace"),
		Propagate: resolveBool(cmd, opts.Propagate, "propagate", "propagate"),
	})
	return srv.Run(ctx, listen)
}
