package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"virsat-catia/internal/app"
)

type exportOptions struct {
	Model     string
	Root      string
	Output    string
	Workspace string
}

func newExportCommand() *cobra.Command {
	opts := exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a subtree as a CATIA document with its geometry files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "UUID of the element to export")
	cmd.Flags().StringVar(&opts.Output, "output", "", "JSON file to write; prints to stdout when empty")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", "", "Geometry workspace directory (defaults to the model directory)")
	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, opts exportOptions) error {
	service := newAppService()
	result, err := service.Export(ctx, app.ExportRequest{
		ModelPath:  resolveString(cmd, opts.Model, "model", "model"),
		RootUUID:   resolveString(cmd, opts.Root, "root", "root"),
		OutputPath: resolveString(cmd, opts.Output, "output", "output"),
		Workspace:  resolveString(cmd, opts.Workspace, "workspace", "workspace"),
	})
	if err != nil {
		return err
	}
	if result.OutputPath == "" {
		data, err := service.Documents.Encode(result.Document)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Printf("exported %d parts to %s\n", len(result.Document.Parts), result.OutputPath)
	return nil
}
