package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"virsat-catia/internal/app"
)

type importOptions struct {
	Model       string
	Root        string
	Document    string
	Workspace   string
	Mappings    []string
	DryRun      bool
	Propagate   bool
	OutputModel string
	Strict      bool
}

func newImportCommand() *cobra.Command {
	opts := importOptions{}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Apply a CATIA document to the model",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd.Context(), cmd, opts)
		},
	}
	addImportFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Report the edits without changing the model")
	return cmd
}

func addImportFlags(cmd *cobra.Command, opts *importOptions) {
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "UUID of the element to import into")
	cmd.Flags().StringVar(&opts.Document, "document", "", "CATIA JSON document path")
	cmd.Flags().StringVar(&opts.Workspace, "workspace", "", "Geometry workspace directory (defaults to the model directory)")
	cmd.Flags().StringSliceVar(&opts.Mappings, "map", nil, "Manual mapping <document-uuid>=<element-uuid>")
	cmd.Flags().BoolVar(&opts.Propagate, "propagate", false, "Refresh inherited visualisations after the import")
	cmd.Flags().StringVar(&opts.OutputModel, "output-model", "", "Write the updated model here instead of in place")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when document records remain unmapped")
}

func importRequest(cmd *cobra.Command, opts importOptions) (app.ImportRequest, error) {
	mappings, err := resolveMappings(cmd, opts.Mappings)
	if err != nil {
		return app.ImportRequest{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid --map value").
			WithCause(err)
	}
	return app.ImportRequest{
		ModelPath:    resolveString(cmd, opts.Model, "model", "model"),
		RootUUID:     resolveString(cmd, opts.Root, "root", "root"),
		DocumentPath: resolveString(cmd, opts.Document, "document", "document"),
		Workspace:    resolveString(cmd, opts.Workspace, "workspace", "workspace"),
		Mappings:     mappings,
		DryRun:       resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		Propagate:    resolveBool(cmd, opts.Propagate, "propagate", "propagate"),
		OutputModel:  resolveString(cmd, opts.OutputModel, "output_model", "output-model"),
		Strict:       resolveBool(cmd, opts.Strict, "strict", "strict"),
	}, nil
}

func runImport(ctx context.Context, cmd *cobra.Command, opts importOptions) error {
	req, err := importRequest(cmd, opts)
	if err != nil {
		return err
	}
	result, err := newAppService().Import(ctx, req)
	printImportResult(result)
	return err
}

func printImportResult(result app.ImportResult) {
	for _, failure := range result.Failures {
		detail := failure.Reason
		if len(failure.Missing) > 0 {
			detail = "missing " + strings.Join(failure.Missing, ", ")
		}
		fmt.Printf("incomplete %s record %s: %s\n", failure.Section, failure.UUID, detail)
	}
	for _, uuid := range result.Unmapped {
		fmt.Printf("unmapped: %s\n", uuid)
	}
	switch {
	case result.Applied:
		fmt.Printf("applied %d edits to %s\n", result.Edits, result.ModelPath)
		if result.Inherited > 0 {
			fmt.Printf("refreshed %d inherited visualisations\n", result.Inherited)
		}
	case result.Executable:
		fmt.Printf("dry run: %d edits would be applied\n", result.Edits)
	}
}
