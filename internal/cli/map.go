package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"virsat-catia/internal/app"
)

type mapOptions struct {
	Model    string
	Root     string
	Document string
}

func newMapCommand() *cobra.Command {
	opts := mapOptions{}
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Show which document records map onto model elements",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMap(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "UUID of the element to map against")
	cmd.Flags().StringVar(&opts.Document, "document", "", "CATIA JSON document path")
	return cmd
}

func runMap(ctx context.Context, cmd *cobra.Command, opts mapOptions) error {
	service := newAppService()
	result, err := service.Map(ctx, app.MapRequest{
		ModelPath:    resolveString(cmd, opts.Model, "model", "model"),
		RootUUID:     resolveString(cmd, opts.Root, "root", "root"),
		DocumentPath: resolveString(cmd, opts.Document, "document", "document"),
	})
	if err != nil {
		return err
	}
	keys := make([]string, 0, len(result.Mapping))
	for key := range result.Mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("mapped: %s -> %s\n", key, result.Mapping[key])
	}
	for _, uuid := range result.Unmapped {
		fmt.Printf("unmapped: %s\n", uuid)
	}
	return nil
}
