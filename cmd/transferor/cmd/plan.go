package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	gomaps "golang.org/x/exp/maps"
	goslices "golang.org/x/exp/slices"

	"github.com/gridwm/transferor/internal/transferor"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan data placement chunks for a single workflow request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			requestPath, _ := cmd.Flags().GetString("request")
			catalogPath, _ := cmd.Flags().GetString("catalog")
			numChunks, _ := cmd.Flags().GetInt("chunks")

			name, raw, err := loadRequest(requestPath)
			if err != nil {
				return err
			}
			catalog, err := transferor.NewFileCatalog(catalogPath)
			if err != nil {
				return err
			}

			t := transferor.New(catalog, nil, 1)
			plan, err := t.PlanWorkflow(context.Background(), name, raw, numChunks)
			if err != nil {
				return err
			}

			fmt.Printf("workflow %s: %d chunks\n", name, len(plan.Chunks))
			for i, chunk := range plan.Chunks {
				blocks := gomaps.Keys(chunk)
				goslices.Sort(blocks)
				fmt.Printf("chunk %d: %d blocks, %.2f GB\n", i, len(blocks), float64(plan.Sizes[i])/1e9)
				for _, block := range blocks {
					fmt.Printf("  %s\n", block)
				}
			}
			return nil
		},
	}
	cmd.Flags().String("request", "", "Path to the workflow request document (JSON)")
	cmd.Flags().String("catalog", "", "Path to the catalog snapshot (JSON)")
	cmd.Flags().Int("chunks", 1, "Number of chunks to partition the input into")
	if err := cmd.MarkFlagRequired("request"); err != nil {
		panic(err)
	}
	if err := cmd.MarkFlagRequired("catalog"); err != nil {
		panic(err)
	}
	return cmd
}

// loadRequest reads a request document from disk. The workflow name is taken
// from the RequestName field, falling back to the file name.
func loadRequest(path string) (string, map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, errors.WithStack(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", nil, errors.Wrapf(err, "invalid request document %s", path)
	}
	name, _ := raw["RequestName"].(string)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return name, raw, nil
}
