package transferor

import (
	"context"
)

// DataCatalog resolves block-level facts about datasets from an external data
// catalog. The planning core never talks to the catalog itself; everything it
// needs is fetched through this interface and injected before planning runs.
//
// Implementations are expected to apply the workflow's site and block filters
// when resolving primary blocks, and to return only blocks with at least one
// valid replica. Retries, if any, belong to the implementation.
type DataCatalog interface {
	// PrimaryBlocks returns the blocks of dataset and their sizes in bytes,
	// restricted to replicas at the given sites.
	PrimaryBlocks(ctx context.Context, dataset string, sites []string) (map[string]int64, error)

	// ParentDataset returns the name of the parent of dataset.
	ParentDataset(ctx context.Context, dataset string) (string, error)

	// ParentBlocks returns all blocks of the parent dataset and their sizes.
	ParentBlocks(ctx context.Context, dataset string) (map[string]int64, error)

	// ChildToParentBlocks maps every block of dataset to its candidate
	// parent blocks.
	ChildToParentBlocks(ctx context.Context, dataset string) (map[string][]string, error)

	// SecondarySummary returns the total size in bytes of a pileup dataset.
	SecondarySummary(ctx context.Context, dataset string) (int64, error)
}
