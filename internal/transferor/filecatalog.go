package transferor

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"

	"github.com/gridwm/transferor/internal/common/maps"
)

type datasetSnapshot struct {
	Blocks        map[string]int64    `json:"blocks,omitempty"`
	Parent        string              `json:"parent,omitempty"`
	ChildToParent map[string][]string `json:"childToParent,omitempty"`
	Size          int64               `json:"size,omitempty"`
}

type catalogSnapshot struct {
	Datasets map[string]datasetSnapshot `json:"datasets"`
}

// FileCatalog is a DataCatalog backed by a JSON snapshot on disk, with all
// block facts already resolved. It backs the CLI and is handy in tests; the
// production catalog client lives with the service that feeds the transferor.
type FileCatalog struct {
	snapshot catalogSnapshot
}

// NewFileCatalog loads the catalog snapshot at path.
func NewFileCatalog(path string) (*FileCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	var snapshot catalogSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "invalid catalog snapshot %s", path)
	}
	return &FileCatalog{snapshot: snapshot}, nil
}

func (c *FileCatalog) PrimaryBlocks(ctx context.Context, dataset string, sites []string) (map[string]int64, error) {
	snapshot, err := c.dataset(dataset)
	if err != nil {
		return nil, err
	}
	return maps.DeepCopy(snapshot.Blocks), nil
}

func (c *FileCatalog) ParentDataset(ctx context.Context, dataset string) (string, error) {
	snapshot, err := c.dataset(dataset)
	if err != nil {
		return "", err
	}
	if snapshot.Parent == "" {
		return "", errors.Errorf("dataset %s has no parent in the catalog snapshot", dataset)
	}
	return snapshot.Parent, nil
}

func (c *FileCatalog) ParentBlocks(ctx context.Context, dataset string) (map[string]int64, error) {
	snapshot, err := c.dataset(dataset)
	if err != nil {
		return nil, err
	}
	return maps.DeepCopy(snapshot.Blocks), nil
}

func (c *FileCatalog) ChildToParentBlocks(ctx context.Context, dataset string) (map[string][]string, error) {
	snapshot, err := c.dataset(dataset)
	if err != nil {
		return nil, err
	}
	return snapshot.ChildToParent, nil
}

func (c *FileCatalog) SecondarySummary(ctx context.Context, dataset string) (int64, error) {
	snapshot, err := c.dataset(dataset)
	if err != nil {
		return 0, err
	}
	if snapshot.Size > 0 {
		return snapshot.Size, nil
	}
	return maps.SumValues(snapshot.Blocks), nil
}

func (c *FileCatalog) dataset(name string) (datasetSnapshot, error) {
	snapshot, ok := c.snapshot.Datasets[name]
	if !ok {
		return datasetSnapshot{}, errors.Errorf("dataset %s not present in the catalog snapshot", name)
	}
	return snapshot, nil
}
