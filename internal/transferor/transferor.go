// Package transferor orchestrates data placement planning: it builds a
// workflow model per request, feeds its block inventory from the data
// catalog and partitions the eligible blocks into site-sized chunks.
package transferor

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	gomaps "golang.org/x/exp/maps"
	goslices "golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/gridwm/transferor/internal/common/slices"
	"github.com/gridwm/transferor/internal/transferor/request"
	"github.com/gridwm/transferor/internal/transferor/workflow"
)

// Plan is the outcome of planning a single workflow: the chunks of blocks to
// place, one per destination, and their total sizes in bytes.
type Plan struct {
	Workflow *workflow.Workflow
	Chunks   []workflow.BlockSet
	Sizes    []int64
}

// Transferor plans data placement for workflows. Workflows are independent
// of each other and are planned concurrently, each on its own instance.
type Transferor struct {
	catalog     DataCatalog
	metrics     *TransferorMetrics
	parallelism int
}

func New(catalog DataCatalog, metrics *TransferorMetrics, parallelism int) *Transferor {
	if parallelism < 1 {
		parallelism = 1
	}
	return &Transferor{
		catalog:     catalog,
		metrics:     metrics,
		parallelism: parallelism,
	}
}

// PlanWorkflow runs the full setup sequence for one request: decode the
// document, build the model, resolve and inject the block inventory, then
// partition the input into numChunks chunks.
func (t *Transferor) PlanWorkflow(ctx context.Context, name string, raw map[string]any, numChunks int) (*Plan, error) {
	doc, err := request.Decode(raw)
	if err != nil {
		return nil, err
	}
	wf, err := workflow.New(name, doc)
	if err != nil {
		return nil, err
	}

	if wf.InputDataset() != "" {
		primary, err := t.catalog.PrimaryBlocks(ctx, wf.InputDataset(), wf.SiteList())
		if err != nil {
			return nil, err
		}
		wf.SetPrimaryBlocks(primary)
	} else {
		wf.SetPrimaryBlocks(map[string]int64{})
	}

	if wf.HasParents() {
		parent, err := t.catalog.ParentDataset(ctx, wf.InputDataset())
		if err != nil {
			return nil, err
		}
		if err := wf.SetParentDataset(parent); err != nil {
			return nil, err
		}
		parentBlocks, err := t.catalog.ParentBlocks(ctx, parent)
		if err != nil {
			return nil, err
		}
		wf.SetParentBlocks(parentBlocks)
		childToParent, err := t.catalog.ChildToParentBlocks(ctx, wf.InputDataset())
		if err != nil {
			return nil, err
		}
		if err := wf.SetChildToParentBlocks(childToParent); err != nil {
			return nil, err
		}
	}

	for pileup := range wf.PileupDatasets() {
		size, err := t.catalog.SecondarySummary(ctx, pileup)
		if err != nil {
			return nil, err
		}
		wf.SetSecondarySummary(pileup, size)
	}

	chunks, sizes := wf.ChunkBlocks(numChunks)
	if t.metrics != nil {
		t.metrics.ReportPlan(sizes)
	}
	return &Plan{Workflow: wf, Chunks: chunks, Sizes: sizes}, nil
}

// PlanWorkflows plans every request in the batch, at most parallelism at a
// time. One workflow failing does not abort the others; the plans that
// succeeded are returned together with a multierror of the ones that did not.
func (t *Transferor) PlanWorkflows(ctx context.Context, requests map[string]map[string]any, numChunks int) ([]*Plan, error) {
	names := gomaps.Keys(requests)
	goslices.Sort(names)

	results := make([]*Plan, len(names))
	planErrors := make([]error, len(names))
	group := errgroup.Group{}
	group.SetLimit(t.parallelism)
	for i, name := range names {
		i, name := i, name
		group.Go(func() error {
			plan, err := t.PlanWorkflow(ctx, name, requests[name], numChunks)
			if err != nil {
				log.WithError(err).WithField("workflow", name).Error("Failed to plan workflow")
				if t.metrics != nil {
					t.metrics.ReportFailure()
				}
				planErrors[i] = errors.Wrapf(err, "workflow %q", name)
				return nil
			}
			results[i] = plan
			return nil
		})
	}
	_ = group.Wait()

	var result *multierror.Error
	for _, err := range planErrors {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	plans := slices.Filter(results, func(plan *Plan) bool { return plan != nil })
	return plans, result.ErrorOrNil()
}
