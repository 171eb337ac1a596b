package workflow

import (
	"github.com/gridwm/transferor/internal/common/maps"
	"github.com/gridwm/transferor/internal/common/planerrors"
)

// BlockSet is a set of block names.
type BlockSet map[string]bool

// Add inserts block into the set.
func (bs BlockSet) Add(block string) {
	bs[block] = true
}

// Update adds every member of other into the set.
func (bs BlockSet) Update(other BlockSet) {
	for block := range other {
		bs[block] = true
	}
}

// Contains reports whether block is a member of the set.
func (bs BlockSet) Contains(block string) bool {
	return bs[block]
}

// SetPrimaryBlocks stores the primary input blocks and their sizes. The
// caller is expected to have applied the block white/black lists already.
func (wf *Workflow) SetPrimaryBlocks(blocks map[string]int64) {
	wf.primaryBlocks = maps.DeepCopy(blocks)
}

// PrimaryBlocks returns the primary input blocks, block name to size in bytes.
func (wf *Workflow) PrimaryBlocks() map[string]int64 {
	return wf.primaryBlocks
}

// SetParentBlocks stores the parent input blocks and their sizes.
// This map covers the whole parent dataset; blocks without a surviving child
// are pruned later by SetChildToParentBlocks.
func (wf *Workflow) SetParentBlocks(blocks map[string]int64) {
	wf.parentBlocks = maps.DeepCopy(blocks)
}

// ParentBlocks returns the parent input blocks, block name to size in bytes.
func (wf *Workflow) ParentBlocks() map[string]int64 {
	return wf.parentBlocks
}

// SetSecondarySummary records the total size in bytes of a secondary dataset.
func (wf *Workflow) SetSecondarySummary(dataset string, size int64) {
	wf.secondarySummaries[dataset] = size
}

// SecondarySummary returns the secondary datasets and their total sizes.
func (wf *Workflow) SecondarySummary() map[string]int64 {
	return wf.secondarySummaries
}

// SetChildToParentBlocks stores the relationship between each primary block
// and its parent blocks, then prunes the parent block map down to blocks that
// are still needed. Entries whose child is not a known primary block are
// dropped, as are parent names not present in the resolved parent dataset;
// any parent block left unreferenced after that has no valid replica or no
// retained child and must not be transferred.
func (wf *Workflow) SetChildToParentBlocks(raw map[string][]string) error {
	if wf.primaryBlocks == nil {
		return &planerrors.ErrInvalidState{
			Request: wf.name,
			Message: "primary blocks must be set before the child to parent block map",
		}
	}
	if wf.parentDataset != "" && wf.parentBlocks == nil {
		return &planerrors.ErrInvalidState{
			Request: wf.name,
			Message: "parent blocks must be set before the child to parent block map",
		}
	}
	live := BlockSet{}
	for child, parents := range raw {
		if _, ok := wf.primaryBlocks[child]; !ok {
			continue
		}
		kept := BlockSet{}
		for _, parent := range parents {
			if _, ok := wf.parentBlocks[parent]; ok {
				kept.Add(parent)
				live.Add(parent)
			}
		}
		wf.childToParentBlocks[child] = kept
	}
	wf.parentBlocks = maps.FilterKeys(wf.parentBlocks, live.Contains)
	return nil
}

// ChildToParentBlocks returns the primary block to parent block set map.
func (wf *Workflow) ChildToParentBlocks() map[string]BlockSet {
	return wf.childToParentBlocks
}
