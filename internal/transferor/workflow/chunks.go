package workflow

import (
	log "github.com/sirupsen/logrus"
	goslices "golang.org/x/exp/slices"

	"github.com/gridwm/transferor/internal/common/maps"
)

type blockEntry struct {
	name string
	size int64
}

// ChunkBlocks partitions the primary input blocks, with any required parent
// blocks folded in, into numChunks size-balanced chunks, usually one per site
// available for data placement. It returns the chunks and, index-aligned, the
// total size in bytes of each chunk.
//
// Blocks are packed first-fit in descending size order against a target of
// totalPrimarySize/numChunks, and blocks that fit no chunk are then handed
// out round-robin, so every primary block lands in exactly one chunk. Parent
// blocks needed by primaries in more than one chunk are duplicated into each,
// since transfers are planned per destination.
func (wf *Workflow) ChunkBlocks(numChunks int) ([]BlockSet, []int64) {
	if numChunks <= 1 {
		chunk := BlockSet{}
		size := maps.SumValues(wf.primaryBlocks)
		for block := range wf.primaryBlocks {
			chunk.Add(block)
		}
		if wf.parentDataset != "" {
			size += maps.SumValues(wf.parentBlocks)
			for block := range wf.parentBlocks {
				chunk.Add(block)
			}
		}
		return []BlockSet{chunk}, []int64{size}
	}

	remaining := make([]blockEntry, 0, len(wf.primaryBlocks))
	var total int64
	for block, size := range wf.primaryBlocks {
		remaining = append(remaining, blockEntry{name: block, size: size})
		total += size
	}
	goslices.SortFunc(remaining, func(a, b blockEntry) bool {
		if a.size != b.size {
			return a.size > b.size
		}
		return a.name < b.name
	})
	target := total / int64(numChunks)
	log.WithField("workflow", wf.name).Infof("Found %d blocks and the avg chunk size is: %.2f GB",
		len(remaining), gigaBytes(target))

	chunks := make([]BlockSet, numChunks)
	sizes := make([]int64, numChunks)
	for i := 0; i < numChunks; i++ {
		chunk := BlockSet{}
		var size int64
		idx := 0
		for idx < len(remaining) {
			if size+remaining[idx].size <= target {
				chunk.Add(remaining[idx].name)
				size += remaining[idx].size
				remaining = append(remaining[:idx], remaining[idx+1:]...)
			} else {
				idx++
			}
		}
		chunks[i] = chunk
		sizes[i] = size
	}

	// Blocks too large to fit any chunk under the target are handed out
	// round-robin, continuing from the last packed chunk.
	slot := numChunks - 1
	for _, entry := range remaining {
		chunks[slot].Add(entry.name)
		sizes[slot] += entry.size
		slot = (slot + 1) % numChunks
	}

	if wf.parentDataset == "" {
		log.WithField("workflow", wf.name).Infof("Created %d primary data chunks with size distribution: %v",
			len(chunks), sizes)
		return chunks, sizes
	}

	// Input blocks were distributed evenly, so the parents they pull in are
	// expected to spread out roughly the same way.
	for i, chunk := range chunks {
		parents := BlockSet{}
		for child := range chunk {
			parents.Update(wf.childToParentBlocks[child])
		}
		for parent := range parents {
			chunk.Add(parent)
			sizes[i] += wf.parentBlocks[parent]
		}
	}
	log.WithField("workflow", wf.name).Infof("Created %d primary+parent data chunks with size distribution: %v",
		len(chunks), sizes)
	return chunks, sizes
}

func gigaBytes(size int64) float64 {
	return float64(size) / 1e9
}
