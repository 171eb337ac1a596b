package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridwm/transferor/internal/common/maps"
)

func TestChunkBlocksSingleChunk(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{"InputDataset": "/prim/proc/RAW"})
	wf.SetPrimaryBlocks(map[string]int64{"A": 10, "B": 20})

	for _, numChunks := range []int{0, 1} {
		chunks, sizes := wf.ChunkBlocks(numChunks)
		require.Len(t, chunks, 1)
		assert.Equal(t, BlockSet{"A": true, "B": true}, chunks[0])
		assert.Equal(t, []int64{30}, sizes)
	}
}

func TestChunkBlocksSingleChunkWithParents(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{
		"InputDataset":   "/prim/proc/RAW",
		"IncludeParents": true,
	})
	require.NoError(t, wf.SetParentDataset("/prim/parent/RAW"))
	wf.SetPrimaryBlocks(map[string]int64{"A": 10, "B": 20})
	wf.SetParentBlocks(map[string]int64{"P1": 5})
	require.NoError(t, wf.SetChildToParentBlocks(map[string][]string{"A": {"P1"}}))

	chunks, sizes := wf.ChunkBlocks(1)
	require.Len(t, chunks, 1)
	assert.Equal(t, BlockSet{"A": true, "B": true, "P1": true}, chunks[0])
	assert.Equal(t, []int64{35}, sizes)
}

func TestChunkBlocksFirstFitDescending(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{"InputDataset": "/prim/proc/RAW"})
	wf.SetPrimaryBlocks(map[string]int64{"A": 50, "B": 40, "C": 30, "D": 20, "E": 10})

	// target is 150/2 = 75: the first chunk takes A and D, the second takes
	// B and C; E fits nowhere under the target and is handed out round-robin.
	chunks, sizes := wf.ChunkBlocks(2)
	require.Len(t, chunks, 2)
	assert.Equal(t, BlockSet{"A": true, "D": true}, chunks[0])
	assert.Equal(t, BlockSet{"B": true, "C": true, "E": true}, chunks[1])
	assert.Equal(t, []int64{70, 80}, sizes)
	assert.Equal(t, int64(150), sizes[0]+sizes[1])
}

func TestChunkBlocksEmptyInventory(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{"InputDataset": "/prim/proc/RAW"})
	wf.SetPrimaryBlocks(map[string]int64{})

	chunks, sizes := wf.ChunkBlocks(3)
	require.Len(t, chunks, 3)
	for i := range chunks {
		assert.Empty(t, chunks[i])
		assert.Zero(t, sizes[i])
	}
}

func TestChunkBlocksCoverage(t *testing.T) {
	primary := map[string]int64{
		"b1": 120, "b2": 95, "b3": 80, "b4": 75, "b5": 60,
		"b6": 45, "b7": 30, "b8": 25, "b9": 10, "b10": 5,
	}
	wf := makeWorkflow(t, map[string]any{"InputDataset": "/prim/proc/RAW"})
	wf.SetPrimaryBlocks(primary)

	chunks, sizes := wf.ChunkBlocks(3)
	require.Len(t, chunks, 3)

	seen := map[string]int{}
	var total int64
	for i, chunk := range chunks {
		var chunkSize int64
		for block := range chunk {
			seen[block]++
			chunkSize += primary[block]
		}
		assert.Equal(t, chunkSize, sizes[i])
		total += sizes[i]
	}
	// every primary block is placed exactly once and sizes add up
	assert.Len(t, seen, len(primary))
	for block, count := range seen {
		assert.Equal(t, 1, count, "block %s placed %d times", block, count)
	}
	assert.Equal(t, maps.SumValues(primary), total)
}

func TestChunkBlocksParentFolding(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{
		"InputDataset":   "/prim/proc/RAW",
		"IncludeParents": true,
	})
	require.NoError(t, wf.SetParentDataset("/prim/parent/RAW"))
	wf.SetPrimaryBlocks(map[string]int64{"A": 50, "B": 40, "C": 30, "D": 20, "E": 10})
	wf.SetParentBlocks(map[string]int64{"P1": 5, "P2": 7})
	require.NoError(t, wf.SetChildToParentBlocks(map[string][]string{
		"A": {"P1"},
		"B": {"P1", "P2"},
		"D": {"P2"},
	}))

	chunks, sizes := wf.ChunkBlocks(2)
	require.Len(t, chunks, 2)

	// primaries split {A,D} / {B,C,E}; P1 and P2 are both needed on each
	// side and are duplicated per destination
	assert.Equal(t, BlockSet{"A": true, "D": true, "P1": true, "P2": true}, chunks[0])
	assert.Equal(t, BlockSet{"B": true, "C": true, "E": true, "P1": true, "P2": true}, chunks[1])
	assert.Equal(t, []int64{82, 92}, sizes)
}

func TestChunkBlocksDoesNotMutateInventory(t *testing.T) {
	wf := makeWorkflow(t, map[string]any{"InputDataset": "/prim/proc/RAW"})
	wf.SetPrimaryBlocks(map[string]int64{"A": 50, "B": 40, "C": 30})

	first, firstSizes := wf.ChunkBlocks(2)
	second, secondSizes := wf.ChunkBlocks(2)
	assert.Equal(t, first, second)
	assert.Equal(t, firstSizes, secondSizes)
	assert.Equal(t, map[string]int64{"A": 50, "B": 40, "C": 30}, wf.PrimaryBlocks())

	// a different chunk count on the same inventory is independent
	chunks, _ := wf.ChunkBlocks(1)
	require.Len(t, chunks, 1)
	assert.Len(t, chunks[0], 3)
}
