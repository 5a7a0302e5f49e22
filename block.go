package n5

import (
	"strconv"
	"strings"
)

// DataBlock is the decoded payload for one grid position. Data holds a typed
// slice matching the dataset's DataType ([]uint8, []int16, []float64, ...).
// The caller owns the block once returned.
type DataBlock struct {
	GridPosition []int64
	Size         []int32
	Data         any
}

// NumElements returns the number of elements stored in the block.
func (b *DataBlock) NumElements() int {
	n := 1
	for _, s := range b.Size {
		n *= int(s)
	}
	return n
}

// BlockGridShape calculates the number of blocks in each dimension.
// For each dimension i, the count is ceil(dimensions[i] / blockSize[i]).
func BlockGridShape(dimensions []int64, blockSize []int32) []int64 {
	if len(dimensions) == 0 || len(blockSize) == 0 {
		return []int64{}
	}
	grid := make([]int64, len(dimensions))
	for i := range dimensions {
		grid[i] = (dimensions[i] + int64(blockSize[i]) - 1) / int64(blockSize[i])
	}
	return grid
}

// BlockKey renders a grid position as the slash-joined decimal path of the
// block beneath its dataset, in grid-axis order.
// Example: [1, 4, 0] -> "1/4/0"
func BlockKey(gridPosition []int64) string {
	if len(gridPosition) == 1 {
		return strconv.FormatInt(gridPosition[0], 10)
	}

	var sb strings.Builder
	for i, p := range gridPosition {
		if i > 0 {
			sb.WriteString(delimiter)
		}
		sb.WriteString(strconv.FormatInt(p, 10))
	}
	return sb.String()
}
