package n5

import "strings"

const (
	// attributesFile is the fixed-name metadata resource beneath every group
	// and dataset. Its presence is what marks a node as existing.
	attributesFile = "attributes.json"

	delimiter = "/"
)

// ResolveAttributes returns the URL of the attributes resource for a group or
// dataset beneath groupURL. Segments are joined verbatim with a single "/";
// no normalization of double slashes or traversal sequences is performed, so
// malformed input yields a malformed URL that fails at request time.
func ResolveAttributes(groupURL, dataset string) string {
	return joinPath(groupURL, dataset, attributesFile)
}

// ResolveBlock returns the URL of the block at gridPosition within a dataset
// beneath groupURL. Grid coordinates are rendered in decimal and joined in
// grid-axis order.
func ResolveBlock(groupURL, dataset string, gridPosition []int64) string {
	return joinPath(groupURL, dataset, BlockKey(gridPosition))
}

func joinPath(segments ...string) string {
	return strings.Join(segments, delimiter)
}
