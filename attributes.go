package n5

import (
	"encoding/json"
	"fmt"
	"io"
)

// Attribute keys recognized when extracting dataset metadata from a raw
// attributes document.
const (
	dimensionsKey  = "dimensions"
	blockSizeKey   = "blockSize"
	dataTypeKey    = "dataType"
	compressionKey = "compression"

	// Pre-2.0 containers stored the codec as a bare string under this key.
	legacyCompressionKey = "compressionType"
)

// Compression describes the codec applied to block payloads.
type Compression struct {
	Type    string `json:"type"`
	Level   int    `json:"level,omitempty"`
	UseZlib bool   `json:"useZlib,omitempty"`
}

// UnmarshalJSON accepts both the object form {"type":"gzip","level":-1} and
// the legacy bare string form "gzip".
func (c *Compression) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return fmt.Errorf("failed to decode compression name: %w", err)
		}
		*c = Compression{Type: name}
		return nil
	}

	type plain Compression
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode compression: %w", err)
	}
	*c = Compression(p)
	return nil
}

// DatasetAttributes is the metadata a dataset must declare: its shape, the
// block grid cell size, element type, and block payload compression.
type DatasetAttributes struct {
	Dimensions  []int64      `json:"dimensions"`
	BlockSize   []int32      `json:"blockSize"`
	DataType    DataType     `json:"dataType"`
	Compression *Compression `json:"compression"`
}

// LoadAttributes decodes an attributes document from r. The top-level value
// must be a JSON object; values stay opaque raw messages.
func LoadAttributes(r io.Reader) (map[string]json.RawMessage, error) {
	var attrs map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("%w: attributes body is not a JSON object: %v", ErrDecode, err)
	}
	// A top-level null decodes into a nil map without error; that is still
	// not a JSON object.
	if attrs == nil {
		return nil, fmt.Errorf("%w: attributes body is not a JSON object: got null", ErrDecode)
	}
	return attrs, nil
}

// ParseDatasetAttributes extracts dataset metadata from a raw attributes
// document. BlockSize defaults to the dataset dimensions when absent, and a
// missing compression entry means raw blocks; pre-2.0 "compressionType"
// string entries are understood.
func ParseDatasetAttributes(attrs map[string]json.RawMessage) (*DatasetAttributes, error) {
	out := &DatasetAttributes{}

	raw, ok := attrs[dimensionsKey]
	if !ok {
		return nil, fmt.Errorf("%w: attributes missing %q", ErrDecode, dimensionsKey)
	}
	if err := json.Unmarshal(raw, &out.Dimensions); err != nil {
		return nil, fmt.Errorf("%w: invalid %q: %v", ErrDecode, dimensionsKey, err)
	}

	raw, ok = attrs[dataTypeKey]
	if !ok {
		return nil, fmt.Errorf("%w: attributes missing %q", ErrDecode, dataTypeKey)
	}
	if err := json.Unmarshal(raw, &out.DataType); err != nil {
		return nil, fmt.Errorf("%w: invalid %q: %v", ErrDecode, dataTypeKey, err)
	}
	if _, err := out.DataType.Size(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	if raw, ok = attrs[blockSizeKey]; ok {
		if err := json.Unmarshal(raw, &out.BlockSize); err != nil {
			return nil, fmt.Errorf("%w: invalid %q: %v", ErrDecode, blockSizeKey, err)
		}
	} else {
		out.BlockSize = make([]int32, len(out.Dimensions))
		for i, d := range out.Dimensions {
			out.BlockSize[i] = int32(d)
		}
	}
	if len(out.BlockSize) != len(out.Dimensions) {
		return nil, fmt.Errorf("%w: blockSize rank %d does not match dimensions rank %d",
			ErrDecode, len(out.BlockSize), len(out.Dimensions))
	}
	for _, s := range out.BlockSize {
		if s <= 0 {
			return nil, fmt.Errorf("%w: blockSize entries must be positive: %v", ErrDecode, out.BlockSize)
		}
	}

	switch {
	case attrs[compressionKey] != nil:
		raw = attrs[compressionKey]
	case attrs[legacyCompressionKey] != nil:
		raw = attrs[legacyCompressionKey]
	default:
		out.Compression = &Compression{Type: CompressionRaw}
		return out, nil
	}
	out.Compression = &Compression{}
	if err := json.Unmarshal(raw, out.Compression); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return out, nil
}
