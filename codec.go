package n5

import (
	"compress/bzip2"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compression type names stored in dataset attributes.
const (
	CompressionRaw   = "raw"
	CompressionGzip  = "gzip"
	CompressionBzip2 = "bzip2"
	CompressionZstd  = "zstd"
)

// Block header modes.
const (
	modeDefault   = 0
	modeVarlength = 1
	modeObject    = 2
)

// maxBlockElements bounds the element count a block header may declare.
const maxBlockElements = 1 << 31

// BlockDecoder turns a raw block stream into a DataBlock, using the dataset
// attributes for element type and compression. Implementations must not
// close r; the caller owns the stream.
type BlockDecoder func(r io.Reader, attrs *DatasetAttributes, gridPosition []int64) (*DataBlock, error)

// AttributesDecoder turns a raw attributes stream into an attributes
// document.
type AttributesDecoder func(r io.Reader) (map[string]json.RawMessage, error)

// DecodeBlock is the default BlockDecoder. The wire format is big-endian: a
// uint16 mode, a uint16 dimensionality, one uint32 size per dimension (plus
// a uint32 element count in varlength mode), followed by the compressed
// element payload.
func DecodeBlock(r io.Reader, attrs *DatasetAttributes, gridPosition []int64) (*DataBlock, error) {
	var mode uint16
	if err := binary.Read(r, binary.BigEndian, &mode); err != nil {
		return nil, fmt.Errorf("%w: failed to read block mode: %v", ErrDecode, err)
	}
	if mode == modeObject {
		return nil, fmt.Errorf("%w: object blocks are not supported", ErrDecode)
	}
	if mode != modeDefault && mode != modeVarlength {
		return nil, fmt.Errorf("%w: unknown block mode %d", ErrDecode, mode)
	}

	var nDim uint16
	if err := binary.Read(r, binary.BigEndian, &nDim); err != nil {
		return nil, fmt.Errorf("%w: failed to read block dimensionality: %v", ErrDecode, err)
	}
	size := make([]int32, nDim)
	for i := range size {
		var s uint32
		if err := binary.Read(r, binary.BigEndian, &s); err != nil {
			return nil, fmt.Errorf("%w: failed to read block size: %v", ErrDecode, err)
		}
		// Sizes come off the wire untrusted; reject anything the element
		// arithmetic below cannot represent so a crafted header fails as a
		// decode error instead of a panic.
		if s > math.MaxInt32 {
			return nil, fmt.Errorf("%w: block size %d exceeds maximum", ErrDecode, s)
		}
		size[i] = int32(s)
	}

	elements := int64(1)
	for _, s := range size {
		elements *= int64(s)
		if elements > maxBlockElements {
			return nil, fmt.Errorf("%w: block declares %d elements, exceeding the %d limit",
				ErrDecode, elements, int64(maxBlockElements))
		}
	}
	numElements := int(elements)
	if mode == modeVarlength {
		var n uint32
		if err := binary.Read(r, binary.BigEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: failed to read element count: %v", ErrDecode, err)
		}
		if n > maxBlockElements {
			return nil, fmt.Errorf("%w: block declares %d elements, exceeding the %d limit",
				ErrDecode, n, int64(maxBlockElements))
		}
		numElements = int(n)
	}

	payload, err := decompress(r, attrs.Compression)
	if err != nil {
		return nil, err
	}

	data, err := decodeElements(payload, attrs.DataType, numElements)
	if err != nil {
		return nil, err
	}

	return &DataBlock{
		GridPosition: gridPosition,
		Size:         size,
		Data:         data,
	}, nil
}

// decompress reads the remainder of r through the codec named by c and
// returns the raw element bytes. A nil compression means raw.
func decompress(r io.Reader, c *Compression) ([]byte, error) {
	name := CompressionRaw
	if c != nil && c.Type != "" {
		name = c.Type
	}

	switch name {
	case CompressionRaw:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read block payload: %v", ErrDecode, err)
		}
		return data, nil
	case CompressionGzip:
		var (
			zr  io.ReadCloser
			err error
		)
		if c != nil && c.UseZlib {
			zr, err = zlib.NewReader(r)
		} else {
			zr, err = gzip.NewReader(r)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to init gzip reader: %v", ErrDecode, err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decompress gzip payload: %v", ErrDecode, err)
		}
		return data, nil
	case CompressionBzip2:
		data, err := io.ReadAll(bzip2.NewReader(r))
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decompress bzip2 payload: %v", ErrDecode, err)
		}
		return data, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to init zstd reader: %v", ErrDecode, err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to decompress zstd payload: %v", ErrDecode, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: unsupported compression: %s", ErrDecode, name)
	}
}

// decodeElements converts big-endian element bytes into a typed slice of
// numElements entries.
func decodeElements(payload []byte, dt DataType, numElements int) (any, error) {
	itemSize, err := dt.Size()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(payload) < numElements*itemSize {
		return nil, fmt.Errorf("%w: truncated block payload: have %d bytes, need %d",
			ErrDecode, len(payload), numElements*itemSize)
	}

	switch dt {
	case Uint8:
		out := make([]uint8, numElements)
		copy(out, payload)
		return out, nil
	case Int8:
		out := make([]int8, numElements)
		for i := range out {
			out[i] = int8(payload[i])
		}
		return out, nil
	case Uint16:
		out := make([]uint16, numElements)
		for i := range out {
			out[i] = binary.BigEndian.Uint16(payload[2*i:])
		}
		return out, nil
	case Int16:
		out := make([]int16, numElements)
		for i := range out {
			out[i] = int16(binary.BigEndian.Uint16(payload[2*i:]))
		}
		return out, nil
	case Uint32:
		out := make([]uint32, numElements)
		for i := range out {
			out[i] = binary.BigEndian.Uint32(payload[4*i:])
		}
		return out, nil
	case Int32:
		out := make([]int32, numElements)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(payload[4*i:]))
		}
		return out, nil
	case Uint64:
		out := make([]uint64, numElements)
		for i := range out {
			out[i] = binary.BigEndian.Uint64(payload[8*i:])
		}
		return out, nil
	case Int64:
		out := make([]int64, numElements)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(payload[8*i:]))
		}
		return out, nil
	case Float32:
		out := make([]float32, numElements)
		for i := range out {
			out[i] = math.Float32frombits(binary.BigEndian.Uint32(payload[4*i:]))
		}
		return out, nil
	case Float64:
		out := make([]float64, numElements)
		for i := range out {
			out[i] = math.Float64frombits(binary.BigEndian.Uint64(payload[8*i:]))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unsupported data type: %q", ErrDecode, string(dt))
	}
}
