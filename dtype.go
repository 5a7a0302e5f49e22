package n5

import "fmt"

// DataType identifies the element type of a dataset, using the names the
// format stores in attributes.json.
type DataType string

const (
	Uint8   DataType = "uint8"
	Uint16  DataType = "uint16"
	Uint32  DataType = "uint32"
	Uint64  DataType = "uint64"
	Int8    DataType = "int8"
	Int16   DataType = "int16"
	Int32   DataType = "int32"
	Int64   DataType = "int64"
	Float32 DataType = "float32"
	Float64 DataType = "float64"
)

// Size returns the element size in bytes.
func (t DataType) Size() (int, error) {
	switch t {
	case Uint8, Int8:
		return 1, nil
	case Uint16, Int16:
		return 2, nil
	case Uint32, Int32, Float32:
		return 4, nil
	case Uint64, Int64, Float64:
		return 8, nil
	default:
		return 0, fmt.Errorf("unsupported data type: %q", string(t))
	}
}
