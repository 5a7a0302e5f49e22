package n5_test

import (
	"testing"

	n5 "github.com/hanslovsky/n5-rest"
)

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype     n5.DataType
		expected  int
		expectErr bool
	}{
		{n5.Uint8, 1, false},
		{n5.Int8, 1, false},
		{n5.Uint16, 2, false},
		{n5.Int16, 2, false},
		{n5.Uint32, 4, false},
		{n5.Int32, 4, false},
		{n5.Uint64, 8, false},
		{n5.Int64, 8, false},
		{n5.Float32, 4, false},
		{n5.Float64, 8, false},
		{n5.DataType("complex64"), 0, true},
		{n5.DataType(""), 0, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.dtype), func(t *testing.T) {
			size, err := tt.dtype.Size()
			if tt.expectErr {
				if err == nil {
					t.Errorf("expected error for %q, got nil", tt.dtype)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error for %q: %v", tt.dtype, err)
			}
			if size != tt.expected {
				t.Errorf("expected size %d, got %d", tt.expected, size)
			}
		})
	}
}
