package n5_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	_ "gocloud.dev/blob/fileblob"

	n5 "github.com/hanslovsky/n5-rest"
)

func writeBucketFixture(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()

	attrsJSON := `{
		"dimensions": [4, 4],
		"blockSize": [2, 2],
		"dataType": "uint16",
		"compression": {"type": "raw"}
	}`

	if err := os.MkdirAll(filepath.Join(tempDir, "volume", "0"), 0755); err != nil {
		t.Fatalf("failed to create dataset dirs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "attributes.json"), []byte(`{}`), 0644); err != nil {
		t.Fatalf("failed to write root attributes: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tempDir, "volume", "attributes.json"), []byte(attrsJSON), 0644); err != nil {
		t.Fatalf("failed to write dataset attributes: %v", err)
	}

	wire := encodeBlock(t, []uint32{2, 2}, uint16Payload(1, 2, 3, 4))
	if err := os.WriteFile(filepath.Join(tempDir, "volume", "0", "1"), wire, 0644); err != nil {
		t.Fatalf("failed to write block: %v", err)
	}
	return tempDir
}

func TestBucketReader(t *testing.T) {
	tempDir := writeBucketFixture(t)
	ctx := context.Background()

	reader, err := n5.NewBucketReader(ctx, "file:///"+filepath.ToSlash(tempDir))
	if err != nil {
		t.Fatalf("failed to open bucket reader: %v", err)
	}
	defer reader.Close()

	// Existence markers: the root group and the dataset carry attributes.
	if !reader.Exists(ctx, "") {
		t.Error("expected root group to exist")
	}
	if !reader.Exists(ctx, "volume") {
		t.Error("expected dataset to exist")
	}
	if reader.Exists(ctx, "missing") {
		t.Error("expected missing dataset to not exist")
	}

	attrs, err := reader.GetDatasetAttributes(ctx, "volume")
	if err != nil {
		t.Fatalf("failed to read dataset attributes: %v", err)
	}
	if !reflect.DeepEqual(attrs.Dimensions, []int64{4, 4}) {
		t.Errorf("unexpected dimensions: %v", attrs.Dimensions)
	}
	if attrs.DataType != n5.Uint16 {
		t.Errorf("unexpected data type: %s", attrs.DataType)
	}

	block, err := reader.ReadBlock(ctx, "volume", attrs, []int64{0, 1})
	if err != nil {
		t.Fatalf("failed to read block: %v", err)
	}
	if !reflect.DeepEqual(block.Data, []uint16{1, 2, 3, 4}) {
		t.Errorf("unexpected block data: %v", block.Data)
	}

	if _, err := reader.ReadBlock(ctx, "volume", attrs, []int64{3, 3}); !errors.Is(err, n5.ErrNotFound) {
		t.Errorf("expected not-found error for missing block, got %v", err)
	}
	if _, err := reader.GetAttributes(ctx, "missing"); !errors.Is(err, n5.ErrNotFound) {
		t.Errorf("expected not-found error for missing attributes, got %v", err)
	}
}
