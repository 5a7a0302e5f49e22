package n5

import (
	"context"
	"encoding/json"
	"fmt"

	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"
)

// BucketReader reads the same hierarchy layout from a gocloud blob bucket
// (file://, s3://, gs://, ...), sharing the attribute and block decoders
// with the HTTP Reader.
type BucketReader struct {
	bucket      *blob.Bucket
	decodeAttrs AttributesDecoder
	decodeBlock BlockDecoder
}

// NewBucketReader opens the bucket at urlstr as the root of an N5 hierarchy.
func NewBucketReader(ctx context.Context, urlstr string, opts ...Option) (*BucketReader, error) {
	bucket, err := blob.OpenBucket(ctx, urlstr)
	if err != nil {
		return nil, fmt.Errorf("failed to open bucket: %w", err)
	}

	o := defaultReaderOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &BucketReader{
		bucket:      bucket,
		decodeAttrs: o.decodeAttrs,
		decodeBlock: o.decodeBlock,
	}, nil
}

// Exists reports whether a group or dataset is present, defined as its
// attributes key being readable. Errors fold to false, matching the HTTP
// reader's existence predicate.
func (b *BucketReader) Exists(ctx context.Context, dataset string) bool {
	ok, err := b.bucket.Exists(ctx, bucketKey(dataset, attributesFile))
	return err == nil && ok
}

// GetAttributes reads and decodes the attributes document of a group or
// dataset.
func (b *BucketReader) GetAttributes(ctx context.Context, dataset string) (map[string]json.RawMessage, error) {
	key := bucketKey(dataset, attributesFile)
	reader, err := b.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrTransport, key, err)
	}
	defer reader.Close()

	attrs, err := b.decodeAttrs(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attributes at %s: %w", key, err)
	}
	return attrs, nil
}

// GetDatasetAttributes reads a dataset's attributes and extracts the
// declared shape, block size, data type and compression.
func (b *BucketReader) GetDatasetAttributes(ctx context.Context, dataset string) (*DatasetAttributes, error) {
	attrs, err := b.GetAttributes(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return ParseDatasetAttributes(attrs)
}

// ReadBlock reads and decodes the block at gridPosition.
func (b *BucketReader) ReadBlock(ctx context.Context, dataset string, attrs *DatasetAttributes, gridPosition []int64) (*DataBlock, error) {
	key := bucketKey(dataset, BlockKey(gridPosition))
	reader, err := b.bucket.NewReader(ctx, key, nil)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrTransport, key, err)
	}
	defer reader.Close()

	block, err := b.decodeBlock(reader, attrs, gridPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to decode block at %s: %w", key, err)
	}
	return block, nil
}

// Close releases the underlying bucket.
func (b *BucketReader) Close() error {
	return b.bucket.Close()
}

func bucketKey(dataset, leaf string) string {
	if dataset == "" {
		return leaf
	}
	return dataset + delimiter + leaf
}
