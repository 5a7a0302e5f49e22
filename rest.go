// Package n5 implements a read-only client for N5 chunked N-dimensional
// array hierarchies served over HTTP, plus a bucket-backed reader for the
// same layout on local or cloud storage.
package n5

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error classes for failed read operations.
var (
	// ErrTransport covers connection failures, timeouts and unexpected HTTP
	// status codes.
	ErrTransport = errors.New("transport failure")

	// ErrDecode covers malformed attributes documents and block payloads the
	// codec rejects.
	ErrDecode = errors.New("decode failure")

	// ErrNotFound is returned by the bucket reader for missing resources.
	ErrNotFound = errors.New("not found")
)

// Reader is a read-only N5 client over HTTP. The base group URL and the
// connection configuration are fixed at construction; a Reader holds no other
// state, so it is safe for concurrent use.
type Reader struct {
	groupURL    string
	client      *http.Client
	decodeAttrs AttributesDecoder
	decodeBlock BlockDecoder
}

// NewReader creates a Reader rooted at groupURL. Timeouts, the HTTP client,
// and the attribute/block decoders can be adjusted through options.
func NewReader(groupURL string, opts ...Option) *Reader {
	o := defaultReaderOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Reader{
		groupURL:    groupURL,
		client:      o.httpClient(),
		decodeAttrs: o.decodeAttrs,
		decodeBlock: o.decodeBlock,
	}
}

// GroupURL returns the base URL of the hierarchy.
func (r *Reader) GroupURL() string {
	return r.groupURL
}

// Exists reports whether a group or dataset is present, defined as its
// attributes resource answering with HTTP 200. Every failure mode, including
// an unreachable host or a timeout, folds to false: absence of evidence is
// absence of existence. This mirrors the behavior of servers that mark bare
// groups with an empty attributes file.
func (r *Reader) Exists(ctx context.Context, dataset string) bool {
	resp, err := r.get(ctx, ResolveAttributes(r.groupURL, dataset))
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// GetAttributes fetches and decodes the attributes document of a group or
// dataset. The body must be a JSON object at the top level.
func (r *Reader) GetAttributes(ctx context.Context, dataset string) (map[string]json.RawMessage, error) {
	url := ResolveAttributes(r.groupURL, dataset)
	body, err := r.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	attrs, err := r.decodeAttrs(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode attributes at %s: %w", url, err)
	}
	return attrs, nil
}

// GetDatasetAttributes fetches a dataset's attributes and extracts the
// declared shape, block size, data type and compression.
func (r *Reader) GetDatasetAttributes(ctx context.Context, dataset string) (*DatasetAttributes, error) {
	attrs, err := r.GetAttributes(ctx, dataset)
	if err != nil {
		return nil, err
	}
	return ParseDatasetAttributes(attrs)
}

// ReadBlock fetches the block at gridPosition and streams its payload into
// the block decoder together with the dataset attributes. The returned block
// is owned by the caller.
func (r *Reader) ReadBlock(ctx context.Context, dataset string, attrs *DatasetAttributes, gridPosition []int64) (*DataBlock, error) {
	url := ResolveBlock(r.groupURL, dataset, gridPosition)
	body, err := r.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	block, err := r.decodeBlock(body, attrs, gridPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to decode block at %s: %w", url, err)
	}
	return block, nil
}

// List returns the children of a group. Child enumeration is not possible
// over plain HTTP GET, so this always returns an empty listing; it exists to
// satisfy callers that probe hierarchies and must not be mistaken for a real
// directory listing.
func (r *Reader) List(ctx context.Context, pathName string) ([]string, error) {
	return []string{}, nil
}

// open issues a GET against url and returns the response body on status 200.
// Any other outcome is a transport error.
func (r *Reader) open(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := r.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %v", ErrTransport, url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: GET %s: unexpected status %d", ErrTransport, url, resp.StatusCode)
	}
	return resp.Body, nil
}

func (r *Reader) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return r.client.Do(req)
}
