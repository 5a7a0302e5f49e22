package n5

import (
	"net"
	"net/http"
	"time"
)

// Option configures a Reader.
type Option func(*readerOptions)

type readerOptions struct {
	connectTimeout time.Duration
	readTimeout    time.Duration
	client         *http.Client
	decodeAttrs    AttributesDecoder
	decodeBlock    BlockDecoder
}

func defaultReaderOptions() *readerOptions {
	return &readerOptions{
		connectTimeout: 20 * time.Second,
		readTimeout:    20 * time.Second,
		decodeAttrs:    LoadAttributes,
		decodeBlock:    DecodeBlock,
	}
}

// httpClient builds the client from the configured timeouts, unless a custom
// client was supplied.
func (o *readerOptions) httpClient() *http.Client {
	if o.client != nil {
		return o.client
	}
	return &http.Client{
		Timeout: o.readTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{Timeout: o.connectTimeout}).DialContext,
		},
	}
}

// WithConnectTimeout sets the timeout for establishing a connection.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *readerOptions) {
		if d > 0 {
			o.connectTimeout = d
		}
	}
}

// WithReadTimeout sets the overall timeout for a request, including reading
// the response body.
func WithReadTimeout(d time.Duration) Option {
	return func(o *readerOptions) {
		if d > 0 {
			o.readTimeout = d
		}
	}
}

// WithHTTPClient replaces the constructed HTTP client entirely; the timeout
// options are ignored when one is supplied.
func WithHTTPClient(c *http.Client) Option {
	return func(o *readerOptions) {
		o.client = c
	}
}

// WithAttributesDecoder replaces the JSON attributes decoder, for containers
// that store custom attribute encodings.
func WithAttributesDecoder(d AttributesDecoder) Option {
	return func(o *readerOptions) {
		if d != nil {
			o.decodeAttrs = d
		}
	}
}

// WithBlockDecoder replaces the block payload decoder.
func WithBlockDecoder(d BlockDecoder) Option {
	return func(o *readerOptions) {
		if d != nil {
			o.decodeBlock = d
		}
	}
}
