package n5_test

import (
	"testing"

	n5 "github.com/hanslovsky/n5-rest"
)

func TestResolveAttributes(t *testing.T) {
	tests := []struct {
		name     string
		groupURL string
		dataset  string
		expected string
	}{
		{"simple", "http://example.com/n5", "volume", "http://example.com/n5/volume/attributes.json"},
		{"nested", "http://example.com/n5", "a/b/c", "http://example.com/n5/a/b/c/attributes.json"},
		{"root group", "http://example.com/n5", "", "http://example.com/n5//attributes.json"},
		{"trailing slash is not normalized", "http://example.com/n5/", "volume", "http://example.com/n5//volume/attributes.json"},
		{"traversal is not normalized", "http://example.com/n5", "../other", "http://example.com/n5/../other/attributes.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n5.ResolveAttributes(tt.groupURL, tt.dataset); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolveBlock(t *testing.T) {
	tests := []struct {
		name     string
		dataset  string
		position []int64
		expected string
	}{
		{"1d", "volume", []int64{7}, "http://example.com/n5/volume/7"},
		{"3d axis order preserved", "volume", []int64{0, 0, 1}, "http://example.com/n5/volume/0/0/1"},
		{"large coordinates", "volume", []int64{12345678901, 2}, "http://example.com/n5/volume/12345678901/2"},
		{"nested dataset", "a/b", []int64{1, 4}, "http://example.com/n5/a/b/1/4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n5.ResolveBlock("http://example.com/n5", tt.dataset, tt.position)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
