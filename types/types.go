package types

import "github.com/Safari77/rupphash/phash"

// ImageInfo holds the metadata and hashes recorded for one scanned file.
type ImageInfo struct {
	Path          string     `json:"path"`
	Format        string     `json:"format"`
	Width         int        `json:"width"`
	Height        int        `json:"height"`
	ModifiedAt    string     `json:"modified_at"`
	Size          int64      `json:"size"`
	Orientation   int        `json:"orientation"`
	IsRawFormat   bool       `json:"is_raw_format"`
	NativeHash    phash.Hash `json:"native_hash"`
	CanonicalHash phash.Hash `json:"canonical_hash"`
}

// DuplicateGroup is a set of files judged near-duplicates of each other.
type DuplicateGroup struct {
	Files []ImageInfo
	// MaxDist is the largest pairwise canonical-hash distance within the
	// group, in bits.
	MaxDist int
}
