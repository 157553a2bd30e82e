package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Safari77/rupphash/phash"
	"github.com/Safari77/rupphash/types"
)

func info(path string, size int64, h phash.Hash) types.ImageInfo {
	return types.ImageInfo{Path: path, Size: size, CanonicalHash: h}
}

func TestGroupDuplicates(t *testing.T) {
	files := []types.ImageInfo{
		info("a.jpg", 100, 0x0000000000000000),
		info("b.jpg", 500, 0x0000000000000001), // 1 bit from a
		info("c.jpg", 200, 0xffffffffffffffff), // unrelated
		info("d.jpg", 300, 0x0000000000000003), // 2 bits from a, 1 from b
	}

	groups := GroupDuplicates(files, phash.DefaultMaxDistance)
	require.Len(t, groups, 1)

	group := groups[0]
	require.Len(t, group.Files, 3)

	// Largest file first.
	assert.Equal(t, "b.jpg", group.Files[0].Path)
	assert.Equal(t, "d.jpg", group.Files[1].Path)
	assert.Equal(t, "a.jpg", group.Files[2].Path)

	// Worst pair is a-d at 2 bits.
	assert.Equal(t, 2, group.MaxDist)
}

func TestGroupDuplicatesNoMatches(t *testing.T) {
	files := []types.ImageInfo{
		info("a.jpg", 1, 0x0000000000000000),
		info("b.jpg", 2, 0xffffffffffffffff),
	}

	assert.Empty(t, GroupDuplicates(files, phash.DefaultMaxDistance))
	assert.Empty(t, GroupDuplicates(nil, phash.DefaultMaxDistance))
}

func TestGroupDuplicatesZeroThreshold(t *testing.T) {
	files := []types.ImageInfo{
		info("a.jpg", 1, 0x1234),
		info("b.jpg", 2, 0x1234),
		info("c.jpg", 3, 0x1235),
	}

	groups := GroupDuplicates(files, 0)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Files, 2)
	assert.Equal(t, 0, groups[0].MaxDist)
}
