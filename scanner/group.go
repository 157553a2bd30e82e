package scanner

import (
	"sort"

	"github.com/Safari77/rupphash/types"
)

// GroupDuplicates clusters files whose canonical hashes lie within
// maxDistance bits of a group seed. Clustering is greedy: each unvisited
// file seeds a group and absorbs every later file within range of the seed.
// Only groups with more than one member are returned.
//
// The comparison runs over all pairs in memory. For collection sizes where
// that matters, a bucketed index would be the next step; a persistent index
// is deliberately out of scope.
func GroupDuplicates(files []types.ImageInfo, maxDistance int) []types.DuplicateGroup {
	visited := make([]bool, len(files))
	var groups []types.DuplicateGroup

	for i := range files {
		if visited[i] {
			continue
		}
		visited[i] = true

		group := []types.ImageInfo{files[i]}
		for j := i + 1; j < len(files); j++ {
			if visited[j] {
				continue
			}
			if files[i].CanonicalHash.Distance(files[j].CanonicalHash) <= maxDistance {
				visited[j] = true
				group = append(group, files[j])
			}
		}

		if len(group) < 2 {
			continue
		}

		// Largest file first; it is usually the original.
		sort.Slice(group, func(a, b int) bool {
			if group[a].Size != group[b].Size {
				return group[a].Size > group[b].Size
			}
			return group[a].Path < group[b].Path
		})

		groups = append(groups, types.DuplicateGroup{
			Files:   group,
			MaxDist: maxPairwiseDistance(group),
		})
	}

	return groups
}

// maxPairwiseDistance returns the worst canonical-hash distance between any
// two members of the group.
func maxPairwiseDistance(group []types.ImageInfo) int {
	max := 0
	for a := 0; a < len(group); a++ {
		for b := a + 1; b < len(group); b++ {
			if d := group[a].CanonicalHash.Distance(group[b].CanonicalHash); d > max {
				max = d
			}
		}
	}
	return max
}
