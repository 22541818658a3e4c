package thread

import (
	"fmt"
	"sort"
	"strings"
	"threadsum/internal/model"
)

const chainSeparator = "; "

// BuildChain renders the ancestor lineage of a cast, root first, as
// "[@author]: text" segments joined by "; ".
//
// An unknown hash yields "", and so does any lineage that runs through a
// missing parent or loops back on itself.
func BuildChain(hash string, casts map[string]model.Cast) string {
	return buildChain(hash, casts, map[string]bool{})
}

func buildChain(hash string, casts map[string]model.Cast, visited map[string]bool) string {
	cast, ok := casts[hash]
	if !ok || visited[hash] {
		return ""
	}
	visited[hash] = true

	current := formatCast(cast)
	if cast.ParentHash == "" {
		return current
	}

	parentChain := buildChain(cast.ParentHash, casts, visited)
	if parentChain == "" {
		return ""
	}
	return parentChain + chainSeparator + current
}

func formatCast(c model.Cast) string {
	return fmt.Sprintf("[@%s]: %s", c.AuthorUsername, c.Text)
}

// FormatThreads returns one chain per resolvable cast, ordered by timestamp.
// Casts sharing a timestamp keep their input order.
func FormatThreads(casts []model.Cast) []string {
	byHash := make(map[string]model.Cast, len(casts))
	for _, c := range casts {
		byHash[c.Hash] = c
	}

	sorted := make([]model.Cast, len(casts))
	copy(sorted, casts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	chains := make([]string, 0, len(sorted))
	for _, c := range sorted {
		chain := BuildChain(c.Hash, byHash)
		if chain == "" {
			continue
		}
		chains = append(chains, chain)
	}

	return chains
}

func Transcript(chains []string) string {
	return strings.Join(chains, "\n")
}
