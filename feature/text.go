package feature

import (
	"sort"
	"strings"
	"unicode"

	"github.com/spaolacci/murmur3"
)

/*
HashTokens splits a raw text value into lowercase word tokens and hashes
each to a 32-bit value, returning the sample's token set as a sorted,
deduplicated slice. The sorted representation makes token selection by
position reproducible across runs and platforms.
*/
func HashTokens(text string) []uint32 {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	if len(words) == 0 {
		return nil
	}
	seen := make(map[uint32]bool, len(words))
	set := make([]uint32, 0, len(words))
	for _, w := range words {
		h := murmur3.Sum32([]byte(w))
		if !seen[h] {
			seen[h] = true
			set = append(set, h)
		}
	}
	sort.Slice(set, func(i, j int) bool { return set[i] < set[j] })
	return set
}
