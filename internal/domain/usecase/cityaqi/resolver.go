package cityaqi

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"aqi-api/internal/domain/entity"
)

// ResolutionResult is a successful match of a user-supplied city string
// against the coordinate table.
type ResolutionResult struct {
	MatchedKey string
	Entry      entity.CityCoordinateEntry
}

var stripDiacritics = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Resolve maps a user-supplied city string to a coordinate table entry.
// Matching is tiered, first tier that matches wins:
//
//  1. case-insensitive exact match
//  2. normalized substring containment either direction, closest
//     normalized length wins
//  3. highest positional character overlap against the normalized query
//
// This is a best-effort heuristic for a human-facing city picker; false
// positives are acceptable. Absence of a match is a valid result, not an
// error. Table keys are visited in sorted order so ties resolve the same
// way on every call.
func Resolve(query string, table entity.CoordinateTable) *ResolutionResult {
	if len(table) == 0 {
		return nil
	}

	keys := make([]string, 0, len(table))
	for key := range table {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if strings.EqualFold(key, query) {
			return &ResolutionResult{MatchedKey: key, Entry: table[key]}
		}
	}

	queryNorm := normalizeCityName(query)

	type candidate struct {
		key      string
		lenDelta int
	}
	candidates := make([]candidate, 0)
	for _, key := range keys {
		keyNorm := normalizeCityName(key)
		if strings.Contains(keyNorm, queryNorm) || strings.Contains(queryNorm, keyNorm) {
			delta := len(keyNorm) - len(queryNorm)
			if delta < 0 {
				delta = -delta
			}
			candidates = append(candidates, candidate{key: key, lenDelta: delta})
		}
	}
	if len(candidates) > 0 {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].lenDelta < candidates[j].lenDelta
		})
		chosen := candidates[0].key
		return &ResolutionResult{MatchedKey: chosen, Entry: table[chosen]}
	}

	bestScore := 0
	bestKey := ""
	for _, key := range keys {
		score := positionalOverlap(normalizeCityName(key), queryNorm)
		if score > bestScore {
			bestScore = score
			bestKey = key
		}
	}
	if bestScore > 0 {
		return &ResolutionResult{MatchedKey: bestKey, Entry: table[bestKey]}
	}

	return nil
}

// positionalOverlap counts matching characters at equal positions, up to
// the length of the shorter string.
func positionalOverlap(a, b string) int {
	limit := len(a)
	if len(b) < limit {
		limit = len(b)
	}

	score := 0
	for i := 0; i < limit; i++ {
		if a[i] == b[i] {
			score++
		}
	}
	return score
}

// normalizeCityName decomposes the string, drops diacritics, lowercases it
// and keeps only ASCII letters and digits.
func normalizeCityName(name string) string {
	stripped, _, err := transform.String(stripDiacritics, name)
	if err != nil {
		stripped = name
	}

	var builder strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
