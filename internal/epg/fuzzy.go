// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package epg

// FindBest looks up the entry of nameToID whose key is closest to name.
// maxDist is the largest edit distance accepted.
func FindBest(name string, nameToID map[string]string, maxDist int) (string, bool) {
	key := NameKey(name)
	if key == "" {
		return "", false
	}

	if id, ok := nameToID[key]; ok {
		return id, true
	}

	bestID := ""
	bestKey := ""
	bestDist := maxDist + 1

	for k, id := range nameToID {
		dist := levenshtein(key, k)
		// ties go to the lexically smaller key so results do not depend on map order
		if dist < bestDist || (dist == bestDist && bestID != "" && k < bestKey) {
			bestDist = dist
			bestID = id
			bestKey = k
		}
	}

	if bestDist <= maxDist {
		return bestID, true
	}
	return "", false
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	lenA, lenB := len(ra), len(rb)

	if lenA == 0 {
		return lenB
	}
	if lenB == 0 {
		return lenA
	}

	dp := make([][]int, lenA+1)
	for i := range dp {
		dp[i] = make([]int, lenB+1)
		dp[i][0] = i
	}
	for j := 0; j <= lenB; j++ {
		dp[0][j] = j
	}

	for i := 1; i <= lenA; i++ {
		for j := 1; j <= lenB; j++ {
			cost := 0
			if ra[i-1] != rb[j-1] {
				cost = 1
			}
			dp[i][j] = min(
				dp[i-1][j]+1,      // deletion
				dp[i][j-1]+1,      // insertion
				dp[i-1][j-1]+cost, // substitution
			)
		}
	}
	return dp[lenA][lenB]
}
