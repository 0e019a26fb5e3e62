package match

// Ratio returns a similarity score in [0, 1] for two strings using
// Ratcliff/Obershelp matching: twice the number of matching characters
// over the combined length, where matches are found by recursively
// locating the longest common substring.
func Ratio(a, b string) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchTotal(a, b)) / float64(total)
}

func matchTotal(a, b string) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchTotal(a[:ai], b[:bi]) +
		matchTotal(a[ai+size:], b[bi+size:])
}

// longestMatch finds the longest common substring, preferring the
// earliest occurrence in a, then in b.
func longestMatch(a, b string) (ai, bi, size int) {
	runLen := make(map[int]int, len(b))
	for i := 0; i < len(a); i++ {
		next := make(map[int]int, len(b))
		for j := 0; j < len(b); j++ {
			if a[i] != b[j] {
				continue
			}
			k := runLen[j-1] + 1
			next[j] = k
			if k > size {
				ai, bi, size = i-k+1, j-k+1, k
			}
		}
		runLen = next
	}
	return ai, bi, size
}
