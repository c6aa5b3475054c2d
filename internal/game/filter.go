package game

// Filter returns the words of dict that c admits, in dictionary order.
// The input is never modified. An empty result is a normal outcome: the
// constraints are overdetermined or the dictionary is exhausted.
func Filter(dict []string, c *Constraints) []string {
	out := make([]string, 0, len(dict)/4)
	for _, w := range dict {
		if c.Admits(w) {
			out = append(out, w)
		}
	}
	return out
}
