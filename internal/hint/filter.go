package hint

import "strings"

// Prefix derives the filter prefix from the text typed since the anchor: the
// lowercased first space-separated field. Empty input yields "".
func Prefix(written string) string {
	return strings.Split(strings.ToLower(written), " ")[0]
}

// Filter keeps the candidates whose lowercased text starts with prefix,
// preserving order and original case. prefix is expected in lower case.
func Filter(candidates []string, prefix string) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if strings.HasPrefix(strings.ToLower(c), prefix) {
			out = append(out, c)
		}
	}
	return out
}
