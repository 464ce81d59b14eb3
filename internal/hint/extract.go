package hint

import "xqhint/internal/vocab"

// Extract returns every identifier-like token in corpus, left to right,
// repeats included.
func Extract(corpus string) []string {
	return identRe.FindAllString(corpus, -1)
}

// Union appends the vocabulary to ids in fixed order: keywords, types,
// operators, axis specifiers. Nothing is deduplicated.
func Union(ids []string, v vocab.Vocabulary) []string {
	out := make([]string, 0, len(ids)+v.Len())
	out = append(out, ids...)
	return append(out, v.All()...)
}
