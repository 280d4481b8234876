// Package ranking scores sentences by TF-IDF and returns the most salient ones.
//
// Every sentence is treated as a pseudo-document. For a call over N sentences:
//
//	tf(t, s)  = raw count of term t in sentence s
//	idf(t)    = ln((1+N)/(1+df(t))) + 1   (domain.IDFSmooth, default)
//	idf(t)    = ln(N/df(t))               (domain.IDFPlain)
//	w(t, s)   = tf(t, s) * idf(t), optionally L2-normalised per sentence
//	raw(s)    = sum of w(t, s) over the distinct vocabulary terms of s,
//	            accumulated in ascending vocabulary index
//	penalty   = 1 + alpha * max(0, words(s) - mean words)
//	score(s)  = raw(s) / penalty
//
// Terms are runs of letters and digits (inner apostrophes kept) after NFKC
// normalisation and lowercasing. The vocabulary indexes terms in ascending
// lexical order. words(s) counts whitespace-separated fields, a coarser split
// than the term tokenizer.
//
// Ranking is a pure function: the vocabulary and weight matrix live only for
// the duration of a call, and identical input yields an identical result.
package ranking
