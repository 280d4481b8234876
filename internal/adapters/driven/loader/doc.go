// Package loader reads article corpora from disk.
//
// Three source shapes are accepted:
//   - article files (.json, .jsonl, .yaml, .yml) holding a list of
//     {title, content} records, one article per record
//   - plain files (.txt, .md, .html, ...) holding one article each
//   - directories, walked recursively for either of the above
//
// Every article is normalised by MIME type and segmented into sentences
// before it is returned.
package loader
