// Package file stores settings in ~/.keysent/config.toml. Dot-notation keys
// such as "ranking.top_k" become TOML tables, so the file stays hand-editable.
package file
