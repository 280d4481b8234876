// Package connectors provides source-side integrations that feed the
// corpus loader. The filesystem connector watches article files so that a
// corpus can be reloaded and re-ranked when its sources change.
package connectors
