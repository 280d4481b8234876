package domain

// ChangeType indicates the type of change detected on a watched source.
type ChangeType int

const (
	// ChangeCreated indicates a new file.
	ChangeCreated ChangeType = iota
	// ChangeUpdated indicates a modified file.
	ChangeUpdated
	// ChangeDeleted indicates a removed or renamed file.
	ChangeDeleted
)

// String returns the string representation of the change type.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change represents a single change to a watched corpus source.
type Change struct {
	// Type is the kind of change.
	Type ChangeType

	// Path is the affected file.
	Path string
}
