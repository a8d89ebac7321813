package sqliteutil

import "fmt"

// maxIdentifierLen caps identifier length well below SQLite's own limits.
const maxIdentifierLen = 64

// ValidateIdentifier checks that name is safe to interpolate into SQL as a
// table or column name: ASCII letters, digits, and underscores only, not
// starting with a digit, at most maxIdentifierLen characters. Returns
// ErrInvalidIdentifier otherwise.
//
// Identifiers are built into query text verbatim, so this is the injection
// boundary for the administrative helpers.
func ValidateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidIdentifier)
	}
	if len(name) > maxIdentifierLen {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidIdentifier, name, maxIdentifierLen)
	}

	for i, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return fmt.Errorf("%w: %q starts with a digit", ErrInvalidIdentifier, name)
			}
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidIdentifier, name, c)
		}
	}

	return nil
}
