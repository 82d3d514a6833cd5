package typesystem

import (
	"regexp"

	"pagedb"
)

// identifierPattern enforces the grammar named in spec.md §6: letters and
// digits only, starting with a letter. Rejects "name_" (trailing
// underscore), "n@me" (reserved separator), and "<name>" (reserved struct
// delimiters) — exactly scenario S1.
var identifierPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*$`)

// ValidateIdentifier returns a TypeError if name does not match the
// canonical-string identifier grammar.
func ValidateIdentifier(name string) error {
	if !identifierPattern.MatchString(name) {
		return pagedb.TypeErrorf("invalid identifier: " + name)
	}
	return nil
}
