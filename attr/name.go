// Package attr validates extended attribute names of the form
// "class.attribute" against the namespaces the kernel actually supports.
package attr

import (
	"errors"
	"fmt"
	"strings"
)

// Name is a validated extended attribute name
type Name string

// Classes are the attribute namespaces accepted as the class part of a name
var Classes = []string{"user", "trusted", "system", "security"}

var (
	// ErrMalformed indicates a name that is not of the form class.attribute
	ErrMalformed = errors.New("malformed attribute name")

	// ErrUnsupportedClass indicates a class outside the supported namespaces
	ErrUnsupportedClass = errors.New("unsupported attribute class")
)

// Parse validates s as a "class.attribute" name and returns it unchanged.
// The split happens on the first dot; case and whitespace are preserved
// since attribute names are case-sensitive in the underlying store.
func Parse(s string) (Name, error) {
	class, attribute, found := strings.Cut(s, ".")
	if !found || attribute == "" {
		return "", fmt.Errorf("%w: %q (expected class.attribute)", ErrMalformed, s)
	}

	for _, c := range Classes {
		if class == c {
			return Name(s), nil
		}
	}

	return "", fmt.Errorf("%w: %q (supported classes: %s)",
		ErrUnsupportedClass, class, strings.Join(Classes, ", "))
}

func (n Name) String() string {
	return string(n)
}

// Class returns the namespace part of the name
func (n Name) Class() string {
	class, _, _ := strings.Cut(string(n), ".")
	return class
}
