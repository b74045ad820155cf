package common

import (
	"path"
	"reflect"
)

// UnknownStr is the String() fallback for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// TypeName returns a short, readable name for t: pointers are unwrapped and
// named types are qualified by their package alias, e.g. "platformer.Player".
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" {
		return t.String()
	}

	if alias := PkgAlias(t.PkgPath()); alias != "" {
		return alias + "." + t.Name()
	}

	return t.Name()
}
