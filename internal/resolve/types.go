package resolve

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"auto-assigner/internal/analyze"
	"auto-assigner/internal/host"
)

//go:generate go tool stringer -type=Status -trimprefix=Status -output=status_string.go

// Status is the outcome of resolving one field.
type Status int

const (
	// StatusAssigned means the field was written.
	StatusAssigned Status = iota
	// StatusAlreadyAssigned means the field held a live value; nothing was searched.
	StatusAlreadyAssigned
	// StatusNotFound means no candidate matched; the field is left as is.
	StatusNotFound
	// StatusAmbiguousResolvedFirst means several candidates matched a Single
	// field and the first one was written.
	StatusAmbiguousResolvedFirst
	// StatusError means a reflection or index fault; the field is left as is.
	StatusError
)

var (
	// ErrFieldAccess wraps faults reading or writing a field.
	ErrFieldAccess = errors.New("field access failed")
	// ErrAssetIndex wraps asset index failures.
	ErrAssetIndex = errors.New("asset index query failed")
	// ErrUnsupportedType is returned for tagged fields whose type is neither
	// an asset, a node, a transform nor a component.
	ErrUnsupportedType = errors.New("unsupported field type")
	// ErrDetached is returned for owners that are not attached to a node.
	ErrDetached = errors.New("owner is not attached to a node")
)

// Result is the outcome of resolving one declaration.
type Result struct {
	Field  string
	Status Status
	// Values holds what was written, in field order.
	Values []host.Object
	Err    error
}

// Changed reports whether the field was written.
func (r Result) Changed() bool {
	return (r.Status == StatusAssigned || r.Status == StatusAmbiguousResolvedFirst) && len(r.Values) > 0
}

// AssetOrder selects how ties between asset candidates are broken.
type AssetOrder string

const (
	// OrderIndex keeps the asset index's enumeration order. It is not
	// guaranteed to survive index rebuilds.
	OrderIndex AssetOrder = "index"
	// OrderPath sorts candidates by asset path, then GUID.
	OrderPath AssetOrder = "path"
)

// ParseAssetOrder validates an order name; the empty string selects
// OrderIndex.
func ParseAssetOrder(s string) (AssetOrder, error) {
	switch AssetOrder(s) {
	case "", OrderIndex:
		return OrderIndex, nil
	case OrderPath:
		return OrderPath, nil
	default:
		return "", fmt.Errorf("unknown asset order %q (want %q or %q)", s, OrderIndex, OrderPath)
	}
}

// DefaultAssetRoot is the folder asset scope hints are relative to.
const DefaultAssetRoot = "Assets/ScriptableObjects"

// Config holds resolver settings.
type Config struct {
	// AssetRoot is prepended to asset folder hints that are not already
	// under it.
	AssetRoot string
	// AssetOrder breaks ties between asset candidates.
	AssetOrder AssetOrder
	// LogAssignments emits an info diagnostic for every written field.
	LogAssignments bool
}

// DefaultConfig returns the default resolver configuration.
func DefaultConfig() Config {
	return Config{
		AssetRoot:      DefaultAssetRoot,
		AssetOrder:     OrderIndex,
		LogAssignments: true,
	}
}

// NormalizeFolder places an asset folder hint under root unless it already
// is, e.g. "Enemies" -> "Assets/ScriptableObjects/Enemies".
func NormalizeFolder(hint, root string) string {
	hint = strings.Trim(strings.TrimSpace(hint), "/")
	root = strings.Trim(root, "/")

	if root == "" || hint == root || strings.HasPrefix(hint, root+"/") {
		return hint
	}

	return root + "/" + hint
}

// Assigned reports whether a field value counts as assigned: a Single value
// must be a live object, a Many value must be non-empty.
func Assigned(v reflect.Value, c analyze.Cardinality) bool {
	if c == analyze.Many {
		return v.Kind() == reflect.Slice && v.Len() > 0
	}

	return isLive(v)
}

// Violates reports whether a field value fails validation: a Single value
// that is nil or dead, or a Many value that is empty or holds a dead
// element.
func Violates(v reflect.Value, c analyze.Cardinality) bool {
	if c != analyze.Many {
		return !isLive(v)
	}

	if v.Kind() != reflect.Slice || v.Len() == 0 {
		return true
	}

	for i := range v.Len() {
		if !isLive(v.Index(i)) {
			return true
		}
	}

	return false
}

func isLive(v reflect.Value) bool {
	if !v.IsValid() {
		return false
	}

	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return false
		}

		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return false
		}
	default:
	}

	if obj, ok := v.Interface().(host.Object); ok {
		return obj.Alive()
	}

	return !v.IsZero()
}
