package analyze

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/viant/xunsafe"

	"auto-assigner/internal/common"
	"auto-assigner/internal/host"
)

// TagName is the struct tag marking a field for automatic assignment.
const TagName = "auto"

//go:generate go tool stringer -type=Kind -trimprefix=Kind -output=kind_string.go
//go:generate go tool stringer -type=Cardinality -output=cardinality_string.go

// Kind selects the search strategy for a declaration.
type Kind int

const (
	KindUnsupported Kind = iota // declared type is neither an asset, a node nor a component

	KindHierarchyComponent
	KindHierarchyGameObject
	KindHierarchyTransform
	KindProjectAsset

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsHierarchy reports whether the kind searches the owner's subtree.
func (k Kind) IsHierarchy() bool {
	switch k {
	default:
		return false
	case KindHierarchyComponent, KindHierarchyGameObject, KindHierarchyTransform:
		return true
	}
}

// Cardinality tells whether a field holds one object or an ordered slice.
type Cardinality int

const (
	Single Cardinality = iota
	Many
)

var (
	assetType     = reflect.TypeFor[host.Asset]()
	nodeType      = reflect.TypeFor[host.Node]()
	transformType = reflect.TypeFor[host.Transform]()
	componentType = reflect.TypeFor[host.Component]()
)

// KindOf classifies a declared (element) type. Project-scoped assets win
// over everything else; transforms are recognised before generic
// components because every transform is a component too.
func KindOf(t reflect.Type) Kind {
	if t == nil {
		return KindUnsupported
	}

	switch {
	case t.Implements(assetType):
		return KindProjectAsset
	case t.Implements(nodeType):
		return KindHierarchyGameObject
	case t.Implements(transformType):
		return KindHierarchyTransform
	case t.Implements(componentType):
		return KindHierarchyComponent
	default:
		return KindUnsupported
	}
}

// ErrOwnerMismatch is returned when a declaration is used with an owner of
// another type.
var ErrOwnerMismatch = errors.New("declaration does not belong to owner type")

// Declaration describes one tagged field of an owner type.
type Declaration struct {
	// Field is the Go field name.
	Field string
	// OwnerType is the pointer-to-struct type declaring the field.
	OwnerType reflect.Type
	// FieldType is the field's full type ([]T for Many).
	FieldType reflect.Type
	// DeclaredType is the field type, or its element type for Many.
	DeclaredType reflect.Type
	Cardinality  Cardinality
	// ScopeHint is the tag value: a child path or an asset folder.
	ScopeHint string
	Kind      Kind

	accessor *xunsafe.Field
}

// String returns "Field (Kind, Cardinality)".
func (d Declaration) String() string {
	return fmt.Sprintf("%s (%s, %s)", d.Field, d.Kind, d.Cardinality)
}

// TypeName returns the short name of the declared type.
func (d Declaration) TypeName() string {
	return common.TypeName(d.DeclaredType)
}

// Value returns a settable view of the field on owner. Unexported fields are
// reachable too.
func (d Declaration) Value(owner any) (reflect.Value, error) {
	if owner == nil || reflect.TypeOf(owner) != d.OwnerType {
		return reflect.Value{}, fmt.Errorf("%s on %T: %w", d.Field, owner, ErrOwnerMismatch)
	}

	if d.accessor == nil {
		return reflect.Value{}, fmt.Errorf("%s: declaration was not produced by a registry", d.Field)
	}

	ptr := xunsafe.AsPointer(owner)
	if ptr == nil {
		return reflect.Value{}, fmt.Errorf("%s: nil owner", d.Field)
	}

	return reflect.NewAt(d.FieldType, d.accessor.Pointer(ptr)).Elem(), nil
}

// Describe returns "Type (name)" for diagnostics, or "Type (nil)" for a
// typed nil pointer.
func Describe(obj host.Object) string {
	if obj == nil {
		return ""
	}

	name := common.TypeName(reflect.TypeOf(obj))
	if v := reflect.ValueOf(obj); v.Kind() == reflect.Pointer && v.IsNil() {
		return name + " (nil)"
	}

	return name + " (" + obj.Name() + ")"
}
