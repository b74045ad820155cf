package analyze

import (
	"reflect"
	"strings"
	"sync"

	"github.com/viant/xunsafe"
)

// TypeInfo is the cached declaration table of one owner type.
type TypeInfo struct {
	Type         reflect.Type
	Declarations []Declaration
}

// Registry caches declaration tables per owner type. It is safe for
// concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[reflect.Type]*TypeInfo
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[reflect.Type]*TypeInfo),
	}
}

// Declarations returns the tagged fields of owner in field order. Owners
// that are not pointers to structs have none.
func (r *Registry) Declarations(owner any) []Declaration {
	if owner == nil {
		return nil
	}

	return r.Inspect(reflect.TypeOf(owner)).Declarations
}

// HasTaggedFields reports whether owner declares at least one tagged field.
func (r *Registry) HasTaggedFields(owner any) bool {
	return len(r.Declarations(owner)) > 0
}

// Inspect returns the declaration table for t, building it on first use.
func (r *Registry) Inspect(t reflect.Type) *TypeInfo {
	r.mu.RLock()
	info, ok := r.types[t]
	r.mu.RUnlock()

	if ok {
		return info
	}

	info = inspect(t)

	r.mu.Lock()
	if existing, ok := r.types[t]; ok {
		info = existing
	} else {
		r.types[t] = info
	}
	r.mu.Unlock()

	return info
}

// Register pre-builds the table for the type of owner so the first pass does
// not pay for discovery.
func (r *Registry) Register(owners ...any) {
	for _, o := range owners {
		r.Inspect(reflect.TypeOf(o))
	}
}

func inspect(t reflect.Type) *TypeInfo {
	info := &TypeInfo{Type: t}

	if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
		return info
	}

	collect(info, t.Elem(), 0, nil)

	return info
}

// collect appends the tagged fields of st, located at offset inside the
// owner, then descends into embedded structs so fields of a shared base type
// are found too. Names in shadowed are hidden by an outer field.
func collect(info *TypeInfo, st reflect.Type, offset uintptr, shadowed map[string]bool) {
	names := make(map[string]bool, len(shadowed)+st.NumField())
	for name := range shadowed {
		names[name] = true
	}

	for i := range st.NumField() {
		names[st.Field(i).Name] = true
	}

	for i := range st.NumField() {
		sf := st.Field(i)
		if shadowed[sf.Name] {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			collect(info, sf.Type, offset+sf.Offset, names)
			continue
		}

		hint, ok := sf.Tag.Lookup(TagName)
		if !ok {
			continue
		}

		sf.Offset += offset

		decl := Declaration{
			Field:        sf.Name,
			OwnerType:    info.Type,
			FieldType:    sf.Type,
			DeclaredType: sf.Type,
			Cardinality:  Single,
			ScopeHint:    strings.TrimSpace(hint),
			accessor:     xunsafe.NewField(sf),
		}

		if sf.Type.Kind() == reflect.Slice {
			decl.Cardinality = Many
			decl.DeclaredType = sf.Type.Elem()
		}

		decl.Kind = KindOf(decl.DeclaredType)
		info.Declarations = append(info.Declarations, decl)
	}
}
