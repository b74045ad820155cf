// Package resolve fills one tagged field of one owner.
//
// Hierarchy kinds search the owner's subtree (optionally narrowed to a child
// path); project assets are looked up through the asset index (optionally
// narrowed to a folder). A field that already holds a live value is never
// touched, and no search failure is ever fatal: every outcome is reported as
// a Result plus diagnostics.
package resolve

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"auto-assigner/internal/analyze"
	"auto-assigner/internal/common"
	"auto-assigner/internal/diagnostic"
	"auto-assigner/internal/host"
	"auto-assigner/internal/match"
)

// Resolver resolves declarations against the hierarchy and the asset index.
type Resolver struct {
	assets host.AssetIndex
	sink   diagnostic.Sink
	config Config
}

// NewResolver creates a resolver. A nil sink discards diagnostics; a nil
// asset index makes every asset lookup come back empty.
func NewResolver(assets host.AssetIndex, sink diagnostic.Sink, config Config) *Resolver {
	if sink == nil {
		sink = diagnostic.Discard
	}

	if config.AssetOrder == "" {
		config.AssetOrder = OrderIndex
	}

	return &Resolver{
		assets: assets,
		sink:   sink,
		config: config,
	}
}

// Config returns the resolver configuration.
func (r *Resolver) Config() Config {
	return r.config
}

// lookup carries one resolution through the search helpers.
type lookup struct {
	owner host.Component
	decl  analyze.Declaration
	label string
}

// Resolve fills decl on owner if it is unassigned.
func (r *Resolver) Resolve(owner host.Component, decl analyze.Declaration) (res Result) {
	l := lookup{owner: owner, decl: decl, label: analyze.Describe(owner)}

	defer func() {
		if p := recover(); p != nil {
			res = r.fail(l, fmt.Errorf("%w: %v", ErrFieldAccess, p))
		}
	}()

	field, err := decl.Value(owner)
	if err != nil {
		return r.fail(l, fmt.Errorf("%w: %w", ErrFieldAccess, err))
	}

	if Assigned(field, decl.Cardinality) {
		return Result{Field: decl.Field, Status: StatusAlreadyAssigned}
	}

	var (
		values []host.Object
		status Status
	)

	switch {
	case decl.Kind == analyze.KindProjectAsset:
		values, status, err = r.resolveAsset(l)
	case decl.Kind.IsHierarchy():
		values, status, err = r.resolveHierarchy(l)
	default:
		r.report(l, diagnostic.DiagnosticError, diagnostic.CodeUnsupportedType,
			fmt.Sprintf("Field '%s' has unsupported type %s", decl.Field, decl.FieldType))

		return Result{Field: decl.Field, Status: StatusError, Err: ErrUnsupportedType}
	}

	if err != nil {
		return r.fail(l, err)
	}

	if len(values) == 0 {
		return Result{Field: decl.Field, Status: StatusNotFound}
	}

	if err := write(field, decl, values); err != nil {
		return r.fail(l, err)
	}

	if r.config.LogAssignments {
		r.report(l, diagnostic.DiagnosticInfo, diagnostic.CodeAssigned, assignedMessage(l, values))
	}

	return Result{Field: decl.Field, Status: status, Values: values}
}

// Clear resets decl on owner to its zero value.
func (r *Resolver) Clear(owner host.Component, decl analyze.Declaration) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrFieldAccess, p)
		}
	}()

	field, err := decl.Value(owner)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFieldAccess, err)
	}

	field.Set(reflect.Zero(decl.FieldType))

	return nil
}

func (r *Resolver) resolveHierarchy(l lookup) ([]host.Object, Status, error) {
	node := l.owner.Node()
	if node == nil {
		return nil, StatusError, ErrDetached
	}

	root := node
	if l.decl.ScopeHint != "" {
		root = node.Find(l.decl.ScopeHint)
		if root == nil {
			r.report(l, diagnostic.DiagnosticWarning, diagnostic.CodePathNotFound,
				fmt.Sprintf("Could not find child path '%s' in %s%s",
					l.decl.ScopeHint, node.Name(), pathHint(node, l.decl.ScopeHint)))

			return nil, StatusNotFound, nil
		}
	}

	typ := l.decl.DeclaredType

	var found []host.Object
	if l.decl.Cardinality == analyze.Many {
		found = collectAll(root, l.decl.Kind, typ)
	} else if first := findFirst(root, l.decl.Kind, typ); first != nil {
		found = []host.Object{first}
	}

	if len(found) == 0 {
		r.report(l, diagnostic.DiagnosticWarning, diagnostic.CodeNotFound,
			fmt.Sprintf("Could not assign field '%s' of type %s (path: '%s')",
				l.decl.Field, l.decl.TypeName(), l.decl.ScopeHint))

		return nil, StatusNotFound, nil
	}

	return found, StatusAssigned, nil
}

// pathHint suggests a correction for the first segment of path that has no
// matching child, keeping the segments that did match.
func pathHint(node host.Node, path string) string {
	var walked []string

	for _, segment := range strings.Split(strings.Trim(path, "/"), "/") {
		var (
			next  host.Node
			names []string
		)

		for _, c := range node.Children() {
			if c.Name() == segment {
				next = c
				break
			}

			names = append(names, c.Name())
		}

		if next == nil {
			best, ok := match.Closest(segment, names)
			if !ok {
				return ""
			}

			return " (did you mean '" + strings.Join(append(walked, best), "/") + "'?)"
		}

		walked = append(walked, segment)
		node = next
	}

	return ""
}

// candidates returns what node contributes for kind, in attach order.
func candidates(node host.Node, kind analyze.Kind) []host.Object {
	switch kind {
	case analyze.KindHierarchyGameObject:
		return []host.Object{node}
	case analyze.KindHierarchyTransform:
		if t := node.Transform(); t != nil {
			return []host.Object{t}
		}

		return nil
	default:
		comps := node.Components()

		out := make([]host.Object, 0, len(comps))
		for _, c := range comps {
			out = append(out, c)
		}

		return out
	}
}

func matches(obj host.Object, typ reflect.Type) bool {
	if obj == nil {
		return false
	}

	v := reflect.ValueOf(obj)
	if v.Kind() == reflect.Pointer && v.IsNil() {
		return false
	}

	return v.Type().AssignableTo(typ) && obj.Alive()
}

// findFirst walks node and its descendants in pre-order and returns the
// first match.
func findFirst(node host.Node, kind analyze.Kind, typ reflect.Type) host.Object {
	for _, c := range candidates(node, kind) {
		if matches(c, typ) {
			return c
		}
	}

	for _, child := range node.Children() {
		if found := findFirst(child, kind, typ); found != nil {
			return found
		}
	}

	return nil
}

// collectAll returns every match under node in pre-order.
func collectAll(node host.Node, kind analyze.Kind, typ reflect.Type) []host.Object {
	var out []host.Object

	var walk func(n host.Node)
	walk = func(n host.Node) {
		for _, c := range candidates(n, kind) {
			if matches(c, typ) {
				out = append(out, c)
			}
		}

		for _, child := range n.Children() {
			walk(child)
		}
	}

	walk(node)

	return out
}

func (r *Resolver) resolveAsset(l lookup) ([]host.Object, Status, error) {
	typ := l.decl.DeclaredType

	var folders []string

	where := " in project"
	if l.decl.ScopeHint != "" {
		folder := NormalizeFolder(l.decl.ScopeHint, r.config.AssetRoot)
		folders = append(folders, folder)
		where = " in folder '" + folder + "'"
	}

	var refs []host.AssetRef

	if r.assets != nil {
		var err error

		refs, err = r.assets.FindAssets(typ, folders...)
		if err != nil {
			return nil, StatusError, fmt.Errorf("%w: %w", ErrAssetIndex, err)
		}
	}

	if r.config.AssetOrder == OrderPath {
		sort.SliceStable(refs, func(i, j int) bool {
			if refs[i].Path != refs[j].Path {
				return refs[i].Path < refs[j].Path
			}

			return refs[i].GUID < refs[j].GUID
		})
	}

	notFound := func() ([]host.Object, Status, error) {
		r.report(l, diagnostic.DiagnosticWarning, diagnostic.CodeNotFound,
			fmt.Sprintf("No instance of %s found%s!", l.decl.TypeName(), where))

		return nil, StatusNotFound, nil
	}

	first, ok := common.First(refs)
	if !ok {
		return notFound()
	}

	if l.decl.Cardinality == analyze.Many {
		var loaded []host.Object

		for _, ref := range refs {
			a, err := r.load(ref, typ)
			if err != nil {
				return nil, StatusError, err
			}

			if a != nil {
				loaded = append(loaded, a)
			}
		}

		if common.IsEmpty(loaded) {
			return notFound()
		}

		return loaded, StatusAssigned, nil
	}

	status := StatusAssigned
	if common.IsMultiple(refs) {
		status = StatusAmbiguousResolvedFirst

		r.report(l, diagnostic.DiagnosticWarning, diagnostic.CodeAmbiguous,
			fmt.Sprintf("Multiple instances of %s found%s. Using first one: %s",
				l.decl.TypeName(), where, first.Path))
	}

	a, err := r.load(first, typ)
	if err != nil {
		return nil, StatusError, err
	}

	if a == nil {
		return notFound()
	}

	return []host.Object{a}, status, nil
}

// load returns nil for entries that cannot be loaded as typ.
func (r *Resolver) load(ref host.AssetRef, typ reflect.Type) (host.Object, error) {
	a, err := r.assets.LoadAsset(ref.GUID, typ)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAssetIndex, err)
	}

	if a == nil || !matches(a, typ) {
		return nil, nil
	}

	return a, nil
}

func write(field reflect.Value, decl analyze.Declaration, values []host.Object) error {
	if decl.Cardinality == analyze.Many {
		s := reflect.MakeSlice(decl.FieldType, 0, len(values))
		for _, v := range values {
			s = reflect.Append(s, reflect.ValueOf(v))
		}

		field.Set(s)

		return nil
	}

	v := reflect.ValueOf(values[0])
	if !v.Type().AssignableTo(decl.FieldType) {
		return fmt.Errorf("%w: %s is not assignable to %s", ErrFieldAccess, v.Type(), decl.FieldType)
	}

	field.Set(v)

	return nil
}

func assignedMessage(l lookup, values []host.Object) string {
	if l.decl.Cardinality == analyze.Many {
		return fmt.Sprintf("Assigned %d %s to '%s'",
			len(values), common.Plural(len(values), l.decl.TypeName()), l.decl.Field)
	}

	return fmt.Sprintf("Assigned %s to '%s'", values[0].Name(), l.decl.Field)
}

func (r *Resolver) fail(l lookup, err error) Result {
	r.report(l, diagnostic.DiagnosticError, diagnostic.CodeFieldError,
		fmt.Sprintf("Could not assign field '%s': %v", l.decl.Field, err))

	return Result{Field: l.decl.Field, Status: StatusError, Err: err}
}

func (r *Resolver) report(l lookup, severity diagnostic.DiagnosticSeverity, code, msg string) {
	r.sink.Report(diagnostic.Diagnostic{
		Severity: severity,
		Code:     code,
		Message:  msg,
		Owner:    l.label,
		Field:    l.decl.Field,
	})
}
