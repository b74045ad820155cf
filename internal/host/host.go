// Package host declares the editor services the resolution engine talks to.
//
// The engine never reaches into a concrete scene graph or asset database.
// Everything it needs (hierarchy walks, component queries, asset lookup,
// dirty-marking, pausing, lifecycle notifications) is expressed here as a
// narrow interface; internal/scene and internal/assetdb provide the
// in-memory implementations used by the CLI and the tests.
package host

import "reflect"

// InstanceID is the engine-assigned identity of a live object.
type InstanceID int64

// Object is anything the engine hands out by identity.
type Object interface {
	InstanceID() InstanceID
	Name() string
	// Alive reports false once the object has been destroyed. A destroyed
	// object may still be referenced by a field; such a reference counts as
	// unassigned.
	Alive() bool
}

// Node is a position in the structural hierarchy (a GameObject).
type Node interface {
	Object
	Parent() Node
	Children() []Node
	// Components lists the components attached to this node in attach
	// order, including inactive ones. The transform comes first.
	Components() []Component
	Transform() Transform
	// Find resolves a slash separated child path relative to this node and
	// returns nil when any segment is missing.
	Find(path string) Node
	ActiveSelf() bool
}

// Component is an object attached to a node.
type Component interface {
	Object
	Node() Node
}

// Transform is the component every node carries for its place in the
// hierarchy.
type Transform interface {
	Component
	ChildCount() int
	Child(i int) Transform
}

// Asset is a project-scoped resource resolved through the asset index rather
// than through the hierarchy.
type Asset interface {
	Object
	AssetPath() string
}

// ScopeKind tells which persisted unit is being edited.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeScene
	ScopePrefab
)

// String returns a human-readable scope kind.
func (k ScopeKind) String() string {
	switch k {
	case ScopeScene:
		return "scene"
	case ScopePrefab:
		return "prefab"
	default:
		return "none"
	}
}

// ScopeToken is the opaque identity of a scope: the active scene path or the
// identity of the prefab being edited.
type ScopeToken string

// Scope is the searchable hierarchy currently open in the editor. A prefab
// edit context takes precedence over the active scene.
type Scope struct {
	Token ScopeToken
	Kind  ScopeKind
	Roots []Node
}

// Valid reports whether a scene or prefab is open.
func (s Scope) Valid() bool {
	return s.Kind != ScopeNone
}

// Structure answers hierarchy queries about the current scope.
type Structure interface {
	ActiveScope() Scope
}

// AssetRef identifies one entry of the asset index.
type AssetRef struct {
	GUID string
	Path string
}

// AssetIndex is the project-wide asset database.
type AssetIndex interface {
	// FindAssets returns every asset whose type is assignable to typ, limited
	// to the given folders (and their subfolders) when any are given. The
	// order is the index's own enumeration order.
	FindAssets(typ reflect.Type, folders ...string) ([]AssetRef, error)
	// LoadAsset loads the asset with the given GUID. A nil asset with a nil
	// error means the entry exists but cannot be loaded as typ.
	LoadAsset(guid string, typ reflect.Type) (Asset, error)
}

// Persistence records unsaved changes on a persisted unit.
type Persistence interface {
	MarkDirty(scope Scope)
}

// Player controls the running mode.
type Player interface {
	Pause()
}

// Listener receives editor lifecycle notifications.
type Listener interface {
	StructureChanged()
	ScopeOpened(scope Scope)
	ScopeClosed(scope Scope)
	PlayModeEntered()
	AfterReload()
}

// EventSource delivers lifecycle notifications to subscribed listeners. The
// returned function cancels the subscription.
type EventSource interface {
	Subscribe(l Listener) (unsubscribe func())
}
