// Package scene is an in-memory editor host: a hierarchy of game objects
// grouped into scenes and prefab stages, with lifecycle notifications,
// dirty tracking and a pausable play mode.
//
// It implements host.Structure, host.Persistence, host.Player and
// host.EventSource so the resolution engine can run without a real engine.
package scene

import (
	"strconv"

	"auto-assigner/internal/host"
)

var (
	_ host.Structure   = (*World)(nil)
	_ host.Persistence = (*World)(nil)
	_ host.Player      = (*World)(nil)
	_ host.EventSource = (*World)(nil)
	_ host.Node        = (*GameObject)(nil)
	_ host.Transform   = (*Transform)(nil)
)

// World owns every scene, the optional prefab stage and the instance ID
// sequence.
type World struct {
	nextID    host.InstanceID
	scenes    []*Scene
	active    *Scene
	prefab    *PrefabStage
	listeners []subscription
	nextSub   int
	dirty     map[host.ScopeToken]int
	paused    bool
	playing   bool
}

type subscription struct {
	id       int
	listener host.Listener
}

// NewWorld creates an empty world with no open scene.
func NewWorld() *World {
	return &World{
		dirty: make(map[host.ScopeToken]int),
	}
}

func (w *World) allocID() host.InstanceID {
	w.nextID++
	return w.nextID
}

// NewScene creates a scene without opening it.
func (w *World) NewScene(path string) *Scene {
	s := &Scene{world: w, path: path}
	w.scenes = append(w.scenes, s)

	return s
}

// OpenScene makes s the active scene and notifies listeners.
func (w *World) OpenScene(s *Scene) {
	w.active = s
	w.emit(func(l host.Listener) { l.ScopeOpened(w.ActiveScope()) })
}

// ActiveScene returns the active scene, or nil.
func (w *World) ActiveScene() *Scene {
	return w.active
}

// OpenPrefab opens a prefab edit stage whose contents root is named name.
// The stage takes precedence over the active scene until ClosePrefab.
func (w *World) OpenPrefab(name string) *PrefabStage {
	stage := &PrefabStage{world: w}
	stage.root = newGameObject(w, name)
	stage.token = host.ScopeToken("prefab:" + name + "#" + strconv.FormatInt(int64(stage.root.id), 10))
	w.prefab = stage
	w.emit(func(l host.Listener) { l.ScopeOpened(w.ActiveScope()) })

	return stage
}

// ClosePrefab closes the prefab stage, if any, and notifies listeners.
func (w *World) ClosePrefab() {
	if w.prefab == nil {
		return
	}

	scope := w.ActiveScope()
	w.emit(func(l host.Listener) { l.ScopeClosed(scope) })
	w.prefab = nil
	w.NotifyStructureChanged()
}

// PrefabStage returns the open prefab stage, or nil.
func (w *World) PrefabStage() *PrefabStage {
	return w.prefab
}

// ActiveScope implements host.Structure.
func (w *World) ActiveScope() host.Scope {
	if w.prefab != nil {
		return host.Scope{
			Token: w.prefab.token,
			Kind:  host.ScopePrefab,
			Roots: []host.Node{w.prefab.root},
		}
	}

	if w.active != nil {
		return host.Scope{
			Token: host.ScopeToken(w.active.path),
			Kind:  host.ScopeScene,
			Roots: w.active.Roots(),
		}
	}

	return host.Scope{}
}

// MarkDirty implements host.Persistence.
func (w *World) MarkDirty(scope host.Scope) {
	w.dirty[scope.Token]++
}

// DirtyCount returns how many times the unit identified by token was marked
// dirty.
func (w *World) DirtyCount(token host.ScopeToken) int {
	return w.dirty[token]
}

// Save clears the dirty state of the unit identified by token.
func (w *World) Save(token host.ScopeToken) {
	delete(w.dirty, token)
}

// Pause implements host.Player.
func (w *World) Pause() {
	w.paused = true
}

// Paused reports whether play mode was paused.
func (w *World) Paused() bool {
	return w.paused
}

// Playing reports whether play mode was entered.
func (w *World) Playing() bool {
	return w.playing
}

// EnterPlayMode switches to play mode and notifies listeners.
func (w *World) EnterPlayMode() {
	w.playing = true
	w.paused = false
	w.emit(func(l host.Listener) { l.PlayModeEntered() })
}

// ExitPlayMode leaves play mode.
func (w *World) ExitPlayMode() {
	w.playing = false
	w.paused = false
}

// Reload simulates a code reload.
func (w *World) Reload() {
	w.emit(func(l host.Listener) { l.AfterReload() })
}

// NotifyStructureChanged tells listeners the hierarchy changed. Mutators
// on GameObject call it; hosts may also call it for changes the world does
// not see (selection, renames).
func (w *World) NotifyStructureChanged() {
	w.emit(func(l host.Listener) { l.StructureChanged() })
}

// Subscribe implements host.EventSource.
func (w *World) Subscribe(l host.Listener) func() {
	w.nextSub++
	id := w.nextSub
	w.listeners = append(w.listeners, subscription{id: id, listener: l})

	return func() {
		for i, s := range w.listeners {
			if s.id == id {
				w.listeners = append(w.listeners[:i:i], w.listeners[i+1:]...)
				return
			}
		}
	}
}

func (w *World) emit(fn func(l host.Listener)) {
	subs := append([]subscription(nil), w.listeners...)
	for _, s := range subs {
		fn(s.listener)
	}
}

// Scene is a persisted unit holding root game objects.
type Scene struct {
	world *World
	path  string
	roots []*GameObject
}

// Path returns the scene asset path.
func (s *Scene) Path() string {
	return s.path
}

// NewRoot creates a root game object in the scene.
func (s *Scene) NewRoot(name string) *GameObject {
	g := newGameObject(s.world, name)
	g.scene = s
	s.roots = append(s.roots, g)
	s.world.NotifyStructureChanged()

	return g
}

// RootObjects returns the scene's root game objects.
func (s *Scene) RootObjects() []*GameObject {
	return append([]*GameObject(nil), s.roots...)
}

// Roots returns the root game objects as hierarchy nodes.
func (s *Scene) Roots() []host.Node {
	nodes := make([]host.Node, 0, len(s.roots))
	for _, r := range s.roots {
		nodes = append(nodes, r)
	}

	return nodes
}

func (s *Scene) removeRoot(g *GameObject) {
	for i, r := range s.roots {
		if r == g {
			s.roots = append(s.roots[:i:i], s.roots[i+1:]...)
			return
		}
	}
}

// PrefabStage is an isolated editing context for one prefab.
type PrefabStage struct {
	world *World
	token host.ScopeToken
	root  *GameObject
}

// Root returns the prefab contents root.
func (p *PrefabStage) Root() *GameObject {
	return p.root
}

// Token returns the stage identity.
func (p *PrefabStage) Token() host.ScopeToken {
	return p.token
}
