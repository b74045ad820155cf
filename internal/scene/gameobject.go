package scene

import (
	"strings"

	"auto-assigner/internal/host"
)

// GameObject is a node of the hierarchy. Every game object carries a
// Transform as its first component.
type GameObject struct {
	world      *World
	id         host.InstanceID
	name       string
	active     bool
	destroyed  bool
	scene      *Scene // set for scene roots only
	parent     *GameObject
	children   []*GameObject
	transform  *Transform
	components []host.Component
}

func newGameObject(w *World, name string) *GameObject {
	g := &GameObject{world: w, id: w.allocID(), name: name, active: true}
	g.transform = &Transform{}
	g.transform.attach(g, w.allocID())
	g.components = []host.Component{g.transform}

	return g
}

// InstanceID implements host.Object.
func (g *GameObject) InstanceID() host.InstanceID {
	return g.id
}

// Name implements host.Object.
func (g *GameObject) Name() string {
	return g.name
}

// Alive implements host.Object.
func (g *GameObject) Alive() bool {
	return g != nil && !g.destroyed
}

// ActiveSelf implements host.Node.
func (g *GameObject) ActiveSelf() bool {
	return g.active
}

// SetActive toggles the object's own active flag. Inactive objects still
// take part in resolution.
func (g *GameObject) SetActive(active bool) {
	g.active = active
}

// Parent implements host.Node.
func (g *GameObject) Parent() host.Node {
	if g.parent == nil {
		return nil
	}

	return g.parent
}

// ParentObject returns the parent game object, or nil for roots.
func (g *GameObject) ParentObject() *GameObject {
	return g.parent
}

// Children implements host.Node.
func (g *GameObject) Children() []host.Node {
	nodes := make([]host.Node, 0, len(g.children))
	for _, c := range g.children {
		nodes = append(nodes, c)
	}

	return nodes
}

// ChildObjects returns the direct children in sibling order.
func (g *GameObject) ChildObjects() []*GameObject {
	return append([]*GameObject(nil), g.children...)
}

// Components implements host.Node.
func (g *GameObject) Components() []host.Component {
	return append([]host.Component(nil), g.components...)
}

// Transform implements host.Node.
func (g *GameObject) Transform() host.Transform {
	return g.transform
}

// Find implements host.Node. Segments match direct child names exactly; the
// first child with a matching name wins.
func (g *GameObject) Find(path string) host.Node {
	found := g.FindObject(path)
	if found == nil {
		return nil
	}

	return found
}

// FindObject is Find returning the concrete type.
func (g *GameObject) FindObject(path string) *GameObject {
	path = strings.Trim(path, "/")
	if path == "" {
		return g
	}

	current := g
	for _, segment := range strings.Split(path, "/") {
		var next *GameObject

		for _, c := range current.children {
			if c.name == segment {
				next = c
				break
			}
		}

		if next == nil {
			return nil
		}

		current = next
	}

	return current
}

// NewChild creates a child game object appended after the existing
// children.
func (g *GameObject) NewChild(name string) *GameObject {
	c := newGameObject(g.world, name)
	c.parent = g
	g.children = append(g.children, c)
	g.world.NotifyStructureChanged()

	return c
}

// SetParent moves g under parent, after its existing children. Moving a
// scene root removes it from the scene's root list.
func (g *GameObject) SetParent(parent *GameObject) {
	g.detach()
	g.parent = parent
	parent.children = append(parent.children, g)
	g.world.NotifyStructureChanged()
}

// SetSiblingIndex moves g to position i among its siblings.
func (g *GameObject) SetSiblingIndex(i int) {
	if g.parent == nil {
		return
	}

	siblings := g.parent.children
	for j, c := range siblings {
		if c == g {
			siblings = append(siblings[:j:j], siblings[j+1:]...)
			break
		}
	}

	i = max(0, min(i, len(siblings)))
	siblings = append(siblings[:i:i], append([]*GameObject{g}, siblings[i:]...)...)
	g.parent.children = siblings
	g.world.NotifyStructureChanged()
}

// Destroy removes g from the hierarchy and marks it, its descendants and all
// their components as destroyed. References held elsewhere become dead.
func (g *GameObject) Destroy() {
	g.detach()
	g.markDestroyed()
	g.world.NotifyStructureChanged()
}

func (g *GameObject) markDestroyed() {
	g.destroyed = true
	for _, c := range g.children {
		c.markDestroyed()
	}
}

func (g *GameObject) detach() {
	if g.scene != nil {
		g.scene.removeRoot(g)
		g.scene = nil
	}

	if g.parent == nil {
		return
	}

	siblings := g.parent.children
	for i, c := range siblings {
		if c == g {
			g.parent.children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}

	g.parent = nil
}

func (g *GameObject) removeComponent(id host.InstanceID) {
	for i, c := range g.components {
		if c.InstanceID() == id {
			g.components = append(g.components[:i:i], g.components[i+1:]...)
			return
		}
	}
}

// Attachable is implemented by every type embedding Behaviour.
type Attachable interface {
	host.Component
	attach(g *GameObject, id host.InstanceID)
}

// AddComponent attaches c to g and returns it.
func AddComponent[T Attachable](g *GameObject, c T) T {
	c.attach(g, g.world.allocID())
	g.components = append(g.components, c)
	g.world.NotifyStructureChanged()

	return c
}

// Transform is the hierarchy component every game object carries.
type Transform struct {
	Behaviour
}

// ChildCount implements host.Transform.
func (t *Transform) ChildCount() int {
	return len(t.gameObject.children)
}

// Child implements host.Transform.
func (t *Transform) Child(i int) host.Transform {
	return t.gameObject.children[i].transform
}

// Behaviour is the base every component type embeds.
type Behaviour struct {
	id         host.InstanceID
	gameObject *GameObject
	destroyed  bool
}

func (b *Behaviour) attach(g *GameObject, id host.InstanceID) {
	b.gameObject = g
	b.id = id
}

// InstanceID implements host.Object.
func (b *Behaviour) InstanceID() host.InstanceID {
	return b.id
}

// Name returns the name of the game object the component is attached to.
func (b *Behaviour) Name() string {
	if b == nil || b.gameObject == nil {
		return ""
	}

	return b.gameObject.name
}

// Alive implements host.Object.
func (b *Behaviour) Alive() bool {
	return b != nil && b.gameObject != nil && !b.destroyed && !b.gameObject.destroyed
}

// Node implements host.Component.
func (b *Behaviour) Node() host.Node {
	if b.gameObject == nil {
		return nil
	}

	return b.gameObject
}

// GameObject returns the owning game object.
func (b *Behaviour) GameObject() *GameObject {
	return b.gameObject
}

// Destroy detaches the component from its game object.
func (b *Behaviour) Destroy() {
	if b.gameObject == nil || b.destroyed {
		return
	}

	b.destroyed = true
	b.gameObject.removeComponent(b.id)
	b.gameObject.world.NotifyStructureChanged()
}
