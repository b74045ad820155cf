package fixture

import (
	"sort"

	"auto-assigner/internal/assetdb"
	"auto-assigner/internal/host"
	"auto-assigner/internal/scene"
)

// Types maps fixture type names to constructors.
type Types struct {
	components map[string]func(g *scene.GameObject) host.Component
	assets     map[string]func() assetdb.Importable
}

// NewTypes creates an empty type table.
func NewTypes() *Types {
	return &Types{
		components: make(map[string]func(g *scene.GameObject) host.Component),
		assets:     make(map[string]func() assetdb.Importable),
	}
}

// Component registers the component type *T under name.
func Component[T any, P interface {
	*T
	scene.Attachable
}](types *Types, name string) {
	types.components[name] = func(g *scene.GameObject) host.Component {
		return scene.AddComponent(g, P(new(T)))
	}
}

// Asset registers the asset type *T under name.
func Asset[T any, P interface {
	*T
	assetdb.Importable
}](types *Types, name string) {
	types.assets[name] = func() assetdb.Importable {
		return P(new(T))
	}
}

// ComponentNames returns the registered component names, sorted.
func (t *Types) ComponentNames() []string {
	return sortedKeys(t.components)
}

// AssetNames returns the registered asset names, sorted.
func (t *Types) AssetNames() []string {
	return sortedKeys(t.assets)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
