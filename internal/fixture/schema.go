// Package fixture builds an in-memory project from a YAML description.
//
// A fixture lists project assets and scenes; each scene is a tree of named
// game objects carrying components by registered type name. An optional
// prefab is opened on top of the active scene.
package fixture

// File is the root of a fixture document.
type File struct {
	// Assets are imported in order, which fixes the index enumeration order.
	Assets []AssetDef `yaml:"assets,omitempty"`
	Scenes []SceneDef `yaml:"scenes"`
	// Prefab, when set, is opened as a prefab stage after the scenes.
	Prefab *NodeDef `yaml:"prefab,omitempty"`
}

// AssetDef describes one project asset.
type AssetDef struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}

// SceneDef describes one scene.
type SceneDef struct {
	Path string `yaml:"path"`
	// Active opens the scene. The first scene is opened when none is marked.
	Active bool      `yaml:"active,omitempty"`
	Roots  []NodeDef `yaml:"roots,omitempty"`
}

// NodeDef describes a game object and its subtree.
type NodeDef struct {
	Name       string    `yaml:"name"`
	Inactive   bool      `yaml:"inactive,omitempty"`
	Components []string  `yaml:"components,omitempty"`
	Children   []NodeDef `yaml:"children,omitempty"`
}
