package fixture

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"auto-assigner/internal/assetdb"
	"auto-assigner/internal/host"
	"auto-assigner/internal/match"
	"auto-assigner/internal/scene"
)

// ErrUnknownType is returned for component or asset names that were not
// registered.
var ErrUnknownType = errors.New("unknown type")

// Project is a built fixture.
type Project struct {
	World  *scene.World
	Assets *assetdb.Database
	// Scenes in declaration order.
	Scenes []*scene.Scene
	Prefab *scene.PrefabStage
	// Components lists every component built, in declaration order.
	Components []host.Component
}

// Close releases the asset index.
func (p *Project) Close() error {
	return p.Assets.Close()
}

// Scene returns the scene stored at path, or nil.
func (p *Project) Scene(path string) *scene.Scene {
	for _, s := range p.Scenes {
		if s.Path() == path {
			return s
		}
	}

	return nil
}

// LoadFile reads, parses and builds the fixture at path with an in-memory
// asset index.
func LoadFile(path string, types *Types) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, err
	}

	return Build(f, types, ":memory:")
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture YAML: %w", err)
	}

	if len(f.Scenes) == 0 && f.Prefab == nil {
		return nil, errors.New("fixture declares neither scenes nor a prefab")
	}

	return &f, nil
}

// Build creates the world and the asset index described by f. dsn selects
// the asset index database.
func Build(f *File, types *Types, dsn string) (*Project, error) {
	db, err := assetdb.Open(dsn)
	if err != nil {
		return nil, err
	}

	p := &Project{World: scene.NewWorld(), Assets: db}

	if err := p.build(f, types); err != nil {
		_ = db.Close()
		return nil, err
	}

	return p, nil
}

func (p *Project) build(f *File, types *Types) error {
	for i, a := range f.Assets {
		ctor, ok := types.assets[a.Type]
		if !ok {
			return fmt.Errorf("assets[%d] %s: %w %q%s",
				i, a.Path, ErrUnknownType, a.Type, match.Hint(a.Type, types.AssetNames()))
		}

		if _, err := p.Assets.Import(a.Path, ctor()); err != nil {
			return fmt.Errorf("assets[%d]: %w", i, err)
		}
	}

	var active *scene.Scene

	for i, sd := range f.Scenes {
		if sd.Path == "" {
			return fmt.Errorf("scenes[%d]: missing path", i)
		}

		s := p.World.NewScene(sd.Path)
		p.Scenes = append(p.Scenes, s)

		for _, nd := range sd.Roots {
			if err := checkName(nd); err != nil {
				return fmt.Errorf("%s: %w", sd.Path, err)
			}

			if err := p.populate(s.NewRoot(nd.Name), nd, types); err != nil {
				return fmt.Errorf("%s: %w", sd.Path, err)
			}
		}

		if sd.Active && active == nil {
			active = s
		}
	}

	if active == nil && len(p.Scenes) > 0 {
		active = p.Scenes[0]
	}

	if active != nil {
		p.World.OpenScene(active)
	}

	if f.Prefab != nil {
		if err := checkName(*f.Prefab); err != nil {
			return fmt.Errorf("prefab: %w", err)
		}

		p.Prefab = p.World.OpenPrefab(f.Prefab.Name)
		if err := p.populate(p.Prefab.Root(), *f.Prefab, types); err != nil {
			return fmt.Errorf("prefab: %w", err)
		}
	}

	return nil
}

func checkName(nd NodeDef) error {
	if nd.Name == "" {
		return errors.New("game object without a name")
	}

	return nil
}

// populate adds nd's components and children to g.
func (p *Project) populate(g *scene.GameObject, nd NodeDef, types *Types) error {
	g.SetActive(!nd.Inactive)

	for _, name := range nd.Components {
		ctor, ok := types.components[name]
		if !ok {
			return fmt.Errorf("%s: %w %q%s",
				nd.Name, ErrUnknownType, name, match.Hint(name, types.ComponentNames()))
		}

		p.Components = append(p.Components, ctor(g))
	}

	for _, cd := range nd.Children {
		if err := checkName(cd); err != nil {
			return fmt.Errorf("%s: %w", nd.Name, err)
		}

		if err := p.populate(g.NewChild(cd.Name), cd, types); err != nil {
			return fmt.Errorf("%s/%w", nd.Name, err)
		}
	}

	return nil
}
