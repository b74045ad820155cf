package assetdb

import (
	"path"
	"strings"

	"auto-assigner/internal/host"
)

// ScriptableObject is the base every project asset type embeds. Identity,
// name and path are assigned on Import.
type ScriptableObject struct {
	id        host.InstanceID
	assetPath string
	destroyed bool
}

func (s *ScriptableObject) bind(id host.InstanceID, assetPath string) {
	s.id = id
	s.assetPath = assetPath
}

func (s *ScriptableObject) markDestroyed() {
	s.destroyed = true
}

// InstanceID implements host.Object.
func (s *ScriptableObject) InstanceID() host.InstanceID {
	return s.id
}

// Name is the file name of the asset without its extension.
func (s *ScriptableObject) Name() string {
	base := path.Base(s.assetPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Alive implements host.Object.
func (s *ScriptableObject) Alive() bool {
	return s != nil && s.id != 0 && !s.destroyed
}

// AssetPath implements host.Asset.
func (s *ScriptableObject) AssetPath() string {
	return s.assetPath
}
