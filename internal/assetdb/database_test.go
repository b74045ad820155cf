package assetdb

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto-assigner/internal/host"
)

type settings struct {
	ScriptableObject
}

type profile interface {
	host.Asset
	Health() int
}

type enemyProfile struct {
	ScriptableObject
	health int
}

func (e *enemyProfile) Health() int { return e.health }

type bossProfile struct {
	ScriptableObject
}

func (b *bossProfile) Health() int { return 1000 }

func newTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func paths(refs []host.AssetRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Path)
	}

	return out
}

func TestImportAndLoad(t *testing.T) {
	db := newTestDB(t)

	s := &settings{}
	guid, err := db.Import("Assets/ScriptableObjects/Game.asset", s)
	require.NoError(t, err)
	assert.Len(t, guid, 32)

	assert.Equal(t, "Game", s.Name())
	assert.Equal(t, "Assets/ScriptableObjects/Game.asset", s.AssetPath())
	assert.True(t, s.Alive())
	assert.Less(t, int64(s.InstanceID()), int64(0))

	loaded, err := db.LoadAsset(guid, reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Same(t, s, loaded)

	got, err := db.GUIDForPath("Assets/ScriptableObjects/Game.asset")
	require.NoError(t, err)
	assert.Equal(t, guid, got)
}

func TestImportDuplicatePath(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Import("Assets/A.asset", &settings{})
	require.NoError(t, err)

	_, err = db.Import("Assets/A.asset", &settings{})
	assert.Error(t, err)
}

func TestLoadAssetWrongType(t *testing.T) {
	db := newTestDB(t)

	guid, err := db.Import("Assets/A.asset", &settings{})
	require.NoError(t, err)

	loaded, err := db.LoadAsset(guid, reflect.TypeFor[*enemyProfile]())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, err = db.LoadAsset("missing", reflect.TypeFor[*settings]())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFindAssetsByType(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Import("Assets/ScriptableObjects/Enemies/Goblin.asset", &enemyProfile{health: 10})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Game.asset", &settings{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Enemies/Boss/Dragon.asset", &bossProfile{})
	require.NoError(t, err)

	refs, err := db.FindAssets(reflect.TypeFor[*enemyProfile]())
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/ScriptableObjects/Enemies/Goblin.asset"}, paths(refs))

	refs, err = db.FindAssets(reflect.TypeFor[profile]())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Assets/ScriptableObjects/Enemies/Goblin.asset",
		"Assets/ScriptableObjects/Enemies/Boss/Dragon.asset",
	}, paths(refs))

	refs, err = db.FindAssets(reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Len(t, refs, 1)
}

func TestFindAssetsFolderFilter(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Import("Assets/ScriptableObjects/Enemies/Goblin.asset", &enemyProfile{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Enemies/Boss/Orc.asset", &enemyProfile{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Enemies_Old/Rat.asset", &enemyProfile{})
	require.NoError(t, err)

	refs, err := db.FindAssets(reflect.TypeFor[*enemyProfile](), "Assets/ScriptableObjects/Enemies")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Assets/ScriptableObjects/Enemies/Goblin.asset",
		"Assets/ScriptableObjects/Enemies/Boss/Orc.asset",
	}, paths(refs))

	refs, err = db.FindAssets(reflect.TypeFor[*enemyProfile](), "Assets/ScriptableObjects/Enemies/Boss/")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/ScriptableObjects/Enemies/Boss/Orc.asset"}, paths(refs))

	refs, err = db.FindAssets(reflect.TypeFor[*enemyProfile](), "Assets/Nowhere")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestFindAssetsFolderFilterIsExact(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Import("Assets/ScriptableObjects/Enemies/Goblin.asset", &enemyProfile{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/ENEMIES/Rat.asset", &enemyProfile{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Ennemis_%/Orc.asset", &enemyProfile{})
	require.NoError(t, err)
	_, err = db.Import("Assets/ScriptableObjects/Énemies/Troll.asset", &enemyProfile{})
	require.NoError(t, err)

	typ := reflect.TypeFor[*enemyProfile]()

	refs, err := db.FindAssets(typ, "Assets/ScriptableObjects/Enemies")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/ScriptableObjects/Enemies/Goblin.asset"}, paths(refs), "case-sensitive")

	refs, err = db.FindAssets(typ, "Assets/ScriptableObjects/Ennemis_%")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/ScriptableObjects/Ennemis_%/Orc.asset"}, paths(refs))

	refs, err = db.FindAssets(typ, "Assets/ScriptableObjects/Ennemis__")
	require.NoError(t, err)
	assert.Empty(t, refs, "no wildcards")

	refs, err = db.FindAssets(typ, "Assets/ScriptableObjects/Énemies")
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/ScriptableObjects/Énemies/Troll.asset"}, paths(refs))
}

func TestFindAssetsUnknownType(t *testing.T) {
	db := newTestDB(t)

	refs, err := db.FindAssets(reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestRebuildReversesOrder(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Import("Assets/B.asset", &settings{})
	require.NoError(t, err)
	_, err = db.Import("Assets/A.asset", &settings{})
	require.NoError(t, err)

	refs, err := db.FindAssets(reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/B.asset", "Assets/A.asset"}, paths(refs))

	require.NoError(t, db.Rebuild())

	refs, err = db.FindAssets(reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Equal(t, []string{"Assets/A.asset", "Assets/B.asset"}, paths(refs))
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)

	s := &settings{}
	guid, err := db.Import("Assets/A.asset", s)
	require.NoError(t, err)

	require.NoError(t, db.Delete(guid))
	assert.False(t, s.Alive())

	refs, err := db.FindAssets(reflect.TypeFor[*settings]())
	require.NoError(t, err)
	assert.Empty(t, refs)

	assert.ErrorIs(t, db.Delete(guid), ErrNotFound)
}
