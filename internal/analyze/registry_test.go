package analyze

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto-assigner/internal/assetdb"
	"auto-assigner/internal/host"
	"auto-assigner/internal/scene"
)

type collider interface {
	host.Component
	Bounds() float64
}

type boxCollider struct {
	scene.Behaviour
}

func (b *boxCollider) Bounds() float64 { return 1 }

type gameSettings struct {
	assetdb.ScriptableObject
}

type player struct {
	scene.Behaviour

	Body      *boxCollider       `auto:"Body"`
	Colliders []collider         `auto:""`
	Root      *scene.GameObject  `auto:""`
	Bones     []*scene.Transform `auto:" Skeleton "`
	Settings  *gameSettings      `auto:"Settings"`
	settings  *gameSettings      `auto:""`
	Speed     float64            `auto:""`
	Plain     *boxCollider
}

type baseEnemy struct {
	scene.Behaviour

	Body    *boxCollider  `auto:""`
	Profile *gameSettings `auto:"Enemies"`
}

type boss struct {
	baseEnemy

	Weapon *boxCollider `auto:"Hand"`
}

type shadowingBoss struct {
	baseEnemy

	Body *boxCollider `auto:"Override"`
}

type untagged struct {
	scene.Behaviour
	Body *boxCollider
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want Kind
	}{
		{"concrete component", reflect.TypeFor[*boxCollider](), KindHierarchyComponent},
		{"interface component", reflect.TypeFor[collider](), KindHierarchyComponent},
		{"any component", reflect.TypeFor[host.Component](), KindHierarchyComponent},
		{"game object", reflect.TypeFor[*scene.GameObject](), KindHierarchyGameObject},
		{"node interface", reflect.TypeFor[host.Node](), KindHierarchyGameObject},
		{"transform", reflect.TypeFor[*scene.Transform](), KindHierarchyTransform},
		{"transform interface", reflect.TypeFor[host.Transform](), KindHierarchyTransform},
		{"asset", reflect.TypeFor[*gameSettings](), KindProjectAsset},
		{"asset interface", reflect.TypeFor[host.Asset](), KindProjectAsset},
		{"value struct", reflect.TypeFor[boxCollider](), KindUnsupported},
		{"scalar", reflect.TypeFor[float64](), KindUnsupported},
		{"nil", nil, KindUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.typ))
		})
	}
}

func TestRegistryDeclarations(t *testing.T) {
	r := NewRegistry()

	decls := r.Declarations(&player{})
	require.Len(t, decls, 7)

	byName := map[string]Declaration{}
	for _, d := range decls {
		byName[d.Field] = d
	}

	assert.Equal(t, "Body", decls[0].Field)
	assert.Equal(t, "Speed", decls[6].Field)

	body := byName["Body"]
	assert.Equal(t, KindHierarchyComponent, body.Kind)
	assert.Equal(t, Single, body.Cardinality)
	assert.Equal(t, "Body", body.ScopeHint)

	colliders := byName["Colliders"]
	assert.Equal(t, Many, colliders.Cardinality)
	assert.Equal(t, reflect.TypeFor[collider](), colliders.DeclaredType)
	assert.Equal(t, reflect.TypeFor[[]collider](), colliders.FieldType)
	assert.Equal(t, KindHierarchyComponent, colliders.Kind)

	assert.Equal(t, KindHierarchyGameObject, byName["Root"].Kind)
	assert.Equal(t, KindHierarchyTransform, byName["Bones"].Kind)
	assert.Equal(t, "Skeleton", byName["Bones"].ScopeHint)
	assert.Equal(t, KindProjectAsset, byName["Settings"].Kind)
	assert.Equal(t, KindProjectAsset, byName["settings"].Kind)
	assert.Equal(t, KindUnsupported, byName["Speed"].Kind)
	assert.NotContains(t, byName, "Plain")

	assert.Equal(t, "Colliders (HierarchyComponent, Many)", colliders.String())
	assert.Equal(t, "analyze.boxCollider", body.TypeName())
}

func TestRegistryCaches(t *testing.T) {
	r := NewRegistry()
	r.Register(&player{})

	first := r.Inspect(reflect.TypeFor[*player]())
	second := r.Inspect(reflect.TypeFor[*player]())
	assert.Same(t, first, second)
}

func TestRegistryNonStructOwners(t *testing.T) {
	r := NewRegistry()

	assert.Empty(t, r.Declarations(nil))
	assert.Empty(t, r.Declarations(player{}))
	assert.Empty(t, r.Declarations(42))
	assert.False(t, r.HasTaggedFields(&untagged{}))
	assert.True(t, r.HasTaggedFields(&player{}))
}

func TestDeclarationValue(t *testing.T) {
	r := NewRegistry()
	p := &player{}

	var unexported Declaration

	for _, d := range r.Declarations(p) {
		if d.Field == "settings" {
			unexported = d
		}
	}

	v, err := unexported.Value(p)
	require.NoError(t, err)
	require.True(t, v.CanSet())
	assert.True(t, v.IsNil())

	s := &gameSettings{}
	v.Set(reflect.ValueOf(s))
	assert.Same(t, s, p.settings)

	colliders := r.Declarations(p)[1]
	cv, err := colliders.Value(p)
	require.NoError(t, err)

	box := &boxCollider{}
	cv.Set(reflect.ValueOf([]collider{box}))
	require.Len(t, p.Colliders, 1)
	assert.Same(t, box, p.Colliders[0])
}

func TestRegistryEmbeddedBase(t *testing.T) {
	r := NewRegistry()
	b := &boss{}

	decls := r.Declarations(b)
	require.Len(t, decls, 3)
	assert.Equal(t, "Body", decls[0].Field)
	assert.Equal(t, "Profile", decls[1].Field)
	assert.Equal(t, "Enemies", decls[1].ScopeHint)
	assert.Equal(t, KindProjectAsset, decls[1].Kind)
	assert.Equal(t, "Weapon", decls[2].Field)
	assert.Equal(t, reflect.TypeFor[*boss](), decls[0].OwnerType)
	assert.True(t, r.HasTaggedFields(b))

	body := &boxCollider{}
	v, err := decls[0].Value(b)
	require.NoError(t, err)
	v.Set(reflect.ValueOf(body))
	assert.Same(t, body, b.Body)

	weapon := &boxCollider{}
	v, err = decls[2].Value(b)
	require.NoError(t, err)
	v.Set(reflect.ValueOf(weapon))
	assert.Same(t, weapon, b.Weapon)
	assert.Same(t, body, b.Body)
}

func TestRegistryOuterFieldShadowsEmbedded(t *testing.T) {
	r := NewRegistry()
	b := &shadowingBoss{}

	decls := r.Declarations(b)
	require.Len(t, decls, 2)
	assert.Equal(t, "Profile", decls[0].Field)
	assert.Equal(t, "Body", decls[1].Field)
	assert.Equal(t, "Override", decls[1].ScopeHint)

	body := &boxCollider{}
	v, err := decls[1].Value(b)
	require.NoError(t, err)
	v.Set(reflect.ValueOf(body))
	assert.Same(t, body, b.Body)
	assert.Nil(t, b.baseEnemy.Body)
}

func TestDeclarationValueOwnerMismatch(t *testing.T) {
	r := NewRegistry()
	d := r.Declarations(&player{})[0]

	_, err := d.Value(&untagged{})
	assert.ErrorIs(t, err, ErrOwnerMismatch)

	_, err = d.Value(nil)
	assert.ErrorIs(t, err, ErrOwnerMismatch)

	_, err = Declaration{Field: "X", OwnerType: reflect.TypeFor[*player]()}.Value(&player{})
	assert.Error(t, err)
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, KindHierarchyTransform.IsHierarchy())
	assert.False(t, KindProjectAsset.IsHierarchy())
	assert.Equal(t, "ProjectAsset", KindProjectAsset.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Equal(t, "Many", Many.String())
}
