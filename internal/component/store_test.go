package component_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/server/internal/component"
	"github.com/emberline/server/internal/core/entity"
)

func Test_Store_Set_Get_Remove(t *testing.T) {
	t.Parallel()

	sys := entity.NewSystem()
	defer sys.Cleanup()
	h := sys.Create()
	sys.ProcessCommands()

	store := component.NewStore[component.Transform]()
	assert.False(t, store.Has(h))

	store.Set(h, &component.Transform{X: 3, Y: 4})
	got, ok := store.Get(h)
	require.True(t, ok)
	assert.Equal(t, int32(3), got.X)
	assert.Equal(t, 1, store.Len())

	store.Remove(h)
	assert.False(t, store.Has(h))
	assert.Equal(t, 0, store.Len())
}

func Test_Store_Is_Keyed_By_Generation(t *testing.T) {
	t.Parallel()

	sys := entity.NewSystem()
	defer sys.Cleanup()

	a := sys.Create()
	sys.ProcessCommands()

	store := component.NewStore[component.Label]()
	store.Set(a, &component.Label{Archetype: "wisp"})

	sys.Destroy(a)
	sys.ProcessCommands()
	b := sys.Create()
	sys.ProcessCommands()

	// Same slot, new generation: the old entry must not leak through.
	require.Equal(t, a.Identifier(), b.Identifier())
	assert.False(t, store.Has(b))
}

func Test_Registry_Removes_Components_On_Destroy(t *testing.T) {
	t.Parallel()

	sys := entity.NewSystem()
	defer sys.Cleanup()

	labels := component.NewStore[component.Label]()
	transforms := component.NewStore[component.Transform]()

	reg := component.NewRegistry()
	reg.Register(labels)
	reg.Register(transforms)
	reg.Bind(sys)

	h := sys.Create()
	labels.Set(h, &component.Label{Archetype: "drifter"})
	transforms.Set(h, &component.Transform{X: 1})
	sys.ProcessCommands()

	sys.Destroy(h)
	sys.ProcessCommands()

	assert.False(t, labels.Has(h))
	assert.False(t, transforms.Has(h))
}

func Test_Destroy_Observers_Before_Registry_See_Component_Data(t *testing.T) {
	t.Parallel()

	sys := entity.NewSystem()
	defer sys.Cleanup()

	labels := component.NewStore[component.Label]()

	var seen string
	sys.Events.Destroy.Subscribe(func(ev entity.Destroyed) {
		if lbl, ok := labels.Get(ev.Handle); ok {
			seen = lbl.Archetype
		}
	})

	reg := component.NewRegistry()
	reg.Register(labels)
	reg.Bind(sys) // bound last, so the observer above still sees the data

	h := sys.Create()
	labels.Set(h, &component.Label{Archetype: "spark"})
	sys.ProcessCommands()

	sys.Destroy(h)
	sys.ProcessCommands()

	assert.Equal(t, "spark", seen)
	assert.False(t, labels.Has(h))
}
