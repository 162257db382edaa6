package data_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberline/server/internal/data"
)

func writeYaml(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archetypes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func Test_LoadArchetypeTable(t *testing.T) {
	t.Parallel()

	path := writeYaml(t, `
archetypes:
  - name: wisp
    count: 40
    lifetime_ticks: 150
    speed: 2
  - name: drifter
    count: 20
`)

	table, err := data.LoadArchetypeTable(path)
	require.NoError(t, err)

	assert.Equal(t, 2, table.Count())

	wisp := table.Get("wisp")
	require.NotNil(t, wisp)
	assert.Equal(t, 40, wisp.Count)
	assert.Equal(t, 150, wisp.LifetimeTicks)
	assert.Equal(t, int32(2), wisp.Speed)

	drifter := table.Get("drifter")
	require.NotNil(t, drifter)
	assert.Equal(t, 0, drifter.LifetimeTicks, "omitted lifetime means unlimited")

	assert.Nil(t, table.Get("ghost"))

	all := table.All()
	require.Len(t, all, 2)
	assert.Equal(t, "wisp", all[0].Name, "file order is preserved")
}

func Test_LoadArchetypeTable_Rejects_Missing_Name(t *testing.T) {
	t.Parallel()

	_, err := data.LoadArchetypeTable(writeYaml(t, `
archetypes:
  - count: 5
`))
	assert.ErrorContains(t, err, "missing name")
}

func Test_LoadArchetypeTable_Rejects_Duplicate_Name(t *testing.T) {
	t.Parallel()

	_, err := data.LoadArchetypeTable(writeYaml(t, `
archetypes:
  - name: wisp
    count: 1
  - name: wisp
    count: 2
`))
	assert.ErrorContains(t, err, "duplicate name")
}

func Test_LoadArchetypeTable_Missing_File(t *testing.T) {
	t.Parallel()

	_, err := data.LoadArchetypeTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
