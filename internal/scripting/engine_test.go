package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emberline/server/internal/scripting"
)

func newEngine(t *testing.T, script string) *scripting.Engine {
	t.Helper()
	dir := t.TempDir()
	if script != "" {
		worldDir := filepath.Join(dir, "world")
		require.NoError(t, os.MkdirAll(worldDir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(worldDir, "policy.lua"), []byte(script), 0o644))
	}
	e, err := scripting.NewEngine(dir, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func Test_CanFinalize_Missing_Hook_Approves(t *testing.T) {
	t.Parallel()

	e := newEngine(t, "")
	assert.True(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "wisp"}))
}

func Test_CanFinalize_Consults_Context(t *testing.T) {
	t.Parallel()

	e := newEngine(t, `
function can_finalize(ctx)
    return ctx.live < ctx.target
end
`)

	assert.True(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "wisp", Live: 3, Target: 10}))
	assert.False(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "wisp", Live: 10, Target: 10}))
}

func Test_CanFinalize_Veto_By_Archetype(t *testing.T) {
	t.Parallel()

	e := newEngine(t, `
function can_finalize(ctx)
    return ctx.archetype ~= "spark"
end
`)

	assert.False(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "spark"}))
	assert.True(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "wisp"}))
}

func Test_CanFinalize_Script_Error_Approves(t *testing.T) {
	t.Parallel()

	e := newEngine(t, `
function can_finalize(ctx)
    error("policy exploded")
end
`)

	assert.True(t, e.CanFinalize(scripting.FinalizeContext{Archetype: "wisp"}))
}

func Test_NewEngine_Rejects_Broken_Script(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	worldDir := filepath.Join(dir, "world")
	require.NoError(t, os.MkdirAll(worldDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(worldDir, "bad.lua"), []byte("function ("), 0o644))

	_, err := scripting.NewEngine(dir, zap.NewNop())
	assert.Error(t, err)
}
