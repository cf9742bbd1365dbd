package cli_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokebattle/internal/cli"
	"github.com/cory-johannsen/pokebattle/internal/game/combat"
	"github.com/cory-johannsen/pokebattle/internal/game/roster"
	"github.com/cory-johannsen/pokebattle/internal/game/species"
	"github.com/cory-johannsen/pokebattle/internal/storage/memory"
)

// fixedSrc is a deterministic Source for testing.
type fixedSrc struct{ val int }

func (f fixedSrc) Intn(_ int) int { return f.val }

type harness struct {
	svc      *roster.Service
	store    *memory.Store
	wins     *memory.WinCounter
	builds   int
	cleanups int
}

func testCatalog(t *testing.T) *species.Catalog {
	t.Helper()
	cat, err := species.NewCatalog([]*species.Species{
		{ID: 1, Name: "Bulbasaur", Type: species.Grass, BaseHealth: 20},
		{ID: 4, Name: "Charmander", Type: species.Fire, BaseHealth: 39},
		{ID: 7, Name: "Squirtle", Type: species.Water, BaseHealth: 44},
	})
	require.NoError(t, err)
	return cat
}

func newHarness(t *testing.T, src combat.Source) *harness {
	t.Helper()
	h := &harness{store: memory.NewStore(), wins: memory.NewWinCounter()}
	h.svc = roster.NewService(h.store, h.wins, testCatalog(t), combat.DefaultMoves(), src, zap.NewNop())
	return h
}

func (h *harness) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	factory := func(_ *cobra.Command) (*cli.App, func(), error) {
		h.builds++
		return &cli.App{Service: h.svc, Source: fixedSrc{}}, func() { h.cleanups++ }, nil
	}
	root := cli.NewRootCommand(factory)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSpecies_ListsAndFilters(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	out, err := h.run(t, "", "species")
	require.NoError(t, err)
	assert.Contains(t, out, "Bulbasaur")
	assert.Contains(t, out, "Squirtle")

	out, err = h.run(t, "", "species", "--type", "fire")
	require.NoError(t, err)
	assert.Contains(t, out, "Charmander")
	assert.NotContains(t, out, "Squirtle")

	out, err = h.run(t, "", "species", "--type", "dragon")
	require.NoError(t, err)
	assert.Contains(t, out, "No species found.")

	_, err = h.run(t, "", "species", "--type", "plasma")
	assert.ErrorIs(t, err, species.ErrUnknownType)
}

func TestAdoptListHealRelease(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	ctx := context.Background()

	out, err := h.run(t, "", "adopt", "4", "Mr", "Sparky")
	require.NoError(t, err)
	assert.Contains(t, out, "Adopted #1 Mr Sparky (Charmander, Fire) 39/39 HP")

	out, err = h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Mr Sparky")

	recs, err := h.store.List(ctx)
	require.NoError(t, err)
	upd := *recs[0]
	upd.Health = 5
	require.NoError(t, h.store.Update(ctx, &upd))

	out, err = h.run(t, "", "heal", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mr Sparky is back to 39/39 HP.")

	out, err = h.run(t, "", "release", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Mr Sparky was released.")

	out, err = h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No pokemon adopted yet.")
	assert.Equal(t, h.builds, h.cleanups)
}

func TestAdopt_Errors(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "four", "Sparky")
	assert.Error(t, err)
	_, err = h.run(t, "", "adopt", "4", "Al")
	assert.ErrorIs(t, err, combat.ErrInvalidNickname)
	_, err = h.run(t, "", "adopt", "151", "Mewtwo")
	assert.ErrorIs(t, err, species.ErrUnknownSpecies)
	_, err = h.run(t, "", "adopt", "4")
	assert.Error(t, err)
}

func TestHeal_UnknownID(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "heal", "9")
	assert.ErrorIs(t, err, roster.ErrPokemonNotFound)
	_, err = h.run(t, "", "heal", "-1")
	assert.Error(t, err)
}

func TestBattle_InteractiveWin(t *testing.T) {
	// fixedSrc 0: moves [Bubble], enemy Bulbasaur (20 HP), empty inventory.
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "7", "Shelly")
	require.NoError(t, err)

	out, err := h.run(t, "bomb\n9\n1\n", "battle", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1) Bubble")
	assert.Contains(t, out, `Can't do that: unknown choice "bomb"`)
	assert.Contains(t, out, "Can't do that:")
	assert.Contains(t, out, "Shelly won the battle!")

	out, err = h.run(t, "", "wins")
	require.NoError(t, err)
	assert.Contains(t, out, "Wins: 1")
}

func TestBattle_AutoWinSavesHealth(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "4", "Sparky")
	require.NoError(t, err)

	ctx := context.Background()
	recs, err := h.store.List(ctx)
	require.NoError(t, err)
	upd := *recs[0]
	upd.Health = 10
	require.NoError(t, h.store.Update(ctx, &upd))

	// Sparky's Bubble leaves Bulbasaur on 20-20=0 HP, so the player still wins.
	out, err := h.run(t, "", "battle", "1", "--auto")
	require.NoError(t, err)
	assert.Contains(t, out, "Sparky won the battle!")

	recs, err = h.store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, recs[0].Health)
}

func TestBattle_FaintedRefused(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "4", "Sparky")
	require.NoError(t, err)

	ctx := context.Background()
	recs, err := h.store.List(ctx)
	require.NoError(t, err)
	upd := *recs[0]
	upd.Health = 0
	require.NoError(t, h.store.Update(ctx, &upd))

	_, err = h.run(t, "", "battle", "1")
	assert.ErrorIs(t, err, roster.ErrFainted)
}

func TestBattle_InputClosed(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "7", "Shelly")
	require.NoError(t, err)

	_, err = h.run(t, "", "battle", "1")
	assert.Error(t, err)
}

func TestRelease_UnresolvableRecord(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	_, err := h.run(t, "", "adopt", "4", "Sparky")
	require.NoError(t, err)
	_, err = h.store.Add(context.Background(), &roster.PokemonRecord{
		Nickname: "Ghost", Health: 10, MaxHealth: 10, SpeciesNumber: 999,
	})
	require.NoError(t, err)

	out, err := h.run(t, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "#1 Sparky")
	assert.NotContains(t, out, "Ghost")

	_, err = h.run(t, "", "heal", "2")
	assert.ErrorIs(t, err, species.ErrUnknownSpecies)

	out, err = h.run(t, "", "release", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Ghost was released.")

	out, err = h.run(t, "", "heal", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Sparky is back to 39/39 HP.")
}

func TestPlay_SessionSharesOneApp(t *testing.T) {
	cat := testCatalog(t)
	builds := 0
	// Like the real ephemeral factory, every build starts from an empty roster.
	factory := func(_ *cobra.Command) (*cli.App, func(), error) {
		builds++
		svc := roster.NewService(memory.NewStore(), memory.NewWinCounter(), cat, combat.DefaultMoves(), fixedSrc{}, zap.NewNop())
		return &cli.App{Service: svc, Source: fixedSrc{}}, func() {}, nil
	}
	root := cli.NewRootCommand(factory)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(
		"adopt 7 Shelly\n\nlist\nbattle 1\n1\nwins\nrelease 1\nheal 1\nplay\nquit\nlist\n"))
	root.SetArgs([]string{"play"})
	require.NoError(t, root.ExecuteContext(context.Background()))

	got := out.String()
	assert.Equal(t, 1, builds)
	assert.Contains(t, got, "Adopted #1 Shelly")
	assert.Contains(t, got, "#1 Shelly (Squirtle, Water)")
	assert.Contains(t, got, "Shelly won the battle!")
	assert.Contains(t, got, "Wins: 1")
	assert.Contains(t, got, "Shelly was released.")
	assert.Contains(t, got, "error: pokemon 1: pokemon not found")
	assert.Contains(t, got, "Already playing.")
	assert.NotContains(t, got, "No pokemon adopted yet.")
}

func TestPlay_EndOfInput(t *testing.T) {
	h := newHarness(t, fixedSrc{})
	out, err := h.run(t, "adopt 4 Sparky\nbogus\n", "play")
	require.NoError(t, err)
	assert.Contains(t, out, "Adopted #1 Sparky")
	assert.Contains(t, out, "error: unknown command \"bogus\"")
	assert.Equal(t, 1, h.builds)
}
