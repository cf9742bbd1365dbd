package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/pokebattle/internal/game/combat"
)

func TestGenerateInventory_ZeroUnitsIsEmpty(t *testing.T) {
	inv := combat.GenerateInventory(fixedSrc{val: 0})
	assert.True(t, inv.IsEmpty())
	assert.Empty(t, inv.Items())
}

func TestGenerateInventory_Units(t *testing.T) {
	for _, units := range []int{1, 2} {
		inv := combat.GenerateInventory(fixedSrc{val: units})
		items := inv.Items()
		require.Len(t, items, 2)
		assert.Equal(t, combat.ItemPotion, items[0].Name())
		assert.Equal(t, combat.ItemBomb, items[1].Name())
		assert.Equal(t, units, items[0].Quantity())
		assert.Equal(t, units, items[1].Quantity())
	}
}

func TestInventory_ItemLookup(t *testing.T) {
	inv := combat.NewInventory(combat.NewPotion(1))
	it, err := inv.Item(combat.ItemPotion)
	require.NoError(t, err)
	assert.Equal(t, 1, it.Quantity())

	_, err = inv.Item(combat.ItemBomb)
	assert.Error(t, err)
}

func TestInventory_ItemsSharesStock(t *testing.T) {
	inv := combat.NewInventory(combat.NewBomb(2))
	user := makePokemon(t, "Sparky", fireSpecies, 100)
	target := makePokemon(t, "Ratty", normalSpecies, 200)
	_, err := inv.Items()[0].Use(user, target)
	require.NoError(t, err)
	it, err := inv.Item(combat.ItemBomb)
	require.NoError(t, err)
	assert.Equal(t, 1, it.Quantity())
}
