package combat

import "fmt"

// Inventory is the player's consumable stock for one battle.
type Inventory struct {
	items []Item
}

// NewInventory returns an inventory holding items in order.
func NewInventory(items ...Item) *Inventory {
	inv := &Inventory{items: make([]Item, 0, len(items))}
	inv.items = append(inv.items, items...)
	return inv
}

// GenerateInventory rolls a fresh inventory: 0, 1 or 2 units with equal chance.
// With at least one unit the inventory holds one Potion and one Bomb, each with
// that many uses; with zero units it is empty.
//
// Precondition: src must be non-nil.
func GenerateInventory(src Source) *Inventory {
	units := src.Intn(3)
	if units == 0 {
		return NewInventory()
	}
	return NewInventory(NewPotion(units), NewBomb(units))
}

// Items returns the items in order.
func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

// Item returns the item with the given name.
//
// Postcondition: Returns (item, nil) or an error if no item has that name.
func (inv *Inventory) Item(name string) (Item, error) {
	for _, it := range inv.items {
		if it.Name() == name {
			return it, nil
		}
	}
	return nil, fmt.Errorf("no %q in inventory", name)
}

// IsEmpty reports whether the inventory holds no items.
func (inv *Inventory) IsEmpty() bool { return len(inv.items) == 0 }
