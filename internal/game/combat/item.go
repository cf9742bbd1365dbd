package combat

import "fmt"

// Item names as displayed.
const (
	ItemPotion = "Potion"
	ItemBomb   = "Bomb"
)

const (
	// PotionHealAmount is the health a Potion restores to its user.
	PotionHealAmount = 50
	// BombDamage is the flat damage a Bomb deals to its target.
	BombDamage = 40
)

// Item is a consumable action with a finite number of remaining uses.
type Item interface {
	Usable
	// Quantity returns the remaining uses.
	Quantity() int
}

// stock tracks the remaining uses of an item.
//
// Invariant: quantity >= 0.
type stock struct {
	quantity int
}

// Quantity returns the remaining uses.
func (s *stock) Quantity() int { return s.quantity }

// take consumes one use.
//
// Postcondition: on success quantity is decremented by 1; returns ErrExhaustedItem
// with quantity unchanged when it is already 0.
func (s *stock) take(name string) error {
	if s.quantity < 1 {
		return fmt.Errorf("using %s: %w", name, ErrExhaustedItem)
	}
	s.quantity--
	return nil
}

// Potion restores health to its user.
type Potion struct {
	stock
}

// NewPotion returns a Potion with the given number of uses.
//
// Precondition: quantity >= 0.
func NewPotion(quantity int) *Potion {
	return &Potion{stock{quantity: max(quantity, 0)}}
}

// Name returns "Potion".
func (p *Potion) Name() string { return ItemPotion }

// Use heals user by PotionHealAmount, capped at its maximum health. target is unaffected.
//
// Postcondition: on success Quantity() decreases by 1; on ErrExhaustedItem nothing changes.
func (p *Potion) Use(user, _ *Pokemon) (string, error) {
	if err := p.take(p.Name()); err != nil {
		return "", err
	}
	user.Heal(PotionHealAmount)
	return fmt.Sprintf("%s has restored %d HP!", user.Nickname, PotionHealAmount), nil
}

// Bomb deals flat damage to the target.
type Bomb struct {
	stock
}

// NewBomb returns a Bomb with the given number of uses.
//
// Precondition: quantity >= 0.
func NewBomb(quantity int) *Bomb {
	return &Bomb{stock{quantity: max(quantity, 0)}}
}

// Name returns "Bomb".
func (b *Bomb) Name() string { return ItemBomb }

// Use deals BombDamage to target, floored at zero. Bombs ignore type effectiveness.
//
// Postcondition: on success Quantity() decreases by 1; on ErrExhaustedItem nothing changes.
func (b *Bomb) Use(user, target *Pokemon) (string, error) {
	if err := b.take(b.Name()); err != nil {
		return "", err
	}
	target.ApplyDamage(BombDamage)
	return fmt.Sprintf("%s throws a bomb at %s. It takes %d damage!", user.Nickname, target.Nickname, BombDamage), nil
}
