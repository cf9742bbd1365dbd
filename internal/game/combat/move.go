package combat

import (
	"fmt"

	"github.com/cory-johannsen/pokebattle/internal/game/species"
)

// Move names as stored and displayed.
const (
	MoveSplash   = "Splash"
	MoveTackle   = "Tackle"
	MoveEmber    = "Ember"
	MoveBubble   = "Bubble"
	MoveVineWhip = "Vine Whip"
	MoveTakeDown = "Take Down"
)

// Move is a stateless combat action known by a combatant.
type Move interface {
	Usable
	isMove()
}

// splash does nothing.
type splash struct{}

// Splash returns the cosmetic no-op move.
func Splash() Move { return splash{} }

func (splash) isMove()      {}
func (splash) Name() string { return MoveSplash }

func (splash) Use(user, _ *Pokemon) (string, error) {
	return fmt.Sprintf("%s splashed about.", user.Nickname), nil
}

// damageMove deals a fixed amount of typed damage, doubled when super effective.
type damageMove struct {
	name       string
	power      int
	damageType species.Type
}

func (damageMove) isMove()        {}
func (m damageMove) Name() string { return m.name }

// Power returns the base damage before the effectiveness multiplier.
func (m damageMove) Power() int { return m.power }

// DamageType returns the type the damage is dealt as.
func (m damageMove) DamageType() species.Type { return m.damageType }

func (m damageMove) Use(user, target *Pokemon) (string, error) {
	return m.strike(user, target), nil
}

// strike applies the damage to target and returns the outcome message.
//
// Postcondition: target.Health() decreases by Power(), or 2*Power() when DamageType()
// is super effective against target.Type(), floored at zero.
func (m damageMove) strike(user, target *Pokemon) string {
	damage := m.power
	superEffective := m.damageType.IsSuperEffective(target.Type())
	if superEffective {
		damage *= 2
	}
	target.ApplyDamage(damage)
	msg := fmt.Sprintf("%s used %s. %s takes %d damage!", user.Nickname, m.name, target.Nickname, damage)
	if superEffective {
		msg += "\nIt was super effective!"
	}
	return msg
}

// Tackle returns the 30-power Normal move.
func Tackle() Move { return damageMove{name: MoveTackle, power: 30, damageType: species.Normal} }

// Ember returns the 20-power Fire move.
func Ember() Move { return damageMove{name: MoveEmber, power: 20, damageType: species.Fire} }

// Bubble returns the 20-power Water move.
func Bubble() Move { return damageMove{name: MoveBubble, power: 20, damageType: species.Water} }

// VineWhip returns the 20-power Grass move.
func VineWhip() Move { return damageMove{name: MoveVineWhip, power: 20, damageType: species.Grass} }

// takeDown is a 60-power Normal move that hurts its user for half its power.
type takeDown struct {
	damageMove
}

// TakeDown returns the 60-power Normal move with recoil.
func TakeDown() Move {
	return takeDown{damageMove{name: MoveTakeDown, power: 60, damageType: species.Normal}}
}

// Use strikes target, then applies recoil to user.
// Recoil is half the move's base power regardless of the damage actually dealt.
//
// Postcondition: user.Health() decreases by Power()/2, floored at zero.
func (m takeDown) Use(user, target *Pokemon) (string, error) {
	recoil := m.power / 2
	msg := m.strike(user, target)
	msg += fmt.Sprintf("\n%s takes %d recoil damage!", user.Nickname, recoil)
	user.ApplyDamage(recoil)
	return msg, nil
}

// MoveRegistry is an immutable name-indexed set of moves. It also defines the
// pool random move sets are drawn from.
type MoveRegistry struct {
	byName map[string]Move
	pool   []Move
}

// NewMoveRegistry builds a registry from moves, keeping their order as the draw pool.
//
// Precondition: moves must be non-empty with unique names.
// Postcondition: Lookup(m.Name()) returns m for every m in moves; returns an error on
// empty input or a duplicate name.
func NewMoveRegistry(moves ...Move) (*MoveRegistry, error) {
	if len(moves) == 0 {
		return nil, fmt.Errorf("move registry: at least one move is required")
	}
	r := &MoveRegistry{byName: make(map[string]Move, len(moves))}
	for _, m := range moves {
		if _, exists := r.byName[m.Name()]; exists {
			return nil, fmt.Errorf("move registry: move %q already registered", m.Name())
		}
		r.byName[m.Name()] = m
		r.pool = append(r.pool, m)
	}
	return r, nil
}

// DefaultMoves returns the registry of every move in the game, in draw-pool order
// Bubble, Ember, Splash, Tackle, Take Down, Vine Whip.
func DefaultMoves() *MoveRegistry {
	r, err := NewMoveRegistry(Bubble(), Ember(), Splash(), Tackle(), TakeDown(), VineWhip())
	if err != nil {
		panic("combat: DefaultMoves: " + err.Error())
	}
	return r
}

// Lookup returns the move with the given name.
//
// Postcondition: Returns the Move, or an error wrapping ErrUnknownMove.
func (r *MoveRegistry) Lookup(name string) (Move, error) {
	m, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMove, name)
	}
	return m, nil
}

// Pool returns the registered moves in draw-pool order.
func (r *MoveRegistry) Pool() []Move {
	out := make([]Move, len(r.pool))
	copy(out, r.pool)
	return out
}
