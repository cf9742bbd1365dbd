// Package species provides the creature type system and the immutable species catalog.
package species

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownType is returned when a type name does not match any Type.
var ErrUnknownType = errors.New("unknown type")

// Type is a creature or move category.
type Type int

const (
	Normal Type = iota
	Fire
	Water
	Ice
	Grass
	Bug
	Dragon
	Flying
	Poison
	Electric
	Ground
	Rock
	Steel
	Fighting
	Psychic
	Ghost
	Fairy
	Dark
)

var typeNames = [...]string{
	Normal:   "Normal",
	Fire:     "Fire",
	Water:    "Water",
	Ice:      "Ice",
	Grass:    "Grass",
	Bug:      "Bug",
	Dragon:   "Dragon",
	Flying:   "Flying",
	Poison:   "Poison",
	Electric: "Electric",
	Ground:   "Ground",
	Rock:     "Rock",
	Steel:    "Steel",
	Fighting: "Fighting",
	Psychic:  "Psychic",
	Ghost:    "Ghost",
	Fairy:    "Fairy",
	Dark:     "Dark",
}

// AllTypes returns every Type in declaration order.
//
// Postcondition: len(result) == 18.
func AllTypes() []Type {
	out := make([]Type, len(typeNames))
	for i := range typeNames {
		out[i] = Type(i)
	}
	return out
}

// String returns the display name of the type, e.g. "Fire".
func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType resolves a type name case-insensitively.
//
// Postcondition: Returns the matching Type, or ErrUnknownType.
func ParseType(name string) (Type, error) {
	trimmed := strings.TrimSpace(name)
	for i, n := range typeNames {
		if strings.EqualFold(n, trimmed) {
			return Type(i), nil
		}
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownType, name)
}

// UnmarshalYAML decodes a type from its name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// IsSuperEffective reports whether an attack of type t deals double damage to a
// defender of type target.
//
// Only Fire→Grass, Water→Fire and Grass→Water are super effective. Every other
// pair, including anything attacked by Normal, is not.
func (t Type) IsSuperEffective(target Type) bool {
	switch t {
	case Fire:
		return target == Grass
	case Water:
		return target == Fire
	case Grass:
		return target == Water
	default:
		return false
	}
}
