package combat

// Usable is an action a combatant can take on its turn: a Move or an Item.
type Usable interface {
	// Name returns the display name, e.g. "Take Down" or "Potion".
	Name() string
	// Use applies the effect of the action by user against target and returns a
	// human-readable outcome message. On error neither combatant is modified.
	Use(user, target *Pokemon) (string, error)
}

// Source is the subset of dice.Source used by battle setup and resolution.
type Source interface {
	Intn(n int) int
}
