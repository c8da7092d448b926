package game

// Player is a registered identity with a bankroll, independent of any
// table. The bankroll is debited at seating time and credited back when
// the player stands up; while seated, the chips live on the seat's
// stack. A player's bankroll is only ever mutated through the table the
// player is currently reserved at, so the per-table lock covers it.
type Player struct {
	ID       string
	Name     string
	Bankroll int64
}

func (p *Player) descriptor() *PlayerDescriptor {
	return &PlayerDescriptor{
		ID:       p.ID,
		Name:     p.Name,
		Bankroll: p.Bankroll,
	}
}
