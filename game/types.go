package game

// TableConfig is fixed at table creation. The yaml tags let server
// deployments preload tables from the config file.
type TableConfig struct {
	Name       string `json:"name" yaml:"name"`
	MaxPlayers uint32 `json:"maxPlayers" yaml:"max-players"`
	MinBuyIn   int64  `json:"minBuyIn" yaml:"min-buyin"`
	MaxBuyIn   int64  `json:"maxBuyIn" yaml:"max-buyin"`
	SmallBlind int64  `json:"smallBlind" yaml:"sb"`
	BigBlind   int64  `json:"bigBlind" yaml:"bb"`
	Ante       int64  `json:"ante" yaml:"ante"`
	// BurnCard discards one card before the flop, turn and river draws,
	// the way a live dealer does. Off by default.
	BurnCard bool `json:"burnCard" yaml:"burn-card"`
}

// maxSeatsPerTable keeps a single 52-card deck sufficient for hole
// cards, burns and the board.
const maxSeatsPerTable = 10

func (c TableConfig) validate() error {
	if c.Name == "" {
		return InvalidConfigError{Reason: "table name is required"}
	}
	if c.MaxPlayers < 2 {
		return InvalidConfigError{Reason: "max players must be at least 2"}
	}
	if c.MaxPlayers > maxSeatsPerTable {
		return InvalidConfigError{Reason: "max players cannot exceed 10"}
	}
	if c.MinBuyIn < 0 {
		return InvalidConfigError{Reason: "min buy-in cannot be negative"}
	}
	if c.MinBuyIn > c.MaxBuyIn {
		return InvalidConfigError{Reason: "min buy-in cannot exceed max buy-in"}
	}
	if c.SmallBlind < 0 {
		return InvalidConfigError{Reason: "small blind cannot be negative"}
	}
	if c.SmallBlind > c.BigBlind {
		return InvalidConfigError{Reason: "small blind cannot exceed big blind"}
	}
	if c.Ante < 0 {
		return InvalidConfigError{Reason: "ante cannot be negative"}
	}
	return nil
}

// SeatDescriptor is the externally visible view of one seat. HoleCards
// is populated only for the seat owned by the requesting player.
type SeatDescriptor struct {
	SeatNo     uint32   `json:"seatNo"`
	PlayerName string   `json:"playerName"`
	Stack      int64    `json:"stack"`
	Status     string   `json:"status"`
	HoleCards  []string `json:"holeCards,omitempty"`
}

// TableDescriptor is the externally visible view of one table.
type TableDescriptor struct {
	Name           string           `json:"name"`
	Config         TableConfig      `json:"config"`
	Street         string           `json:"street"`
	Seats          []SeatDescriptor `json:"seats"`
	CommunityCards []string         `json:"communityCards"`
	Pot            int64            `json:"pot"`
	ButtonSeatNo   uint32           `json:"buttonSeatNo"`
}

type PlayerDescriptor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Bankroll int64  `json:"bankroll"`
}
