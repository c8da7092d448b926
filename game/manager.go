package game

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/thoas/go-funk"

	"cardroom.com/server/logging"
)

var managerLogger = log.With().Str("logger_name", "game::manager").Logger()

// ManagerOpt configures a Manager.
type ManagerOpt func(*Manager)

// WithTableUpdateCallback registers a listener invoked with the public
// descriptor after every successful table mutation, used to feed
// external broadcasters.
func WithTableUpdateCallback(fn func(*TableDescriptor)) ManagerOpt {
	return func(m *Manager) {
		m.onTableUpdated = fn
	}
}

// WithShowdownCallback registers a listener invoked with every showdown
// result.
func WithShowdownCallback(fn func(*ShowdownResult)) ManagerOpt {
	return func(m *Manager) {
		m.onShowdown = fn
	}
}

// Manager owns the table collection and the player registry and routes
// every operation to the right table. Its lock protects only the
// name-to-table mapping and the player registry; it is released before
// a per-table operation runs, so tables never serialize each other.
//
// The seated map enforces the invariant that a player occupies at most
// one seat across all tables at a time.
type Manager struct {
	lock    sync.RWMutex
	tables  map[string]*Table
	players map[string]*Player
	seated  map[string]string // player name -> table name

	onTableUpdated func(*TableDescriptor)
	onShowdown     func(*ShowdownResult)
}

func NewManager(opts ...ManagerOpt) *Manager {
	m := &Manager{
		tables:  make(map[string]*Table),
		players: make(map[string]*Player),
		seated:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateTable validates the configuration and registers a new table in
// street "empty" with no deck.
func (m *Manager) CreateTable(config TableConfig) (*TableDescriptor, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.tables[config.Name]; exists {
		return nil, DuplicateTableError{Name: config.Name}
	}
	table := NewTable(config)
	m.tables[config.Name] = table

	managerLogger.Info().
		Str(logging.TableNameKey, config.Name).
		Uint32("maxPlayers", config.MaxPlayers).
		Msg("Table created")
	return table.Descriptor(""), nil
}

// DeleteTable removes the table unconditionally, crediting seated
// players' stacks back to their bankrolls. Deletion mid-hand is
// permitted; any hand in progress is abandoned.
func (m *Manager) DeleteTable(name string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	table, ok := m.tables[name]
	if !ok {
		return TableNotFoundError{Name: name}
	}
	delete(m.tables, name)
	for playerName, stack := range table.drainSeats() {
		delete(m.seated, playerName)
		if player, ok := m.players[playerName]; ok {
			player.Bankroll += stack
		}
	}

	managerLogger.Info().Str(logging.TableNameKey, name).Msg("Table deleted")
	return nil
}

// ListTables returns public descriptors of every table, ordered by name.
func (m *Manager) ListTables() []*TableDescriptor {
	m.lock.RLock()
	tables := make([]*Table, 0, len(m.tables))
	for _, table := range m.tables {
		tables = append(tables, table)
	}
	m.lock.RUnlock()

	descs := funk.Map(tables, func(t *Table) *TableDescriptor {
		return t.Descriptor("")
	}).([]*TableDescriptor)
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}

// GetTable returns one table's descriptor. Hole cards are revealed only
// for the seat owned by forPlayer.
func (m *Manager) GetTable(name string, forPlayer string) (*TableDescriptor, error) {
	table, err := m.lookupTable(name)
	if err != nil {
		return nil, err
	}
	return table.Descriptor(forPlayer), nil
}

// AddPlayer registers a new player identity. Creation is not
// idempotent: a duplicate name is rejected.
func (m *Manager) AddPlayer(name string, bankroll int64) (*PlayerDescriptor, error) {
	if bankroll < 0 {
		return nil, InvalidAmountError{Amount: bankroll}
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.players[name]; exists {
		return nil, DuplicatePlayerError{Name: name}
	}
	player := &Player{
		ID:       uuid.New().String(),
		Name:     name,
		Bankroll: bankroll,
	}
	m.players[name] = player

	managerLogger.Info().
		Str(logging.PlayerNameKey, name).
		Int64("bankroll", bankroll).
		Msg("Player registered")
	return player.descriptor(), nil
}

// RemovePlayer deletes a registered player. A seated player must stand
// up first.
func (m *Manager) RemovePlayer(name string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	if _, exists := m.players[name]; !exists {
		return PlayerNotFoundError{Name: name}
	}
	if at, seatedSomewhere := m.seated[name]; seatedSomewhere {
		return AlreadySeatedError{Player: name, Table: at}
	}
	delete(m.players, name)
	return nil
}

// UpdatePlayerChips overwrites a player's bankroll, an operator action.
func (m *Manager) UpdatePlayerChips(name string, chips int64) (*PlayerDescriptor, error) {
	if chips < 0 {
		return nil, InvalidAmountError{Amount: chips}
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	player, exists := m.players[name]
	if !exists {
		return nil, PlayerNotFoundError{Name: name}
	}
	player.Bankroll = chips
	return player.descriptor(), nil
}

// ListPlayers returns every registered player, ordered by name.
func (m *Manager) ListPlayers() []*PlayerDescriptor {
	m.lock.RLock()
	players := make([]*Player, 0, len(m.players))
	for _, player := range m.players {
		players = append(players, player)
	}
	m.lock.RUnlock()

	descs := funk.Map(players, func(p *Player) *PlayerDescriptor {
		return p.descriptor()
	}).([]*PlayerDescriptor)
	sort.Slice(descs, func(i, j int) bool { return descs[i].Name < descs[j].Name })
	return descs
}

// SeatPlayer seats a registered player at a table with a buy-in. The
// player's name is reserved in the seated map before the table is
// touched, so a player can never hold seats at two tables even when
// seat requests race.
func (m *Manager) SeatPlayer(playerName, tableName string, buyIn int64) (*TableDescriptor, error) {
	m.lock.Lock()
	table, ok := m.tables[tableName]
	if !ok {
		m.lock.Unlock()
		return nil, TableNotFoundError{Name: tableName}
	}
	player, ok := m.players[playerName]
	if !ok {
		m.lock.Unlock()
		return nil, PlayerNotFoundError{Name: playerName}
	}
	if at, alreadySeated := m.seated[playerName]; alreadySeated {
		m.lock.Unlock()
		return nil, AlreadySeatedError{Player: playerName, Table: at}
	}
	m.seated[playerName] = tableName
	m.lock.Unlock()

	if err := table.SeatPlayer(player, buyIn); err != nil {
		m.lock.Lock()
		delete(m.seated, playerName)
		m.lock.Unlock()
		return nil, err
	}

	// The table may have been deleted between the reservation and the
	// seat being taken. Undo the seat so the reservation cannot point at
	// a table that no longer exists; if the deletion already drained the
	// seats, the stack went back to the bankroll there and the unseat is
	// a no-op.
	m.lock.Lock()
	deleted := m.tables[tableName] != table
	if deleted {
		delete(m.seated, playerName)
	}
	m.lock.Unlock()
	if deleted {
		_ = table.UnseatPlayer(player)
		return nil, TableNotFoundError{Name: tableName}
	}

	m.notifyTableUpdated(table)
	return table.Descriptor(playerName), nil
}

// UnseatPlayer stands a player up, crediting the remaining stack back
// to the bankroll.
func (m *Manager) UnseatPlayer(playerName, tableName string) (*TableDescriptor, error) {
	m.lock.RLock()
	table, tableOK := m.tables[tableName]
	player, playerOK := m.players[playerName]
	m.lock.RUnlock()
	if !tableOK {
		return nil, TableNotFoundError{Name: tableName}
	}
	if !playerOK {
		return nil, NotSeatedError{Player: playerName, Table: tableName}
	}

	if err := table.UnseatPlayer(player); err != nil {
		return nil, err
	}

	m.lock.Lock()
	delete(m.seated, playerName)
	m.lock.Unlock()

	m.notifyTableUpdated(table)
	return table.Descriptor(playerName), nil
}

// SitOut marks a player's seat away; Rejoin brings it back.
func (m *Manager) SitOut(playerName, tableName string) (*TableDescriptor, error) {
	return m.seatStatusOp(playerName, tableName, (*Table).SitOut)
}

func (m *Manager) Rejoin(playerName, tableName string) (*TableDescriptor, error) {
	return m.seatStatusOp(playerName, tableName, (*Table).Rejoin)
}

func (m *Manager) seatStatusOp(playerName, tableName string, op func(*Table, string) error) (*TableDescriptor, error) {
	table, err := m.lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if err := op(table, playerName); err != nil {
		return nil, err
	}
	m.notifyTableUpdated(table)
	return table.Descriptor(playerName), nil
}

// MoveButton advances the table's dealer button.
func (m *Manager) MoveButton(tableName string) (*TableDescriptor, error) {
	table, err := m.lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if err := table.MoveButton(); err != nil {
		return nil, err
	}
	m.notifyTableUpdated(table)
	return table.Descriptor(""), nil
}

// Reshuffle resets the table to a freshly shuffled deck.
func (m *Manager) Reshuffle(tableName, forPlayer string) (*TableDescriptor, error) {
	table, err := m.lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	table.Reshuffle()
	m.notifyTableUpdated(table)
	return table.Descriptor(forPlayer), nil
}

// DealCards deals hole cards to all sitting seats.
func (m *Manager) DealCards(tableName, forPlayer string) (*TableDescriptor, error) {
	return m.dealOp(tableName, forPlayer, (*Table).DealCards)
}

// DealFlop reveals the first three community cards.
func (m *Manager) DealFlop(tableName, forPlayer string) (*TableDescriptor, error) {
	return m.dealOp(tableName, forPlayer, (*Table).DealFlop)
}

// DealTurn reveals the fourth community card.
func (m *Manager) DealTurn(tableName, forPlayer string) (*TableDescriptor, error) {
	return m.dealOp(tableName, forPlayer, (*Table).DealTurn)
}

// DealRiver reveals the fifth community card.
func (m *Manager) DealRiver(tableName, forPlayer string) (*TableDescriptor, error) {
	return m.dealOp(tableName, forPlayer, (*Table).DealRiver)
}

func (m *Manager) dealOp(tableName, forPlayer string, op func(*Table) error) (*TableDescriptor, error) {
	table, err := m.lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	if err := op(table); err != nil {
		return nil, err
	}
	m.notifyTableUpdated(table)
	return table.Descriptor(forPlayer), nil
}

// DetermineWinner runs the showdown and reports every winning seat with
// its revealed hand.
func (m *Manager) DetermineWinner(tableName string) (*ShowdownResult, error) {
	table, err := m.lookupTable(tableName)
	if err != nil {
		return nil, err
	}
	result, err := table.DetermineWinner()
	if err != nil {
		return nil, err
	}
	m.notifyTableUpdated(table)
	if m.onShowdown != nil {
		m.onShowdown(result)
	}
	return result, nil
}

func (m *Manager) lookupTable(name string) (*Table, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	table, ok := m.tables[name]
	if !ok {
		return nil, TableNotFoundError{Name: name}
	}
	return table, nil
}

func (m *Manager) notifyTableUpdated(table *Table) {
	if m.onTableUpdated != nil {
		m.onTableUpdated(table.Descriptor(""))
	}
}
