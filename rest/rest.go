package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"cardroom.com/server/game"
	"cardroom.com/server/poker"
)

var restLogger = log.With().Str("logger_name", "rest::server").Logger()

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server binds the engine's operation set to explicit HTTP routes. Each
// operation gets its own route; there is no generic action dispatch, so
// unknown actions 404 at the router instead of reaching the engine.
type Server struct {
	manager *game.Manager
}

func NewServer(manager *game.Manager) *Server {
	return &Server{manager: manager}
}

// SetupRouter registers one route per engine operation.
func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/tables", s.listTables)
	r.POST("/tables", s.createTable)
	r.GET("/tables/:name", s.getTable)
	r.DELETE("/tables/:name", s.deleteTable)

	r.GET("/players", s.listPlayers)
	r.POST("/players", s.addPlayer)
	r.DELETE("/players/:name", s.removePlayer)
	r.POST("/players/:name/chips", s.updatePlayerChips)

	r.POST("/tables/:name/seat", s.seatPlayer)
	r.POST("/tables/:name/unseat", s.unseatPlayer)
	r.POST("/tables/:name/sit-out", s.sitOut)
	r.POST("/tables/:name/rejoin", s.rejoin)
	r.POST("/tables/:name/move-button", s.moveButton)

	r.POST("/tables/:name/reshuffle", s.reshuffle)
	r.POST("/tables/:name/deal-cards", s.dealCards)
	r.POST("/tables/:name/deal-flop", s.dealFlop)
	r.POST("/tables/:name/deal-turn", s.dealTurn)
	r.POST("/tables/:name/deal-river", s.dealRiver)
	r.POST("/tables/:name/determine-winner", s.determineWinner)

	return r
}

func (s *Server) Run(addr string) error {
	restLogger.Info().Msgf("REST server listening on %s", addr)
	return s.SetupRouter().Run(addr)
}

// statusForError maps the engine's typed failures onto HTTP statuses.
// Lookup failures 404, duplicates and seat conflicts 409, everything
// the caller can correct 400.
func statusForError(err error) int {
	switch err.(type) {
	case game.TableNotFoundError, game.PlayerNotFoundError, game.NotSeatedError:
		return http.StatusNotFound
	case game.DuplicateTableError, game.DuplicatePlayerError, game.AlreadySeatedError, game.SeatUnavailableError:
		return http.StatusConflict
	case game.InvalidConfigError, game.InvalidBuyInError, game.InvalidAmountError,
		game.InsufficientBankrollError, game.InsufficientPlayersError,
		game.InvalidStateError, game.InvalidSeatStatusError, poker.DeckExhaustedError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		restLogger.Error().Msgf("Unexpected error: %v", err)
	}
	c.JSON(code, appError{Code: code, Message: err.Error()})
}

func (s *Server) listTables(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.ListTables())
}

func (s *Server) createTable(c *gin.Context) {
	var tableConfig game.TableConfig
	if err := c.BindJSON(&tableConfig); err != nil {
		restLogger.Error().Msgf("Failed to parse table configuration. Error: %v", err)
		return
	}
	desc, err := s.manager.CreateTable(tableConfig)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) getTable(c *gin.Context) {
	desc, err := s.manager.GetTable(c.Param("name"), c.Query("player"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) deleteTable(c *gin.Context) {
	if err := s.manager.DeleteTable(c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "table deleted"})
}

func (s *Server) listPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, s.manager.ListPlayers())
}

type addPlayerRequest struct {
	Name     string `json:"name" binding:"required"`
	Bankroll int64  `json:"bankroll"`
}

func (s *Server) addPlayer(c *gin.Context) {
	var req addPlayerRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	desc, err := s.manager.AddPlayer(req.Name, req.Bankroll)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) removePlayer(c *gin.Context) {
	if err := s.manager.RemovePlayer(c.Param("name")); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "player removed"})
}

type updateChipsRequest struct {
	Chips int64 `json:"chips"`
}

func (s *Server) updatePlayerChips(c *gin.Context) {
	var req updateChipsRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	desc, err := s.manager.UpdatePlayerChips(c.Param("name"), req.Chips)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

type seatRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
	BuyIn      int64  `json:"buyIn"`
}

func (s *Server) seatPlayer(c *gin.Context) {
	var req seatRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	desc, err := s.manager.SeatPlayer(req.PlayerName, c.Param("name"), req.BuyIn)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

type playerRequest struct {
	PlayerName string `json:"playerName" binding:"required"`
}

func (s *Server) unseatPlayer(c *gin.Context) {
	s.playerOp(c, s.manager.UnseatPlayer)
}

func (s *Server) sitOut(c *gin.Context) {
	s.playerOp(c, s.manager.SitOut)
}

func (s *Server) rejoin(c *gin.Context) {
	s.playerOp(c, s.manager.Rejoin)
}

func (s *Server) playerOp(c *gin.Context, op func(playerName, tableName string) (*game.TableDescriptor, error)) {
	var req playerRequest
	if err := c.BindJSON(&req); err != nil {
		return
	}
	desc, err := op(req.PlayerName, c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) moveButton(c *gin.Context) {
	desc, err := s.manager.MoveButton(c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) reshuffle(c *gin.Context) {
	s.dealOp(c, s.manager.Reshuffle)
}

func (s *Server) dealCards(c *gin.Context) {
	s.dealOp(c, s.manager.DealCards)
}

func (s *Server) dealFlop(c *gin.Context) {
	s.dealOp(c, s.manager.DealFlop)
}

func (s *Server) dealTurn(c *gin.Context) {
	s.dealOp(c, s.manager.DealTurn)
}

func (s *Server) dealRiver(c *gin.Context) {
	s.dealOp(c, s.manager.DealRiver)
}

// dealOp serves the dealing operations. The optional player query names
// the requester; only that seat's hole cards appear in the response.
func (s *Server) dealOp(c *gin.Context, op func(tableName, forPlayer string) (*game.TableDescriptor, error)) {
	desc, err := op(c.Param("name"), c.Query("player"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, desc)
}

func (s *Server) determineWinner(c *gin.Context) {
	result, err := s.manager.DetermineWinner(c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
