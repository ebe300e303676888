package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/talkroom/talkroom/internal/server"
	"github.com/talkroom/talkroom/internal/server/store"
	"github.com/talkroom/talkroom/internal/server/ticket"
)

// APIHandlers provides the JSON endpoints for creating and joining rooms.
type APIHandlers struct {
	store     store.Store
	ticketCfg *ticket.Config
	log       *zerolog.Logger
}

// NewAPIHandlers creates an API handlers instance.
func NewAPIHandlers(st store.Store, ticketCfg *ticket.Config, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{store: st, ticketCfg: ticketCfg, log: logger}
}

// CreateRoomRequest is the create-room request body.
type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

// JoinRoomRequest is the join-room request body.
type JoinRoomRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// RoomResponse carries the room code and the ticket admitting the caller.
type RoomResponse struct {
	Code   string `json:"code"`
	Ticket string `json:"ticket"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CreateRoom handles room creation.
// POST /api/rooms
func (h *APIHandlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	name, err := server.ScrubName(req.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
		return
	}

	ctx := c.Request.Context()
	code, err := server.NewRoomCode(ctx, h.store)
	if err != nil {
		h.log.Error().Err(err).Msg("generate room code")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if err := h.store.CreateRoom(ctx, code); err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("create room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	tk, err := ticket.Issue(h.ticketCfg, code, name)
	if err != nil {
		h.log.Error().Err(err).Msg("issue ticket")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("code", code).Str("name", name).Msg("room created")
	c.JSON(http.StatusCreated, RoomResponse{Code: code, Ticket: tk})
}

// JoinRoom handles joining an existing room.
// POST /api/rooms/join
func (h *APIHandlers) JoinRoom(c *gin.Context) {
	var req JoinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name and code are required"})
		return
	}

	name, err := server.ScrubName(req.Name)
	if err != nil {
		if errors.Is(err, server.ErrEmptyName) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid name"})
		return
	}

	code, err := server.ScrubName(req.Code)
	if err != nil || len(code) != server.RoomCodeLength {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid room code"})
		return
	}

	ctx := c.Request.Context()
	exists, err := h.store.RoomExists(ctx, code)
	if err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("check room")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "room does not exist"})
		return
	}

	taken, err := h.store.MemberNameTaken(ctx, code, name)
	if err != nil {
		h.log.Error().Err(err).Str("code", code).Msg("check name")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	if taken {
		c.JSON(http.StatusConflict, ErrorResponse{Error: "name already exists in room"})
		return
	}

	tk, err := ticket.Issue(h.ticketCfg, code, name)
	if err != nil {
		h.log.Error().Err(err).Msg("issue ticket")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Str("code", code).Str("name", name).Msg("join ticket issued")
	c.JSON(http.StatusOK, RoomResponse{Code: code, Ticket: tk})
}
