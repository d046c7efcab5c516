package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manolaz/mosaic/internal/application/dto"
	appservice "github.com/manolaz/mosaic/internal/application/service"
)

// TicketHandler serves the mint, open, and key recovery flows.
type TicketHandler struct {
	tickets *appservice.TicketAppService
}

// NewTicketHandler creates the handler.
func NewTicketHandler(tickets *appservice.TicketAppService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// Mint handles POST /api/v1/tickets.
func (h *TicketHandler) Mint(c *gin.Context) {
	var req dto.MintTicketRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.tickets.MintTicket(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Open handles POST /api/v1/tickets/open. Decryption failures surface as a
// 4xx, never a crash; the payload stays untouched on failure.
func (h *TicketHandler) Open(c *gin.Context) {
	var req dto.OpenTicketRequest
	if !bindJSON(c, &req) {
		return
	}
	payload, err := h.tickets.OpenEncryptedTicket(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// RecoverKey handles GET /api/v1/tickets/:id/key.
func (h *TicketHandler) RecoverKey(c *gin.Context) {
	keyHex, err := h.tickets.RecoverShareKey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": keyHex})
}
