package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manolaz/mosaic/internal/application/dto"
	appservice "github.com/manolaz/mosaic/internal/application/service"
)

// EventHandler serves event creation and marketplace browsing.
type EventHandler struct {
	events      *appservice.EventAppService
	marketplace *appservice.MarketplaceQueryService
}

// NewEventHandler creates the handler.
func NewEventHandler(events *appservice.EventAppService, marketplace *appservice.MarketplaceQueryService) *EventHandler {
	return &EventHandler{events: events, marketplace: marketplace}
}

// Create handles POST /api/v1/events.
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.CreateEventRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.events.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List handles GET /api/v1/events.
func (h *EventHandler) List(c *gin.Context) {
	var req dto.EventListRequest
	if !bindQuery(c, &req) {
		return
	}
	resp, err := h.marketplace.ListEvents(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Calendar handles GET /api/v1/events/calendar.
func (h *EventHandler) Calendar(c *gin.Context) {
	var window struct {
		From int64 `form:"from"`
		To   int64 `form:"to"`
	}
	if !bindQuery(c, &window) {
		return
	}
	resp, err := h.marketplace.Calendar(c.Request.Context(), window.From, window.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Detail handles GET /api/v1/events/:id.
func (h *EventHandler) Detail(c *gin.Context) {
	event, err := h.marketplace.EventDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}
