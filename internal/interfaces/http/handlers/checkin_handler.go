package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manolaz/mosaic/internal/application/dto"
	"github.com/manolaz/mosaic/internal/domain/service"
	"github.com/manolaz/mosaic/internal/infrastructure/monitoring"
)

// CheckInHandler issues and verifies check-in tokens.
type CheckInHandler struct {
	checkIn service.CheckInService
	metrics *monitoring.Metrics
}

// NewCheckInHandler creates the handler. metrics may be nil in tests.
func NewCheckInHandler(checkIn service.CheckInService, metrics *monitoring.Metrics) *CheckInHandler {
	return &CheckInHandler{checkIn: checkIn, metrics: metrics}
}

// Issue handles POST /api/v1/checkin/issue.
func (h *CheckInHandler) Issue(c *gin.Context) {
	var req dto.IssueCheckInRequest
	if !bindJSON(c, &req) {
		return
	}
	token, err := h.checkIn.IssueToken(req.TicketID, req.EventID, req.Holder)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IssueCheckInResponse{Token: token})
}

// Verify handles POST /api/v1/checkin/verify.
func (h *CheckInHandler) Verify(c *gin.Context) {
	var req dto.VerifyCheckInRequest
	if !bindJSON(c, &req) {
		return
	}
	claims, err := h.checkIn.VerifyToken(req.Token)
	if err != nil {
		h.recordCheckIn("rejected")
		respondError(c, err)
		return
	}
	h.recordCheckIn("accepted")
	c.JSON(http.StatusOK, dto.VerifyCheckInResponse{
		TicketID: claims.TicketID,
		EventID:  claims.EventID,
		Holder:   claims.Holder,
	})
}

func (h *CheckInHandler) recordCheckIn(result string) {
	if h.metrics != nil {
		h.metrics.RecordCheckIn(result)
	}
}
