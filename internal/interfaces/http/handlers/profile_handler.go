package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	appservice "github.com/manolaz/mosaic/internal/application/service"
	"github.com/manolaz/mosaic/internal/domain/models"
	"github.com/manolaz/mosaic/pkg/constants"
	"github.com/manolaz/mosaic/pkg/errors"
)

// ProfileHandler serves attendee profiles and organizer imagery.
type ProfileHandler struct {
	profiles *appservice.ProfileAppService
}

// NewProfileHandler creates the handler.
func NewProfileHandler(profiles *appservice.ProfileAppService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Save handles PUT /api/v1/profiles/:address.
func (h *ProfileHandler) Save(c *gin.Context) {
	var profile models.UserProfile
	if !bindJSON(c, &profile) {
		return
	}
	resp, err := h.profiles.SaveProfile(c.Request.Context(), c.Param("address"), &profile)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles GET /api/v1/profiles/:address.
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profiles.LoadProfile(c.Request.Context(), c.Param("address"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveOrganizerImage handles PUT /api/v1/organizers/:slug/image with a raw
// image body.
func (h *ProfileHandler) SaveOrganizerImage(c *gin.Context) {
	image, err := io.ReadAll(io.LimitReader(c.Request.Body, 8<<20))
	if err != nil || len(image) == 0 {
		respondError(c, errors.New(constants.ErrCodeInvalidRequest, "image body is required"))
		return
	}
	blobID, err := h.profiles.SaveOrganizerImage(
		c.Request.Context(), c.Param("slug"), image, c.ContentType())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"blobId": blobID})
}
