package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manolaz/mosaic/internal/application/dto"
	appservice "github.com/manolaz/mosaic/internal/application/service"
)

// NFTHandler serves the event NFT flow.
type NFTHandler struct {
	nfts *appservice.NFTAppService
}

// NewNFTHandler creates the handler.
func NewNFTHandler(nfts *appservice.NFTAppService) *NFTHandler {
	return &NFTHandler{nfts: nfts}
}

// Create handles POST /api/v1/nfts. The image travels base64-encoded in the
// JSON body; multipart is deliberately not supported to keep the surface
// small.
func (h *NFTHandler) Create(c *gin.Context) {
	var req dto.CreateNFTRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.nfts.CreateEventNFT(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
