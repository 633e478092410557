package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/nepalfund/nepalfund_backend/internal/core/ports/services"
	"github.com/nepalfund/nepalfund_backend/internal/dto"
)

type campaignHandler struct {
	campaignService portssvc.CampaignSvcFacade
}

func newCampaignHandler(cs portssvc.CampaignSvcFacade) *campaignHandler {
	return &campaignHandler{campaignService: cs}
}

func registerCampaignRoutes(r *gin.Engine, campaignService portssvc.CampaignSvcFacade) {
	h := newCampaignHandler(campaignService)

	campaigns := r.Group("/campaigns")
	{
		campaigns.GET("", h.listCampaigns)
		campaigns.POST("", h.createCampaign)
	}
}

// listCampaigns godoc
// @Summary List the campaign feed
// @Description Highest amount first, ties broken by most recent.
// @Tags campaigns
// @Produce json
// @Success 200 {array} dto.CampaignResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /campaigns [get]
func (h *campaignHandler) listCampaigns(c *gin.Context) {
	campaigns, err := h.campaignService.ListFeed(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list campaigns")
		return
	}
	c.JSON(http.StatusOK, dto.ToCampaignListResponse(campaigns))
}

// createCampaign godoc
// @Summary Create a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Param campaign body dto.CreateCampaignRequest true "Campaign details"
// @Success 201 {object} dto.CreateCampaignResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /campaigns [post]
func (h *campaignHandler) createCampaign(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	campaign, err := h.campaignService.CreateCampaign(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create campaign")
		return
	}
	c.JSON(http.StatusCreated, dto.CreateCampaignResponse{
		Success:  true,
		Message:  "Campaign created successfully",
		Campaign: dto.ToCampaignResponse(campaign),
	})
}
