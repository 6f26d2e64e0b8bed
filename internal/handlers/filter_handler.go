package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modamuse/lookpost-services-backend/internal/database/repository"
	"github.com/modamuse/lookpost-services-backend/internal/models"
	"github.com/modamuse/lookpost-services-backend/internal/services"
)

type FilterHandler struct {
	filterService *services.FilterService
}

func NewFilterHandler(db *gorm.DB) *FilterHandler {
	campaignRepo := repository.NewCampaignRepository(db)
	prefRepo := repository.NewFilterPreferenceRepository(db)
	return &FilterHandler{
		filterService: services.NewFilterService(campaignRepo, prefRepo),
	}
}

// FilterCampaigns godoc
// @Summary Filter campaigns
// @Description Apply search, date, compliance and facet filters to the user's campaigns
// @Tags filters
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param request body models.FilterState true "Filter state"
// @Success 200 {object} services.FilterCampaignsResult
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/filter [post]
func (h *FilterHandler) FilterCampaigns(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var state models.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.filterService.FilterCampaigns(userID, state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to filter campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFilterOptions godoc
// @Summary Filter options
// @Description Get the facet options derivable from the user's campaigns, with counts
// @Tags filters
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Success 200 {object} models.FilterOptions
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/filter-options [get]
func (h *FilterHandler) GetFilterOptions(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	options, err := h.filterService.GetFilterOptions(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get filter options", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, options)
}

// GetFilterState godoc
// @Summary Get saved filters
// @Description Load the user's persisted filter state, falling back to defaults
// @Tags filters
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Success 200 {object} models.FilterState
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/filters [get]
func (h *FilterHandler) GetFilterState(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	state, err := h.filterService.LoadFilterState(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load filters", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// SaveFilterState godoc
// @Summary Save filters
// @Description Persist the user's filter state. Last write wins.
// @Tags filters
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param request body models.FilterState true "Filter state"
// @Success 200 {object} models.FilterState
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/filters [put]
func (h *FilterHandler) SaveFilterState(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var state models.FilterState
	if err := c.ShouldBindJSON(&state); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	state.Revalidate()
	if err := h.filterService.SaveFilterState(userID, state); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save filters", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, state)
}

// ResetFilterState godoc
// @Summary Reset filters
// @Description Delete the user's persisted filter state
// @Tags filters
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/filters [delete]
func (h *FilterHandler) ResetFilterState(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	if err := h.filterService.ResetFilterState(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset filters", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
