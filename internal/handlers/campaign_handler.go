package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/modamuse/lookpost-services-backend/internal/database/repository"
	"github.com/modamuse/lookpost-services-backend/internal/models"
	"github.com/modamuse/lookpost-services-backend/internal/services"
	"github.com/modamuse/lookpost-services-backend/internal/services/excel"
	"github.com/modamuse/lookpost-services-backend/internal/utils"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	reportService   *excel.Service
}

func NewCampaignHandler(db *gorm.DB, rabbitMQ *services.RabbitMQService, languageTag string) *CampaignHandler {
	campaignRepo := repository.NewCampaignRepository(db)
	return &CampaignHandler{
		campaignService: services.NewCampaignService(campaignRepo, rabbitMQ, languageTag),
		reportService:   excel.NewService(),
	}
}

// CreateCampaign godoc
// @Summary Create a new campaign
// @Description Create a new campaign draft for the authenticated user
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param request body models.CreateCampaignRequest true "Create campaign request"
// @Success 201 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.CreateCampaign(userID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}

// GetCampaigns godoc
// @Summary List campaigns
// @Description Get campaigns of the authenticated user with pagination
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100, use 0 to get all)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns [get]
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	page, pageSize := utils.ParsePaginationFromQuery(c.Query("page"), c.Query("page_size"))

	if utils.ShouldGetAll(pageSize) {
		responses, err := h.campaignService.GetCampaignResponsesByUser(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"campaigns": responses, "total": len(responses)})
		return
	}

	page, pageSize = utils.ValidateAndNormalizePagination(page, pageSize)
	responses, total, err := h.campaignService.GetCampaignsByUserPaginated(userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"campaigns":  responses,
		"pagination": utils.CalculatePaginationInfo(int(total), page, pageSize),
	})
}

// GetCampaign godoc
// @Summary Get campaign
// @Description Get a single campaign by ID (user must own it)
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	response, err := h.campaignService.GetCampaignByID(userID, campaignID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateCampaign godoc
// @Summary Update campaign
// @Description Update a campaign (user must own it)
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Param request body models.UpdateCampaignRequest true "Update campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	var req models.UpdateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.UpdateCampaign(userID, campaignID, &req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// DeleteCampaign godoc
// @Summary Delete campaign
// @Description Delete a campaign (user must own it)
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	if err := h.campaignService.DeleteCampaign(userID, campaignID); err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete campaign", "details": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// ValidateCampaign godoc
// @Summary Validate campaign
// @Description Validate a campaign against the LookPost schema, reporting errors, warnings and auto-corrections
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Param apply query bool false "Persist auto-corrected fields back to the campaign"
// @Success 200 {object} models.ValidationResult
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/validate [post]
func (h *CampaignHandler) ValidateCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")
	apply := c.Query("apply") == "true"

	result, err := h.campaignService.ValidateCampaign(userID, campaignID, apply)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ExportCampaign godoc
// @Summary Export campaign
// @Description Download the campaign as a LookPost JSON document. Fails when the campaign has validation errors.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/export [get]
func (h *CampaignHandler) ExportCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	fileName, data, err := h.campaignService.ExportCampaign(userID, campaignID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if strings.Contains(err.Error(), "failed validation") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export campaign", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/json", data)
}

// PublishCampaign godoc
// @Summary Publish campaign
// @Description Mark a campaign as published. Fails when the campaign has validation errors.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/publish [post]
func (h *CampaignHandler) PublishCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	response, err := h.campaignService.PublishCampaign(userID, campaignID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if strings.Contains(err.Error(), "failed validation") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// ScheduleCampaign godoc
// @Summary Schedule campaign
// @Description Schedule a campaign for future publication. Fails when the campaign has validation errors.
// @Tags campaigns
// @Accept json
// @Produce json
// @Security UserIDHeader
// @Param id path string true "Campaign ID"
// @Param request body models.ScheduleCampaignRequest true "Schedule campaign request"
// @Success 200 {object} models.CampaignResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/schedule [post]
func (h *CampaignHandler) ScheduleCampaign(c *gin.Context) {
	userID := c.MustGet("user_id").(string)
	campaignID := c.Param("id")

	var req models.ScheduleCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	response, err := h.campaignService.ScheduleCampaign(userID, campaignID, req.ScheduledAt)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
			return
		}
		if strings.Contains(err.Error(), "in the future") {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if strings.Contains(err.Error(), "failed validation") {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to schedule campaign", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetCampaignReport godoc
// @Summary Campaign report
// @Description Download an Excel report of the user's campaigns
// @Tags campaigns
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security UserIDHeader
// @Success 200 {file} binary
// @Failure 401 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/report.xlsx [get]
func (h *CampaignHandler) GetCampaignReport(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	campaigns, err := h.campaignService.GetCampaignsByUser(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get campaigns", "details": err.Error()})
		return
	}

	buf, err := h.reportService.BuildCampaignReport(campaigns)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report", "details": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+excel.ReportFileName(time.Now()))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
