package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/openbounty/bounty-board-api/internal/dto"
	apierrors "github.com/openbounty/bounty-board-api/internal/errors"
	"github.com/openbounty/bounty-board-api/internal/middleware"
	"github.com/openbounty/bounty-board-api/internal/services"
)

// BountyHandler coordinates bounty-related HTTP handlers.
type BountyHandler struct {
	bountyService *services.BountyService
	aiService     *services.AIService
}

// NewBountyHandler creates a new BountyHandler.
func NewBountyHandler(bountyService *services.BountyService, aiService *services.AIService) *BountyHandler {
	return &BountyHandler{
		bountyService: bountyService,
		aiService:     aiService,
	}
}

// ListBounties returns all bounties matching the optional category, status
// and search filters, newest first. Public endpoint.
func (h *BountyHandler) ListBounties(c *gin.Context) {
	bounties, err := h.bountyService.ListBounties(services.ListBountiesInput{
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Search:   c.Query("search"),
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCategory) || errors.Is(err, services.ErrInvalidStatus) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch bounties")
		return
	}

	c.JSON(http.StatusOK, dto.ToBountyDTOs(bounties))
}

// GetBounty returns a single bounty with creator and submissions.
func (h *BountyHandler) GetBounty(c *gin.Context) {
	bountyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid bounty ID")
		return
	}

	bounty, err := h.bountyService.GetBounty(bountyID)
	if err != nil {
		respondBountyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBountyDTO(*bounty))
}

// CreateBounty creates a new bounty owned by the session user.
func (h *BountyHandler) CreateBounty(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateBountyRequest struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Reward      any      `json:"reward" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		Project     string   `json:"project"`
		DueDate     string   `json:"due_date"`
		Tags        []string `json:"tags"`
	}

	var req CreateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	bounty, err := h.bountyService.CreateBounty(services.CreateBountyInput{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		Category:    req.Category,
		Project:     req.Project,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		CreatorID:   userID,
	})
	if err != nil {
		respondBountyError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBountyDTO(*bounty))
}

// UpdateBounty applies a status and/or progress change to a bounty. Only
// the creator may do this.
func (h *BountyHandler) UpdateBounty(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	bountyID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid bounty ID")
		return
	}

	type UpdateBountyRequest struct {
		Status   *string `json:"status"`
		Progress *int    `json:"progress"`
	}

	var req UpdateBountyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if req.Status == nil && req.Progress == nil {
		apierrors.BadRequest(c, "Nothing to update")
		return
	}

	bounty, err := h.bountyService.UpdateBounty(services.UpdateBountyInput{
		BountyID: bountyID,
		ActorID:  userID,
		Status:   req.Status,
		Progress: req.Progress,
	})
	if err != nil {
		respondBountyError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBountyDTO(*bounty))
}

// GenerateBountyDraft drafts bounty fields from free text using AI. The
// draft is returned to the client, nothing is persisted.
func (h *BountyHandler) GenerateBountyDraft(c *gin.Context) {
	if _, exists := middleware.GetUserID(c); !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type GenerateRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if h.aiService == nil {
		apierrors.ServiceUnavailable(c, "AI service is not configured. Please set OPENAI_API_KEY environment variable.")
		return
	}

	draft, err := h.aiService.DraftBountyFromText(c.Request.Context(), req.Text)
	if err != nil {
		apierrors.InternalError(c, "Failed to generate bounty draft")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"draft": draft,
	})
}

func respondBountyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBountyNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotBountyCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidReward),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidDueDate),
		errors.Is(err, services.ErrInvalidProgress):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
