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

// SubmissionHandler coordinates submission-related HTTP handlers.
type SubmissionHandler struct {
	submissionService *services.SubmissionService
}

// NewSubmissionHandler creates a new SubmissionHandler.
func NewSubmissionHandler(submissionService *services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{
		submissionService: submissionService,
	}
}

// ListSubmissions returns submissions matching the optional bountyId and
// status filters, newest first. Public endpoint.
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	input := services.ListSubmissionsInput{
		Status: c.Query("status"),
	}

	if bountyIDStr := c.Query("bountyId"); bountyIDStr != "" {
		bountyID, err := strconv.ParseUint(bountyIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid bountyId")
			return
		}
		input.BountyID = &bountyID
	}

	submissions, err := h.submissionService.ListSubmissions(input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidSubmissionStatus) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		apierrors.InternalError(c, "Failed to fetch submissions")
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTOs(submissions))
}

// CreateSubmission submits work against a bounty for the session user.
func (h *SubmissionHandler) CreateSubmission(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateSubmissionRequest struct {
		BountyID uint64 `json:"bounty_id" binding:"required"`
		Content  string `json:"content" binding:"required"`
	}

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.CreateSubmission(services.CreateSubmissionInput{
		BountyID: req.BountyID,
		Content:  req.Content,
		UserID:   userID,
	})
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToSubmissionDTO(*submission))
}

// ReviewSubmission approves or rejects a pending submission. Only the
// creator of the parent bounty may review.
func (h *SubmissionHandler) ReviewSubmission(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	submissionID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid submission ID")
		return
	}

	type ReviewRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	submission, err := h.submissionService.ReviewSubmission(services.ReviewSubmissionInput{
		SubmissionID: submissionID,
		ActorID:      userID,
		Status:       req.Status,
	})
	if err != nil {
		respondSubmissionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmissionDTO(*submission))
}

func respondSubmissionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBountyNotFound),
		errors.Is(err, services.ErrSubmissionNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotBountyCreator):
		apierrors.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrInvalidReviewStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSubmissionNotReviewable):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
