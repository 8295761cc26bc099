package handlers

import (
	"net/http"

	"promanager-backend/internal/api/middleware"
	"promanager-backend/internal/models"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ============================================
// Comment Handler
// ============================================

type CommentHandler struct {
	commentService service.CommentService
}

// List - List comments visible to the caller, optionally for one task
// GET /comments?taskId=...
func (h *CommentHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	comments, err := h.commentService.List(c.Request.Context(), userID, c.Query("taskId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		response[i] = toCommentResponse(cm)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Comment on a visible task
// POST /comments
func (h *CommentHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, req.TaskID, req.Content)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// Delete - Delete a comment
// DELETE /comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Commentaire supprimé"})
}
