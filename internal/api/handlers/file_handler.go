package handlers

import (
	"net/http"

	"promanager-backend/internal/api/middleware"
	"promanager-backend/internal/models"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ============================================
// File Handler
// ============================================

type FileHandler struct {
	fileService service.FileService
}

// List - List files visible to the caller, optionally for one project
// GET /files?projectId=...
func (h *FileHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	files, err := h.fileService.List(c.Request.Context(), userID, c.Query("projectId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.FileResponse, len(files))
	for i, f := range files {
		response[i] = toFileResponse(f)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Share a file on a project
// POST /files
func (h *FileHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svcReq := &service.CreateFileRequest{
		ProjectID:  req.ProjectID,
		Name:       req.Name,
		ContentURL: req.ContentURL,
	}
	if req.SharedOn != nil {
		svcReq.SharedOn = *req.SharedOn
	}

	file, err := h.fileService.Create(c.Request.Context(), userID, svcReq)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFileResponse(file))
}

// Delete - Delete a shared file
// DELETE /files/:id
func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.fileService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Fichier supprimé"})
}
