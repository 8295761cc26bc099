package handlers

import (
	"net/http"

	"promanager-backend/internal/api/middleware"
	"promanager-backend/internal/models"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

// List - List projects visible to the caller
// GET /projects
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Get a project with its members and tasks
// GET /projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	detail, err := h.projectService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := models.ProjectDetailResponse{
		ProjectResponse: toProjectResponse(detail.Project),
		Members:         make([]models.MemberResponse, len(detail.Members)),
		Tasks:           toTaskResponses(detail.Tasks),
	}
	if detail.Creator != nil {
		creator := toMemberResponse(detail.Creator)
		response.Creator = &creator
	}
	for i, m := range detail.Members {
		response.Members[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Create - Create a new project
// POST /projects
func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, &service.CreateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Update - Update a project
// PUT /projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), userID, c.Param("id"), &service.UpdateProjectRequest{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProjectResponse(project))
}

// Delete - Delete a project and everything it owns
// DELETE /projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.projectService.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Projet supprimé"})
}

// AddMember - Add a member to the project
// POST /projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AddProjectMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.projectService.AddMember(c.Request.Context(), userID, c.Param("id"), req.MemberID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}

// RemoveMember - Remove a member from the project
// DELETE /projects/:id/members/:memberId
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	message, err := h.projectService.RemoveMember(c.Request.Context(), userID, c.Param("id"), c.Param("memberId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: message})
}
