package handlers

import (
	"errors"
	"log"
	"net/http"

	"promanager-backend/internal/models"
	"promanager-backend/internal/repository"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth      *AuthHandler
	Member    *MemberHandler
	Project   *ProjectHandler
	Task      *TaskHandler
	File      *FileHandler
	Comment   *CommentHandler
	Dashboard *DashboardHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:      &AuthHandler{authService: services.Auth},
		Member:    &MemberHandler{memberService: services.Member},
		Project:   &ProjectHandler{projectService: services.Project},
		Task:      &TaskHandler{taskService: services.Task},
		File:      &FileHandler{fileService: services.File},
		Comment:   &CommentHandler{commentService: services.Comment},
		Dashboard: &DashboardHandler{dashboardService: services.Dashboard},
	}
}

// handleServiceError maps service errors to HTTP responses. Unknown errors
// are logged and come back as a generic 500 so internals never leak.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, service.ErrProfileMissing):
		c.JSON(http.StatusNotFound, gin.H{"error": "Member profile not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
	default:
		log.Printf("❌ [API] Unexpected error - Path: %s, Error: %v", c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

func toMemberResponse(m *repository.Member) models.MemberResponse {
	return models.MemberResponse{
		ID:         m.ID,
		UserID:     m.UserID,
		Name:       m.Name,
		Role:       m.Role,
		IsActive:   m.IsActive,
		ArchivedAt: m.ArchivedAt,
		CreatedAt:  m.CreatedAt,
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toTaskResponse(t *repository.Task) models.TaskResponse {
	return models.TaskResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Status:      t.Status,
		Priority:    t.Priority,
		ProjectID:   t.ProjectID,
		AssigneeID:  t.AssigneeID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*repository.Task) []models.TaskResponse {
	response := make([]models.TaskResponse, len(tasks))
	for i, t := range tasks {
		response[i] = toTaskResponse(t)
	}
	return response
}

func toFileResponse(f *repository.File) models.FileResponse {
	return models.FileResponse{
		ID:         f.ID,
		Name:       f.Name,
		ContentURL: f.ContentURL,
		SharedOn:   f.SharedOn,
		ProjectID:  f.ProjectID,
		CreatedAt:  f.CreatedAt,
	}
}

func toCommentResponse(cm *repository.Comment) models.CommentResponse {
	return models.CommentResponse{
		ID:         cm.ID,
		Content:    cm.Content,
		TaskID:     cm.TaskID,
		AuthorID:   cm.AuthorID,
		AuthorName: cm.AuthorName,
		CreatedAt:  cm.CreatedAt,
	}
}
