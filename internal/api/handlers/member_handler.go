package handlers

import (
	"net/http"

	"promanager-backend/internal/api/middleware"
	"promanager-backend/internal/models"
	"promanager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ============================================
// Member Handler
// ============================================

type MemberHandler struct {
	memberService service.MemberService
}

// List - List members, active only by default
// GET /members?include_archived=true
func (h *MemberHandler) List(c *gin.Context) {
	includeArchived := c.Query("include_archived") == "true"

	members, err := h.memberService.List(c.Request.Context(), includeArchived)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response := make([]models.MemberResponse, len(members))
	for i, m := range members {
		response[i] = toMemberResponse(m)
	}
	c.JSON(http.StatusOK, response)
}

// Get - Get a member by ID
// GET /members/:id
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Archive - Deactivate a member without losing their history
// POST /members/:id/archive
func (h *MemberHandler) Archive(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	member, err := h.memberService.Archive(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Unarchive - Reactivate an archived member
// POST /members/:id/unarchive
func (h *MemberHandler) Unarchive(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	member, err := h.memberService.Unarchive(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMemberResponse(member))
}

// Profile - Get the caller's profile with activity stats
// GET /profile
func (h *MemberHandler) Profile(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	profile, err := h.memberService.Profile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Username:        profile.Username,
		Email:           profile.Email,
		Name:            profile.Name,
		Role:            profile.Role,
		ProjectsCount:   profile.ProjectsCount,
		TasksTerminated: profile.TasksTerminated,
	})
}

// UpdateProfile - Update the caller's name and email
// PATCH /profile
func (h *MemberHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.memberService.UpdateProfile(c.Request.Context(), userID, req.Name, req.Email); err != nil {
		handleServiceError(c, err)
		return
	}

	profile, err := h.memberService.Profile(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Username:        profile.Username,
		Email:           profile.Email,
		Name:            profile.Name,
		Role:            profile.Role,
		ProjectsCount:   profile.ProjectsCount,
		TasksTerminated: profile.TasksTerminated,
	})
}
