package models

import "time"

// ============================================
// Auth
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================
// Members
// ============================================

type MemberResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"userId"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	IsActive   bool       `json:"isActive"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type ProfileResponse struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Name            string `json:"nom"`
	Role            string `json:"role"`
	ProjectsCount   int    `json:"projets_count"`
	TasksTerminated int    `json:"taches_terminees"`
}

type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ============================================
// Projects
// ============================================

type CreateProjectRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status"`
}

type AddProjectMemberRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type ProjectResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProjectDetailResponse struct {
	ProjectResponse
	Creator *MemberResponse  `json:"creator,omitempty"`
	Members []MemberResponse `json:"members"`
	Tasks   []TaskResponse   `json:"tasks"`
}

// ============================================
// Tasks
// ============================================

type CreateTaskRequest struct {
	ProjectID   string    `json:"projectId" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Description *string   `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	AssigneeID  *string   `json:"assigneeId"`
}

type UpdateTaskRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssigneeID  *string    `json:"assigneeId"`
}

type AssignTaskRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

type ChangeTaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	ProjectID   string    `json:"projectId"`
	AssigneeID  *string   `json:"assigneeId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TaskMessageResponse struct {
	Task    TaskResponse `json:"task"`
	Message string       `json:"message"`
}

// ============================================
// Files
// ============================================

type CreateFileRequest struct {
	ProjectID  string     `json:"projectId" binding:"required"`
	Name       string     `json:"name" binding:"required"`
	ContentURL *string    `json:"contentUrl"`
	SharedOn   *time.Time `json:"sharedOn"`
}

type FileResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ContentURL *string   `json:"contentUrl,omitempty"`
	SharedOn   time.Time `json:"sharedOn"`
	ProjectID  string    `json:"projectId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ============================================
// Comments
// ============================================

type CreateCommentRequest struct {
	TaskID  string `json:"taskId" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	TaskID     string    `json:"taskId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ============================================
// Generic
// ============================================

type MessageResponse struct {
	Message string `json:"message"`
}
