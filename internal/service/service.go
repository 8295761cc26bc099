package service

import (
	"errors"

	"promanager-backend/internal/config"
	"promanager-backend/internal/db"
	"promanager-backend/internal/repository"
	"promanager-backend/internal/socket"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("resource not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrProfileMissing     = errors.New("member profile not found")
)

// ============================================
// Services Container
// ============================================

type Services struct {
	Auth        AuthService
	Member      MemberService
	Access      AccessService
	Permission  PermissionService
	Project     ProjectService
	Task        TaskService
	File        FileService
	Comment     CommentService
	Dashboard   DashboardService
	Broadcaster *socket.Broadcaster
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Config      *config.Config
	Repos       *repository.Repositories
	Cache       *db.RedisDB
	Broadcaster *socket.Broadcaster
}

func NewServices(deps *ServiceDeps) *Services {
	// MemberService resolves caller profiles, so every other service
	// depends on it directly or indirectly.
	memberService := NewMemberService(
		deps.Repos.MemberRepo,
		deps.Repos.UserRepo,
		deps.Repos.ProjectRepo,
		deps.Repos.TaskRepo,
	)

	permissionService := NewPermissionService()

	accessService := NewAccessService(
		deps.Repos.ProjectRepo,
		deps.Repos.TaskRepo,
		deps.Repos.FileRepo,
		deps.Repos.CommentRepo,
	)

	return &Services{
		Auth:       NewAuthService(deps.Config, deps.Repos.UserRepo, memberService),
		Member:     memberService,
		Access:     accessService,
		Permission: permissionService,
		Project: NewProjectService(
			deps.Repos.ProjectRepo,
			deps.Repos.MemberRepo,
			deps.Repos.TaskRepo,
			memberService,
			permissionService,
			accessService,
			deps.Broadcaster,
		),
		Task: NewTaskService(
			deps.Config,
			deps.Repos.TaskRepo,
			deps.Repos.ProjectRepo,
			deps.Repos.MemberRepo,
			memberService,
			permissionService,
			accessService,
			deps.Broadcaster,
		),
		File: NewFileService(
			deps.Repos.FileRepo,
			deps.Repos.ProjectRepo,
			memberService,
			accessService,
		),
		Comment: NewCommentService(
			deps.Repos.CommentRepo,
			deps.Repos.TaskRepo,
			memberService,
			accessService,
			deps.Broadcaster,
		),
		Dashboard: NewDashboardService(
			deps.Repos.ProjectRepo,
			deps.Repos.TaskRepo,
			memberService,
			accessService,
			deps.Cache,
		),
		Broadcaster: deps.Broadcaster,
	}
}
