package service

import (
	"context"
	"fmt"
	"time"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/socket"
)

type ProjectService interface {
	List(ctx context.Context, userID string) ([]*repository.Project, error)
	Get(ctx context.Context, userID, projectID string) (*ProjectDetail, error)
	Create(ctx context.Context, userID string, req *CreateProjectRequest) (*repository.Project, error)
	Update(ctx context.Context, userID, projectID string, req *UpdateProjectRequest) (*repository.Project, error)
	Delete(ctx context.Context, userID, projectID string) error

	AddMember(ctx context.Context, userID, projectID, memberID string) (string, error)
	RemoveMember(ctx context.Context, userID, projectID, memberID string) (string, error)
}

type CreateProjectRequest struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
}

type UpdateProjectRequest struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
}

// ProjectDetail is a project with its participants and tasks resolved.
// Participants are the member set plus the creator.
type ProjectDetail struct {
	Project *repository.Project
	Creator *repository.Member
	Members []*repository.Member
	Tasks   []*repository.Task
}

type projectService struct {
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
	taskRepo    repository.TaskRepository
	memberSvc   MemberService
	permService PermissionService
	accessSvc   AccessService
	broadcaster *socket.Broadcaster
}

func NewProjectService(
	projectRepo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
	taskRepo repository.TaskRepository,
	memberSvc MemberService,
	permService PermissionService,
	accessSvc AccessService,
	broadcaster *socket.Broadcaster,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		taskRepo:    taskRepo,
		memberSvc:   memberSvc,
		permService: permService,
		accessSvc:   accessSvc,
		broadcaster: broadcaster,
	}
}

func (s *projectService) List(ctx context.Context, userID string) ([]*repository.Project, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	// nil member scopes to the empty set, never an error on a pure read
	return s.accessSvc.VisibleProjects(ctx, member)
}

func (s *projectService) Get(ctx context.Context, userID, projectID string) (*ProjectDetail, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	visible, err := s.accessSvc.CanSeeProject(ctx, member, project)
	if err != nil {
		return nil, err
	}
	if !visible {
		// Out-of-scope reads look identical to missing rows.
		return nil, ErrNotFound
	}

	creator, err := s.memberRepo.FindByID(ctx, project.CreatedBy)
	if err != nil {
		return nil, err
	}
	members, err := s.projectRepo.FindMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project: project,
		Creator: creator,
		Members: members,
		Tasks:   tasks,
	}, nil
}

func (s *projectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*repository.Project, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
	}
	if !s.permService.CanManageProjects(member) {
		return nil, ErrForbidden
	}
	if req.Name == "" {
		return nil, ErrInvalidInput
	}

	project := &repository.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		CreatedBy:   member.ID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, userID, projectID string, req *UpdateProjectRequest) (*repository.Project, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
	}
	if !s.permService.CanManageProjects(member) {
		return nil, ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.StartDate != nil {
		project.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		project.EndDate = *req.EndDate
	}
	if req.Status != nil {
		project.Status = *req.Status
	}

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectUpdated(project.ID, project.Name)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, userID, projectID string) error {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrProfileMissing
	}
	if !s.permService.CanManageProjects(member) {
		return ErrForbidden
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}

	// Owned tasks, files and comments go with the project (FK cascade).
	return s.projectRepo.Delete(ctx, projectID)
}

// AddMember is idempotent: adding a member twice leaves the member set
// unchanged and still reports success.
func (s *projectService) AddMember(ctx context.Context, userID, projectID, memberID string) (string, error) {
	actor, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if actor == nil {
		return "", ErrProfileMissing
	}
	if !s.permService.CanManageMembers(actor) {
		return "", ErrForbidden
	}
	if memberID == "" {
		return "", ErrInvalidInput
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", ErrNotFound
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrNotFound
	}

	if err := s.projectRepo.AddMember(ctx, projectID, memberID); err != nil {
		return "", err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberAdded(projectID, member.ID, member.Name)
	}
	return fmt.Sprintf("%s ajouté au projet", member.Name), nil
}

// RemoveMember is idempotent: removing an absent member is a no-op success.
func (s *projectService) RemoveMember(ctx context.Context, userID, projectID, memberID string) (string, error) {
	actor, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return "", err
	}
	if actor == nil {
		return "", ErrProfileMissing
	}
	if !s.permService.CanManageMembers(actor) {
		return "", ErrForbidden
	}
	if memberID == "" {
		return "", ErrInvalidInput
	}

	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return "", err
	}
	if project == nil {
		return "", ErrNotFound
	}
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return "", err
	}
	if member == nil {
		return "", ErrNotFound
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, memberID); err != nil {
		return "", err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberRemoved(projectID, member.ID, member.Name)
	}
	return fmt.Sprintf("%s retiré du projet", member.Name), nil
}
