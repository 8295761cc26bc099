package service

import (
	"context"
	"fmt"
	"time"

	"promanager-backend/internal/config"
	"promanager-backend/internal/repository"
	"promanager-backend/internal/socket"
	"promanager-backend/internal/types"
)

type TaskService interface {
	List(ctx context.Context, userID, projectID string) ([]*repository.Task, error)
	Get(ctx context.Context, userID, taskID string) (*repository.Task, error)
	Create(ctx context.Context, userID string, req *CreateTaskRequest) (*repository.Task, error)
	Update(ctx context.Context, userID, taskID string, req *UpdateTaskRequest) (*repository.Task, error)
	Delete(ctx context.Context, userID, taskID string) error

	Assign(ctx context.Context, userID, taskID, memberID string) (*repository.Task, string, error)
	Unassign(ctx context.Context, userID, taskID string) (*repository.Task, error)
	ChangeStatus(ctx context.Context, userID, taskID, status string) (*repository.Task, string, error)
}

type CreateTaskRequest struct {
	ProjectID   string
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     time.Time
	Status      string
	Priority    string
	AssigneeID  *string
}

type UpdateTaskRequest struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *string
	Priority    *string
	AssigneeID  *string
}

type taskService struct {
	cfg         *config.Config
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	memberRepo  repository.MemberRepository
	memberSvc   MemberService
	permService PermissionService
	accessSvc   AccessService
	broadcaster *socket.Broadcaster
}

func NewTaskService(
	cfg *config.Config,
	taskRepo repository.TaskRepository,
	projectRepo repository.ProjectRepository,
	memberRepo repository.MemberRepository,
	memberSvc MemberService,
	permService PermissionService,
	accessSvc AccessService,
	broadcaster *socket.Broadcaster,
) TaskService {
	return &taskService{
		cfg:         cfg,
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		memberSvc:   memberSvc,
		permService: permService,
		accessSvc:   accessSvc,
		broadcaster: broadcaster,
	}
}

func (s *taskService) List(ctx context.Context, userID, projectID string) ([]*repository.Task, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accessSvc.VisibleTasks(ctx, member, projectID)
}

func (s *taskService) Get(ctx context.Context, userID, taskID string) (*repository.Task, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	project, err := s.projectRepo.FindByID(ctx, task.ProjectID)
	if err != nil {
		return nil, err
	}
	visible, err := s.accessSvc.CanSeeProject(ctx, member, project)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Create(ctx context.Context, userID string, req *CreateTaskRequest) (*repository.Task, error) {
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

	project, err := s.projectRepo.FindByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrNotFound
	}

	if req.Status == "" {
		req.Status = types.StatusPending
	}
	if !types.IsValidTaskStatus(req.Status) {
		return nil, ErrInvalidInput
	}
	if req.Priority == "" {
		req.Priority = types.PriorityMedium
	}

	if req.AssigneeID != nil {
		if err := s.checkAssignee(ctx, req.ProjectID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &repository.Task{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      req.Status,
		Priority:    req.Priority,
		ProjectID:   req.ProjectID,
		AssigneeID:  req.AssigneeID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskCreated(task.ProjectID, task.ID, task.Name)
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, userID, taskID string, req *UpdateTaskRequest) (*repository.Task, error) {
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

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if req.Status != nil && !types.IsValidTaskStatus(*req.Status) {
		return nil, ErrInvalidInput
	}
	if req.AssigneeID != nil && *req.AssigneeID != "" {
		if err := s.checkAssignee(ctx, task.ProjectID, *req.AssigneeID); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		task.Name = *req.Name
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.StartDate != nil {
		task.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		task.EndDate = *req.EndDate
	}
	if req.Status != nil {
		task.Status = *req.Status
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			task.AssigneeID = nil
		} else {
			task.AssigneeID = req.AssigneeID
		}
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskUpdated(task.ProjectID, task.ID, task.Name)
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID, taskID string) error {
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

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	return s.taskRepo.Delete(ctx, taskID)
}

// Assign sets the task's assignee. Any role may assign; the target member
// must exist but may be archived. Whether the assignee must participate in
// the task's project is governed by ASSIGNEE_MEMBERSHIP_CHECK; the
// historical behavior performs no such check.
func (s *taskService) Assign(ctx context.Context, userID, taskID, memberID string) (*repository.Task, string, error) {
	actor, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if actor == nil {
		return nil, "", ErrProfileMissing
	}
	if memberID == "" {
		return nil, "", ErrInvalidInput
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if task == nil {
		return nil, "", ErrNotFound
	}

	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, "", err
	}
	if member == nil {
		return nil, "", ErrNotFound
	}

	if err := s.checkAssignee(ctx, task.ProjectID, memberID); err != nil {
		return nil, "", err
	}

	if err := s.taskRepo.UpdateAssignee(ctx, taskID, &memberID); err != nil {
		return nil, "", err
	}
	task.AssigneeID = &memberID

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskAssigned(task.ProjectID, task.ID, member.ID, member.Name)
	}
	return task, fmt.Sprintf("Tâche assignée à %s", member.Name), nil
}

func (s *taskService) Unassign(ctx context.Context, userID, taskID string) (*repository.Task, error) {
	actor, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrProfileMissing
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	if err := s.taskRepo.UpdateAssignee(ctx, taskID, nil); err != nil {
		return nil, err
	}
	task.AssigneeID = nil
	return task, nil
}

// ChangeStatus validates the new status against the closed set before the
// permission gate, then persists it. Any status may follow any other; the
// only restriction is who may perform the move.
func (s *taskService) ChangeStatus(ctx context.Context, userID, taskID, status string) (*repository.Task, string, error) {
	actor, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if actor == nil {
		return nil, "", ErrProfileMissing
	}
	if !types.IsValidTaskStatus(status) {
		return nil, "", ErrInvalidInput
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, "", err
	}
	if task == nil {
		return nil, "", ErrNotFound
	}

	if !s.permService.CanChangeTaskStatus(actor, task) {
		return nil, "", ErrForbidden
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, status); err != nil {
		return nil, "", err
	}
	task.Status = status

	if s.broadcaster != nil {
		s.broadcaster.BroadcastTaskStatusChanged(task.ProjectID, task.ID, status)
	}
	return task, fmt.Sprintf("Statut changé à %s", status), nil
}

func (s *taskService) checkAssignee(ctx context.Context, projectID, memberID string) error {
	if !s.cfg.AssigneeMembershipCheck {
		return nil
	}
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrNotFound
	}
	if project.CreatedBy == memberID {
		return nil
	}
	isMember, err := s.projectRepo.HasMember(ctx, projectID, memberID)
	if err != nil {
		return err
	}
	if !isMember {
		return ErrInvalidInput
	}
	return nil
}
