package service

import (
	"context"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"
)

// AccessService computes the subset of entities a caller may see.
//
// For a non-admin member the visible projects are the set union of the
// projects they created and the projects they joined. The union is built
// over a seen-map so a project matching both conditions appears exactly
// once; downstream consumers (listings, dashboards) rely on that.
//
// A nil member yields empty sets for all four entity types: scoping fails
// closed when the caller has no resolvable profile.
type AccessService interface {
	VisibleProjects(ctx context.Context, member *repository.Member) ([]*repository.Project, error)
	VisibleTasks(ctx context.Context, member *repository.Member, projectID string) ([]*repository.Task, error)
	VisibleFiles(ctx context.Context, member *repository.Member, projectID string) ([]*repository.File, error)
	VisibleComments(ctx context.Context, member *repository.Member, taskID string) ([]*repository.Comment, error)
	CanSeeProject(ctx context.Context, member *repository.Member, project *repository.Project) (bool, error)
}

type accessService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	fileRepo    repository.FileRepository
	commentRepo repository.CommentRepository
}

func NewAccessService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	fileRepo repository.FileRepository,
	commentRepo repository.CommentRepository,
) AccessService {
	return &accessService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		fileRepo:    fileRepo,
		commentRepo: commentRepo,
	}
}

func (s *accessService) VisibleProjects(ctx context.Context, member *repository.Member) ([]*repository.Project, error) {
	if member == nil {
		return nil, nil
	}
	if member.Role == types.RoleAdmin {
		return s.projectRepo.FindAll(ctx)
	}

	created, err := s.projectRepo.FindByCreator(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	joined, err := s.projectRepo.FindByMemberID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(created)+len(joined))
	projects := make([]*repository.Project, 0, len(created)+len(joined))
	for _, p := range created {
		if !seen[p.ID] {
			seen[p.ID] = true
			projects = append(projects, p)
		}
	}
	for _, p := range joined {
		if !seen[p.ID] {
			seen[p.ID] = true
			projects = append(projects, p)
		}
	}
	return projects, nil
}

func (s *accessService) VisibleTasks(ctx context.Context, member *repository.Member, projectID string) ([]*repository.Task, error) {
	if member == nil {
		return nil, nil
	}
	if member.Role == types.RoleAdmin {
		if projectID != "" {
			return s.taskRepo.FindByProjectID(ctx, projectID)
		}
		return s.taskRepo.FindAll(ctx)
	}

	projectIDs, err := s.visibleProjectIDs(ctx, member, projectID)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.FindByProjectIDs(ctx, projectIDs)
}

func (s *accessService) VisibleFiles(ctx context.Context, member *repository.Member, projectID string) ([]*repository.File, error) {
	if member == nil {
		return nil, nil
	}
	if member.Role == types.RoleAdmin {
		if projectID != "" {
			return s.fileRepo.FindByProjectID(ctx, projectID)
		}
		return s.fileRepo.FindAll(ctx)
	}

	projectIDs, err := s.visibleProjectIDs(ctx, member, projectID)
	if err != nil {
		return nil, err
	}
	return s.fileRepo.FindByProjectIDs(ctx, projectIDs)
}

func (s *accessService) VisibleComments(ctx context.Context, member *repository.Member, taskID string) ([]*repository.Comment, error) {
	if member == nil {
		return nil, nil
	}
	if member.Role == types.RoleAdmin {
		if taskID != "" {
			return s.commentRepo.FindByTaskID(ctx, taskID)
		}
		return s.commentRepo.FindAll(ctx)
	}

	tasks, err := s.VisibleTasks(ctx, member, "")
	if err != nil {
		return nil, err
	}
	taskIDs := make([]string, 0, len(tasks))
	for _, t := range tasks {
		if taskID != "" && t.ID != taskID {
			continue
		}
		taskIDs = append(taskIDs, t.ID)
	}
	return s.commentRepo.FindByTaskIDs(ctx, taskIDs)
}

func (s *accessService) CanSeeProject(ctx context.Context, member *repository.Member, project *repository.Project) (bool, error) {
	if member == nil || project == nil {
		return false, nil
	}
	if member.Role == types.RoleAdmin {
		return true, nil
	}
	if project.CreatedBy == member.ID {
		return true, nil
	}
	return s.projectRepo.HasMember(ctx, project.ID, member.ID)
}

// visibleProjectIDs narrows the caller's visible project set to an optional
// explicit project filter. An out-of-scope filter yields no IDs, never an
// escalation to the full set.
func (s *accessService) visibleProjectIDs(ctx context.Context, member *repository.Member, projectID string) ([]string, error) {
	projects, err := s.VisibleProjects(ctx, member)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		if projectID != "" && p.ID != projectID {
			continue
		}
		ids = append(ids, p.ID)
	}
	return ids, nil
}
