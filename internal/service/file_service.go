package service

import (
	"context"
	"time"

	"promanager-backend/internal/repository"
)

type FileService interface {
	List(ctx context.Context, userID, projectID string) ([]*repository.File, error)
	Create(ctx context.Context, userID string, req *CreateFileRequest) (*repository.File, error)
	Delete(ctx context.Context, userID, fileID string) error
}

type CreateFileRequest struct {
	ProjectID  string
	Name       string
	ContentURL *string
	SharedOn   time.Time
}

type fileService struct {
	fileRepo    repository.FileRepository
	projectRepo repository.ProjectRepository
	memberSvc   MemberService
	accessSvc   AccessService
}

func NewFileService(
	fileRepo repository.FileRepository,
	projectRepo repository.ProjectRepository,
	memberSvc MemberService,
	accessSvc AccessService,
) FileService {
	return &fileService{
		fileRepo:    fileRepo,
		projectRepo: projectRepo,
		memberSvc:   memberSvc,
		accessSvc:   accessSvc,
	}
}

func (s *fileService) List(ctx context.Context, userID, projectID string) ([]*repository.File, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accessSvc.VisibleFiles(ctx, member, projectID)
}

// Create shares a file on a project. Every role may share files, but only
// within projects the caller can see.
func (s *fileService) Create(ctx context.Context, userID string, req *CreateFileRequest) (*repository.File, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
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
	visible, err := s.accessSvc.CanSeeProject(ctx, member, project)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotFound
	}

	sharedOn := req.SharedOn
	if sharedOn.IsZero() {
		sharedOn = time.Now()
	}

	file := &repository.File{
		Name:       req.Name,
		ContentURL: req.ContentURL,
		SharedOn:   sharedOn,
		ProjectID:  req.ProjectID,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

func (s *fileService) Delete(ctx context.Context, userID, fileID string) error {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrProfileMissing
	}

	file, err := s.fileRepo.FindByID(ctx, fileID)
	if err != nil {
		return err
	}
	if file == nil {
		return ErrNotFound
	}

	project, err := s.projectRepo.FindByID(ctx, file.ProjectID)
	if err != nil {
		return err
	}
	visible, err := s.accessSvc.CanSeeProject(ctx, member, project)
	if err != nil {
		return err
	}
	if !visible {
		return ErrNotFound
	}

	return s.fileRepo.Delete(ctx, fileID)
}
