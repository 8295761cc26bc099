package service

import (
	"context"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/socket"
)

type CommentService interface {
	List(ctx context.Context, userID, taskID string) ([]*repository.Comment, error)
	Create(ctx context.Context, userID, taskID, content string) (*repository.Comment, error)
	Delete(ctx context.Context, userID, commentID string) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	taskRepo    repository.TaskRepository
	memberSvc   MemberService
	accessSvc   AccessService
	broadcaster *socket.Broadcaster
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	taskRepo repository.TaskRepository,
	memberSvc MemberService,
	accessSvc AccessService,
	broadcaster *socket.Broadcaster,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		taskRepo:    taskRepo,
		memberSvc:   memberSvc,
		accessSvc:   accessSvc,
		broadcaster: broadcaster,
	}
}

func (s *commentService) List(ctx context.Context, userID, taskID string) ([]*repository.Comment, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accessSvc.VisibleComments(ctx, member, taskID)
}

// Create adds a comment to a visible task. The creation timestamp is
// server-assigned and immutable.
func (s *commentService) Create(ctx context.Context, userID, taskID, content string) (*repository.Comment, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
	}
	if content == "" || taskID == "" {
		return nil, ErrInvalidInput
	}

	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrNotFound
	}

	visible, err := s.taskVisible(ctx, member, task)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, ErrNotFound
	}

	comment := &repository.Comment{
		Content:  content,
		TaskID:   taskID,
		AuthorID: member.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	comment.AuthorName = member.Name

	if s.broadcaster != nil {
		s.broadcaster.BroadcastCommentAdded(task.ProjectID, task.ID, comment.ID)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, userID, commentID string) error {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrProfileMissing
	}

	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}

	task, err := s.taskRepo.FindByID(ctx, comment.TaskID)
	if err != nil {
		return err
	}
	if task == nil {
		return ErrNotFound
	}
	visible, err := s.taskVisible(ctx, member, task)
	if err != nil {
		return err
	}
	if !visible {
		return ErrNotFound
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) taskVisible(ctx context.Context, member *repository.Member, task *repository.Task) (bool, error) {
	tasks, err := s.accessSvc.VisibleTasks(ctx, member, task.ProjectID)
	if err != nil {
		return false, err
	}
	for _, t := range tasks {
		if t.ID == task.ID {
			return true, nil
		}
	}
	return false, nil
}
