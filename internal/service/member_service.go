package service

import (
	"context"
	"time"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"
)

type MemberService interface {
	// ResolveProfile maps an authenticated user to their member profile.
	// Returns nil (no error) when the user has no profile; callers decide
	// whether that is ErrProfileMissing for their operation.
	ResolveProfile(ctx context.Context, userID string) (*repository.Member, error)
	// ResolveOrProvision resolves the caller's profile and creates a default
	// MEMBRE profile on first login when none exists yet.
	ResolveOrProvision(ctx context.Context, user *repository.User) (*repository.Member, error)

	List(ctx context.Context, includeArchived bool) ([]*repository.Member, error)
	GetByID(ctx context.Context, memberID string) (*repository.Member, error)

	Archive(ctx context.Context, actorUserID, memberID string) (*repository.Member, error)
	Unarchive(ctx context.Context, actorUserID, memberID string) (*repository.Member, error)

	Profile(ctx context.Context, userID string) (*ProfileStats, error)
	UpdateProfile(ctx context.Context, userID string, name, email *string) error
}

type ProfileStats struct {
	Username        string
	Email           string
	Name            string
	Role            string
	ProjectsCount   int
	TasksTerminated int
}

type memberService struct {
	memberRepo  repository.MemberRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	permService PermissionService
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	userRepo repository.UserRepository,
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
) MemberService {
	return &memberService{
		memberRepo:  memberRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		permService: NewPermissionService(),
	}
}

func (s *memberService) ResolveProfile(ctx context.Context, userID string) (*repository.Member, error) {
	member, err := s.memberRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}
	// Legacy rows carry inconsistent role casing; normalize once here so no
	// comparison site downstream has to.
	if role, ok := types.NormalizeRole(member.Role); ok {
		member.Role = role
	}
	return member, nil
}

func (s *memberService) ResolveOrProvision(ctx context.Context, user *repository.User) (*repository.Member, error) {
	member, err := s.ResolveProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if member != nil {
		return member, nil
	}

	member = &repository.Member{
		UserID: user.ID,
		Name:   user.Name,
		Role:   types.RoleMembre,
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context, includeArchived bool) ([]*repository.Member, error) {
	members, err := s.memberRepo.FindAll(ctx, includeArchived)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if role, ok := types.NormalizeRole(m.Role); ok {
			m.Role = role
		}
	}
	return members, nil
}

func (s *memberService) GetByID(ctx context.Context, memberID string) (*repository.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrNotFound
	}
	if role, ok := types.NormalizeRole(member.Role); ok {
		member.Role = role
	}
	return member, nil
}

// Archive deactivates a member without touching their history: project
// memberships, task assignments and comments all stay in place.
func (s *memberService) Archive(ctx context.Context, actorUserID, memberID string) (*repository.Member, error) {
	actor, err := s.ResolveProfile(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrProfileMissing
	}
	if !s.permService.CanManageMembers(actor) {
		return nil, ErrForbidden
	}

	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.memberRepo.SetArchived(ctx, member.ID, &now); err != nil {
		return nil, err
	}
	member.IsActive = false
	member.ArchivedAt = &now
	return member, nil
}

func (s *memberService) Unarchive(ctx context.Context, actorUserID, memberID string) (*repository.Member, error) {
	actor, err := s.ResolveProfile(ctx, actorUserID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrProfileMissing
	}
	if !s.permService.CanManageMembers(actor) {
		return nil, ErrForbidden
	}

	// GetByID does not filter on is_active, otherwise an archived member
	// could never be found again to unarchive.
	member, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if err := s.memberRepo.SetArchived(ctx, member.ID, nil); err != nil {
		return nil, err
	}
	member.IsActive = true
	member.ArchivedAt = nil
	return member, nil
}

func (s *memberService) Profile(ctx context.Context, userID string) (*ProfileStats, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	member, err := s.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
	}

	created, err := s.projectRepo.FindByCreator(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	assigned, err := s.taskRepo.FindByAssignee(ctx, member.ID)
	if err != nil {
		return nil, err
	}
	terminated := 0
	for _, t := range assigned {
		if t.Status == types.StatusDone {
			terminated++
		}
	}

	return &ProfileStats{
		Username:        user.Name,
		Email:           user.Email,
		Name:            member.Name,
		Role:            member.Role,
		ProjectsCount:   len(created),
		TasksTerminated: terminated,
	}, nil
}

// UpdateProfile lets a caller change their own name and email. The role is
// never caller-writable.
func (s *memberService) UpdateProfile(ctx context.Context, userID string, name, email *string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	member, err := s.ResolveProfile(ctx, userID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrProfileMissing
	}

	if name != nil && *name != "" {
		member.Name = *name
		if err := s.memberRepo.Update(ctx, member); err != nil {
			return err
		}
	}
	if email != nil && *email != "" {
		user.Email = *email
		if err := s.userRepo.Update(ctx, user); err != nil {
			return err
		}
	}
	return nil
}
