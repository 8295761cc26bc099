package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"promanager-backend/internal/config"
	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"
)

// In-memory repository fakes. They mirror the Postgres repositories'
// contracts: lookups that miss return (nil, nil), AddMember is idempotent,
// RemoveMember of an absent row is a no-op.

type fakeUserRepo struct {
	seq    int
	users  map[string]*repository.User
	tokens map[string]*repository.RefreshToken
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:  make(map[string]*repository.User),
		tokens: make(map[string]*repository.RefreshToken),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *repository.User) error {
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *repository.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error {
	r.tokens[token.Token] = token
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error) {
	return r.tokens[token], nil
}

func (r *fakeUserRepo) DeleteRefreshToken(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeUserRepo) DeleteUserRefreshTokens(ctx context.Context, userID string) error {
	for t, rt := range r.tokens {
		if rt.UserID == userID {
			delete(r.tokens, t)
		}
	}
	return nil
}

type fakeMemberRepo struct {
	seq     int
	members []*repository.Member
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *repository.Member) error {
	r.seq++
	member.ID = fmt.Sprintf("member-%d", r.seq)
	member.IsActive = true
	member.CreatedAt = time.Now()
	r.members = append(r.members, member)
	return nil
}

func (r *fakeMemberRepo) FindByID(ctx context.Context, id string) (*repository.Member, error) {
	for _, m := range r.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindByUserID(ctx context.Context, userID string) (*repository.Member, error) {
	for _, m := range r.members {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) FindAll(ctx context.Context, includeArchived bool) ([]*repository.Member, error) {
	var out []*repository.Member
	for _, m := range r.members {
		if includeArchived || m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *repository.Member) error {
	for i, m := range r.members {
		if m.ID == member.ID {
			r.members[i] = member
		}
	}
	return nil
}

func (r *fakeMemberRepo) SetArchived(ctx context.Context, id string, archivedAt *time.Time) error {
	for _, m := range r.members {
		if m.ID == id {
			m.ArchivedAt = archivedAt
			m.IsActive = archivedAt == nil
		}
	}
	return nil
}

type fakeProjectRepo struct {
	seq         int
	projects    []*repository.Project
	memberships map[string]map[string]bool
	memberRepo  *fakeMemberRepo
}

func newFakeProjectRepo(memberRepo *fakeMemberRepo) *fakeProjectRepo {
	return &fakeProjectRepo{
		memberships: make(map[string]map[string]bool),
		memberRepo:  memberRepo,
	}
}

func (r *fakeProjectRepo) Create(ctx context.Context, project *repository.Project) error {
	r.seq++
	project.ID = fmt.Sprintf("project-%d", r.seq)
	project.CreatedAt = time.Now()
	project.UpdatedAt = project.CreatedAt
	r.projects = append(r.projects, project)
	return nil
}

func (r *fakeProjectRepo) FindByID(ctx context.Context, id string) (*repository.Project, error) {
	for _, p := range r.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProjectRepo) FindAll(ctx context.Context) ([]*repository.Project, error) {
	return append([]*repository.Project{}, r.projects...), nil
}

func (r *fakeProjectRepo) FindByCreator(ctx context.Context, memberID string) ([]*repository.Project, error) {
	var out []*repository.Project
	for _, p := range r.projects {
		if p.CreatedBy == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindByMemberID(ctx context.Context, memberID string) ([]*repository.Project, error) {
	var out []*repository.Project
	for _, p := range r.projects {
		if r.memberships[p.ID][memberID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindRecent(ctx context.Context, limit int) ([]*repository.Project, error) {
	sorted := append([]*repository.Project{}, r.projects...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, project *repository.Project) error {
	for i, p := range r.projects {
		if p.ID == project.ID {
			project.UpdatedAt = time.Now()
			r.projects[i] = project
		}
	}
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id string) error {
	for i, p := range r.projects {
		if p.ID == id {
			r.projects = append(r.projects[:i], r.projects[i+1:]...)
			break
		}
	}
	delete(r.memberships, id)
	return nil
}

func (r *fakeProjectRepo) AddMember(ctx context.Context, projectID, memberID string) error {
	if r.memberships[projectID] == nil {
		r.memberships[projectID] = make(map[string]bool)
	}
	r.memberships[projectID][memberID] = true
	return nil
}

func (r *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, memberID string) error {
	delete(r.memberships[projectID], memberID)
	return nil
}

func (r *fakeProjectRepo) FindMembers(ctx context.Context, projectID string) ([]*repository.Member, error) {
	ids, _ := r.FindMemberIDs(ctx, projectID)
	var out []*repository.Member
	for _, id := range ids {
		if m, _ := r.memberRepo.FindByID(ctx, id); m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) FindMemberIDs(ctx context.Context, projectID string) ([]string, error) {
	ids := make([]string, 0, len(r.memberships[projectID]))
	for id := range r.memberships[projectID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *fakeProjectRepo) HasMember(ctx context.Context, projectID, memberID string) (bool, error) {
	return r.memberships[projectID][memberID], nil
}

type fakeTaskRepo struct {
	seq   int
	tasks []*repository.Task
}

func (r *fakeTaskRepo) Create(ctx context.Context, task *repository.Task) error {
	r.seq++
	task.ID = fmt.Sprintf("task-%d", r.seq)
	task.CreatedAt = time.Now()
	task.UpdatedAt = task.CreatedAt
	r.tasks = append(r.tasks, task)
	return nil
}

func (r *fakeTaskRepo) FindByID(ctx context.Context, id string) (*repository.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeTaskRepo) FindAll(ctx context.Context) ([]*repository.Task, error) {
	return append([]*repository.Task{}, r.tasks...), nil
}

func (r *fakeTaskRepo) FindByProjectID(ctx context.Context, projectID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*repository.Task, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var out []*repository.Task
	for _, t := range r.tasks {
		if wanted[t.ProjectID] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindByAssignee(ctx context.Context, memberID string) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.AssigneeID != nil && *t.AssigneeID == memberID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) FindOverdue(ctx context.Context, today time.Time) ([]*repository.Task, error) {
	var out []*repository.Task
	for _, t := range r.tasks {
		if t.EndDate.Before(today) && t.Status != types.StatusDone {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(ctx context.Context, task *repository.Task) error {
	for i, t := range r.tasks {
		if t.ID == task.ID {
			task.UpdatedAt = time.Now()
			r.tasks[i] = task
		}
	}
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for _, t := range r.tasks {
		if t.ID == id {
			t.Status = status
			t.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeTaskRepo) UpdateAssignee(ctx context.Context, id string, assigneeID *string) error {
	for _, t := range r.tasks {
		if t.ID == id {
			t.AssigneeID = assigneeID
			t.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeFileRepo struct {
	seq   int
	files []*repository.File
}

func (r *fakeFileRepo) Create(ctx context.Context, file *repository.File) error {
	r.seq++
	file.ID = fmt.Sprintf("file-%d", r.seq)
	file.CreatedAt = time.Now()
	r.files = append(r.files, file)
	return nil
}

func (r *fakeFileRepo) FindByID(ctx context.Context, id string) (*repository.File, error) {
	for _, f := range r.files {
		if f.ID == id {
			return f, nil
		}
	}
	return nil, nil
}

func (r *fakeFileRepo) FindAll(ctx context.Context) ([]*repository.File, error) {
	return append([]*repository.File{}, r.files...), nil
}

func (r *fakeFileRepo) FindByProjectID(ctx context.Context, projectID string) ([]*repository.File, error) {
	var out []*repository.File
	for _, f := range r.files {
		if f.ProjectID == projectID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) FindByProjectIDs(ctx context.Context, projectIDs []string) ([]*repository.File, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var out []*repository.File
	for _, f := range r.files {
		if wanted[f.ProjectID] {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeFileRepo) Delete(ctx context.Context, id string) error {
	for i, f := range r.files {
		if f.ID == id {
			r.files = append(r.files[:i], r.files[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCommentRepo struct {
	seq      int
	comments []*repository.Comment
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment *repository.Comment) error {
	r.seq++
	comment.ID = fmt.Sprintf("comment-%d", r.seq)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, comment)
	return nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id string) (*repository.Comment, error) {
	for _, c := range r.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) FindAll(ctx context.Context) ([]*repository.Comment, error) {
	return append([]*repository.Comment{}, r.comments...), nil
}

func (r *fakeCommentRepo) FindByTaskID(ctx context.Context, taskID string) ([]*repository.Comment, error) {
	var out []*repository.Comment
	for _, c := range r.comments {
		if c.TaskID == taskID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) FindByTaskIDs(ctx context.Context, taskIDs []string) ([]*repository.Comment, error) {
	if len(taskIDs) == 0 {
		return nil, nil
	}
	wanted := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		wanted[id] = true
	}
	var out []*repository.Comment
	for _, c := range r.comments {
		if wanted[c.TaskID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) error {
	for i, c := range r.comments {
		if c.ID == id {
			r.comments = append(r.comments[:i], r.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ============================================
// Test Fixture
// ============================================

type fixture struct {
	cfg      *config.Config
	userRepo *fakeUserRepo
	memRepo  *fakeMemberRepo
	projRepo *fakeProjectRepo
	taskRepo *fakeTaskRepo
	fileRepo *fakeFileRepo
	commRepo *fakeCommentRepo

	memberSvc  MemberService
	permSvc    PermissionService
	accessSvc  AccessService
	projectSvc ProjectService
	taskSvc    TaskService
	fileSvc    FileService
	commentSvc CommentService
	dashSvc    DashboardService
}

func newFixture() *fixture {
	cfg := &config.Config{AssigneeMembershipCheck: false}
	userRepo := newFakeUserRepo()
	memRepo := &fakeMemberRepo{}
	projRepo := newFakeProjectRepo(memRepo)
	taskRepo := &fakeTaskRepo{}
	fileRepo := &fakeFileRepo{}
	commRepo := &fakeCommentRepo{}

	memberSvc := NewMemberService(memRepo, userRepo, projRepo, taskRepo)
	permSvc := NewPermissionService()
	accessSvc := NewAccessService(projRepo, taskRepo, fileRepo, commRepo)

	return &fixture{
		cfg:        cfg,
		userRepo:   userRepo,
		memRepo:    memRepo,
		projRepo:   projRepo,
		taskRepo:   taskRepo,
		fileRepo:   fileRepo,
		commRepo:   commRepo,
		memberSvc:  memberSvc,
		permSvc:    permSvc,
		accessSvc:  accessSvc,
		projectSvc: NewProjectService(projRepo, memRepo, taskRepo, memberSvc, permSvc, accessSvc, nil),
		taskSvc:    NewTaskService(cfg, taskRepo, projRepo, memRepo, memberSvc, permSvc, accessSvc, nil),
		fileSvc:    NewFileService(fileRepo, projRepo, memberSvc, accessSvc),
		commentSvc: NewCommentService(commRepo, taskRepo, memberSvc, accessSvc, nil),
		dashSvc:    NewDashboardService(projRepo, taskRepo, memberSvc, accessSvc, nil),
	}
}

// addAccount creates a user with a member profile carrying the given role.
func (f *fixture) addAccount(name, role string) (*repository.User, *repository.Member) {
	ctx := context.Background()
	user := &repository.User{Name: name, Email: name + "@promanager.fr", Password: "x"}
	f.userRepo.Create(ctx, user)
	member := &repository.Member{UserID: user.ID, Name: name, Role: role}
	f.memRepo.Create(ctx, member)
	return user, member
}

// addUserOnly creates a user without a member profile.
func (f *fixture) addUserOnly(name string) *repository.User {
	ctx := context.Background()
	user := &repository.User{Name: name, Email: name + "@promanager.fr", Password: "x"}
	f.userRepo.Create(ctx, user)
	return user
}

func (f *fixture) addProject(creator *repository.Member, name string) *repository.Project {
	project := &repository.Project{
		Name:      name,
		StartDate: time.Now().AddDate(0, 0, -7),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Status:    types.StatusInProgress,
		CreatedBy: creator.ID,
	}
	f.projRepo.Create(context.Background(), project)
	return project
}

func (f *fixture) addTask(project *repository.Project, name, status string, assignee *repository.Member) *repository.Task {
	task := &repository.Task{
		Name:      name,
		StartDate: time.Now().AddDate(0, 0, -3),
		EndDate:   time.Now().AddDate(0, 0, 7),
		Status:    status,
		Priority:  types.PriorityMedium,
		ProjectID: project.ID,
	}
	if assignee != nil {
		task.AssigneeID = &assignee.ID
	}
	f.taskRepo.Create(context.Background(), task)
	return task
}
