package service

import (
	"context"
	"log"
	"sort"
	"time"

	"promanager-backend/internal/db"
	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"
)

// DashboardService builds the three summary views. The global view is
// deliberately unscoped: every authenticated caller sees the same
// system-wide totals. The chef and member views read through the caller's
// access scope and require a resolvable profile.
type DashboardService interface {
	Global(ctx context.Context) (*GlobalStats, error)
	Chef(ctx context.Context, userID string) (*ChefStats, error)
	Membre(ctx context.Context, userID string) (*MembreStats, error)
}

type ProjectSummary struct {
	ID        string    `json:"id"`
	Nom       string    `json:"nom"`
	Statut    string    `json:"statut"`
	DateDebut time.Time `json:"date_debut"`
	DateFin   time.Time `json:"date_fin"`
}

type TaskSummary struct {
	ID      string    `json:"id"`
	Nom     string    `json:"nom"`
	Statut  string    `json:"statut"`
	DateFin time.Time `json:"date_fin"`
	Projet  string    `json:"projet"`
}

type MemberTaskStats struct {
	MembreID        string `json:"membre_id"`
	Nom             string `json:"nom"`
	Role            string `json:"role"`
	TachesAssignees int    `json:"taches_assignees"`
}

type ActivityEntry struct {
	TacheID string    `json:"tache_id"`
	Nom     string    `json:"nom"`
	Projet  string    `json:"projet"`
	Action  string    `json:"action"`
	Date    time.Time `json:"date"`
}

type GlobalStats struct {
	ProjetsCount    int              `json:"projets_count"`
	TachesCount     int              `json:"taches_count"`
	TachesTerminees int              `json:"taches_terminees"`
	TachesEnCours   int              `json:"taches_en_cours"`
	TachesEnAttente int              `json:"taches_en_attente"`
	TachesAnnulees  int              `json:"taches_annulees"`
	TachesRetard    int              `json:"taches_retard"`
	ProjetsRecents  []ProjectSummary `json:"projets_recents"`
	TachesAVenir    []TaskSummary    `json:"taches_a_venir"`
}

type ChefStats struct {
	ProjetsCount      int               `json:"projets_count"`
	TachesTotal       int               `json:"taches_total"`
	TachesTerminees   int               `json:"taches_terminees"`
	TachesEnCours     int               `json:"taches_en_cours"`
	TachesRetard      int               `json:"taches_retard"`
	Projets           []ProjectSummary  `json:"projets"`
	Membres           []MemberTaskStats `json:"membres"`
	ActivitesRecentes []ActivityEntry   `json:"activites_recentes"`
}

type MembreStats struct {
	ProjetsCount    int              `json:"projets_count"`
	TachesTotal     int              `json:"taches_total"`
	TachesTerminees int              `json:"taches_terminees"`
	TachesEnCours   int              `json:"taches_en_cours"`
	TachesRetard    int              `json:"taches_retard"`
	Projets         []ProjectSummary `json:"projets"`
	Taches          []TaskSummary    `json:"taches"`
}

const globalStatsCacheKey = "dashboard:global"
const globalStatsCacheTTL = 30 * time.Second

type dashboardService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	memberSvc   MemberService
	accessSvc   AccessService
	cache       *db.RedisDB
}

func NewDashboardService(
	projectRepo repository.ProjectRepository,
	taskRepo repository.TaskRepository,
	memberSvc MemberService,
	accessSvc AccessService,
	cache *db.RedisDB,
) DashboardService {
	return &dashboardService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		memberSvc:   memberSvc,
		accessSvc:   accessSvc,
		cache:       cache,
	}
}

// today truncates to the calendar date; a task due today is not overdue.
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func isOverdue(t *repository.Task, day time.Time) bool {
	return t.EndDate.Before(day) && t.Status != types.StatusDone
}

func (s *dashboardService) Global(ctx context.Context) (*GlobalStats, error) {
	if s.cache != nil {
		cached := &GlobalStats{}
		if err := s.cache.GetCache(ctx, globalStatsCacheKey, cached); err == nil {
			return cached, nil
		}
	}

	projects, err := s.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectNames[p.ID] = p.Name
	}

	day := today()
	stats := &GlobalStats{
		ProjetsCount:   len(projects),
		TachesCount:    len(tasks),
		ProjetsRecents: []ProjectSummary{},
		TachesAVenir:   []TaskSummary{},
	}

	var upcoming []*repository.Task
	for _, t := range tasks {
		switch t.Status {
		case types.StatusDone:
			stats.TachesTerminees++
		case types.StatusInProgress:
			stats.TachesEnCours++
		case types.StatusPending:
			stats.TachesEnAttente++
		case types.StatusCancelled:
			stats.TachesAnnulees++
		}
		if isOverdue(t, day) {
			stats.TachesRetard++
		}
		if !t.EndDate.Before(day) {
			upcoming = append(upcoming, t)
		}
	}

	recent, err := s.projectRepo.FindRecent(ctx, 5)
	if err != nil {
		return nil, err
	}
	for _, p := range recent {
		stats.ProjetsRecents = append(stats.ProjetsRecents, toProjectSummary(p))
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].EndDate.Before(upcoming[j].EndDate)
	})
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}
	for _, t := range upcoming {
		stats.TachesAVenir = append(stats.TachesAVenir, toTaskSummary(t, projectNames[t.ProjectID]))
	}

	if s.cache != nil {
		if err := s.cache.SetCache(ctx, globalStatsCacheKey, stats, globalStatsCacheTTL); err != nil {
			log.Printf("[Dashboard] failed to cache global stats: %v", err)
		}
	}
	return stats, nil
}

// Chef summarizes the projects the caller created. A chef who owns no
// projects gets a well-formed zero-valued summary, not an error.
func (s *dashboardService) Chef(ctx context.Context, userID string) (*ChefStats, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrProfileMissing
	}

	projects, err := s.projectRepo.FindByCreator(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	stats := &ChefStats{
		ProjetsCount:      len(projects),
		Projets:           []ProjectSummary{},
		Membres:           []MemberTaskStats{},
		ActivitesRecentes: []ActivityEntry{},
	}
	if len(projects) == 0 {
		return stats, nil
	}

	projectIDs := make([]string, 0, len(projects))
	projectNames := make(map[string]string, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		projectNames[p.ID] = p.Name
		stats.Projets = append(stats.Projets, toProjectSummary(p))
	}

	tasks, err := s.taskRepo.FindByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	day := today()
	assignedCount := make(map[string]int)
	for _, t := range tasks {
		stats.TachesTotal++
		switch t.Status {
		case types.StatusDone:
			stats.TachesTerminees++
		case types.StatusInProgress:
			stats.TachesEnCours++
		}
		if isOverdue(t, day) {
			stats.TachesRetard++
		}
		if t.AssigneeID != nil {
			assignedCount[*t.AssigneeID]++
		}
	}

	// Distinct participants across all owned projects
	seen := make(map[string]bool)
	for _, p := range projects {
		members, err := s.projectRepo.FindMembers(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			stats.Membres = append(stats.Membres, MemberTaskStats{
				MembreID:        m.ID,
				Nom:             m.Name,
				Role:            m.Role,
				TachesAssignees: assignedCount[m.ID],
			})
		}
	}

	stats.ActivitesRecentes = buildActivityFeed(tasks, projectNames, 10)
	return stats, nil
}

// Membre summarizes the caller's own projects (created or joined) and the
// tasks assigned to them.
func (s *dashboardService) Membre(ctx context.Context, userID string) (*MembreStats, error) {
	member, err := s.memberSvc.ResolveProfile(ctx, userID)
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
	joined, err := s.projectRepo.FindByMemberID(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	stats := &MembreStats{
		Projets: []ProjectSummary{},
		Taches:  []TaskSummary{},
	}

	seen := make(map[string]bool, len(created)+len(joined))
	for _, p := range append(created, joined...) {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		stats.Projets = append(stats.Projets, toProjectSummary(p))
	}
	stats.ProjetsCount = len(stats.Projets)

	assigned, err := s.taskRepo.FindByAssignee(ctx, member.ID)
	if err != nil {
		return nil, err
	}

	projectNames := make(map[string]string)
	for _, p := range append(created, joined...) {
		projectNames[p.ID] = p.Name
	}

	day := today()
	for _, t := range assigned {
		stats.TachesTotal++
		switch t.Status {
		case types.StatusDone:
			stats.TachesTerminees++
		case types.StatusInProgress:
			stats.TachesEnCours++
		}
		if isOverdue(t, day) {
			stats.TachesRetard++
		}
		name := projectNames[t.ProjectID]
		if name == "" {
			if p, err := s.projectRepo.FindByID(ctx, t.ProjectID); err == nil && p != nil {
				name = p.Name
				projectNames[p.ID] = p.Name
			}
		}
		stats.Taches = append(stats.Taches, toTaskSummary(t, name))
	}
	return stats, nil
}

// buildActivityFeed annotates the most recently started tasks with a
// derived action label: a Done task shows as "completed" at its end date,
// an InProgress task as "started" at its start date, anything else as
// "created" at its start date.
func buildActivityFeed(tasks []*repository.Task, projectNames map[string]string, limit int) []ActivityEntry {
	sorted := make([]*repository.Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.After(sorted[j].StartDate)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	feed := make([]ActivityEntry, 0, len(sorted))
	for _, t := range sorted {
		entry := ActivityEntry{
			TacheID: t.ID,
			Nom:     t.Name,
			Projet:  projectNames[t.ProjectID],
		}
		switch t.Status {
		case types.StatusDone:
			entry.Action = "completed"
			entry.Date = t.EndDate
		case types.StatusInProgress:
			entry.Action = "started"
			entry.Date = t.StartDate
		default:
			entry.Action = "created"
			entry.Date = t.StartDate
		}
		feed = append(feed, entry)
	}
	return feed
}

func toProjectSummary(p *repository.Project) ProjectSummary {
	return ProjectSummary{
		ID:        p.ID,
		Nom:       p.Name,
		Statut:    p.Status,
		DateDebut: p.StartDate,
		DateFin:   p.EndDate,
	}
}

func toTaskSummary(t *repository.Task, projectName string) TaskSummary {
	return TaskSummary{
		ID:      t.ID,
		Nom:     t.Name,
		Statut:  t.Status,
		DateFin: t.EndDate,
		Projet:  projectName,
	}
}
