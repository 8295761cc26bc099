package cron

import (
	"context"
	"log"
	"time"

	"promanager-backend/internal/repository"
	"promanager-backend/internal/types"

	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron       *cron.Cron
	taskRepo   repository.TaskRepository
	memberRepo repository.MemberRepository
}

// NewScheduler creates a new scheduler
func NewScheduler(taskRepo repository.TaskRepository, memberRepo repository.MemberRepository) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		taskRepo:   taskRepo,
		memberRepo: memberRepo,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - Overdue task check
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running overdue task check...")
		s.checkOverdueTasks()
	})

	// Run every hour - Check for tasks due today
	s.cron.AddFunc("0 * * * *", func() {
		log.Println("[Cron] Running due today check...")
		s.checkTasksDueToday()
	})

	s.cron.Start()
	log.Println("[Cron] Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// checkOverdueTasks logs a reminder for every overdue task with an assignee
func (s *Scheduler) checkOverdueTasks() {
	ctx := context.Background()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	tasks, err := s.taskRepo.FindOverdue(ctx, today)
	if err != nil {
		log.Printf("[Cron] Error finding overdue tasks: %v", err)
		return
	}

	for _, task := range tasks {
		daysOverdue := int(today.Sub(task.EndDate).Hours() / 24)

		if task.AssigneeID == nil {
			log.Printf("[Cron] Task %q overdue by %d day(s), no assignee", task.Name, daysOverdue)
			continue
		}

		member, err := s.memberRepo.FindByID(ctx, *task.AssigneeID)
		if err != nil || member == nil {
			log.Printf("[Cron] Task %q overdue by %d day(s), assignee %s not found", task.Name, daysOverdue, *task.AssigneeID)
			continue
		}

		log.Printf("[Cron] ⏰ Reminder for %s: task %q is overdue by %d day(s)", member.Name, task.Name, daysOverdue)
	}
}

// checkTasksDueToday logs an urgent reminder for unfinished tasks due today
func (s *Scheduler) checkTasksDueToday() {
	ctx := context.Background()

	tasks, err := s.taskRepo.FindAll(ctx)
	if err != nil {
		log.Printf("[Cron] Error finding tasks due today: %v", err)
		return
	}

	now := time.Now()
	for _, task := range tasks {
		if task.Status == types.StatusDone || task.Status == types.StatusCancelled {
			continue
		}
		if task.EndDate.Year() == now.Year() && task.EndDate.YearDay() == now.YearDay() {
			log.Printf("[Cron] Task %q is due today (status: %s)", task.Name, task.Status)
		}
	}
}

// ManualTrigger allows manual triggering of scheduled checks (for testing)
func (s *Scheduler) ManualTrigger(checkType string) {
	switch checkType {
	case "overdue":
		s.checkOverdueTasks()
	case "due_today":
		s.checkTasksDueToday()
	case "all":
		s.checkOverdueTasks()
		s.checkTasksDueToday()
	}
}
