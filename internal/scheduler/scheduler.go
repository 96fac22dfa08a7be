package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/managio-dev/managio/db"
	"github.com/managio-dev/managio/internal/events"
	"github.com/managio-dev/managio/internal/models"
	"github.com/managio-dev/managio/internal/types"
)

// DeadlineWindow is how far ahead each sweep looks for due tasks.
const DeadlineWindow = 24 * time.Hour

// Scheduler periodically sweeps for tasks approaching their due date and
// invoices past theirs. Due tasks get a reminder event; overdue invoices
// are flipped to the overdue status.
type Scheduler struct {
	bus      events.Bus
	interval time.Duration
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewScheduler(bus events.Bus, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		bus:      bus,
		interval: interval,
		now:      time.Now,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs an immediate sweep and then keeps sweeping on the configured
// interval until Stop is called.
func (s *Scheduler) Start() {
	logrus.WithField("interval", s.interval.String()).Info("Deadline scheduler started")

	go func() {
		s.Sweep()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Stop shuts the sweep loop down.
func (s *Scheduler) Stop() {
	s.cancel()
	logrus.Info("Deadline scheduler stopped")
}

// Sweep runs one pass over tasks and invoices. Exported so tests and
// operational tooling can trigger it directly.
func (s *Scheduler) Sweep() {
	if err := s.sweepTasks(); err != nil {
		logrus.WithError(err).Error("Task deadline sweep failed")
	}

	if err := s.sweepInvoices(); err != nil {
		logrus.WithError(err).Error("Invoice overdue sweep failed")
	}
}

type dueTask struct {
	models.Task
	OrganizationID uint
}

// sweepTasks publishes one reminder per task entering the deadline window.
// The notified timestamp is set first so a publish retry cannot double-remind.
func (s *Scheduler) sweepTasks() error {
	now := s.now()

	var due []dueTask

	err := db.DB.Model(&models.Task{}).
		Select("tasks.*, projects.organization_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.status != ?", "done").
		Where("tasks.due_date IS NOT NULL AND tasks.due_date BETWEEN ? AND ?", now, now.Add(DeadlineWindow)).
		Where("tasks.deadline_notified_at IS NULL").
		Scan(&due).Error

	if err != nil {
		return err
	}

	for _, task := range due {
		if err := db.DB.Model(&models.Task{}).
			Where("id = ?", task.ID).
			Update("deadline_notified_at", now).Error; err != nil {
			return err
		}

		event := events.NewEvent(
			types.NotificationDeadlineApproaching,
			task.OrganizationID,
			"Deadline approaching",
			fmt.Sprintf("%q is due %s", task.Title, task.DueDate.Format("Jan 2 at 15:04")),
		)
		event.Priority = types.PriorityHigh
		event.EntityType = "task"
		taskID := task.ID
		event.EntityID = &taskID

		if task.AssigneeID != nil {
			event.RecipientIDs = []uint{*task.AssigneeID}
		}

		if err := s.bus.Publish(s.ctx, event); err != nil {
			logrus.WithError(err).WithField("task_id", task.ID).Warn("Failed to publish deadline event")
		}
	}

	if len(due) > 0 {
		logrus.WithField("count", len(due)).Info("Published deadline reminders")
	}

	return nil
}

// sweepInvoices flips sent invoices past their due date to overdue.
func (s *Scheduler) sweepInvoices() error {
	result := db.DB.Model(&models.Invoice{}).
		Where("status = ? AND due_date < ?", "sent", s.now()).
		Update("status", "overdue")

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		logrus.WithField("count", result.RowsAffected).Info("Marked invoices overdue")
	}

	return nil
}
