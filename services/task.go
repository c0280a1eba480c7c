package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/models"
	"github.com/Vikramop/task-mangement-app/store"
)

// TaskService implements the task business rules: creation and patching with
// priority derivation, sharing, time-window sorting, analytics and bulk
// reassignment.
type TaskService struct {
	tasks           TaskStore
	users           UserStore
	frontendBaseURL string
	notifier        Notifier
	now             func() time.Time
}

func NewTaskService(tasks TaskStore, users UserStore, frontendBaseURL string, notifier Notifier) *TaskService {
	return &TaskService{
		tasks:           tasks,
		users:           users,
		frontendBaseURL: strings.TrimRight(frontendBaseURL, "/"),
		notifier:        notifier,
		now:             time.Now,
	}
}

// PriorityFromDueDate derives a priority from the due date alone: a due date
// on an earlier calendar day is high, the current calendar day is moderate,
// anything later is low.
func PriorityFromDueDate(dueDate, now time.Time) string {
	due := startOfDay(dueDate)
	today := startOfDay(now)
	switch {
	case due.Before(today):
		return models.PriorityHigh
	case due.Equal(today):
		return models.PriorityModerate
	default:
		return models.PriorityLow
	}
}

// effectivePriority applies the creation rule: keep the explicit priority,
// defaulting to low, but pull it forward to high once the due date is at or
// before now.
func effectivePriority(explicit string, dueDate, now time.Time) string {
	p := explicit
	if p == "" {
		p = models.PriorityLow
	}
	if p != models.PriorityHigh && !dueDate.After(now) {
		p = models.PriorityHigh
	}
	return p
}

type CreateTaskInput struct {
	Title      string                 `json:"title"`
	Category   string                 `json:"category"`
	Checklist  []models.ChecklistItem `json:"checklist"`
	DueDate    time.Time              `json:"dueDate"`
	AssignedTo string                 `json:"assignedTo"` // assignee email
	Priority   string                 `json:"priority"`
}

func (s *TaskService) CreateTask(ctx context.Context, ownerID primitive.ObjectID, in CreateTaskInput) (*TaskView, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || len(in.Checklist) == 0 || in.DueDate.IsZero() {
		return nil, ValidationError("please fill in all required fields")
	}
	for _, item := range in.Checklist {
		if strings.TrimSpace(item.Text) == "" {
			return nil, ValidationError("checklist items must have text")
		}
	}
	if in.Priority != "" && !models.ValidPriority(in.Priority) {
		return nil, ValidationError("priority must be low, moderate or high")
	}
	if in.Category == "" {
		in.Category = models.CategoryToDo
	}
	if !models.ValidCategory(in.Category) {
		return nil, ValidationError("unknown category")
	}

	var assignee *models.User
	if email := strings.TrimSpace(in.AssignedTo); email != "" {
		user, err := s.users.FindByEmail(ctx, email)
		if errors.Is(err, store.ErrNotFound) {
			// Deliberately a validation failure, not a 404: the task
			// request itself is bad.
			return nil, ValidationError("assigned user does not exist")
		}
		if err != nil {
			return nil, err
		}
		assignee = user
	}

	now := s.now()
	task := &models.Task{
		Title:     in.Title,
		Category:  in.Category,
		Checklist: in.Checklist,
		DueDate:   in.DueDate,
		Priority:  effectivePriority(in.Priority, in.DueDate, now),
		CreatedBy: ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if assignee != nil {
		task.AssignedTo = &assignee.ID
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	if assignee != nil {
		s.notifyAssigned(ctx, assignee.Email, task)
	}

	view := s.toView(ctx, task)
	return &view, nil
}

func (s *TaskService) ListTasks(ctx context.Context, userID primitive.ObjectID) ([]TaskView, error) {
	tasks, err := s.tasks.FindOwnedOrAssigned(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toViews(ctx, tasks), nil
}

// EditTaskInput uses pointers so absent fields are left untouched.
type EditTaskInput struct {
	Title      *string                `json:"title"`
	Category   *string                `json:"category"`
	Checklist  []models.ChecklistItem `json:"checklist"`
	DueDate    *time.Time             `json:"dueDate"`
	AssignedTo *string                `json:"assignedTo"` // assignee email
	Priority   *string                `json:"priority"`
}

// EditTask patches a task. Only the owner or the current assignee may edit.
func (s *TaskService) EditTask(ctx context.Context, callerID, taskID primitive.ObjectID, in EditTaskInput) (*TaskView, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundError("task not found")
	}
	if err != nil {
		return nil, err
	}
	if !s.canEdit(callerID, task) {
		return nil, ForbiddenError("only the owner or assignee can edit this task")
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, ValidationError("title cannot be empty")
		}
		task.Title = title
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, ValidationError("unknown category")
		}
		task.Category = *in.Category
	}
	if in.Checklist != nil {
		if len(in.Checklist) == 0 {
			return nil, ValidationError("checklist cannot be empty")
		}
		for _, item := range in.Checklist {
			if strings.TrimSpace(item.Text) == "" {
				return nil, ValidationError("checklist items must have text")
			}
		}
		task.Checklist = in.Checklist
	}

	var newAssignee *models.User
	if in.AssignedTo != nil {
		user, err := s.users.FindByEmail(ctx, strings.TrimSpace(*in.AssignedTo))
		if errors.Is(err, store.ErrNotFound) {
			return nil, ValidationError("assigned user does not exist")
		}
		if err != nil {
			return nil, err
		}
		newAssignee = user
		task.AssignedTo = &user.ID
	}

	now := s.now()
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}
	switch {
	case in.Priority != nil:
		if !models.ValidPriority(*in.Priority) {
			return nil, ValidationError("priority must be low, moderate or high")
		}
		task.Priority = effectivePriority(*in.Priority, task.DueDate, now)
	case in.DueDate != nil:
		// Due date moved without an explicit priority: re-derive it.
		task.Priority = PriorityFromDueDate(task.DueDate, now)
	}

	task.UpdatedAt = now
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	if newAssignee != nil {
		s.notifyAssigned(ctx, newAssignee.Email, task)
	}

	view := s.toView(ctx, task)
	return &view, nil
}

// DeleteTask removes a task. Only the owner may delete; this closes the
// unauthenticated-delete gap of the system this replaces.
func (s *TaskService) DeleteTask(ctx context.Context, callerID, taskID primitive.ObjectID) (*TaskView, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundError("task not found")
	}
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != callerID {
		return nil, ForbiddenError("only the owner can delete this task")
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return nil, err
	}
	view := s.toView(ctx, task)
	return &view, nil
}

// ShareTask returns the public link for a task. The link carries no token;
// the read endpoint it points at is unauthenticated.
func (s *TaskService) ShareTask(ctx context.Context, taskID primitive.ObjectID) (string, error) {
	if _, err := s.tasks.FindByID(ctx, taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", NotFoundError("task not found")
		}
		return "", err
	}
	return fmt.Sprintf("%s/task/%s", s.frontendBaseURL, taskID.Hex()), nil
}

// TaskDetail is the single-task response with the creator joined in.
type TaskDetail struct {
	TaskView
	Creator CreatorInfo `json:"creator"`
}

type CreatorInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *TaskService) GetTaskByID(ctx context.Context, taskID primitive.ObjectID) (*TaskDetail, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, NotFoundError("task not found")
	}
	if err != nil {
		return nil, err
	}

	detail := &TaskDetail{TaskView: s.toView(ctx, task)}
	if creator, err := s.users.FindByID(ctx, task.CreatedBy); err == nil {
		detail.Creator = CreatorInfo{Name: creator.Name, Email: creator.Email}
	}
	return detail, nil
}

// TaskAnalytics aggregates the user's owned-or-assigned tasks.
type TaskAnalytics struct {
	Backlog    int `json:"backlog"`
	ToDo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
	Low        int `json:"low"`
	Moderate   int `json:"moderate"`
	High       int `json:"high"`
	Overdue    int `json:"overdue"`
}

func (s *TaskService) GetTaskAnalytics(ctx context.Context, userID primitive.ObjectID) (*TaskAnalytics, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, NotFoundError("user not found")
		}
		return nil, err
	}

	tasks, err := s.tasks.FindOwnedOrAssigned(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var a TaskAnalytics
	for _, t := range tasks {
		switch t.Category {
		case models.CategoryBacklog:
			a.Backlog++
		case models.CategoryToDo:
			a.ToDo++
		case models.CategoryInProgress:
			a.InProgress++
		case models.CategoryDone:
			a.Done++
		}
		switch t.Priority {
		case models.PriorityLow:
			a.Low++
		case models.PriorityModerate:
			a.Moderate++
		case models.PriorityHigh:
			a.High++
		}
		if t.DueDate.Before(now) {
			a.Overdue++
		}
	}
	return &a, nil
}

// Sort filter values.
const (
	FilterToday     = "Today"
	FilterThisWeek  = "This Week"
	FilterThisMonth = "This Month"
)

// SortedTasks partitions tasks into due-date windows. The buckets are
// exhaustive and non-overlapping: today wins over this-week, this-week over
// this-month, and everything outside the current month lands in beyond.
type SortedTasks struct {
	Today     []TaskView `json:"today"`
	ThisWeek  []TaskView `json:"thisWeek"`
	ThisMonth []TaskView `json:"thisMonth"`
	Beyond    []TaskView `json:"beyond"`
}

func (s *TaskService) SortTasks(ctx context.Context, userID primitive.ObjectID) (*SortedTasks, error) {
	tasks, err := s.tasks.FindOwnedOrAssigned(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := startOfDay(now)
	// Week runs Sunday through Saturday, local calendar.
	weekStart := today.AddDate(0, 0, -int(now.Weekday()))
	weekEnd := weekStart.AddDate(0, 0, 7)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	sorted := &SortedTasks{}
	for _, t := range tasks {
		due := t.DueDate
		view := s.toView(ctx, &t)
		switch {
		case startOfDay(due).Equal(today):
			sorted.Today = append(sorted.Today, view)
		case !due.Before(weekStart) && due.Before(weekEnd):
			sorted.ThisWeek = append(sorted.ThisWeek, view)
		case !due.Before(monthStart) && due.Before(monthEnd):
			sorted.ThisMonth = append(sorted.ThisMonth, view)
		default:
			sorted.Beyond = append(sorted.Beyond, view)
		}
	}
	return sorted, nil
}

// Bucket selects a single partition by filter name; ok is false for an
// unknown filter.
func (st *SortedTasks) Bucket(filter string) ([]TaskView, bool) {
	switch filter {
	case FilterToday:
		return st.Today, true
	case FilterThisWeek:
		return st.ThisWeek, true
	case FilterThisMonth:
		return st.ThisMonth, true
	default:
		return nil, false
	}
}

// AddAssignee moves every task the caller owns to the given user. This is the
// "move" semantic: existing tasks are mutated, nothing is cloned, and the
// caller keeps seeing them as owner.
func (s *TaskService) AddAssignee(ctx context.Context, ownerID primitive.ObjectID, email string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, ValidationError("email is required")
	}

	assignee, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return 0, NotFoundError("user not found")
	}
	if err != nil {
		return 0, err
	}

	count, err := s.tasks.ReassignOwned(ctx, ownerID, assignee.ID)
	if err != nil {
		return 0, err
	}

	if count > 0 && s.notifier != nil {
		if err := s.notifier.TaskAssigned(ctx, assignee.Email, nil); err != nil {
			log.Printf("AddAssignee: failed to notify %s: %v", assignee.Email, err)
		}
	}
	return count, nil
}

func (s *TaskService) canEdit(callerID primitive.ObjectID, task *models.Task) bool {
	if task.CreatedBy == callerID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == callerID
}

func (s *TaskService) notifyAssigned(ctx context.Context, email string, task *models.Task) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.TaskAssigned(ctx, email, task); err != nil {
		log.Printf("failed to notify %s about task %s: %v", email, task.ID.Hex(), err)
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
