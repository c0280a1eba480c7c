package services

import (
	"context"
	"time"

	"github.com/Vikramop/task-mangement-app/models"
)

// TaskView is a task as rendered in responses: the internal assignee
// reference is resolved to the user's email.
type TaskView struct {
	ID         string                 `json:"id"`
	Title      string                 `json:"title"`
	Category   string                 `json:"category"`
	Checklist  []models.ChecklistItem `json:"checklist"`
	DueDate    time.Time              `json:"dueDate"`
	AssignedTo string                 `json:"assignedTo,omitempty"`
	Priority   string                 `json:"priority"`
	CreatedBy  string                 `json:"createdBy"`
	CreatedAt  time.Time              `json:"createdAt"`
	UpdatedAt  time.Time              `json:"updatedAt"`
}

func (s *TaskService) toView(ctx context.Context, task *models.Task) TaskView {
	view := TaskView{
		ID:        task.ID.Hex(),
		Title:     task.Title,
		Category:  task.Category,
		Checklist: task.Checklist,
		DueDate:   task.DueDate,
		Priority:  task.Priority,
		CreatedBy: task.CreatedBy.Hex(),
		CreatedAt: task.CreatedAt,
		UpdatedAt: task.UpdatedAt,
	}
	if task.AssignedTo != nil {
		// A dangling reference just renders empty rather than failing
		// the whole response.
		if user, err := s.users.FindByID(ctx, *task.AssignedTo); err == nil {
			view.AssignedTo = user.Email
		}
	}
	return view
}

func (s *TaskService) toViews(ctx context.Context, tasks []models.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, s.toView(ctx, &tasks[i]))
	}
	return views
}
