package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task priorities.
const (
	PriorityLow      = "low"
	PriorityModerate = "moderate"
	PriorityHigh     = "high"
)

// Task board categories.
const (
	CategoryBacklog    = "Backlog"
	CategoryToDo       = "To-Do"
	CategoryInProgress = "In Progress"
	CategoryDone       = "Done"
)

func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityModerate || p == PriorityHigh
}

func ValidCategory(c string) bool {
	return c == CategoryBacklog || c == CategoryToDo || c == CategoryInProgress || c == CategoryDone
}

// ChecklistItem is a sub-task entry with free text and a completion flag.
type ChecklistItem struct {
	Text string `bson:"text" json:"text"`
	Done bool   `bson:"done" json:"done"`
}

// Task is the stored task document. AssignedTo holds the assignee's user id;
// responses resolve it to the assignee's email (see services.TaskView).
type Task struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Title      string              `bson:"title" json:"title"`
	Category   string              `bson:"category" json:"category"`
	Checklist  []ChecklistItem     `bson:"checklist" json:"checklist"`
	DueDate    time.Time           `bson:"dueDate" json:"dueDate"`
	AssignedTo *primitive.ObjectID `bson:"assignedTo,omitempty" json:"-"`
	Priority   string              `bson:"priority" json:"priority"`
	CreatedBy  primitive.ObjectID  `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}
