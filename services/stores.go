package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/models"
)

// UserStore is the slice of the user collection the services need.
// *store.UserStore satisfies it; tests substitute in-memory fakes.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

// TaskStore is the task collection contract.
type TaskStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindOwnedOrAssigned(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	Create(ctx context.Context, task *models.Task) error
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ReassignOwned(ctx context.Context, ownerID, assigneeID primitive.ObjectID) (int64, error)
}

// Notifier delivers best-effort assignment notifications.
type Notifier interface {
	TaskAssigned(ctx context.Context, to string, task *models.Task) error
}
