package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Vikramop/task-mangement-app/models"
	"github.com/Vikramop/task-mangement-app/store"
	"github.com/Vikramop/task-mangement-app/utils"
)

// Compile-time checks that the real collaborators satisfy the service
// contracts.
var (
	_ UserStore = (*store.UserStore)(nil)
	_ TaskStore = (*store.TaskStore)(nil)
	_ Notifier  = (*utils.Mailer)(nil)
)

func newObjectID(t *testing.T) primitive.ObjectID {
	t.Helper()
	return primitive.NewObjectID()
}

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (f *fakeUserStore) Create(_ context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return store.ErrNotFound
	}
	f.users[user.ID] = *user
	return nil
}

type fakeTaskStore struct {
	tasks map[primitive.ObjectID]models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (f *fakeTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := t
	return &copied, nil
}

func (f *fakeTaskStore) FindOwnedOrAssigned(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	var out []models.Task
	for _, t := range f.tasks {
		if t.CreatedBy == userID || (t.AssignedTo != nil && *t.AssignedTo == userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskStore) Create(_ context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) Update(_ context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return store.ErrNotFound
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.tasks[id]; !ok {
		return store.ErrNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeTaskStore) ReassignOwned(_ context.Context, ownerID, assigneeID primitive.ObjectID) (int64, error) {
	var count int64
	for id, t := range f.tasks {
		if t.CreatedBy == ownerID {
			assignee := assigneeID
			t.AssignedTo = &assignee
			t.UpdatedAt = time.Now()
			f.tasks[id] = t
			count++
		}
	}
	return count, nil
}

type fakeNotifier struct {
	notified []string
	err      error
}

func (f *fakeNotifier) TaskAssigned(_ context.Context, to string, _ *models.Task) error {
	f.notified = append(f.notified, to)
	return f.err
}
