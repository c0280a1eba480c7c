package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Vikramop/task-mangement-app/models"
)

type TaskStore struct {
	col *mongo.Collection
}

func NewTaskStore(db *mongo.Database) *TaskStore {
	return &TaskStore{col: db.Collection("tasks")}
}

func (s *TaskStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// FindOwnedOrAssigned returns every task the user created or is assigned to.
func (s *TaskStore) FindOwnedOrAssigned(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"createdBy": userID},
		bson.M{"assignedTo": userID},
	}}
	return s.find(ctx, filter)
}

func (s *TaskStore) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cur, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []models.Task
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskStore) Create(ctx context.Context, task *models.Task) error {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if _, err := s.col.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (s *TaskStore) Update(ctx context.Context, task *models.Task) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *TaskStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ReassignOwned points assignedTo at the given user on every task the owner
// created, returning the number of tasks touched.
func (s *TaskStore) ReassignOwned(ctx context.Context, ownerID, assigneeID primitive.ObjectID) (int64, error) {
	res, err := s.col.UpdateMany(ctx,
		bson.M{"createdBy": ownerID},
		bson.M{"$set": bson.M{"assignedTo": assigneeID, "updatedAt": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to reassign tasks: %w", err)
	}
	return res.ModifiedCount, nil
}
