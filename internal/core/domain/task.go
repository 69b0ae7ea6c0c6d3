package domain

import (
	"errors"
	"time"
)

var ErrTaskNotFound = errors.New("task not found")

// Task is an admin-authored work item worth a fixed number of points.
type Task struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Points      int       `json:"points" bson:"points"`
	CreatedBy   string    `json:"created_by" bson:"created_by"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
