// ABOUTME: Exercise catalog model.
// ABOUTME: Sessions and plans reference catalog entries by ID.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Exercise is a catalog definition (name + primary muscle). Deleting one
// does not touch historical sessions; their sets keep a snapshot of the name.
type Exercise struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Muscle    string
	CreatedAt time.Time
}

// NewExercise creates an exercise with generated UUID and current timestamp.
func NewExercise(userID, name, muscle string) *Exercise {
	return &Exercise{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Muscle:    muscle,
		CreatedAt: time.Now(),
	}
}
