package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ifcampus/meal-gateway/internal/models"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

// StudentRepository reads student profile data from the upstream API.
type StudentRepository struct {
	gw remote
}

// NewStudentRepository constructs a student repository over the upstream gateway.
func NewStudentRepository(gw remote) *StudentRepository {
	return &StudentRepository{gw: gw}
}

// Find returns the student profile for the given upstream id.
func (r *StudentRepository) Find(ctx context.Context, token string, id int) (*models.Student, error) {
	items, err := r.gw.Get(ctx, token, fmt.Sprintf("/all/show-student/%d", id))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	var student models.Student
	if err := json.Unmarshal(items[0], &student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstreamMalformed.Code, appErrors.ErrUpstreamMalformed.Status, "unexpected student payload")
	}
	return &student, nil
}
