package contract

import (
	"context"

	"ref-intake-be/internal/entity"
	"ref-intake-be/internal/repository/specification"
)

// SubmissionRepository is append-only: snapshots are created once and never
// mutated.
type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Submission, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Submission, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
