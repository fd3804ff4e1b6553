package unitofwork

import (
	"context"

	"ref-intake-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	FormRepository() contract.FormRepository
	IntakeSessionRepository() contract.IntakeSessionRepository
	SubmissionRepository() contract.SubmissionRepository
	UploadRepository() contract.UploadRepository
	IntakeMessageRepository() contract.IntakeMessageRepository
}
