package contract

import (
	"ref-intake-be/internal/entity"

	"github.com/google/uuid"
)

// SessionCache is the hot path in front of the session table. It may be
// instance-local and lossy; a miss is never an error, the DB (or a client
// recovery snapshot) remains the fallback.
type SessionCache interface {
	Get(id uuid.UUID) (*entity.IntakeSession, bool)
	Save(session *entity.IntakeSession)
	Delete(id uuid.UUID)
}
