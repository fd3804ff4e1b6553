package entity

import (
	"time"

	"github.com/google/uuid"
)

// Upload records the metadata of a file the file subsystem has already
// stored durably. Bytes never pass through this service.
type Upload struct {
	Id           uuid.UUID
	SessionId    uuid.UUID
	OriginalName string
	Mime         string
	SizeBytes    int64
	CreatedAt    time.Time
}
