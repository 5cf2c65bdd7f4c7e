package models

import (
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID         uuid.UUID
	StudentID  uuid.UUID
	FileName   string
	FileURL    string
	FileSize   int64
	IsPrimary  bool
	UploadedAt time.Time
}
