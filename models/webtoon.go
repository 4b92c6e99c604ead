package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status is the publication state of a series.
type Status string

const (
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusHiatus    Status = "HIATUS"
	StatusDropped   Status = "DROPPED"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusOngoing, StatusCompleted, StatusHiatus, StatusDropped}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Webtoon is a catalog entry. CoverImage holds the object storage key, never a signed URL.
type Webtoon struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description"`
	Author      string    `gorm:"size:255;not null" json:"author"`
	Status      Status    `gorm:"size:16;not null;index" json:"status"`
	CoverImage  *string   `gorm:"size:1024" json:"coverImage"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BeforeCreate assigns the id when the caller did not provide one.
func (w *Webtoon) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
