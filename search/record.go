package search

import (
	"time"

	"github.com/Arylite/nephtys/models"
)

// Record is the document pushed to the index for one webtoon.
type Record struct {
	ObjectID    string    `json:"objectID"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	Status      string    `json:"status"`
	CoverImage  string    `json:"coverImage"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRecord maps a stored webtoon to its index document; objectID is the webtoon id.
func NewRecord(w models.Webtoon) Record {
	r := Record{
		ObjectID:  w.ID,
		ID:        w.ID,
		Title:     w.Title,
		Author:    w.Author,
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	if w.Description != nil {
		r.Description = *w.Description
	}
	if w.CoverImage != nil {
		r.CoverImage = *w.CoverImage
	}
	return r
}
