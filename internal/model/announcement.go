package model

import "time"

type Announcement struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Message   *string   `json:"message,omitempty" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CreateAnnouncementRequest struct {
	Title   string  `json:"title" binding:"required"`
	Message *string `json:"message"`
}
