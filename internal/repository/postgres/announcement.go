package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/arogyavax/internal/model"
	"github.com/jwalitptl/arogyavax/internal/repository"
)

type announcementRepository struct {
	BaseRepository
}

func NewAnnouncementRepository(base BaseRepository) repository.AnnouncementRepository {
	return &announcementRepository{base}
}

func (r *announcementRepository) List(ctx context.Context) ([]*model.Announcement, error) {
	items := []*model.Announcement{}
	query := `SELECT id, title, message, created_at FROM announcements ORDER BY created_at DESC, id DESC`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return items, nil
}

func (r *announcementRepository) Create(ctx context.Context, a *model.Announcement) error {
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO announcements (title, message) VALUES ($1, $2) RETURNING id, created_at`,
		a.Title, a.Message,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *announcementRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return requireAffected(result, "announcement")
}
