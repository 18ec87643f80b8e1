package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pixshare/internal/domain/content"
	"pixshare/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CommentRepository implements content.CommentRepository.
type CommentRepository struct {
	db *DB
}

func NewCommentRepository(db *DB) content.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *content.Comment) error {
	comment.ID = uuid.New()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = time.Now()

	dbModel := toCommentModel(comment)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*content.Comment, error) {
	var dbModel models.CommentModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", commentID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return toCommentEntity(&dbModel), nil
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID uuid.UUID) ([]*content.Comment, error) {
	var dbModels []models.CommentModel
	err := r.db.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*content.Comment, len(dbModels))
	for i := range dbModels {
		comments[i] = toCommentEntity(&dbModels[i])
	}

	return comments, nil
}

func (r *CommentRepository) CountByPost(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uuid.UUID
		Count  int64
	}
	err := r.db.DB.WithContext(ctx).Model(&models.CommentModel{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return counts, nil
}

func toCommentModel(c *content.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID,
		AuthorID:  c.AuthorID,
		PostID:    c.PostID,
		Text:      c.Text,
		ParentID:  c.ParentID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentEntity(m *models.CommentModel) *content.Comment {
	return &content.Comment{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		PostID:    m.PostID,
		Text:      m.Text,
		ParentID:  m.ParentID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
