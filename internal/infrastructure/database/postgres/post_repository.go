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

// PostRepository implements content.PostRepository.
type PostRepository struct {
	db *DB
}

func NewPostRepository(db *DB) content.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *content.Post) error {
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()

	dbModel := toPostModel(post)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

func (r *PostRepository) GetByID(ctx context.Context, postID uuid.UUID) (*content.Post, error) {
	var dbModel models.PostModel
	err := r.db.DB.WithContext(ctx).First(&dbModel, "id = ?", postID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, content.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return toPostEntity(&dbModel), nil
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]*content.Post, int64, error) {
	var total int64
	if err := r.db.DB.WithContext(ctx).Model(&models.PostModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	var dbModels []models.PostModel
	err := r.db.DB.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&dbModels).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*content.Post, len(dbModels))
	for i := range dbModels {
		posts[i] = toPostEntity(&dbModels[i])
	}

	return posts, total, nil
}

func (r *PostRepository) Update(ctx context.Context, post *content.Post) error {
	post.UpdatedAt = time.Now()

	result := r.db.DB.WithContext(ctx).Model(&models.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"image_path": post.ImagePath,
			"caption":    post.Caption,
			"updated_at": post.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return content.ErrPostNotFound
	}

	return nil
}

func (r *PostRepository) Delete(ctx context.Context, postID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).Delete(&models.PostModel{}, "id = ?", postID)
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return content.ErrPostNotFound
	}

	return nil
}

func toPostModel(p *content.Post) *models.PostModel {
	return &models.PostModel{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		ImagePath: p.ImagePath,
		Caption:   p.Caption,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostEntity(m *models.PostModel) *content.Post {
	return &content.Post{
		ID:        m.ID,
		AuthorID:  m.AuthorID,
		ImagePath: m.ImagePath,
		Caption:   m.Caption,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
