package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pixshare/internal/domain/content"
	"pixshare/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
)

// LikeRepository implements content.LikeRepository. Duplicate likes are
// rejected by the composite unique indexes, not by application locking.
type LikeRepository struct {
	db *DB
}

func NewLikeRepository(db *DB) content.LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) CreatePostLike(ctx context.Context, like *content.PostLike) error {
	like.ID = uuid.New()
	like.CreatedAt = time.Now()

	dbModel := &models.PostLikeModel{
		ID:        like.ID,
		AuthorID:  like.AuthorID,
		PostID:    like.PostID,
		CreatedAt: like.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return content.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create post like: %w", err)
	}

	return nil
}

func (r *LikeRepository) DeletePostLike(ctx context.Context, authorID, postID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("author_id = ? AND post_id = ?", authorID, postID).
		Delete(&models.PostLikeModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete post like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return content.ErrLikeNotFound
	}

	return nil
}

func (r *LikeRepository) ListPostLikes(ctx context.Context, postID uuid.UUID) ([]*content.PostLike, error) {
	var dbModels []models.PostLikeModel
	err := r.db.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list post likes: %w", err)
	}

	likes := make([]*content.PostLike, len(dbModels))
	for i, m := range dbModels {
		likes[i] = &content.PostLike{
			ID:        m.ID,
			AuthorID:  m.AuthorID,
			PostID:    m.PostID,
			CreatedAt: m.CreatedAt,
		}
	}

	return likes, nil
}

func (r *LikeRepository) CountPostLikes(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uuid.UUID
		Count  int64
	}
	err := r.db.DB.WithContext(ctx).Model(&models.PostLikeModel{}).
		Select("post_id, count(*) as count").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count post likes: %w", err)
	}

	for _, row := range rows {
		counts[row.PostID] = row.Count
	}

	return counts, nil
}

func (r *LikeRepository) LikedPosts(ctx context.Context, authorID uuid.UUID, postIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	liked := make(map[uuid.UUID]bool, len(postIDs))
	if len(postIDs) == 0 {
		return liked, nil
	}

	var ids []uuid.UUID
	err := r.db.DB.WithContext(ctx).Model(&models.PostLikeModel{}).
		Where("author_id = ? AND post_id IN ?", authorID, postIDs).
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query liked posts: %w", err)
	}

	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}

func (r *LikeRepository) CreateCommentLike(ctx context.Context, like *content.CommentLike) error {
	like.ID = uuid.New()
	like.CreatedAt = time.Now()

	dbModel := &models.CommentLikeModel{
		ID:        like.ID,
		AuthorID:  like.AuthorID,
		CommentID: like.CommentID,
		CreatedAt: like.CreatedAt,
	}

	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if isDuplicateKey(err) {
			return content.ErrAlreadyLiked
		}
		return fmt.Errorf("failed to create comment like: %w", err)
	}

	return nil
}

func (r *LikeRepository) DeleteCommentLike(ctx context.Context, authorID, commentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("author_id = ? AND comment_id = ?", authorID, commentID).
		Delete(&models.CommentLikeModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete comment like: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return content.ErrLikeNotFound
	}

	return nil
}

func (r *LikeRepository) ListCommentLikes(ctx context.Context, commentID uuid.UUID) ([]*content.CommentLike, error) {
	var dbModels []models.CommentLikeModel
	err := r.db.DB.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comment likes: %w", err)
	}

	likes := make([]*content.CommentLike, len(dbModels))
	for i, m := range dbModels {
		likes[i] = &content.CommentLike{
			ID:        m.ID,
			AuthorID:  m.AuthorID,
			CommentID: m.CommentID,
			CreatedAt: m.CreatedAt,
		}
	}

	return likes, nil
}

func (r *LikeRepository) CountCommentLikes(ctx context.Context, postID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CommentID uuid.UUID
		Count     int64
	}
	err := r.db.DB.WithContext(ctx).Model(&models.CommentLikeModel{}).
		Select("comment_likes.comment_id, count(*) as count").
		Joins("JOIN comments ON comments.id = comment_likes.comment_id").
		Where("comments.post_id = ?", postID).
		Group("comment_likes.comment_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comment likes: %w", err)
	}

	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CommentID] = row.Count
	}

	return counts, nil
}

func (r *LikeRepository) LikedComments(ctx context.Context, authorID, postID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	err := r.db.DB.WithContext(ctx).Model(&models.CommentLikeModel{}).
		Joins("JOIN comments ON comments.id = comment_likes.comment_id").
		Where("comment_likes.author_id = ? AND comments.post_id = ?", authorID, postID).
		Pluck("comment_likes.comment_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query liked comments: %w", err)
	}

	liked := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		liked[id] = true
	}

	return liked, nil
}

func isDuplicateKey(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key")
}
