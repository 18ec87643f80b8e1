package content

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainContent "pixshare/internal/domain/content"
	domainUser "pixshare/internal/domain/user"
	"pixshare/internal/logger"
	apperrors "pixshare/pkg/errors"
	"pixshare/pkg/utils"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements the content graph: posts, threaded comments and likes.
// A viewer ID of uuid.Nil means the request is anonymous; annotations like
// viewer_has_liked are then always false.
type Service struct {
	postRepo    domainContent.PostRepository
	commentRepo domainContent.CommentRepository
	likeRepo    domainContent.LikeRepository
	userRepo    domainUser.Repository
}

func NewService(
	postRepo domainContent.PostRepository,
	commentRepo domainContent.CommentRepository,
	likeRepo domainContent.LikeRepository,
	userRepo domainUser.Repository,
) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		userRepo:    userRepo,
	}
}

// NormalizePagination clamps page and limit to sane bounds.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func (s *Service) CreatePost(ctx context.Context, authorID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	post := &domainContent.Post{
		AuthorID:  authorID,
		ImagePath: req.ImagePath,
		Caption:   utils.SanitizeText(req.Caption),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load post author: %w", err)
	}

	logger.Info("Post created",
		zap.String("post_id", post.ID.String()),
		zap.String("author_id", authorID.String()),
		zap.String("event", "post_created"),
	)

	return toPostResponse(post, author, 0, 0, false), nil
}

func (s *Service) GetPost(ctx context.Context, viewerID, postID uuid.UUID) (*PostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, s.mapPostErr(err)
	}

	responses, err := s.annotatePosts(ctx, viewerID, []*domainContent.Post{post})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *Service) ListPosts(ctx context.Context, viewerID uuid.UUID, page, limit int) (*PostListResponse, error) {
	page, limit = NormalizePagination(page, limit)
	offset := (page - 1) * limit

	posts, total, err := s.postRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}

	responses, err := s.annotatePosts(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &PostListResponse{
		Posts: responses,
		Total: total,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *Service) UpdatePost(ctx context.Context, authorID, postID uuid.UUID, req *UpdatePostRequest) (*PostResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	post, err := s.getOwnedPost(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}

	post.ImagePath = req.ImagePath
	post.Caption = utils.SanitizeText(req.Caption)
	post.UpdatedAt = time.Now()
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	responses, err := s.annotatePosts(ctx, authorID, []*domainContent.Post{post})
	if err != nil {
		return nil, err
	}
	return responses[0], nil
}

func (s *Service) DeletePost(ctx context.Context, authorID, postID uuid.UUID) error {
	if _, err := s.getOwnedPost(ctx, authorID, postID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	logger.Info("Post deleted",
		zap.String("post_id", postID.String()),
		zap.String("author_id", authorID.String()),
		zap.String("event", "post_deleted"),
	)

	return nil
}

// RemovePost deletes a post regardless of who authored it. Reserved for
// moderation; the ownership check lives in DeletePost.
func (s *Service) RemovePost(ctx context.Context, moderatorID, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return s.mapPostErr(err)
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}

	logger.Info("Post removed by moderator",
		zap.String("post_id", postID.String()),
		zap.String("moderator_id", moderatorID.String()),
		zap.String("event", "post_removed"),
	)

	return nil
}

func (s *Service) CreateComment(ctx context.Context, authorID, postID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.NewAppError("VALIDATION_ERROR", "Invalid input", err)
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, s.mapPostErr(err)
	}

	if req.ParentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, s.mapCommentErr(err)
		}
		if parent.PostID != postID {
			return nil, apperrors.ErrParentMismatch
		}
	}

	comment := &domainContent.Comment{
		AuthorID: authorID,
		PostID:   postID,
		Text:     utils.SanitizeText(req.Text),
		ParentID: req.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comment author: %w", err)
	}

	logger.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("post_id", postID.String()),
		zap.Bool("is_reply", comment.ParentID != nil),
		zap.String("event", "comment_created"),
	)

	return &CommentResponse{
		ID:        comment.ID,
		Author:    toAuthorResponse(author),
		PostID:    comment.PostID,
		ParentID:  comment.ParentID,
		Text:      comment.Text,
		Replies:   []*CommentResponse{},
		CreatedAt: comment.CreatedAt,
	}, nil
}

// ListComments returns the post's top-level comments with their reply trees.
func (s *Service) ListComments(ctx context.Context, viewerID, postID uuid.UUID) ([]*CommentResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, s.mapPostErr(err)
	}

	nodes, err := s.buildCommentTree(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	roots := make([]*CommentResponse, 0)
	for _, node := range nodes.ordered {
		if node.ParentID == nil {
			roots = append(roots, node)
		}
	}
	return roots, nil
}

// GetComment returns one comment of the post together with its reply subtree.
func (s *Service) GetComment(ctx context.Context, viewerID, postID, commentID uuid.UUID) (*CommentResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, s.mapPostErr(err)
	}

	nodes, err := s.buildCommentTree(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	node, ok := nodes.byID[commentID]
	if !ok {
		return nil, apperrors.ErrCommentNotFound
	}
	return node, nil
}

func (s *Service) LikePost(ctx context.Context, authorID, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return s.mapPostErr(err)
	}

	like := &domainContent.PostLike{AuthorID: authorID, PostID: postID}
	if err := s.likeRepo.CreatePostLike(ctx, like); err != nil {
		if errors.Is(err, domainContent.ErrAlreadyLiked) {
			return apperrors.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *Service) UnlikePost(ctx context.Context, authorID, postID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return s.mapPostErr(err)
	}

	if err := s.likeRepo.DeletePostLike(ctx, authorID, postID); err != nil {
		if errors.Is(err, domainContent.ErrLikeNotFound) {
			return apperrors.ErrLikeNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListPostLikes(ctx context.Context, postID uuid.UUID) ([]*LikeResponse, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, s.mapPostErr(err)
	}

	likes, err := s.likeRepo.ListPostLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, len(likes))
	for i, like := range likes {
		authorIDs[i] = like.AuthorID
	}
	authors, err := s.authorsByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*LikeResponse, len(likes))
	for i, like := range likes {
		responses[i] = &LikeResponse{
			Author:    toAuthorResponse(authors[like.AuthorID]),
			CreatedAt: like.CreatedAt,
		}
	}
	return responses, nil
}

func (s *Service) LikeComment(ctx context.Context, authorID, postID, commentID uuid.UUID) error {
	if err := s.checkCommentInPost(ctx, postID, commentID); err != nil {
		return err
	}

	like := &domainContent.CommentLike{AuthorID: authorID, CommentID: commentID}
	if err := s.likeRepo.CreateCommentLike(ctx, like); err != nil {
		if errors.Is(err, domainContent.ErrAlreadyLiked) {
			return apperrors.ErrAlreadyLiked
		}
		return err
	}
	return nil
}

func (s *Service) UnlikeComment(ctx context.Context, authorID, postID, commentID uuid.UUID) error {
	if err := s.checkCommentInPost(ctx, postID, commentID); err != nil {
		return err
	}

	if err := s.likeRepo.DeleteCommentLike(ctx, authorID, commentID); err != nil {
		if errors.Is(err, domainContent.ErrLikeNotFound) {
			return apperrors.ErrLikeNotFound
		}
		return err
	}
	return nil
}

func (s *Service) ListCommentLikes(ctx context.Context, postID, commentID uuid.UUID) ([]*LikeResponse, error) {
	if err := s.checkCommentInPost(ctx, postID, commentID); err != nil {
		return nil, err
	}

	likes, err := s.likeRepo.ListCommentLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, len(likes))
	for i, like := range likes {
		authorIDs[i] = like.AuthorID
	}
	authors, err := s.authorsByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*LikeResponse, len(likes))
	for i, like := range likes {
		responses[i] = &LikeResponse{
			Author:    toAuthorResponse(authors[like.AuthorID]),
			CreatedAt: like.CreatedAt,
		}
	}
	return responses, nil
}

// annotatePosts decorates posts with author, like count, comment count and
// the viewer's like state using one grouped query per concern.
func (s *Service) annotatePosts(ctx context.Context, viewerID uuid.UUID, posts []*domainContent.Post) ([]*PostResponse, error) {
	postIDs := make([]uuid.UUID, len(posts))
	authorIDs := make([]uuid.UUID, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.AuthorID
	}

	likeCounts, err := s.likeRepo.CountPostLikes(ctx, postIDs)
	if err != nil {
		return nil, err
	}
	commentCounts, err := s.commentRepo.CountByPost(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	viewerLiked := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		viewerLiked, err = s.likeRepo.LikedPosts(ctx, viewerID, postIDs)
		if err != nil {
			return nil, err
		}
	}

	authors, err := s.authorsByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	responses := make([]*PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = toPostResponse(p, authors[p.AuthorID], likeCounts[p.ID], commentCounts[p.ID], viewerLiked[p.ID])
	}
	return responses, nil
}

type commentTree struct {
	ordered []*CommentResponse
	byID    map[uuid.UUID]*CommentResponse
}

// buildCommentTree loads every comment of the post once and links replies to
// their parents in memory. Comments come back oldest first, so parents are
// always linked before their replies and sibling order is stable.
func (s *Service) buildCommentTree(ctx context.Context, viewerID, postID uuid.UUID) (*commentTree, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	likeCounts, err := s.likeRepo.CountCommentLikes(ctx, postID)
	if err != nil {
		return nil, err
	}

	viewerLiked := map[uuid.UUID]bool{}
	if viewerID != uuid.Nil {
		viewerLiked, err = s.likeRepo.LikedComments(ctx, viewerID, postID)
		if err != nil {
			return nil, err
		}
	}

	authorIDs := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		authorIDs[i] = c.AuthorID
	}
	authors, err := s.authorsByID(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	tree := &commentTree{
		ordered: make([]*CommentResponse, 0, len(comments)),
		byID:    make(map[uuid.UUID]*CommentResponse, len(comments)),
	}

	for _, c := range comments {
		node := &CommentResponse{
			ID:             c.ID,
			Author:         toAuthorResponse(authors[c.AuthorID]),
			PostID:         c.PostID,
			ParentID:       c.ParentID,
			Text:           c.Text,
			LikeCount:      likeCounts[c.ID],
			ViewerHasLiked: viewerLiked[c.ID],
			Replies:        []*CommentResponse{},
			CreatedAt:      c.CreatedAt,
		}
		tree.ordered = append(tree.ordered, node)
		tree.byID[c.ID] = node
	}

	for _, node := range tree.ordered {
		if node.ParentID == nil {
			continue
		}
		if parent, ok := tree.byID[*node.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	return tree, nil
}

func (s *Service) authorsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domainUser.User, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}

	byID := make(map[uuid.UUID]*domainUser.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *Service) getOwnedPost(ctx context.Context, authorID, postID uuid.UUID) (*domainContent.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, s.mapPostErr(err)
	}
	if post.AuthorID != authorID {
		return nil, apperrors.ErrNotPostAuthor
	}
	return post, nil
}

func (s *Service) checkCommentInPost(ctx context.Context, postID, commentID uuid.UUID) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return s.mapPostErr(err)
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return s.mapCommentErr(err)
	}
	if comment.PostID != postID {
		return apperrors.ErrCommentNotFound
	}
	return nil
}

func (s *Service) mapPostErr(err error) error {
	if errors.Is(err, domainContent.ErrPostNotFound) {
		return apperrors.ErrPostNotFound
	}
	return err
}

func (s *Service) mapCommentErr(err error) error {
	if errors.Is(err, domainContent.ErrCommentNotFound) {
		return apperrors.ErrCommentNotFound
	}
	return err
}
