package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// CommentRepository is the interface that wraps methods for comments embedded in posts
type CommentRepository interface {
	// Method AppendComment adds a comment at the end of the post's comment list.
	//
	// If the post does not exist, a not found error is returned.
	AppendComment(ctx context.Context, postID string, comment *models.Comment) error
	// Method GetComments retrieves the comments of a post in insertion order.
	//
	// If the post does not exist, a not found error will be returned together with "nil" value.
	GetComments(ctx context.Context, postID string) ([]models.Comment, error)
	// Method RemoveComment removes the comment at "index" only if it still has "commentID".
	//
	// "false" with a nil error means the list changed since it was read.
	RemoveComment(ctx context.Context, postID string, index int, commentID string) (bool, error)
}

// UsernameLookup resolves comment authors
type UsernameLookup interface {
	// Method GetUsernamesByIDs returns usernames keyed by user ID. Unknown IDs are absent from the map.
	GetUsernamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// maxRemoveAttempts bounds how often a removal is retried after the comment list shifted
const maxRemoveAttempts = 3

type commentService struct {
	repo     CommentRepository
	userRepo UsernameLookup
	logger   *zap.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(repo CommentRepository, userRepo UsernameLookup, logger *zap.Logger) *commentService {
	return &commentService{
		repo:     repo,
		userRepo: userRepo,
		logger:   logger,
	}
}

// Add appends a comment written by authorID to a post
func (s *commentService) Add(ctx context.Context, postID, authorID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.NewValidationError("comment content is required")
	}
	if !isValidID(postID) {
		return nil, models.NewValidationError("invalid post id")
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.AppendComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// List retrieves the comments of a post with their authors resolved
//
// Comments whose author no longer exists are returned with a nil author.
func (s *commentService) List(ctx context.Context, postID string) ([]models.CommentResponse, error) {
	if !isValidID(postID) {
		return nil, models.NewValidationError("invalid post id")
	}

	comments, err := s.repo.GetComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	seen := make(map[string]struct{}, len(comments))
	for _, comment := range comments {
		if _, ok := seen[comment.AuthorID]; ok {
			continue
		}
		seen[comment.AuthorID] = struct{}{}
		ids = append(ids, comment.AuthorID)
	}

	usernames, err := s.userRepo.GetUsernamesByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("failed to resolve comment authors", zap.Error(err), zap.String("postId", postID))
		return nil, fmt.Errorf("failed to resolve comment authors: %w", err)
	}

	responses := make([]models.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		response := models.CommentResponse{
			ID:        comment.ID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		}
		if username, ok := usernames[comment.AuthorID]; ok {
			response.Author = &models.CommentAuthor{ID: comment.AuthorID, Username: username}
		}
		responses = append(responses, response)
	}

	return responses, nil
}

// Delete removes a comment from a post. Only the comment author may delete it.
func (s *commentService) Delete(ctx context.Context, postID, commentID, callerID string) error {
	if !isValidID(postID) {
		return models.NewValidationError("invalid post id")
	}

	for attempt := 1; attempt <= maxRemoveAttempts; attempt++ {
		comments, err := s.repo.GetComments(ctx, postID)
		if err != nil {
			return err
		}

		index := -1
		for i, comment := range comments {
			if comment.ID == commentID {
				index = i
				break
			}
		}
		if index < 0 {
			return models.NewNotFoundError("comment not found")
		}
		if comments[index].AuthorID != callerID {
			return models.NewForbiddenError("not authorized to delete this comment")
		}

		removed, err := s.repo.RemoveComment(ctx, postID, index, commentID)
		if err != nil {
			return err
		}
		if removed {
			return nil
		}

		s.logger.Debug("comment list changed during removal, retrying",
			zap.String("postId", postID),
			zap.String("commentId", commentID),
			zap.Int("attempt", attempt),
		)
	}

	return fmt.Errorf("failed to delete comment %s: comment list kept changing", commentID)
}
