package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quillpress/backend/internal/models"
	"go.uber.org/zap"
)

// postColumns selects a post with its category and author resolved.
// Keep in sync with scanPost.
const postColumns = `
	p.id, p.title, p.content, p.slug, p.featured_image, p.comments, p.created_at, p.updated_at,
	c.id, c.name, c.description, c.created_at,
	u.id, u.username, u.email, u.created_at
`

const postJoins = `
	FROM posts p
	JOIN categories c ON c.id = p.category_id
	JOIN users u ON u.id = p.author_id
`

// postRepository implements PostRepository and CommentRepository
type postRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *sql.DB, logger *zap.Logger) *postRepository {
	return &postRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{
		Category: &models.Category{},
		Author:   &models.User{},
	}
	var comments []byte
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.Slug,
		&post.FeaturedImage,
		&comments,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Category.ID,
		&post.Category.Name,
		&post.Category.Description,
		&post.Category.CreatedAt,
		&post.Author.ID,
		&post.Author.Username,
		&post.Author.Email,
		&post.Author.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	post.CategoryID = post.Category.ID
	post.AuthorID = post.Author.ID
	post.Comments, err = decodeComments(comments)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func decodeComments(raw []byte) ([]models.Comment, error) {
	comments := []models.Comment{}
	if len(raw) == 0 {
		return comments, nil
	}
	if err := json.Unmarshal(raw, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

// escapeLike escapes LIKE wildcards so the search term matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetList retrieves a page of posts matching the filter, newest first, and the total match count
//
// Search is a case-insensitive substring match over title and content
// (the table uses a _ci collation).
func (r *postRepository) GetList(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	whereClauses := []string{}
	args := []any{}

	if filter.Search != "" {
		pattern := "%" + escapeLike(filter.Search) + "%"
		whereClauses = append(whereClauses, "(p.title LIKE ? OR p.content LIKE ?)")
		args = append(args, pattern, pattern)
	}

	if filter.CategoryID != "" {
		whereClauses = append(whereClauses, "p.category_id = ?")
		args = append(args, filter.CategoryID)
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM posts p %s`, whereClause)

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error("failed to count posts", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	// Pages past the end are empty; skipping them also keeps the offset from overflowing
	if filter.Page > models.PageCount(total, filter.Limit) {
		return []models.Post{}, total, nil
	}
	offset := (filter.Page - 1) * filter.Limit

	query := fmt.Sprintf(`
		SELECT %s
		%s
		%s
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT ? OFFSET ?
	`, postColumns, postJoins, whereClause)

	args = append(args, filter.Limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to query posts", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			r.logger.Error("failed to scan post", zap.Error(err))
			return nil, 0, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *post)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating rows: %w", err)
	}

	return posts, total, nil
}

// GetByID retrieves a post with category, author and comments
func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query := fmt.Sprintf(`
		SELECT %s
		%s
		WHERE p.id = ?
	`, postColumns, postJoins)

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("post not found")
	}
	if err != nil {
		r.logger.Error("failed to get post by id", zap.Error(err), zap.String("id", id))
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// Create inserts a new post with an empty comment list
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (id, title, content, slug, category_id, author_id, featured_image, comments, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, JSON_ARRAY(), ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Title,
		post.Content,
		post.Slug,
		post.CategoryID,
		post.AuthorID,
		post.FeaturedImage,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		if isMissingReference(err) {
			return models.NewNotFoundError("category not found")
		}
		r.logger.Error("failed to create post", zap.Error(err))
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// Update writes only the provided columns of a post
func (r *postRepository) Update(ctx context.Context, id string, update *models.PostUpdate) error {
	setClauses := []string{"updated_at = ?"}
	args := []any{update.UpdatedAt}

	if update.Title != nil {
		setClauses = append(setClauses, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Slug != nil {
		setClauses = append(setClauses, "slug = ?")
		args = append(args, *update.Slug)
	}
	if update.Content != nil {
		setClauses = append(setClauses, "content = ?")
		args = append(args, *update.Content)
	}
	if update.CategoryID != nil {
		setClauses = append(setClauses, "category_id = ?")
		args = append(args, *update.CategoryID)
	}
	if update.FeaturedImage != nil {
		setClauses = append(setClauses, "featured_image = ?")
		args = append(args, *update.FeaturedImage)
	}

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = ?`, strings.Join(setClauses, ", "))
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isMissingReference(err) {
			return models.NewNotFoundError("category not found")
		}
		r.logger.Error("failed to update post", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("post not found")
	}

	return nil
}

// Delete removes a post together with its embedded comments
func (r *postRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		r.logger.Error("failed to delete post", zap.Error(err), zap.String("id", id))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("post not found")
	}

	return nil
}

// AppendComment adds a comment to the end of a post's comment list in a single statement,
// so concurrent appends to the same post are all kept
func (r *postRepository) AppendComment(ctx context.Context, postID string, comment *models.Comment) error {
	payload, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("failed to encode comment: %w", err)
	}

	query := `
		UPDATE posts
		SET comments = JSON_ARRAY_APPEND(comments, '$', CAST(? AS JSON))
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, string(payload), postID)
	if err != nil {
		r.logger.Error("failed to append comment", zap.Error(err), zap.String("postId", postID))
		return fmt.Errorf("failed to append comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return models.NewNotFoundError("post not found")
	}

	return nil
}

// GetComments retrieves the embedded comments of a post in insertion order
func (r *postRepository) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, `SELECT comments FROM posts WHERE id = ?`, postID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("post not found")
	}
	if err != nil {
		r.logger.Error("failed to get comments", zap.Error(err), zap.String("postId", postID))
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	comments, err := decodeComments(raw)
	if err != nil {
		r.logger.Error("failed to decode comments", zap.Error(err), zap.String("postId", postID))
		return nil, err
	}

	return comments, nil
}

// RemoveComment removes the comment at index if it still has commentID.
//
// It returns false when the element at index no longer matches (the array changed
// since it was read) so the caller can re-read and retry.
func (r *postRepository) RemoveComment(ctx context.Context, postID string, index int, commentID string) (bool, error) {
	elementPath := fmt.Sprintf("$[%d]", index)
	idPath := fmt.Sprintf("$[%d].id", index)

	query := `
		UPDATE posts
		SET comments = JSON_REMOVE(comments, ?)
		WHERE id = ? AND JSON_UNQUOTE(JSON_EXTRACT(comments, ?)) = ?
	`

	result, err := r.db.ExecContext(ctx, query, elementPath, postID, idPath, commentID)
	if err != nil {
		r.logger.Error("failed to remove comment", zap.Error(err), zap.String("postId", postID), zap.String("commentId", commentID))
		return false, fmt.Errorf("failed to remove comment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return affected > 0, nil
}
