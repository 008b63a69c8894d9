package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/quillpress/backend/internal/models"
)

// mockPostRepository is an in-memory implementation of PostRepository and CommentRepository
type mockPostRepository struct {
	mu    sync.Mutex
	posts map[string]*models.Post
	err   error

	lastFilter  models.PostFilter
	lastUpdate  *models.PostUpdate
	createCalls int

	// staleRemovals makes the next RemoveComment calls report a shifted array
	staleRemovals int
	removeCalls   int
}

func newMockPostRepository(posts ...*models.Post) *mockPostRepository {
	m := &mockPostRepository{posts: map[string]*models.Post{}}
	for _, post := range posts {
		if post.Comments == nil {
			post.Comments = []models.Comment{}
		}
		m.posts[post.ID] = post
	}
	return m
}

func (m *mockPostRepository) GetList(ctx context.Context, filter models.PostFilter) ([]models.Post, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFilter = filter

	search := strings.ToLower(filter.Search)
	matches := []models.Post{}
	for _, post := range m.posts {
		if search != "" &&
			!strings.Contains(strings.ToLower(post.Title), search) &&
			!strings.Contains(strings.ToLower(post.Content), search) {
			continue
		}
		if filter.CategoryID != "" && post.CategoryID != filter.CategoryID {
			continue
		}
		matches = append(matches, *post)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].ID > matches[j].ID
		}
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if filter.Page > models.PageCount(len(matches), filter.Limit) {
		return []models.Post{}, len(matches), nil
	}
	start := (filter.Page - 1) * filter.Limit
	end := start + min(filter.Limit, len(matches)-start)
	return matches[start:end], len(matches), nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[id]
	if !ok {
		return nil, models.NewNotFoundError("post not found")
	}
	found := *post
	found.Comments = append([]models.Comment{}, post.Comments...)
	return &found, nil
}

func (m *mockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.createCalls++
	stored := *post
	stored.Comments = []models.Comment{}
	m.posts[post.ID] = &stored
	return nil
}

func (m *mockPostRepository) Update(ctx context.Context, id string, update *models.PostUpdate) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastUpdate = update
	post, ok := m.posts[id]
	if !ok {
		return models.NewNotFoundError("post not found")
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Slug != nil {
		post.Slug = *update.Slug
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	if update.CategoryID != nil {
		post.CategoryID = *update.CategoryID
	}
	if update.FeaturedImage != nil {
		post.FeaturedImage = *update.FeaturedImage
	}
	post.UpdatedAt = update.UpdatedAt
	return nil
}

func (m *mockPostRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return models.NewNotFoundError("post not found")
	}
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepository) AppendComment(ctx context.Context, postID string, comment *models.Comment) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return models.NewNotFoundError("post not found")
	}
	post.Comments = append(post.Comments, *comment)
	return nil
}

func (m *mockPostRepository) GetComments(ctx context.Context, postID string) ([]models.Comment, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	post, ok := m.posts[postID]
	if !ok {
		return nil, models.NewNotFoundError("post not found")
	}
	return append([]models.Comment{}, post.Comments...), nil
}

func (m *mockPostRepository) RemoveComment(ctx context.Context, postID string, index int, commentID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removeCalls++
	if m.staleRemovals > 0 {
		m.staleRemovals--
		return false, nil
	}
	post, ok := m.posts[postID]
	if !ok || index >= len(post.Comments) || post.Comments[index].ID != commentID {
		return false, nil
	}
	post.Comments = append(post.Comments[:index], post.Comments[index+1:]...)
	return true, nil
}
