package models

import "time"

// Post is a blog post together with its embedded comments
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Slug          string    `json:"slug"`
	CategoryID    string    `json:"-"`
	AuthorID      string    `json:"-"`
	Category      *Category `json:"category"`
	Author        *User     `json:"author"`
	FeaturedImage string    `json:"featuredImage"`
	Comments      []Comment `json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PostFilter holds the listing parameters
type PostFilter struct {
	Page       int
	Limit      int
	Search     string
	CategoryID string
}

// PostListResponse is a single page of posts
type PostListResponse struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
	Limit int    `json:"limit"`
}

// PageCount returns how many pages of size limit are needed for total items.
// limit must be positive.
func PageCount(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}

// CreatePostRequest represents the body of POST /posts
type CreatePostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Category      string `json:"category"`
	FeaturedImage string `json:"featuredImage"`
}

// UpdatePostRequest represents the body of PUT /posts/{id}
//
// Nil fields are left untouched.
type UpdatePostRequest struct {
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Category      *string `json:"category"`
	FeaturedImage *string `json:"featuredImage"`
}

// IsEmpty reports whether the request changes nothing
func (r *UpdatePostRequest) IsEmpty() bool {
	return r.Title == nil && r.Content == nil && r.Category == nil && r.FeaturedImage == nil
}

// PostUpdate lists the columns to change on a post.
// Nil fields are not written.
type PostUpdate struct {
	Title         *string
	Slug          *string
	Content       *string
	CategoryID    *string
	FeaturedImage *string
	UpdatedAt     time.Time
}
