package models

import "time"

// Comment is stored inside the comments array of its post
type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CommentAuthor is the public part of a comment author
type CommentAuthor struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CommentResponse is a comment with its author resolved
//
// Author is nil when the user no longer exists.
type CommentResponse struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	Author    *CommentAuthor `json:"author"`
}

// CreateCommentRequest represents the body of POST /posts/{id}/comments
type CreateCommentRequest struct {
	Content string `json:"content"`
}
