package models

import "time"

// Category groups posts
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateCategoryRequest represents the body of POST /categories
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
