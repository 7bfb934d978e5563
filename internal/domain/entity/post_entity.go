package entity

import "time"

// Post is a text entry owned by one user. UserID never changes after
// creation; deletion only flips Deleted and sets DeletedAt.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	UserID    int64      `json:"userId"`
	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Author    Author     `json:"author"`
}

// PostFilter selects posts for listing. Zero values mean "no filter".
type PostFilter struct {
	UserID         *int64
	IncludeDeleted bool
	Offset         int
	Limit          int
}

// PostPage is one page of a listing.
type PostPage struct {
	Posts   []Post `json:"posts"`
	Total   int64  `json:"total"`
	HasMore bool   `json:"hasMore"`
	Page    int    `json:"page"`
	Limit   int    `json:"limit"`
}
