package models

import "time"

type BlogPost struct {
	ID           int64     `json:"id"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Body         string    `json:"body,omitempty"`
	Category     string    `json:"category"`
	AuthorName   string    `json:"author_name"`
	AuthorAvatar string    `json:"author_avatar"`
	ImageSrc     string    `json:"image_src"`
	ImageAlt     string    `json:"image_alt"`
	IsPublished  bool      `json:"is_published"`
	PublishedAt  time.Time `json:"published_at"`
	CreatedAt    time.Time `json:"created_at"`
}
