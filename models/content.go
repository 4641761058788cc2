package models

import (
	"strings"
	"time"
)

type Testimonial struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Company  string `json:"company"`
	Rating   int    `json:"rating"`
	ImageSrc string `json:"image_src"`
	ImageAlt string `json:"image_alt"`
}

const (
	FaqSectionFaq     = "faq"
	FaqSectionContact = "contact"
)

type Faq struct {
	ID      int    `json:"id"`
	Section string `json:"-"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type Subscriber struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
