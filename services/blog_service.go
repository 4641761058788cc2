package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"bayka/models"
	"bayka/repositories"
)

type blogStore interface {
	ListPublished(ctx context.Context, limit int) ([]models.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
}

type BlogCard struct {
	Slug         string `json:"slug"`
	Category     string `json:"category"`
	Title        string `json:"title"`
	Excerpt      string `json:"excerpt"`
	ImageSrc     string `json:"image_src"`
	ImageAlt     string `json:"image_alt"`
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar"`
	Date         string `json:"date"`
	Href         string `json:"href"`
}

type BlogService struct {
	posts blogStore
}

func NewBlogService(posts blogStore) *BlogService {
	return &BlogService{posts: posts}
}

func (s *BlogService) ListPosts(ctx context.Context, limit int) ([]BlogCard, error) {
	posts, err := s.posts.ListPublished(ctx, limit)
	if err != nil {
		return nil, err
	}
	cards := make([]BlogCard, 0, len(posts))
	for _, p := range posts {
		cards = append(cards, NewBlogCard(p))
	}
	return cards, nil
}

func (s *BlogService) GetPost(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

func (s *BlogService) CreatePost(ctx context.Context, req models.CreateBlogPostRequest) (*models.BlogPost, error) {
	slug := strings.ToLower(strings.TrimSpace(req.Slug))
	if !slugPattern.MatchString(slug) {
		return nil, fmt.Errorf("%w: slug must be lowercase words separated by dashes", ErrInvalidPost)
	}

	post := &models.BlogPost{
		Slug:         slug,
		Title:        strings.TrimSpace(req.Title),
		Excerpt:      req.Excerpt,
		Body:         req.Body,
		Category:     req.Category,
		AuthorName:   req.AuthorName,
		AuthorAvatar: req.AuthorAvatar,
		ImageSrc:     req.ImageSrc,
		ImageAlt:     req.ImageAlt,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return post, nil
}

func NewBlogCard(p models.BlogPost) BlogCard {
	return BlogCard{
		Slug:         p.Slug,
		Category:     p.Category,
		Title:        p.Title,
		Excerpt:      p.Excerpt,
		ImageSrc:     p.ImageSrc,
		ImageAlt:     p.ImageAlt,
		AuthorName:   p.AuthorName,
		AuthorAvatar: p.AuthorAvatar,
		Date:         p.PublishedAt.Format("Jan 2, 2006"),
		Href:         "/blog/" + p.Slug,
	}
}
