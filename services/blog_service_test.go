package services

import (
	"context"
	"testing"
	"time"

	"bayka/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededBlog() *stubBlog {
	return &stubBlog{posts: []models.BlogPost{
		{ID: 1, Slug: "art-of-the-pour-over", Title: "The Art of the Pour Over", Category: "Brewing", PublishedAt: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Slug: "meet-our-roaster", Title: "Meet Our Roaster", Category: "Community", PublishedAt: time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)},
	}}
}

func TestBlogService_ListPosts(t *testing.T) {
	svc := NewBlogService(seededBlog())

	cards, err := svc.ListPosts(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Jan 15, 2025", cards[0].Date)
	assert.Equal(t, "/blog/art-of-the-pour-over", cards[0].Href)

	cards, err = svc.ListPosts(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestBlogService_GetPost(t *testing.T) {
	svc := NewBlogService(seededBlog())

	post, err := svc.GetPost(context.Background(), "meet-our-roaster")
	require.NoError(t, err)
	assert.Equal(t, "Meet Our Roaster", post.Title)

	_, err = svc.GetPost(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBlogService_CreatePost(t *testing.T) {
	svc := NewBlogService(seededBlog())
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, models.CreateBlogPostRequest{Slug: " Cold-Brew-Guide ", Title: " Cold Brew Guide "})
	require.NoError(t, err)
	assert.Equal(t, "cold-brew-guide", post.Slug)
	assert.Equal(t, "Cold Brew Guide", post.Title)

	_, err = svc.CreatePost(ctx, models.CreateBlogPostRequest{Slug: "cold-brew-guide", Title: "Again"})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = svc.CreatePost(ctx, models.CreateBlogPostRequest{Slug: "not a slug", Title: "Bad"})
	assert.ErrorIs(t, err, ErrInvalidPost)
}
