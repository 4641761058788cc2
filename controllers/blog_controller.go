package controllers

import (
	"net/http"

	"bayka/models"
	"bayka/services"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blog *services.BlogService
}

func NewBlogController(blog *services.BlogService) *BlogController {
	return &BlogController{blog: blog}
}

// @Summary List blog posts
// @Description Published posts, newest first
// @Tags Blog
// @Produce json
// @Param limit query int false "Maximum number of posts"
// @Success 200 {object} models.Response{data=[]services.BlogCard}
// @Router /blog/posts [get]
func (ctrl *BlogController) GetPosts(c *gin.Context) {
	posts, err := ctrl.blog.ListPosts(c.Request.Context(), queryInt(c, "limit", 0))
	if err != nil {
		respondError(c, "Failed to retrieve posts", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Posts retrieved",
		Data:    posts,
	})
}

// @Summary Get blog post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} models.Response{data=models.BlogPost}
// @Failure 404 {object} models.ErrorResponse
// @Router /blog/posts/{slug} [get]
func (ctrl *BlogController) GetPost(c *gin.Context) {
	post, err := ctrl.blog.GetPost(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "Post not found", err)
		return
	}

	c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Post retrieved",
		Data:    post,
	})
}

// @Summary Create blog post
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateBlogPostRequest true "Post"
// @Success 201 {object} models.Response{data=models.BlogPost}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /admin/blog/posts [post]
func (ctrl *BlogController) CreatePost(c *gin.Context) {
	var req models.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err)
		return
	}

	post, err := ctrl.blog.CreatePost(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to create post", err)
		return
	}

	c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
}
