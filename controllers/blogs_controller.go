package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
	services "github.com/cybersecclub/club-site-go/services"
	utils "github.com/cybersecclub/club-site-go/utils"
)

// Swappable in tests so the upload path can run without Cloudinary.
var (
	uploadBlogImage = utils.UploadBlogImage
	deleteBlogImage = utils.DeleteImage
)

// ---------------- CREATE ----------------
func CreateBlog(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Authenticated user ---
		author, ok := callerID(c)
		if !ok {
			return
		}

		// --- Bind form fields ---
		var input struct {
			Title    string `form:"title" binding:"required"`
			Content  string `form:"content" binding:"required"`
			Category string `form:"category" binding:"required"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title, content and category are required"})
			return
		}

		// --- Handle optional cover image ---
		var imageURL string
		if fileHeader, err := c.FormFile("image"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
				return
			}

			imageURL, err = uploadBlogImage(file, fileHeader)
			file.Close()
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{
					"error":   "image upload failed",
					"details": err.Error(),
					"file":    fileHeader.Filename,
				})
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.Create(ctx, author, services.CreateBlogInput{
			Title:    input.Title,
			Content:  input.Content,
			Category: input.Category,
			ImageURL: imageURL,
		})
		if err != nil {
			// don't leave the just-uploaded image orphaned in Cloudinary
			if imageURL != "" {
				if delErr := deleteBlogImage(imageURL); delErr != nil {
					logrus.WithError(delErr).WithField("image", imageURL).Warn("failed to clean up blog image")
				}
			}
			respondError(c, err, "blog creation failed")
			return
		}

		c.JSON(http.StatusCreated, blog)
	}
}

// ---------------- LIST ----------------
func ListBlogs(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		blogs, err := svc.ListApproved(ctx)
		if err != nil {
			respondError(c, err, "could not fetch blogs")
			return
		}

		if len(blogs) == 0 {
			c.JSON(http.StatusOK, []models.Blog{})
			return
		}

		// --- Pick the most recently updated blog ---
		latest := blogs[0]
		for _, b := range blogs {
			if b.UpdatedAt.After(latest.UpdatedAt) {
				latest = b
			}
		}

		// --- Generate ETag from latest blog ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- MY BLOGS ----------------
func ListMyBlogs(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		blogs, err := svc.ListMine(ctx, caller)
		if err != nil {
			respondError(c, err, "could not fetch user blogs")
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- BLOGS BY AUTHOR ----------------
func ListUserBlogs(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		author, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		blogs, err := svc.ListByAuthor(ctx, author)
		if err != nil {
			respondError(c, err, "could not fetch blogs")
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- PENDING ----------------
func ListPendingBlogs(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		blogs, err := svc.ListPending(ctx, c.GetString("role"))
		if err != nil {
			respondError(c, err, "could not fetch pending blogs")
			return
		}

		c.JSON(http.StatusOK, blogs)
	}
}

// ---------------- MODERATE ----------------
func ModerateBlog(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid blog id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.Moderate(ctx, c.GetString("role"), id, input.Status)
		if err != nil {
			respondError(c, err, "moderation failed")
			return
		}

		c.JSON(http.StatusOK, blog)
	}
}

// ---------------- GET ----------------
func GetBlog(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			// malformed ids read the same as missing blogs
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.GetApproved(ctx, id)
		if err != nil {
			respondError(c, err, "could not fetch blog")
			return
		}

		etag := utils.GenerateETag(blog.ID, blog.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, blog)
	}
}

// ---------------- LIKE ----------------
func LikeBlog(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.ToggleLike(ctx, caller, id)
		if err != nil {
			respondError(c, err, "like toggle failed")
			return
		}

		c.JSON(http.StatusOK, blog)
	}
}

// ---------------- COMMENT ----------------
func CommentBlog(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			return
		}

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.AddComment(ctx, caller, id, input.Text)
		if err != nil {
			respondError(c, err, "failed to add comment")
			return
		}

		c.JSON(http.StatusOK, blog)
	}
}

// ---------------- DELETE COMMENT ----------------
func DeleteComment(svc *services.BlogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerID(c)
		if !ok {
			return
		}

		blogID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		blog, err := svc.DeleteComment(ctx, caller, blogID, commentID)
		if err != nil {
			respondError(c, err, "failed to delete comment")
			return
		}

		c.JSON(http.StatusOK, blog)
	}
}
