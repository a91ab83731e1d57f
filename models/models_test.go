package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidBlogCategory(t *testing.T) {
	for _, c := range BlogCategories {
		assert.True(t, ValidBlogCategory(c))
	}
	assert.False(t, ValidBlogCategory("Gardening"))
	assert.False(t, ValidBlogCategory(""))
	assert.False(t, ValidBlogCategory("cybersecurity")) // case sensitive
}

func TestValidModerationTarget(t *testing.T) {
	assert.True(t, ValidModerationTarget(BlogStatusApproved))
	assert.True(t, ValidModerationTarget(BlogStatusRejected))
	assert.False(t, ValidModerationTarget(BlogStatusPending))
	assert.False(t, ValidModerationTarget(""))
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, IsAdmin(RoleAdmin))
	assert.False(t, IsAdmin(RoleUser))
	assert.False(t, IsAdmin(""))
	assert.False(t, IsAdmin("Admin"))
}

func TestLikedBy(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	blog := Blog{Likes: []primitive.ObjectID{a}}

	assert.True(t, blog.LikedBy(a))
	assert.False(t, blog.LikedBy(b))
}

func TestCommentByID(t *testing.T) {
	target := primitive.NewObjectID()
	blog := Blog{Comments: []Comment{
		{ID: primitive.NewObjectID(), Text: "one"},
		{ID: target, Text: "two"},
	}}

	found := blog.CommentByID(target)
	assert.NotNil(t, found)
	assert.Equal(t, "two", found.Text)

	assert.Nil(t, blog.CommentByID(primitive.NewObjectID()))
}

func TestValidEventStatus(t *testing.T) {
	assert.True(t, ValidEventStatus(EventStatusUpcoming))
	assert.True(t, ValidEventStatus(EventStatusCompleted))
	assert.False(t, ValidEventStatus("approved"))
	assert.False(t, ValidEventStatus("rejected"))
}
