package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Blog categories accepted at creation time.
var BlogCategories = []string{"Cybersecurity", "Awareness", "Ethical Hacking", "AI & Tech"}

// Blog moderation states.
const (
	BlogStatusPending  = "pending"
	BlogStatusApproved = "approved"
	BlogStatusRejected = "rejected"
)

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`

	// Enriched field
	User *UserSummary `bson:"-" json:"user_info,omitempty"`
}

type Blog struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Content   string               `bson:"content" json:"content"`
	Category  string               `bson:"category" json:"category"`
	AuthorID  primitive.ObjectID   `bson:"author" json:"author"`
	Status    string               `bson:"status" json:"status"` // pending, approved, rejected
	Likes     []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments  []Comment            `bson:"comments" json:"comments"`
	Image     string               `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`

	// Enriched field
	Author *UserSummary `bson:"-" json:"author_info,omitempty"`
}

// ValidBlogCategory reports whether c is one of the accepted categories.
func ValidBlogCategory(c string) bool {
	for _, v := range BlogCategories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidModerationTarget reports whether s is a state an admin may set.
// "pending" is the creation default only, never a moderation target.
func ValidModerationTarget(s string) bool {
	return s == BlogStatusApproved || s == BlogStatusRejected
}

// LikedBy reports whether the user already appears in the like set.
func (b *Blog) LikedBy(userID primitive.ObjectID) bool {
	for _, id := range b.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the comment with the given id, or nil.
func (b *Blog) CommentByID(id primitive.ObjectID) *Comment {
	for i := range b.Comments {
		if b.Comments[i].ID == id {
			return &b.Comments[i]
		}
	}
	return nil
}
