package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/cybersecclub/club-site-go/config"
	models "github.com/cybersecclub/club-site-go/models"
)

// ---------------- PROFILE ----------------
func GetProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var user models.User
		err := cfg.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		blogsCol := cfg.Collection("blogs")

		blogsCount, err := blogsCol.CountDocuments(ctx, bson.M{"author": userID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
			return
		}

		// --- Total likes across the user's blogs ---
		pipeline := mongoLikesPipeline(userID)
		cursor, err := blogsCol.Aggregate(ctx, pipeline)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
			return
		}

		var agg []struct {
			TotalLikes int64 `bson:"total_likes"`
		}
		if err := cursor.All(ctx, &agg); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
			return
		}

		var likesCount int64
		if len(agg) > 0 {
			likesCount = agg[0].TotalLikes
		}

		c.JSON(http.StatusOK, gin.H{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"role":        user.Role,
			"status":      user.Status,
			"bio":         user.Bio,
			"github":      user.Github,
			"linkedin":    user.Linkedin,
			"blogs_count": blogsCount,
			"likes_count": likesCount,
		})
	}
}

// mongoLikesPipeline sums the like-set sizes of every blog the user
// authored.
func mongoLikesPipeline(author primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"author": author}}},
		bson.D{{Key: "$project", Value: bson.M{
			"likes_count": bson.M{"$size": bson.M{"$ifNull": bson.A{"$likes", bson.A{}}}},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":         nil,
			"total_likes": bson.M{"$sum": "$likes_count"},
		}}},
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := callerID(c)
		if !ok {
			return
		}

		var input struct {
			Name     string `json:"name"`
			Bio      string `json:"bio"`
			Github   string `json:"github"`
			Linkedin string `json:"linkedin"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Name != "" {
			update["name"] = input.Name
		}
		if input.Bio != "" {
			update["bio"] = input.Bio
		}
		if input.Github != "" {
			update["github"] = input.Github
		}
		if input.Linkedin != "" {
			update["linkedin"] = input.Linkedin
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		var updated models.User
		err := cfg.Collection("users").
			FindOneAndUpdate(ctx, bson.M{"_id": userID}, bson.M{"$set": update}, opts).
			Decode(&updated)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- LIST (ADMIN) ----------------
func ListUsers(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		cursor, err := cfg.Collection("users").Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch users"})
			return
		}

		users := []models.User{}
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not decode users"})
			return
		}

		c.JSON(http.StatusOK, users)
	}
}

// ---------------- ADMIN UPDATE ----------------
// Promote/demote or suspend/reactivate a member.
func UpdateUserAdmin(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		var input struct {
			Role   string `json:"role"`
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		update := bson.M{"updated_at": time.Now()}
		if input.Role != "" {
			if !models.ValidRole(input.Role) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
				return
			}
			update["role"] = input.Role
		}
		if input.Status != "" {
			if !models.ValidUserStatus(input.Status) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
				return
			}
			update["status"] = input.Status
		}
		if len(update) == 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		res, err := cfg.Collection("users").UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "admin update failed"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "user updated"})
	}
}
