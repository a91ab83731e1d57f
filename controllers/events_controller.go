package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
	services "github.com/cybersecclub/club-site-go/services"
	utils "github.com/cybersecclub/club-site-go/utils"
)

// ---------------- CREATE ----------------
func CreateEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Title       string `json:"title" binding:"required"`
			Description string `json:"description" binding:"required"`
			Date        string `json:"date" binding:"required"`
			Mode        string `json:"mode" binding:"required"`
			Tag         string `json:"tag" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
			return
		}

		// --- Parse date ---
		date, err := time.Parse(time.RFC3339, input.Date)
		if err != nil {
			// Try fallback formats
			layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
			for _, layout := range layouts {
				if t, e := time.Parse(layout, input.Date); e == nil {
					date = t
					err = nil
					break
				}
			}
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		event, err := svc.Create(ctx, c.GetString("role"), services.CreateEventInput{
			Title:       input.Title,
			Description: input.Description,
			Date:        date,
			Mode:        input.Mode,
			Tag:         input.Tag,
		})
		if err != nil {
			respondError(c, err, "failed to create event")
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------
func ListEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		events, err := svc.List(ctx)
		if err != nil {
			respondError(c, err, "could not fetch events")
			return
		}

		if len(events) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := events[0]
		for _, ev := range events {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- PENDING ----------------
func ListPendingEvents(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		events, err := svc.ListPending(ctx, c.GetString("role"))
		if err != nil {
			respondError(c, err, "could not fetch pending events")
			return
		}

		c.JSON(http.StatusOK, events)
	}
}

// ---------------- MODERATE ----------------
func ModerateEvent(svc *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
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

		event, err := svc.Moderate(ctx, c.GetString("role"), id, input.Status)
		if err != nil {
			respondError(c, err, "event moderation failed")
			return
		}

		c.JSON(http.StatusOK, event)
	}
}
