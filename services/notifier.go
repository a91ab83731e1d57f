package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	models "github.com/cybersecclub/club-site-go/models"
	utils "github.com/cybersecclub/club-site-go/utils"
)

// ModerationNotifier is told about moderation decisions. Notification is
// best-effort: implementations must not fail the moderation itself.
type ModerationNotifier interface {
	BlogModerated(ctx context.Context, blog *models.Blog)
}

type emailNotifier struct{}

// NewEmailNotifier notifies blog authors of moderation decisions by
// email.
func NewEmailNotifier() ModerationNotifier {
	return emailNotifier{}
}

func (emailNotifier) BlogModerated(ctx context.Context, blog *models.Blog) {
	if blog.Author == nil || blog.Author.Email == "" {
		return
	}

	var subject, body string
	switch blog.Status {
	case models.BlogStatusApproved:
		subject = "Your blog post was approved"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your post <b>%s</b> has been approved and is now live on the club site.</p>", blog.Author.Name, blog.Title)
	case models.BlogStatusRejected:
		subject = "Your blog post was not approved"
		body = fmt.Sprintf("<p>Hi %s,</p><p>Your post <b>%s</b> was reviewed and could not be approved.</p>", blog.Author.Name, blog.Title)
	default:
		return
	}

	if err := utils.SendEmail(blog.Author.Email, subject, body); err != nil {
		logrus.WithError(err).WithField("blog_id", blog.ID.Hex()).Warn("moderation email failed")
	}
}
