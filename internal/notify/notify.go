package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

// Notifier records in-app notifications and, when Twilio credentials are
// configured, sends a best-effort SMS on top. Without credentials it only
// writes rows.
type Notifier struct {
	log  *logrus.Logger
	sms  *twilio.RestClient
	from string
}

func New(log *logrus.Logger) *Notifier {
	n := &Notifier{log: log}

	sid := os.Getenv("TWILIO_ACCOUNT_SID")
	token := os.Getenv("TWILIO_AUTH_TOKEN")
	from := os.Getenv("TWILIO_FROM")
	if sid != "" && token != "" && from != "" {
		n.sms = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: sid,
			Password: token,
		})
		n.from = from
		log.Info("twilio SMS notifications enabled")
	}

	return n
}

// RecordAnswerAccepted writes the in-app notification for the answer's
// author inside the caller's transaction, so it commits or rolls back with
// the acceptance itself.
func (n *Notifier) RecordAnswerAccepted(ctx context.Context, tx *gorm.DB, question *models.Question, answer *models.Answer) error {
	notification := models.Notification{
		UserID:     answer.AuthorID,
		Type:       models.NotifyAnswerAccepted,
		Message:    fmt.Sprintf("Your answer to %q was accepted", question.Title),
		QuestionID: &question.ID,
	}
	return repository.NewNotifications(tx).Create(ctx, &notification)
}

// NotifyAnswerAccepted sends the out-of-band SMS after the acceptance has
// committed. Failures are logged, never surfaced to the caller.
func (n *Notifier) NotifyAnswerAccepted(ctx context.Context, db *gorm.DB, question *models.Question, answer *models.Answer) {
	if n.sms == nil {
		return
	}

	author, err := repository.NewUsers(db).Get(ctx, answer.AuthorID)
	if err != nil || author == nil || author.Phone == "" {
		return
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(author.Phone)
	params.SetFrom(n.from)
	params.SetBody(fmt.Sprintf("Your answer to %q was accepted", question.Title))

	if _, err := n.sms.Api.CreateMessage(params); err != nil {
		n.log.WithError(err).WithField("user_id", author.ID).Warn("failed to send acceptance SMS")
	}
}
