package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/notify"
)

func TestCreateAnswerBumpsQuestionCounters(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))

	author := seedUser(t, db, "author", models.RoleUser)
	answerer := seedUser(t, db, "answerer", models.RoleUser)
	question := seedQuestion(t, db, author)

	answer, err := svc.Create(ctx, asActor(answerer), question.ID, "Try firmware 2.4.1.")
	require.NoError(t, err)
	require.Equal(t, question.ID, answer.QuestionID)

	var refreshed models.Question
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.Equal(t, 1, refreshed.AnswerCount)
}

func TestCreateAnswerOnMissingQuestion(t *testing.T) {
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))
	answerer := seedUser(t, db, "answerer", models.RoleUser)

	_, err := svc.Create(context.Background(), asActor(answerer), 999, "...")
	require.ErrorIs(t, err, ErrQuestionNotFound)
}

func TestAcceptAuthorization(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))

	author := seedUser(t, db, "author", models.RoleUser)
	answerer := seedUser(t, db, "answerer", models.RoleUser)
	bystander := seedUser(t, db, "bystander", models.RoleUser)
	moderator := seedUser(t, db, "moderator", models.RoleModerator)
	question := seedQuestion(t, db, author)
	answer := seedAnswer(t, db, question, answerer)

	require.ErrorIs(t, svc.Accept(ctx, Actor{}, answer.ID), ErrUnauthenticated)
	require.ErrorIs(t, svc.Accept(ctx, asActor(bystander), answer.ID), ErrForbidden)

	// The question's author may accept.
	require.NoError(t, svc.Accept(ctx, asActor(author), answer.ID))

	// So may a moderator.
	second := seedAnswer(t, db, question, bystander)
	require.NoError(t, svc.Accept(ctx, asActor(moderator), second.ID))
}

func TestAcceptUnknownAnswer(t *testing.T) {
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))
	user := seedUser(t, db, "user", models.RoleUser)

	require.ErrorIs(t, svc.Accept(context.Background(), asActor(user), 999), ErrAnswerNotFound)
}

func TestAcceptResolvesQuestionAndMarksAnswer(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))

	author := seedUser(t, db, "author", models.RoleUser)
	answerer := seedUser(t, db, "answerer", models.RoleUser)
	question := seedQuestion(t, db, author)
	answer := seedAnswer(t, db, question, answerer)

	require.NoError(t, svc.Accept(ctx, asActor(author), answer.ID))

	var refreshedQ models.Question
	require.NoError(t, db.First(&refreshedQ, question.ID).Error)
	require.Equal(t, models.StatusResolved, refreshedQ.Status)
	require.NotNil(t, refreshedQ.AcceptedAnswerID)
	require.Equal(t, answer.ID, *refreshedQ.AcceptedAnswerID)

	var refreshedA models.Answer
	require.NoError(t, db.First(&refreshedA, answer.ID).Error)
	require.True(t, refreshedA.IsAccepted)
	require.NotNil(t, refreshedA.AcceptedAt)

	// Acceptance reputation: +15 to the answerer, +2 to the accepter.
	var answererRow, authorRow models.User
	require.NoError(t, db.First(&answererRow, answerer.ID).Error)
	require.NoError(t, db.First(&authorRow, author.ID).Error)
	require.Equal(t, models.RepAnswerAccepted, answererRow.Reputation)
	require.Equal(t, models.RepAcceptAnswer, authorRow.Reputation)

	// The answerer got an in-app notification.
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", answerer.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotifyAnswerAccepted, notifications[0].Type)
}

func TestAcceptReplacesPreviousAnswer(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))

	author := seedUser(t, db, "author", models.RoleUser)
	first := seedUser(t, db, "first", models.RoleUser)
	second := seedUser(t, db, "second", models.RoleUser)
	question := seedQuestion(t, db, author)
	answerA := seedAnswer(t, db, question, first)
	answerB := seedAnswer(t, db, question, second)

	require.NoError(t, svc.Accept(ctx, asActor(author), answerA.ID))
	require.NoError(t, svc.Accept(ctx, asActor(author), answerB.ID))

	// Exactly one accepted answer remains, and it is B.
	var accepted []models.Answer
	require.NoError(t, db.Where("question_id = ? AND is_accepted = ?", question.ID, true).Find(&accepted).Error)
	require.Len(t, accepted, 1)
	require.Equal(t, answerB.ID, accepted[0].ID)

	var refreshedA models.Answer
	require.NoError(t, db.First(&refreshedA, answerA.ID).Error)
	require.False(t, refreshedA.IsAccepted)
	require.Nil(t, refreshedA.AcceptedAt)

	var refreshedQ models.Question
	require.NoError(t, db.First(&refreshedQ, question.ID).Error)
	require.Equal(t, models.StatusResolved, refreshedQ.Status)
	require.Equal(t, answerB.ID, *refreshedQ.AcceptedAnswerID)

	// The replaced answerer's acceptance reputation was reversed.
	var firstRow models.User
	require.NoError(t, db.First(&firstRow, first.ID).Error)
	require.Equal(t, 0, firstRow.Reputation)
}

func TestReacceptIsNoop(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewAnswerService(db, testLogger(), notify.New(testLogger()))

	author := seedUser(t, db, "author", models.RoleUser)
	answerer := seedUser(t, db, "answerer", models.RoleUser)
	question := seedQuestion(t, db, author)
	answer := seedAnswer(t, db, question, answerer)

	require.NoError(t, svc.Accept(ctx, asActor(author), answer.ID))
	require.NoError(t, svc.Accept(ctx, asActor(author), answer.ID))

	// No duplicate reputation or notifications from the second call.
	var refreshed models.User
	require.NoError(t, db.First(&refreshed, answerer.ID).Error)
	require.Equal(t, models.RepAnswerAccepted, refreshed.Reputation)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestQuestionScenarioEndToEnd(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	log := testLogger()
	votes := NewVoteService(db, log)
	answers := NewAnswerService(db, log, notify.New(log))

	u1 := seedUser(t, db, "u1", models.RoleUser)
	u2 := seedUser(t, db, "u2", models.RoleUser)
	u3 := seedUser(t, db, "u3", models.RoleUser)
	question := seedQuestion(t, db, u1)
	target := models.QuestionTarget(question.ID)

	score, err := votes.Cast(ctx, asActor(u2), target, models.Upvote)
	require.NoError(t, err)
	require.Equal(t, 1, score)

	// Upvoting again changes nothing.
	score, err = votes.Cast(ctx, asActor(u2), target, models.Upvote)
	require.NoError(t, err)
	require.Equal(t, 1, score)

	// Downvoting flips the same row.
	score, err = votes.Cast(ctx, asActor(u2), target, models.Downvote)
	require.NoError(t, err)
	require.Equal(t, -1, score)

	a1 := seedAnswer(t, db, question, u2)
	a2 := seedAnswer(t, db, question, u3)

	require.NoError(t, answers.Accept(ctx, asActor(u1), a1.ID))

	var refreshedQ models.Question
	require.NoError(t, db.First(&refreshedQ, question.ID).Error)
	require.Equal(t, models.StatusResolved, refreshedQ.Status)

	require.NoError(t, answers.Accept(ctx, asActor(u1), a2.ID))

	var refreshedA1, refreshedA2 models.Answer
	require.NoError(t, db.First(&refreshedA1, a1.ID).Error)
	require.NoError(t, db.First(&refreshedA2, a2.ID).Error)
	require.False(t, refreshedA1.IsAccepted)
	require.True(t, refreshedA2.IsAccepted)

	require.NoError(t, db.First(&refreshedQ, question.ID).Error)
	require.Equal(t, models.StatusResolved, refreshedQ.Status)
	require.Equal(t, a2.ID, *refreshedQ.AcceptedAnswerID)
}
