package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/deepmodak79/AskMate/internal/models"
	"github.com/deepmodak79/AskMate/internal/repository"
)

func TestAskCreatesQuestionWithTags(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewQuestionService(db, testLogger())
	author := seedUser(t, db, "author", models.RoleUser)

	question, err := svc.Ask(ctx, asActor(author), "  ONU keeps dropping sync  ", "Happens every few hours.", []string{"PON", "firmware", ""})
	require.NoError(t, err)
	require.Equal(t, "ONU keeps dropping sync", question.Title)

	var stored models.Question
	require.NoError(t, db.First(&stored, question.ID).Error)
	require.Equal(t, models.StatusOpen, stored.Status)

	tags, err := repository.NewQuestions(db).TagsFor(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, tags, 2)

	names := []string{tags[0].Name, tags[1].Name}
	require.ElementsMatch(t, []string{"pon", "firmware"}, names)
}

func TestAskRequiresAuthentication(t *testing.T) {
	svc := NewQuestionService(openTestDB(t), testLogger())

	_, err := svc.Ask(context.Background(), Actor{}, "title", "body", nil)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestLifecycleTransitionsAreModeratorOnly(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewQuestionService(db, testLogger())

	author := seedUser(t, db, "author", models.RoleUser)
	moderator := seedUser(t, db, "moderator", models.RoleModerator)
	question := seedQuestion(t, db, author)

	// Even the question's author cannot close their own question.
	require.ErrorIs(t, svc.Close(ctx, asActor(author), question.ID), ErrForbidden)
	require.ErrorIs(t, svc.Close(ctx, Actor{}, question.ID), ErrUnauthenticated)

	require.NoError(t, svc.Close(ctx, asActor(moderator), question.ID))

	var refreshed models.Question
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.Equal(t, models.StatusClosed, refreshed.Status)

	require.NoError(t, svc.Reopen(ctx, asActor(moderator), question.ID))
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.Equal(t, models.StatusOpen, refreshed.Status)
}

func TestLockAndUnlock(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewQuestionService(db, testLogger())

	author := seedUser(t, db, "author", models.RoleUser)
	moderator := seedUser(t, db, "moderator", models.RoleModerator)
	question := seedQuestion(t, db, author)

	require.NoError(t, svc.Lock(ctx, asActor(moderator), question.ID, "flame war"))

	var refreshed models.Question
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.True(t, refreshed.IsLocked)
	require.Equal(t, "flame war", refreshed.LockReason)
	// Locking does not change the status.
	require.Equal(t, models.StatusOpen, refreshed.Status)

	require.NoError(t, svc.Unlock(ctx, asActor(moderator), question.ID))
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.False(t, refreshed.IsLocked)
	require.Empty(t, refreshed.LockReason)
}

func TestMarkAsDuplicate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewQuestionService(db, testLogger())

	author := seedUser(t, db, "author", models.RoleUser)
	moderator := seedUser(t, db, "moderator", models.RoleModerator)
	question := seedQuestion(t, db, author)
	original := seedQuestion(t, db, author)

	require.ErrorIs(t, svc.MarkAsDuplicate(ctx, asActor(author), question.ID, original.ID), ErrForbidden)
	require.ErrorIs(t, svc.MarkAsDuplicate(ctx, asActor(moderator), question.ID, 999), ErrQuestionNotFound)

	require.NoError(t, svc.MarkAsDuplicate(ctx, asActor(moderator), question.ID, original.ID))

	var refreshed models.Question
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.Equal(t, models.StatusDuplicate, refreshed.Status)
	require.NotNil(t, refreshed.DuplicateOfID)
	require.Equal(t, original.ID, *refreshed.DuplicateOfID)
}

func TestRecordView(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	svc := NewQuestionService(db, testLogger())

	author := seedUser(t, db, "author", models.RoleUser)
	question := seedQuestion(t, db, author)

	require.NoError(t, svc.RecordView(ctx, question.ID))
	require.NoError(t, svc.RecordView(ctx, question.ID))

	var refreshed models.Question
	require.NoError(t, db.First(&refreshed, question.ID).Error)
	require.Equal(t, 2, refreshed.ViewCount)
}
