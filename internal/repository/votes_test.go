package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"github.com/deepmodak79/AskMate/internal/database"
	"github.com/deepmodak79/AskMate/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "askmate_test.db")
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path,
	}, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func TestFindReturnsNilWhenNoVoteExists(t *testing.T) {
	ctx := context.Background()
	votes := NewVotes(openTestDB(t))

	vote, err := votes.Find(ctx, 1, models.QuestionTarget(42))
	require.NoError(t, err)
	require.Nil(t, vote)
}

func TestRecordInsertsThenFlipsInPlace(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	votes := NewVotes(db)
	target := models.QuestionTarget(1)

	vote, changed, err := votes.Record(ctx, 7, target, models.Upvote)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, models.Upvote, vote.Value)

	// Same direction again is a no-op, not a toggle-off.
	again, changed, err := votes.Record(ctx, 7, target, models.Upvote)
	require.NoError(t, err)
	require.False(t, changed)
	require.Equal(t, vote.ID, again.ID)

	// Opposite direction flips the existing row.
	flipped, changed, err := votes.Record(ctx, 7, target, models.Downvote)
	require.NoError(t, err)
	require.True(t, changed)
	require.Equal(t, vote.ID, flipped.ID)
	require.Equal(t, models.Downvote, flipped.Value)

	var count int64
	require.NoError(t, db.Model(&models.Vote{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestScoreForSumsSignedValues(t *testing.T) {
	ctx := context.Background()
	votes := NewVotes(openTestDB(t))
	target := models.AnswerTarget(3)

	score, err := votes.ScoreFor(ctx, target)
	require.NoError(t, err)
	require.Equal(t, 0, score)

	for user, value := range map[int]int{1: models.Upvote, 2: models.Upvote, 3: models.Downvote} {
		_, _, err := votes.Record(ctx, user, target, value)
		require.NoError(t, err)
	}

	score, err = votes.ScoreFor(ctx, target)
	require.NoError(t, err)
	require.Equal(t, 1, score)

	// Votes on other targets do not leak into the sum.
	_, _, err = votes.Record(ctx, 1, models.AnswerTarget(4), models.Downvote)
	require.NoError(t, err)
	_, _, err = votes.Record(ctx, 1, models.QuestionTarget(3), models.Downvote)
	require.NoError(t, err)

	score, err = votes.ScoreFor(ctx, target)
	require.NoError(t, err)
	require.Equal(t, 1, score)
}
