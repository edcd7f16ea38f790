package service

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
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
	}, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	// A single pooled connection serializes concurrent transactions the way
	// row locks do against postgres.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedUser(t *testing.T, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()
	user := &models.User{
		Username: username,
		Email:    username + "@rmes.example",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedQuestion(t *testing.T, db *gorm.DB, author *models.User) *models.Question {
	t.Helper()
	question := &models.Question{
		Title:    "How do I reset the PON splitter?",
		Body:     "It stopped syncing after the last firmware push.",
		AuthorID: author.ID,
		Status:   models.StatusOpen,
	}
	question.UpdateActivity()
	require.NoError(t, db.Create(question).Error)
	return question
}

func seedAnswer(t *testing.T, db *gorm.DB, question *models.Question, author *models.User) *models.Answer {
	t.Helper()
	answer := &models.Answer{
		QuestionID: question.ID,
		Body:       "Power-cycle it and re-provision the ONU.",
		AuthorID:   author.ID,
	}
	require.NoError(t, db.Create(answer).Error)
	return answer
}

func asActor(u *models.User) Actor {
	return Actor{UserID: u.ID, Role: u.Role}
}
