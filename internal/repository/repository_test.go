package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/openbounty/bounty-board-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestBountyRepository_ListQueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBountyRepository(db)

	dbErr := errors.New("connection reset by peer")
	mock.ExpectQuery("SELECT .* FROM `bounties`").WillReturnError(dbErr)

	bounties, err := repo.List(BountyFilter{})
	assert.Nil(t, bounties)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBountyRepository_ListAppliesFilters(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewBountyRepository(db)

	mock.ExpectQuery("SELECT .* FROM `bounties` WHERE bounties.category = \\? AND \\(LOWER\\(bounties.title\\) LIKE \\? OR LOWER\\(bounties.description\\) LIKE \\? OR LOWER\\(bounties.project\\) LIKE \\?\\).*ORDER BY bounties.created_at DESC, bounties.id DESC").
		WithArgs("design", "%wallet%", "%wallet%", "%wallet%").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	category := models.CategoryDesign
	bounties, err := repo.List(BountyFilter{Category: &category, Search: "Wallet"})
	require.NoError(t, err)
	assert.Empty(t, bounties)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_LeaderboardQueryFailure(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	dbErr := errors.New("driver: bad connection")
	mock.ExpectQuery("FROM `users` LEFT JOIN submissions").WillReturnError(dbErr)

	entries, err := repo.Leaderboard(10)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
