package database

import (
	"io"
	"testing"

	"SamuraiArchive/internal/config"
	"SamuraiArchive/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(config.DatabaseConfig{
		Driver:       "sqlite",
		DSN:          "file::memory:",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	for _, table := range []any{
		&model.Clan{}, &model.Location{}, &model.Weapon{}, &model.Style{},
		&model.Samourai{}, &model.Battle{}, &model.Timeline{}, &model.TimelineEntity{},
		&model.User{}, &model.Favorite{},
	} {
		assert.True(t, db.Migrator().HasTable(table), "%T", table)
	}
	assert.True(t, db.Migrator().HasTable("samourai_battles"))
	assert.True(t, db.Migrator().HasTable("samourai_weapons"))
	assert.True(t, db.Migrator().HasTable("samourai_styles"))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle"}, quietLogger())
	assert.Error(t, err)
}

func TestEnsureDatabaseExistsSkipsDefaultDatabase(t *testing.T) {
	assert.NoError(t, EnsureDatabaseExists("postgres://u:p@localhost:5432/postgres"))
	assert.NoError(t, EnsureDatabaseExists("postgres://u:p@localhost:5432/"))
}
