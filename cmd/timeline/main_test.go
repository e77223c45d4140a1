package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SamuraiArchive/internal/config"
	"SamuraiArchive/internal/database"
	"SamuraiArchive/internal/model"
	"SamuraiArchive/internal/repository"
	"SamuraiArchive/internal/service"
	"SamuraiArchive/internal/testhelper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig 在临时目录写入指向 SQLite 文件库的配置
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := fmt.Sprintf(`
database:
  driver: sqlite
  dsn: %q
  max_open_conns: 1
  log_level: silent
log:
  level: error
`, filepath.Join(dir, "archive.db"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	return dir
}

func seedArchive(t *testing.T, dir string) {
	t.Helper()
	ctx := context.Background()
	cfg, err := config.LoadConfigFrom(dir)
	require.NoError(t, err)
	conn, err := database.Open(cfg.Database, testhelper.NewLogger())
	require.NoError(t, err)
	require.NoError(t, database.Migrate(conn))

	s := repository.NewStore(conn)
	require.NoError(t, s.Battles.Create(ctx, &model.Battle{
		Name: "Bataille de Sekigahara", Slug: "bataille-de-sekigahara",
		Date: time.Date(1600, 10, 21, 0, 0, 0, 0, time.UTC),
	}))
	birth := time.Date(1584, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.Samourais.Create(ctx, &model.Samourai{
		Name: "Miyamoto Musashi", Slug: "miyamoto-musashi", BirthDate: &birth,
	}))

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestTimelineCommands(t *testing.T) {
	dir := writeConfig(t)
	seedArchive(t, dir)

	cases := []struct {
		name string
		args []string
		want []string
	}{
		{"seed", []string{"seed"}, []string{fmt.Sprintf(`"created": %d`, len(service.HistoricalEvents()))}},
		{"generate", []string{"generate"}, []string{`"battles_created": 1`, `"births_created": 1`}},
		{"generate again", []string{"generate"}, []string{`"battles_created": 0`, `"battles_updated": 1`, `"births_updated": 1`}},
		{"list table", []string{"list", "--json=false"}, []string{"ID", "TITLE", "Bataille de Sekigahara", "Naissance de Miyamoto Musashi"}},
		{"list json", []string{"list", "--json"}, []string{`"type": "battle"`, `"type": "birth"`, `"date": "1600-10-21"`}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			rootCmd.SetOut(&out)
			rootCmd.SetArgs(append(tc.args, "--config", dir))
			require.NoError(t, rootCmd.Execute())
			for _, w := range tc.want {
				assert.Contains(t, out.String(), w)
			}
		})
	}
}

func TestTimelineCommandsRejectUnknownDriver(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("database:\n  driver: mongo\n"), 0o600))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"generate", "--config", dir})
	assert.ErrorContains(t, rootCmd.Execute(), "open database")
}
