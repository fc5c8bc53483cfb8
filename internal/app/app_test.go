package app_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsdiary/internal/app"
	"newsdiary/internal/config"
	"newsdiary/internal/domain/entity"
	"newsdiary/internal/infra/adapter/persistence/jsondoc"
	"newsdiary/internal/infra/docstore"
)

func testConfig(t *testing.T, driver string) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Storage.Driver = driver
	return &cfg
}

func TestBuild_FileStore(t *testing.T) {
	ctx := context.Background()
	c, err := app.Build(ctx, testConfig(t, docstore.DriverFile))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NotNil(t, c.Articles)
	require.NotNil(t, c.Diary)
	require.NotNil(t, c.Calendar)
	require.NotNil(t, c.Collect)
	require.NotNil(t, c.Fetcher)
	assert.NoError(t, c.CheckStorage(ctx))

	_, err = c.Calendar.Create(ctx, "2024-05-01", "총선", "")
	require.NoError(t, err)
	issues, err := c.IssueRepo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, issues, 1)
	c.RefreshCounts(ctx)
}

func TestBuild_SQLiteDefaultsIntoDataDir(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, docstore.DriverSQLite)
	c, err := app.Build(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.ArticleRepo.Save(ctx, []entity.Article{{ID: "a", Title: "t", Category: entity.CategoryWorld}}))
	_, err = os.Stat(filepath.Join(cfg.DataDir, "newsdiary.db"))
	assert.NoError(t, err)
}

func TestBuild_UnknownDriver(t *testing.T) {
	_, err := app.Build(context.Background(), testConfig(t, "mongo"))
	assert.ErrorContains(t, err, "unknown driver")
}

func TestCheckStorage_Corrupt(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, docstore.DriverFile)
	c, err := app.Build(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	fs, ok := c.Store.(*docstore.FileStore)
	require.True(t, ok)
	path, err := fs.Path(jsondoc.ArticlesDocument)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	assert.ErrorIs(t, c.CheckStorage(ctx), docstore.ErrCorrupt)
}
