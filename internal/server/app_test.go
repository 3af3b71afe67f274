package server

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/server/blob"
	"github.com/dmitrijs2005/poolkeeper/internal/server/config"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/memory"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.StorageBackend = config.BackendMemory
	c.UploadBackend = config.BackendMemory
	c.LogFile = filepath.Join(t.TempDir(), "app.log")
	c.LogFormat = "text"
	c.ShutdownTimeout = time.Second
	return c
}

type fakeManager struct {
	*memory.Manager
	migrateErr error
	closed     bool
}

func (f *fakeManager) RunMigrations(context.Context) error { return f.migrateErr }
func (f *fakeManager) Close() error                        { f.closed = true; return nil }

func stubPostgres(t *testing.T, fn func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error)) {
	t.Helper()
	orig := openPostgres
	openPostgres = fn
	t.Cleanup(func() { openPostgres = orig })
}

func TestNewApp_InvalidConfig(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config")
}

func TestNewApp_PostgresFailures(t *testing.T) {
	c := testConfig(t)
	c.StorageBackend = config.BackendPostgres

	stubPostgres(t, func(context.Context, string) (repomanager.RepositoryManager, error) {
		return nil, errors.New("connection refused")
	})
	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")

	fm := &fakeManager{Manager: memory.NewManager(), migrateErr: errors.New("bad migration")}
	stubPostgres(t, func(_ context.Context, dsn string) (repomanager.RepositoryManager, error) {
		assert.Equal(t, c.DatabaseDSN, dsn)
		return fm, nil
	})
	_, err = NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db migrations")
	assert.True(t, fm.closed)
}

func TestNewApp_PostgresMigratedOnStart(t *testing.T) {
	c := testConfig(t)
	c.StorageBackend = config.BackendPostgres

	fm := &fakeManager{Manager: memory.NewManager()}
	stubPostgres(t, func(context.Context, string) (repomanager.RepositoryManager, error) { return fm, nil })

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	assert.Same(t, fm, app.repomanager)

	app.close(context.Background())
	assert.True(t, fm.closed)
}

func TestNewApp_UploadStoreFailureClosesStorage(t *testing.T) {
	c := testConfig(t)
	c.StorageBackend = config.BackendPostgres
	c.UploadBackend = config.BackendS3

	fm := &fakeManager{Manager: memory.NewManager()}
	stubPostgres(t, func(context.Context, string) (repomanager.RepositoryManager, error) { return fm, nil })

	orig := newS3Store
	newS3Store = func(_ context.Context, sc blob.S3Config) (blob.Store, error) {
		assert.Equal(t, c.S3Bucket, sc.Bucket)
		assert.Equal(t, c.S3BaseEndpoint, sc.Endpoint)
		return nil, errors.New("no credentials")
	}
	t.Cleanup(func() { newS3Store = orig })

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upload store")
	assert.True(t, fm.closed)
}

func TestNewApp_BadRedisURL(t *testing.T) {
	c := testConfig(t)
	c.RedisURL = "not a url"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after context cancel")
	}
}
