package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	// Verify tasks database was created
	tasksDBPath := filepath.Join(tmpDir, "test-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	executed := make(chan string, 1)
	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	})
	client.Register(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(TestTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestTaskStatus(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	defer client.Close()

	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		return nil
	})
	client.Register(queue)

	// The client is never started, so the task stays queued.
	ids, err := client.Add(TestTask{Value: "queued"}).Save()
	require.NoError(t, err)
	require.Len(t, ids, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	status, err := client.Status(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, backlite.TaskStatusPending, status)

	status, err = client.Status(ctx, "no-such-task")
	require.NoError(t, err)
	assert.Equal(t, backlite.TaskStatusNotFound, status)
}

func TestCleanupOrphanCoversTaskConfig(t *testing.T) {
	task := CleanupOrphanCoversTask{}
	cfg := task.Config()

	assert.Equal(t, "cleanup_orphan_covers", cfg.Name)
	assert.Equal(t, 1, cfg.MaxAttempts)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestCleanupAuditEventsTaskConfig(t *testing.T) {
	task := CleanupAuditEventsTask{RetentionDays: 7}
	cfg := task.Config()

	assert.Equal(t, "cleanup_audit_events", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}

type stubCoverSource struct {
	urls []string
	err  error
}

func (s stubCoverSource) CoverImagePaths() ([]string, error) {
	return s.urls, s.err
}

type stubCoverRemover struct {
	gotReferenced map[string]struct{}
	gotMinAge     time.Duration
	removed       int
	err           error
}

func (s *stubCoverRemover) RemoveUnreferenced(referenced map[string]struct{}, minAge time.Duration) (int, error) {
	s.gotReferenced = referenced
	s.gotMinAge = minAge
	return s.removed, s.err
}

func TestCleanupOrphanCoversProcessor(t *testing.T) {
	source := stubCoverSource{urls: []string{
		"/static/covers/book_1_aaaa.jpg",
		"/static/covers/book_2_bbbb.png",
	}}
	remover := &stubCoverRemover{removed: 3}

	processor := CleanupOrphanCoversProcessor(source, remover)
	err := processor(context.Background(), CleanupOrphanCoversTask{})
	require.NoError(t, err)

	// URLs are reduced to bare filenames for the store
	assert.Contains(t, remover.gotReferenced, "book_1_aaaa.jpg")
	assert.Contains(t, remover.gotReferenced, "book_2_bbbb.png")
	assert.Len(t, remover.gotReferenced, 2)
	assert.Equal(t, time.Hour, remover.gotMinAge, "zero min age should fall back to one hour")
}

func TestCleanupOrphanCoversProcessorCustomMinAge(t *testing.T) {
	remover := &stubCoverRemover{}

	processor := CleanupOrphanCoversProcessor(stubCoverSource{}, remover)
	err := processor(context.Background(), CleanupOrphanCoversTask{MinAgeMinutes: 15})
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, remover.gotMinAge)
}

func TestCleanupOrphanCoversProcessorErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		processor := CleanupOrphanCoversProcessor(nil, nil)
		err := processor(context.Background(), CleanupOrphanCoversTask{})
		assert.Error(t, err)
	})

	t.Run("source failure", func(t *testing.T) {
		source := stubCoverSource{err: errors.New("db gone")}
		processor := CleanupOrphanCoversProcessor(source, &stubCoverRemover{})
		err := processor(context.Background(), CleanupOrphanCoversTask{})
		assert.ErrorContains(t, err, "list referenced covers")
	})
}

type stubAuditCleaner struct {
	gotRetention time.Duration
	deleted      int64
	err          error
}

func (s *stubAuditCleaner) DeleteOldEvents(retention time.Duration) (int64, error) {
	s.gotRetention = retention
	return s.deleted, s.err
}

func TestCleanupAuditEventsProcessor(t *testing.T) {
	cleaner := &stubAuditCleaner{deleted: 12}

	processor := CleanupAuditEventsProcessor(cleaner)
	err := processor(context.Background(), CleanupAuditEventsTask{RetentionDays: 7})
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cleaner.gotRetention)

	// Zero retention falls back to the 30 day default
	err = processor(context.Background(), CleanupAuditEventsTask{})
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cleaner.gotRetention)
}
