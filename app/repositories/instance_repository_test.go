package repositories

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"postfeed/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	db, err := OpenStore(zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newInstance(id string) *models.Instance {
	return &models.Instance{
		ID:        id,
		PostSlug:  "diego-portfolio",
		State:     models.NewCommentState(models.SeedComment),
		MountedAt: time.Date(2024, 1, 1, 16, 5, 0, 0, time.UTC),
	}
}

func TestBadgerInstanceRepository(t *testing.T) {
	repo := NewBadgerInstanceRepository(setupTestDB(t), time.Hour)

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, repo.Create(newInstance("a")))

		got, err := repo.GetByID("a")
		require.NoError(t, err)
		assert.Equal(t, "diego-portfolio", got.PostSlug)
		assert.Equal(t, []string{models.SeedComment}, got.State.Comments)
		assert.True(t, got.MountedAt.Equal(newInstance("a").MountedAt))
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := repo.GetByID("missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update applies transition", func(t *testing.T) {
		updated, err := repo.Update("a", func(inst *models.Instance) error {
			inst.State = inst.State.Input("Muito bom")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, "Muito bom", updated.State.Draft)

		got, err := repo.GetByID("a")
		require.NoError(t, err)
		assert.Equal(t, "Muito bom", got.State.Draft)
	})

	t.Run("update error aborts write", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update("a", func(inst *models.Instance) error {
			inst.State = inst.State.Input("discarded")
			return boom
		})
		assert.ErrorIs(t, err, boom)

		got, err := repo.GetByID("a")
		require.NoError(t, err)
		assert.Equal(t, "Muito bom", got.State.Draft)
	})

	t.Run("update missing", func(t *testing.T) {
		_, err := repo.Update("missing", func(inst *models.Instance) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("instances are isolated", func(t *testing.T) {
		require.NoError(t, repo.Create(newInstance("b")))
		_, err := repo.Update("b", func(inst *models.Instance) error {
			inst.State = inst.State.Delete(models.SeedComment)
			return nil
		})
		require.NoError(t, err)

		a, err := repo.GetByID("a")
		require.NoError(t, err)
		b, err := repo.GetByID("b")
		require.NoError(t, err)
		assert.Equal(t, []string{models.SeedComment}, a.State.Comments)
		assert.Empty(t, b.State.Comments)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete("a"))
		_, err := repo.GetByID("a")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete("a"), ErrNotFound)
	})
}

func TestBadgerInstanceRepositoryConcurrentUpdates(t *testing.T) {
	repo := NewBadgerInstanceRepository(setupTestDB(t), time.Hour)
	require.NoError(t, repo.Create(newInstance("busy")))

	const writers = 50
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, writers)
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = repo.Update("busy", func(inst *models.Instance) error {
				next, err := inst.State.Input("comment " + strconv.Itoa(i)).Submit()
				if err != nil {
					return err
				}
				inst.State = next
				return nil
			})
		}(i)
	}
	close(start)
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, ErrConflict)
	}
	require.Positive(t, successes)

	got, err := repo.GetByID("busy")
	require.NoError(t, err)
	assert.Len(t, got.State.Comments, successes+1, "every successful update must survive")
}

func TestBadgerInstanceRepositoryTTL(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for entry expiry")
	}
	repo := NewBadgerInstanceRepository(setupTestDB(t), time.Second)
	require.NoError(t, repo.Create(newInstance("short-lived")))

	_, err := repo.GetByID("short-lived")
	require.NoError(t, err)

	time.Sleep(2100 * time.Millisecond)
	_, err = repo.GetByID("short-lived")
	assert.ErrorIs(t, err, ErrNotFound)
}
