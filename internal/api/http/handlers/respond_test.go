package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auroranet/portal-service/internal/cache"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

type fakeSnapshotStore struct {
	snapshot *cache.Snapshot
	gets     int
	puts     map[string]any
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{puts: map[string]any{}}
}

func (f *fakeSnapshotStore) Get(_ context.Context, _ string) (*cache.Snapshot, error) {
	f.gets++
	if f.snapshot == nil {
		return nil, cache.ErrMiss
	}
	return f.snapshot, nil
}

func (f *fakeSnapshotStore) Put(_ context.Context, signature string, data any) error {
	f.puts[signature] = data
	return nil
}

func (f *fakeSnapshotStore) MaxAge() time.Duration { return time.Minute }

func snapshotApp(store SnapshotStore, fetch func() (fiber.Map, error)) (*fiber.App, *error) {
	var captured error
	app := fiber.New()
	app.Get("/api/admin/orders", func(c *fiber.Ctx) error {
		captured = listWithSnapshot(c, store, fetch)
		return captured
	})
	return app, &captured
}

func TestListWithSnapshotServesCachedCopyWhenFetchFails(t *testing.T) {
	store := newFakeSnapshotStore()
	store.snapshot = &cache.Snapshot{
		Data:      json.RawMessage(`{"success":true,"orders":[],"pagination":{"totalItems":3}}`),
		FetchedAt: time.Now(),
	}
	app, captured := snapshotApp(store, func() (fiber.Map, error) {
		return nil, apperrors.NewInternalError(errors.New("connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders?status=paid", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.NoError(t, *captured)
	assert.Equal(t, "false", resp.Header.Get("X-Snapshot-Stale"))
	assert.Equal(t, fiber.MIMEApplicationJSON, resp.Header.Get(fiber.HeaderContentType))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, string(store.snapshot.Data), string(body))
}

func TestListWithSnapshotMarksOldCopyStale(t *testing.T) {
	store := newFakeSnapshotStore()
	store.snapshot = &cache.Snapshot{
		Data:      json.RawMessage(`{"success":true,"orders":[]}`),
		FetchedAt: time.Now().Add(-2 * time.Minute),
	}
	app, _ := snapshotApp(store, func() (fiber.Map, error) {
		return nil, apperrors.NewInternalError(errors.New("connection refused"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get("X-Snapshot-Stale"))
}

func TestListWithSnapshotDoesNotMaskCallerErrors(t *testing.T) {
	store := newFakeSnapshotStore()
	store.snapshot = &cache.Snapshot{
		Data:      json.RawMessage(`{"success":true,"orders":[]}`),
		FetchedAt: time.Now(),
	}
	app, captured := snapshotApp(store, func() (fiber.Map, error) {
		return nil, apperrors.NewValidationError("Invalid payload")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders", nil))
	require.NoError(t, err)
	resp.Body.Close()

	require.Error(t, *captured)
	assert.Equal(t, 400, apperrors.ToDomainError(*captured).HTTPStatus)
	assert.Equal(t, 0, store.gets, "caller errors must not consult the snapshot store")
}

func TestListWithSnapshotMissReturnsFetchError(t *testing.T) {
	store := newFakeSnapshotStore()
	fetchErr := apperrors.NewInternalError(errors.New("connection refused"))
	app, captured := snapshotApp(store, func() (fiber.Map, error) {
		return nil, fetchErr
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, store.gets)
	assert.Equal(t, fetchErr, *captured)
}

func TestListWithSnapshotRecordsSuccessfulFetch(t *testing.T) {
	store := newFakeSnapshotStore()
	app, _ := snapshotApp(store, func() (fiber.Map, error) {
		return fiber.Map{"success": true, "orders": []string{}}, nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/admin/orders?page=2&status=paid", nil))
	require.NoError(t, err)
	resp.Body.Close()

	require.Equal(t, 200, resp.StatusCode)
	require.Len(t, store.puts, 1)
	_, ok := store.puts["/api/admin/orders|page=2|status=paid"]
	assert.True(t, ok)
}
