package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/auroranet/portal-service/internal/cache"
	"github.com/auroranet/portal-service/internal/listing"
	apperrors "github.com/auroranet/portal-service/pkg/util"
)

// SnapshotStore is the slice of cache.Store the admin list handlers need.
type SnapshotStore interface {
	Get(ctx context.Context, signature string) (*cache.Snapshot, error)
	Put(ctx context.Context, signature string, data any) error
	MaxAge() time.Duration
}

// respond writes the success envelope with a single named resource.
func respond(c *fiber.Ctx, status int, key string, payload any) error {
	return c.Status(status).JSON(fiber.Map{"success": true, key: payload})
}

// respondList writes the success envelope with items and pagination metadata.
func respondList(c *fiber.Ctx, key string, items any, pagination listing.Pagination) error {
	return c.JSON(listEnvelope(key, items, pagination))
}

func listEnvelope(key string, items any, pagination listing.Pagination) fiber.Map {
	return fiber.Map{"success": true, key: items, "pagination": pagination}
}

// respondMessage writes the success envelope with just a message.
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{"success": true, "message": message})
}

// listWithSnapshot runs fetch and keeps the snapshot cache current. When the
// fetch fails on infrastructure (not caller) errors, the last stored copy for
// the same query signature is served instead.
func listWithSnapshot(c *fiber.Ctx, store SnapshotStore, fetch func() (fiber.Map, error)) error {
	signature := cache.Signature(c.Path(), c.Queries())

	body, err := fetch()
	if err != nil {
		if store == nil || apperrors.ToDomainError(err).HTTPStatus < 500 {
			return err
		}
		snapshot, getErr := store.Get(c.UserContext(), signature)
		if getErr != nil {
			return err
		}
		c.Set("X-Snapshot-Stale", strconv.FormatBool(snapshot.IsStale(store.MaxAge())))
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(snapshot.Data)
	}

	if store != nil {
		_ = store.Put(c.UserContext(), signature, body)
	}
	return c.JSON(body)
}

func pageQuery(c *fiber.Ctx) (page, limit int) {
	return c.QueryInt("page", 1), c.QueryInt("limit", 0)
}
