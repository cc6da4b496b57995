package service

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/honeynil/course-purchase-service/internal/infrastructure/redis"
	"github.com/honeynil/course-purchase-service/internal/models"
	"github.com/honeynil/course-purchase-service/internal/repository"
)

func courseCacheKey(courseID string) string {
	return "course:" + courseID
}

// courseCache is a read-through Redis cache over CourseRepository. Redis
// failures degrade to a direct store read.
type courseCache struct {
	courses      repository.CourseRepository
	redis        redis.RedisClient
	ttl          time.Duration
	storeTimeout time.Duration
}

func (c *courseCache) get(ctx context.Context, courseID string) (*models.Course, error) {
	key := courseCacheKey(courseID)
	cached, err := c.redis.Get(ctx, key)
	if err == nil {
		var course models.Course
		if err := json.Unmarshal([]byte(cached), &course); err == nil {
			return &course, nil
		}
		slog.Error("failed to unmarshal cached course", "course_id", courseID, "error", err)
	} else if !stderrors.Is(err, redis.ErrKeyNotFound) {
		slog.Error("failed to get course from Redis", "course_id", courseID, "error", err)
	}

	sctx, cancel := storeContext(ctx, c.storeTimeout)
	defer cancel()
	course, err := c.courses.GetByID(sctx, courseID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(course); err == nil {
		if err := c.redis.Set(ctx, key, string(data), c.ttl); err != nil {
			slog.Error("failed to cache course", "course_id", courseID, "error", err)
		}
	}
	return course, nil
}

func storeContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
