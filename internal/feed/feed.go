// Package feed publishes enrollment activity over Redis pub/sub so connected
// instructor dashboards see new enrollments as they commit.
package feed

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/config"
)

// EnrollmentEvent is the wire payload for one committed enrollment.
type EnrollmentEvent struct {
	EnrollmentID int       `json:"enrollment_id"`
	StudentID    int       `json:"student_id"`
	StudentName  string    `json:"student_name"`
	CourseID     int       `json:"course_id"`
	Course       string    `json:"course"` // e.g. "CSI-300-01"
	CreatedAt    time.Time `json:"created_at"`
}

// Feed publishes and subscribes enrollment events per course.
type Feed struct {
	rdb *redis.Client
	log zerolog.Logger
}

// New creates a Feed over the given Redis client.
func New(rdb *redis.Client, log zerolog.Logger) *Feed {
	return &Feed{
		rdb: rdb,
		log: log.With().Str("component", "enrollment_feed").Logger(),
	}
}

// PublishEnrollment broadcasts the event on the course's channel.
func (f *Feed) PublishEnrollment(ctx context.Context, ev EnrollmentEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return f.rdb.Publish(ctx, config.CacheKey.CourseEnrollmentChannel(ev.CourseID), payload).Err()
}

// SubscribeCourse opens a subscription to one course's enrollment channel.
// The caller owns the returned PubSub and must Close it.
func (f *Feed) SubscribeCourse(ctx context.Context, courseID int) *redis.PubSub {
	return f.rdb.Subscribe(ctx, config.CacheKey.CourseEnrollmentChannel(courseID))
}
