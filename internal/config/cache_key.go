package config

import "strconv"

type cacheKeyBuilder struct{}

// CacheKey centralizes every Redis key and channel name the application uses,
// so key layout changes happen in one place.
var CacheKey cacheKeyBuilder

// InstructorSessionKey is the key holding the active session jti for an instructor.
func (cacheKeyBuilder) InstructorSessionKey(instructorID int) string {
	return "registra:instructor:" + strconv.Itoa(instructorID) + ":session"
}

// CourseEnrollmentChannel is the pub/sub channel carrying enrollment events
// for one course.
func (cacheKeyBuilder) CourseEnrollmentChannel(courseID int) string {
	return "registra:courses:" + strconv.Itoa(courseID) + ":enrollments"
}
