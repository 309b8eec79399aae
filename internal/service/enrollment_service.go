package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/feed"
	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// enrollMaxAttempts bounds the serialization-failure retry loop. A retry that
// then observes the winner's committed row surfaces the regular business
// error instead.
const enrollMaxAttempts = 3

// EnrollmentPublisher broadcasts committed enrollments to live listeners.
type EnrollmentPublisher interface {
	PublishEnrollment(ctx context.Context, ev feed.EnrollmentEvent) error
}

// EnrollmentService is the enrollment ledger: it owns the invariant that an
// enrollment and its grade row are created together, that a (student, course)
// pair enrolls at most once, and that a student never holds two sections of
// the same course number.
type EnrollmentService struct {
	enrollRepo  repository.EnrollmentRepository
	studentRepo repository.StudentRepository
	courseRepo  repository.CourseRepository
	publisher   EnrollmentPublisher
	log         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService. publisher may be nil
// when no live feed is wired (tests, CLI tools).
func NewEnrollmentService(
	enrollRepo repository.EnrollmentRepository,
	studentRepo repository.StudentRepository,
	courseRepo repository.CourseRepository,
	publisher EnrollmentPublisher,
	log zerolog.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		enrollRepo:  enrollRepo,
		studentRepo: studentRepo,
		courseRepo:  courseRepo,
		publisher:   publisher,
		log:         log.With().Str("component", "enrollment_service").Logger(),
	}
}

// Enroll enrolls a student into a course section. The repository runs the
// whole sequence serializably; here we only retry the cases where Postgres
// aborted the transaction to preserve that isolation.
func (s *EnrollmentService) Enroll(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	var enrollment *model.Enrollment
	var err error

	for attempt := 1; ; attempt++ {
		enrollment, err = s.enrollRepo.CreateWithGrade(ctx, studentID, courseID)
		if err == nil || !repository.IsSerializationFailure(err) || attempt == enrollMaxAttempts {
			break
		}
		s.log.Debug().
			Int("student_id", studentID).
			Int("course_id", courseID).
			Int("attempt", attempt).
			Msg("Enrollment serialization conflict, retrying")
	}
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, enrollment)
	return enrollment, nil
}

// publishEvent pushes the enrollment onto the live feed. Feed delivery is
// best-effort: a publish failure never fails a committed enrollment.
func (s *EnrollmentService) publishEvent(ctx context.Context, e *model.Enrollment) {
	if s.publisher == nil {
		return
	}

	ev := feed.EnrollmentEvent{
		EnrollmentID: e.ID,
		StudentID:    e.StudentID,
		CourseID:     e.CourseID,
		CreatedAt:    e.CreatedAt,
	}
	if student, err := s.studentRepo.GetByID(ctx, e.StudentID); err == nil {
		ev.StudentName = student.FirstName + " " + student.LastName
	}
	if course, err := s.courseRepo.GetByID(ctx, e.CourseID); err == nil {
		ev.Course = fmt.Sprintf("%s-%s", course.CourseNumberKey(), course.Section)
	}

	if err := s.publisher.PublishEnrollment(ctx, ev); err != nil {
		s.log.Warn().Err(err).
			Int("enrollment_id", e.ID).
			Msg("Failed to publish enrollment event")
	}
}
