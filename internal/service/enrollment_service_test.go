package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/acadsys/registra-backend/internal/feed"
	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// fakeEnrollmentRepo scripts CreateWithGrade outcomes per call.
type fakeEnrollmentRepo struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (f *fakeEnrollmentRepo) CreateWithGrade(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := f.calls
	f.calls++
	if idx < len(f.results) && f.results[idx] != nil {
		return nil, f.results[idx]
	}
	return &model.Enrollment{
		ID:        f.calls,
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}, nil
}

// capturingPublisher records published events.
type capturingPublisher struct {
	mu     sync.Mutex
	events []feed.EnrollmentEvent
	err    error
}

func (p *capturingPublisher) PublishEnrollment(ctx context.Context, ev feed.EnrollmentEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func serializationErr() error {
	return &pgconn.PgError{Code: "40001"}
}

func newEnrollmentFixture(repo repository.EnrollmentRepository, pub EnrollmentPublisher) *EnrollmentService {
	students := &fakeStudentRepo{students: map[int]*model.Student{
		1: {ID: 1, FirstName: "Alice", LastName: "Nguyen"},
	}}
	courses := &fakeCourseRepo{courses: map[int]*model.Course{
		7: {ID: 7, Prefix: "CSI", Number: 300, Section: "01"},
	}}
	return NewEnrollmentService(repo, students, courses, pub, zerolog.Nop())
}

func TestEnrollSuccessPublishesEvent(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	pub := &capturingPublisher{}
	svc := newEnrollmentFixture(repo, pub)

	enrollment, err := svc.Enroll(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
	if enrollment.StudentID != 1 || enrollment.CourseID != 7 {
		t.Errorf("enrollment = %+v", enrollment)
	}

	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev := pub.events[0]
	if ev.StudentName != "Alice Nguyen" {
		t.Errorf("student_name = %q", ev.StudentName)
	}
	if ev.Course != "CSI-300-01" {
		t.Errorf("course = %q", ev.Course)
	}
}

func TestEnrollRetriesSerializationFailure(t *testing.T) {
	repo := &fakeEnrollmentRepo{results: []error{serializationErr(), serializationErr(), nil}}
	svc := newEnrollmentFixture(repo, nil)

	if _, err := svc.Enroll(context.Background(), 1, 7); err != nil {
		t.Fatalf("enroll failed after retries: %v", err)
	}
	if repo.calls != 3 {
		t.Errorf("calls = %d, want 3", repo.calls)
	}
}

func TestEnrollGivesUpAfterMaxAttempts(t *testing.T) {
	repo := &fakeEnrollmentRepo{results: []error{
		serializationErr(), serializationErr(), serializationErr(), serializationErr(),
	}}
	svc := newEnrollmentFixture(repo, nil)

	_, err := svc.Enroll(context.Background(), 1, 7)
	if err == nil {
		t.Fatal("expected error")
	}
	if !repository.IsSerializationFailure(err) {
		t.Errorf("err = %v, want serialization failure", err)
	}
	if repo.calls != enrollMaxAttempts {
		t.Errorf("calls = %d, want %d", repo.calls, enrollMaxAttempts)
	}
}

func TestEnrollDoesNotRetryBusinessErrors(t *testing.T) {
	cases := []error{
		repository.ErrAlreadyEnrolled,
		repository.ErrStudentNotFound,
		repository.ErrCourseNotFound,
		&repository.SectionConflictError{Prefix: "CSI", Number: 300, Section: "02"},
	}

	for _, want := range cases {
		repo := &fakeEnrollmentRepo{results: []error{want}}
		svc := newEnrollmentFixture(repo, nil)

		_, err := svc.Enroll(context.Background(), 1, 7)
		if !errors.Is(err, want) {
			t.Errorf("err = %v, want %v", err, want)
		}
		if repo.calls != 1 {
			t.Errorf("%v: calls = %d, want 1", want, repo.calls)
		}
	}
}

// racingEnrollmentRepo mirrors the enrollment table's pair uniqueness: the
// first caller to land a (student, course) pair wins and every later caller
// gets ErrAlreadyEnrolled. Each racer's first attempt fails with a
// serialization error so both flow through the retry loop.
type racingEnrollmentRepo struct {
	mu                sync.Mutex
	pairs             map[[2]int]bool
	serializationLeft int
	calls             int
}

func (f *racingEnrollmentRepo) CreateWithGrade(ctx context.Context, studentID, courseID int) (*model.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.serializationLeft > 0 {
		f.serializationLeft--
		return nil, serializationErr()
	}
	pair := [2]int{studentID, courseID}
	if f.pairs[pair] {
		return nil, repository.ErrAlreadyEnrolled
	}
	f.pairs[pair] = true
	return &model.Enrollment{
		ID:        len(f.pairs),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}, nil
}

func TestEnrollConcurrentRacersResolveToOneWinner(t *testing.T) {
	repo := &racingEnrollmentRepo{pairs: map[[2]int]bool{}, serializationLeft: 2}
	svc := newEnrollmentFixture(repo, nil)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Enroll(context.Background(), 1, 7)
		}(i)
	}
	wg.Wait()

	var wins, dupes int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, repository.ErrAlreadyEnrolled):
			dupes++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 || dupes != 1 {
		t.Fatalf("wins = %d, dupes = %d, want exactly one of each", wins, dupes)
	}
	if len(repo.pairs) != 1 {
		t.Errorf("recorded pairs = %d, want 1", len(repo.pairs))
	}
	// Two first attempts hit serialization failures, two retries settle it.
	if repo.calls != 4 {
		t.Errorf("calls = %d, want 4", repo.calls)
	}
}

func TestEnrollPublishFailureDoesNotFailEnrollment(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	pub := &capturingPublisher{err: errors.New("redis down")}
	svc := newEnrollmentFixture(repo, pub)

	if _, err := svc.Enroll(context.Background(), 1, 7); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
}

func TestEnrollNilPublisher(t *testing.T) {
	svc := newEnrollmentFixture(&fakeEnrollmentRepo{}, nil)
	if _, err := svc.Enroll(context.Background(), 1, 7); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}
}
