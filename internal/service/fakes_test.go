package service

import (
	"context"
	"sync"

	"github.com/acadsys/registra-backend/internal/model"
	"github.com/acadsys/registra-backend/internal/repository"
)

// fakeCourseRepo serves a fixed course set keyed by ID.
type fakeCourseRepo struct {
	courses map[int]*model.Course
}

func (f *fakeCourseRepo) Create(ctx context.Context, c *model.Course) error { return nil }

func (f *fakeCourseRepo) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, repository.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourseRepo) List(ctx context.Context) ([]model.Course, error) { return nil, nil }

func (f *fakeCourseRepo) Delete(ctx context.Context, id int) error { return nil }

func (f *fakeCourseRepo) ListRoster(ctx context.Context, courseID int) ([]repository.RosterEntry, error) {
	return nil, nil
}

// fakeStudentRepo serves a fixed student set keyed by ID.
type fakeStudentRepo struct {
	students map[int]*model.Student
}

func (f *fakeStudentRepo) Create(ctx context.Context, s *model.Student) error { return nil }

func (f *fakeStudentRepo) GetByID(ctx context.Context, id int) (*model.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, repository.ErrStudentNotFound
	}
	return s, nil
}

func (f *fakeStudentRepo) List(ctx context.Context) ([]repository.StudentWithMajor, error) {
	return nil, nil
}

func (f *fakeStudentRepo) Delete(ctx context.Context, id int) error { return nil }

func (f *fakeStudentRepo) ListCourses(ctx context.Context, studentID int) ([]repository.StudentCourseEntry, error) {
	return nil, nil
}

// fakeMaterialRepo records created rows and fails on demand.
type fakeMaterialRepo struct {
	mu        sync.Mutex
	created   []*model.CourseMaterial
	createErr error
	nextID    int
}

func (f *fakeMaterialRepo) Create(ctx context.Context, m *model.CourseMaterial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	m.ID = f.nextID
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMaterialRepo) GetForCourse(ctx context.Context, courseID, materialID int) (*model.CourseMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.created {
		if m.ID == materialID && m.CourseID == courseID {
			return m, nil
		}
	}
	return nil, repository.ErrMaterialNotFound
}

func (f *fakeMaterialRepo) ListByCourse(ctx context.Context, courseID int) ([]model.CourseMaterial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.CourseMaterial
	for _, m := range f.created {
		if m.CourseID == courseID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMaterialRepo) Delete(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.created {
		if m.ID == id {
			f.created = append(f.created[:i], f.created[i+1:]...)
			return nil
		}
	}
	return repository.ErrMaterialNotFound
}

func (f *fakeMaterialRepo) ExistsByStoragePath(ctx context.Context, storagePath string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.created {
		if m.StoragePath == storagePath {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeMaterialRepo) ListStoragePathsByCourse(ctx context.Context, courseID int) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var paths []string
	for _, m := range f.created {
		if m.CourseID == courseID {
			paths = append(paths, m.StoragePath)
		}
	}
	return paths, nil
}
