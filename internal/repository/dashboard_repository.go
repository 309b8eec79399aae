package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DashboardRepository handles dashboard reporting queries.
type DashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository creates a new DashboardRepository.
func NewDashboardRepository(pool *pgxpool.Pool) *DashboardRepository {
	return &DashboardRepository{pool: pool}
}

// GetSummaryCounts retrieves the high-level entity counts for the dashboard.
func (r *DashboardRepository) GetSummaryCounts(ctx context.Context) (students, courses, enrollments, materials int, err error) {
	err = r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM enrollments),
			(SELECT COUNT(*) FROM course_materials)`,
	).Scan(&students, &courses, &enrollments, &materials)
	return
}

// RecentEnrollment is minimal data for the dashboard's activity list.
type RecentEnrollment struct {
	EnrollmentID int       `json:"enrollment_id"`
	StudentName  string    `json:"student_name"`
	CoursePrefix string    `json:"course_prefix"`
	CourseNumber int       `json:"course_number"`
	Section      string    `json:"section"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetRecentEnrollments retrieves the last N enrollments, newest first.
func (r *DashboardRepository) GetRecentEnrollments(ctx context.Context, limit int) ([]RecentEnrollment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT e.id, s.first_name || ' ' || s.last_name, c.prefix, c.number, c.section, e.created_at
		 FROM enrollments e
		 JOIN students s ON s.id = e.student_id
		 JOIN courses c ON c.id = e.course_id
		 ORDER BY e.created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recents := []RecentEnrollment{}
	for rows.Next() {
		var re RecentEnrollment
		if err := rows.Scan(&re.EnrollmentID, &re.StudentName, &re.CoursePrefix,
			&re.CourseNumber, &re.Section, &re.CreatedAt); err != nil {
			return nil, err
		}
		recents = append(recents, re)
	}
	return recents, rows.Err()
}
