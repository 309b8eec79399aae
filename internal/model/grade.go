package model

import "time"

// Grade is the 1:1 companion record of an Enrollment holding the five
// component scores. Components live in [0, 100] and are zero-filled when the
// enrollment is created.
type Grade struct {
	ID           int       `json:"id"`
	EnrollmentID int       `json:"enrollment_id"`
	Quiz1        float64   `json:"quiz1"`
	Quiz2        float64   `json:"quiz2"`
	Project1     float64   `json:"project1"`
	Project2     float64   `json:"project2"`
	FinalExam    float64   `json:"final_exam"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Components returns the stored scores as a fully-recorded component set.
func (g Grade) Components() GradeComponents {
	return GradeComponents{
		Quiz1:     &g.Quiz1,
		Quiz2:     &g.Quiz2,
		Project1:  &g.Project1,
		Project2:  &g.Project2,
		FinalExam: &g.FinalExam,
	}
}

// GradeComponents carries an optionally-partial set of component scores.
// A nil field means "not provided": left unchanged on update, zero on first
// creation, and excluded from the overall-grade computation.
type GradeComponents struct {
	Quiz1     *float64 `json:"quiz1"`
	Quiz2     *float64 `json:"quiz2"`
	Project1  *float64 `json:"project1"`
	Project2  *float64 `json:"project2"`
	FinalExam *float64 `json:"final_exam"`
}

// Component weights for the overall course grade.
const (
	WeightQuiz1     = 0.15
	WeightQuiz2     = 0.15
	WeightProject1  = 0.20
	WeightProject2  = 0.20
	WeightFinalExam = 0.30
)

// OverallGrade is the reporting view of a component set: the renormalized
// weighted average and its letter. Score is nil and Letter is "N/A" when no
// component has been recorded.
type OverallGrade struct {
	Score  *float64 `json:"score"`
	Letter string   `json:"letter"`
}

// ComputeOverall computes the weighted average of the recorded components,
// renormalizing the weight total so unrecorded components count neither in
// the numerator nor in the denominator.
func ComputeOverall(c GradeComponents) OverallGrade {
	parts := []struct {
		value  *float64
		weight float64
	}{
		{c.Quiz1, WeightQuiz1},
		{c.Quiz2, WeightQuiz2},
		{c.Project1, WeightProject1},
		{c.Project2, WeightProject2},
		{c.FinalExam, WeightFinalExam},
	}

	var sum, weightTotal float64
	for _, p := range parts {
		if p.value == nil {
			continue
		}
		sum += *p.value * p.weight
		weightTotal += p.weight
	}

	if weightTotal == 0 {
		return OverallGrade{Letter: "N/A"}
	}

	score := sum / weightTotal
	return OverallGrade{Score: &score, Letter: LetterGrade(score)}
}

// LetterGrade maps a numeric score to its letter via the fixed threshold table.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A"
	case score >= 90:
		return "A-"
	case score >= 87:
		return "B+"
	case score >= 83:
		return "B"
	case score >= 80:
		return "B-"
	case score >= 77:
		return "C+"
	case score >= 73:
		return "C"
	case score >= 70:
		return "C-"
	case score >= 67:
		return "D+"
	case score >= 63:
		return "D"
	case score >= 60:
		return "D-"
	default:
		return "F"
	}
}
