package model

import (
	"math"
	"testing"
)

func fp(v float64) *float64 { return &v }

func TestComputeOverallFullyRecorded(t *testing.T) {
	c := GradeComponents{
		Quiz1:     fp(100),
		Quiz2:     fp(80),
		Project1:  fp(90),
		Project2:  fp(70),
		FinalExam: fp(85),
	}

	overall := ComputeOverall(c)
	if overall.Score == nil {
		t.Fatal("expected a score")
	}
	// 100*.15 + 80*.15 + 90*.20 + 70*.20 + 85*.30 = 84.5
	if math.Abs(*overall.Score-84.5) > 1e-9 {
		t.Errorf("score = %g, want 84.5", *overall.Score)
	}
	if overall.Letter != "B" {
		t.Errorf("letter = %q, want B", overall.Letter)
	}
}

func TestComputeOverallAllZero(t *testing.T) {
	c := GradeComponents{
		Quiz1:     fp(0),
		Quiz2:     fp(0),
		Project1:  fp(0),
		Project2:  fp(0),
		FinalExam: fp(0),
	}

	overall := ComputeOverall(c)
	if overall.Score == nil || *overall.Score != 0 {
		t.Fatalf("score = %v, want 0", overall.Score)
	}
	if overall.Letter != "F" {
		t.Errorf("letter = %q, want F", overall.Letter)
	}
}

func TestComputeOverallNoComponents(t *testing.T) {
	overall := ComputeOverall(GradeComponents{})
	if overall.Score != nil {
		t.Errorf("score = %g, want nil", *overall.Score)
	}
	if overall.Letter != "N/A" {
		t.Errorf("letter = %q, want N/A", overall.Letter)
	}
}

func TestComputeOverallRenormalizesPartial(t *testing.T) {
	// Only the two quizzes recorded: equal weights, so a plain average.
	c := GradeComponents{
		Quiz1: fp(90),
		Quiz2: fp(70),
	}

	overall := ComputeOverall(c)
	if overall.Score == nil {
		t.Fatal("expected a score")
	}
	if math.Abs(*overall.Score-80) > 1e-9 {
		t.Errorf("score = %g, want 80", *overall.Score)
	}
	if overall.Letter != "B-" {
		t.Errorf("letter = %q, want B-", overall.Letter)
	}
}

func TestComputeOverallSingleComponent(t *testing.T) {
	overall := ComputeOverall(GradeComponents{FinalExam: fp(62)})
	if overall.Score == nil || math.Abs(*overall.Score-62) > 1e-9 {
		t.Fatalf("score = %v, want 62", overall.Score)
	}
	if overall.Letter != "D-" {
		t.Errorf("letter = %q, want D-", overall.Letter)
	}
}

func TestLetterGradeThresholds(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{100, "A"},
		{93, "A"},
		{92.99, "A-"},
		{90, "A-"},
		{87, "B+"},
		{85.75, "B+"},
		{84.5, "B"},
		{83, "B"},
		{80, "B-"},
		{77, "C+"},
		{73, "C"},
		{70, "C-"},
		{67, "D+"},
		{63, "D"},
		{60, "D-"},
		{59.99, "F"},
		{0, "F"},
	}

	for _, tc := range cases {
		if got := LetterGrade(tc.score); got != tc.want {
			t.Errorf("LetterGrade(%g) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestGradeComponentsRoundTrip(t *testing.T) {
	g := Grade{Quiz1: 10, Quiz2: 20, Project1: 30, Project2: 40, FinalExam: 50}
	c := g.Components()

	for name, v := range map[string]*float64{
		"quiz1": c.Quiz1, "quiz2": c.Quiz2,
		"project1": c.Project1, "project2": c.Project2,
		"final_exam": c.FinalExam,
	} {
		if v == nil {
			t.Errorf("%s: nil, want recorded", name)
		}
	}
	if *c.FinalExam != 50 {
		t.Errorf("final_exam = %g, want 50", *c.FinalExam)
	}
}
