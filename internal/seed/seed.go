// Package seed populates the API with a realistic data set: fixed faculties,
// departments and teachers followed by randomly generated groups, subjects and
// sessions that reference them.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/app/models/dto"
)

var (
	FacultyNames    = []string{"Computer Science", "Applied Mathematics", "Physics", "History", "Philology"}
	DepartmentNames = []string{"Software Engineering", "Theoretical Physics", "Ancient History", "English Literature", "Computational Maths"}
	TeacherNames    = []string{"Dr. Alan Turing", "Dr. Albert Einstein", "Dr. Marie Curie", "Dr. Herodotus", "Dr. William Shakespeare"}

	subjectHours = []int{32, 48, 64, 96}
	controlTypes = []string{"exam", "test", "practical"}
)

// Target receives the generated records. Implementations return the new ID.
type Target interface {
	CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (int64, error)
	CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (int64, error)
	CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (int64, error)
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (int64, error)
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (int64, error)
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (int64, error)
}

// Options controls how many dependent records are generated
type Options struct {
	Groups     int
	Subjects   int
	Sessions   int
	RandomSeed int64
	// Today anchors generated session dates; zero means the current date
	Today time.Time
}

// Result counts the outcome for one entity
type Result struct {
	Entity  string
	Created int
	Failed  int
}

// Summary is the outcome of a run, one Result per entity in creation order
type Summary struct {
	Results []Result
}

// Total returns created and failed counts across all entities
func (s Summary) Total() (created, failed int) {
	for _, r := range s.Results {
		created += r.Created
		failed += r.Failed
	}
	return created, failed
}

// Run creates every record through target. Individual failures are logged and
// counted; they never abort the run. Only context cancellation stops it early.
func Run(ctx context.Context, target Target, opts Options, lgr zerolog.Logger) (Summary, error) {
	rng := rand.New(rand.NewSource(opts.RandomSeed))
	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}

	var summary Summary
	record := func(entity string, attempt func(i int) (int64, error), n int) ([]int64, error) {
		res := Result{Entity: entity}
		var ids []int64
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				summary.Results = append(summary.Results, res)
				return ids, err
			}
			id, err := attempt(i)
			if err != nil {
				res.Failed++
				lgr.Warn().Err(err).Str("entity", entity).Int("index", i).Msg("Failed to create record")
				continue
			}
			res.Created++
			ids = append(ids, id)
		}
		lgr.Info().Str("entity", entity).Int("created", res.Created).Int("failed", res.Failed).Msg("Seeded records")
		summary.Results = append(summary.Results, res)
		return ids, nil
	}

	facultyIDs, err := record("faculties", func(i int) (int64, error) {
		return target.CreateFaculty(ctx, dto.CreateFacultyRequest{Name: FacultyNames[i]})
	}, len(FacultyNames))
	if err != nil {
		return summary, err
	}

	departmentIDs, err := record("departments", func(i int) (int64, error) {
		return target.CreateDepartment(ctx, dto.CreateDepartmentRequest{Name: DepartmentNames[i]})
	}, len(DepartmentNames))
	if err != nil {
		return summary, err
	}

	teacherIDs, err := record("teachers", func(i int) (int64, error) {
		return target.CreateTeacher(ctx, dto.CreateTeacherRequest{Name: TeacherNames[i]})
	}, len(TeacherNames))
	if err != nil {
		return summary, err
	}

	groupIDs, err := record("groups", func(i int) (int64, error) {
		if len(facultyIDs) == 0 {
			return 0, fmt.Errorf("no faculties available")
		}
		return target.CreateGroup(ctx, GroupRequest(rng, i, facultyIDs))
	}, opts.Groups)
	if err != nil {
		return summary, err
	}

	subjectIDs, err := record("subjects", func(i int) (int64, error) {
		if len(departmentIDs) == 0 {
			return 0, fmt.Errorf("no departments available")
		}
		return target.CreateSubject(ctx, SubjectRequest(rng, i, departmentIDs))
	}, opts.Subjects)
	if err != nil {
		return summary, err
	}

	_, err = record("sessions", func(i int) (int64, error) {
		if len(groupIDs) == 0 || len(subjectIDs) == 0 || len(teacherIDs) == 0 {
			return 0, fmt.Errorf("missing groups, subjects or teachers")
		}
		return target.CreateSession(ctx, SessionRequest(rng, today, groupIDs, subjectIDs, teacherIDs))
	}, opts.Sessions)
	return summary, err
}

// GroupRequest builds the i-th generated group
func GroupRequest(rng *rand.Rand, i int, facultyIDs []int64) dto.CreateGroupRequest {
	return dto.CreateGroupRequest{
		Code:        fmt.Sprintf("G%d", 1000+i),
		Course:      1 + rng.Intn(5),
		NumStudents: 15 + rng.Intn(16),
		FacultyID:   facultyIDs[rng.Intn(len(facultyIDs))],
	}
}

// SubjectRequest builds the i-th generated subject
func SubjectRequest(rng *rand.Rand, i int, departmentIDs []int64) dto.CreateSubjectRequest {
	return dto.CreateSubjectRequest{
		Name:         fmt.Sprintf("Subject %d", i+1),
		NumHours:     subjectHours[rng.Intn(len(subjectHours))],
		DepartmentID: departmentIDs[rng.Intn(len(departmentIDs))],
		Extra: map[string]interface{}{
			models.NotesKey: fmt.Sprintf("This subject covers topics %d and patterns %d.", i+1, i%5+1),
			"tags":          []interface{}{fmt.Sprintf("tag%d", i%3+1), fmt.Sprintf("level%d", i%5+1)},
		},
	}
}

// SessionRequest builds a generated session dated within the year before today
func SessionRequest(rng *rand.Rand, today time.Time, groupIDs, subjectIDs, teacherIDs []int64) dto.CreateSessionRequest {
	day := today.AddDate(0, 0, -rng.Intn(366))
	return dto.CreateSessionRequest{
		GroupID:     groupIDs[rng.Intn(len(groupIDs))],
		SubjectID:   subjectIDs[rng.Intn(len(subjectIDs))],
		TeacherID:   teacherIDs[rng.Intn(len(teacherIDs))],
		ControlType: controlTypes[rng.Intn(len(controlTypes))],
		SessionDate: models.NewDate(day.Year(), day.Month(), day.Day()),
	}
}
