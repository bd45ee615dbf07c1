package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances. The repositories are
// embedded so the bundle exposes every query method of the schema.
type Repositories struct {
	*FacultyRepository
	*DepartmentRepository
	*TeacherRepository
	*GroupRepository
	*SubjectRepository
	*SessionRepository
	*ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		FacultyRepository:    NewFacultyRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		GroupRepository:      NewGroupRepository(db),
		SubjectRepository:    NewSubjectRepository(db),
		SessionRepository:    NewSessionRepository(db),
		ReportRepository:     NewReportRepository(db),
	}
}

// statementBuilder returns a squirrel builder using PostgreSQL placeholders
func statementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// paginate applies OFFSET/LIMIT to a select. A zero limit means no limit.
func paginate(q squirrel.SelectBuilder, skip, limit uint64) squirrel.SelectBuilder {
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	return q
}
