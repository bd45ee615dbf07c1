package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/unisession/internal/app/models"
	"github.com/yigit/unisession/internal/pkg/logger"
)

// ReportRepository runs aggregate queries across tables
type ReportRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// buildStudentsPerFacultyQuery sums num_students of every faculty's groups.
// Faculties without groups drop out of the inner join.
func buildStudentsPerFacultyQuery(sb squirrel.StatementBuilderType) squirrel.SelectBuilder {
	return sb.Select("f.name AS faculty_name", "SUM(g.num_students) AS total_students").
		From("faculties f").
		Join("groups g ON g.faculty_id = f.id").
		GroupBy("f.name").
		OrderBy("f.name ASC")
}

// StudentsPerFaculty reports the total number of students of each faculty
func (r *ReportRepository) StudentsPerFaculty(ctx context.Context) ([]*models.FacultyStats, error) {
	sql, args, err := buildStudentsPerFacultyQuery(r.sb).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building students per faculty SQL")
		return nil, fmt.Errorf("failed to build students per faculty query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing students per faculty query")
		return nil, fmt.Errorf("error querying students per faculty: %w", err)
	}
	defer rows.Close()

	stats := []*models.FacultyStats{}
	for rows.Next() {
		s := &models.FacultyStats{}
		if err := rows.Scan(&s.FacultyName, &s.TotalStudents); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty stats row")
			return nil, fmt.Errorf("error scanning faculty stats row: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty stats rows")
		return nil, fmt.Errorf("error iterating faculty stats rows: %w", err)
	}

	return stats, nil
}
