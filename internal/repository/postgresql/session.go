package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/classtrack/center-backend-go/internal/domain/session"
	"github.com/classtrack/center-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type sessionRepository struct {
	db *database.DB
}

func NewSessionRepository(db *database.DB) session.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, s session.Session) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	recordsJSON, err := json.Marshal(s.Records)
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to marshal records: %w", err)
	}

	query := `
		INSERT INTO sessions (id, class_id, teacher_id, date, start_time, end_time, records)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, class_id, teacher_id, date, start_time, end_time, records, locked, created_at, updated_at
	`

	created, err := scanSession(q.QueryRow(ctx, query,
		s.ID, s.ClassID, s.TeacherID, s.Date, s.StartTime, s.EndTime, recordsJSON,
	))
	if err != nil {
		return session.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return created, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.class_id, s.teacher_id, s.date, s.start_time, s.end_time,
			   s.records, s.locked, s.created_at, s.updated_at, c.name
		FROM sessions s
		JOIN classes c ON c.id = s.class_id
		WHERE s.id = $1
	`

	var s session.Session
	var recordsJSON []byte
	err := q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ClassID, &s.TeacherID, &s.Date, &s.StartTime, &s.EndTime,
		&recordsJSON, &s.Locked, &s.CreatedAt, &s.UpdatedAt, &s.ClassName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return session.Session{}, session.ErrSessionNotFound
		}
		return session.Session{}, fmt.Errorf("failed to get session: %w", err)
	}
	if err := json.Unmarshal(recordsJSON, &s.Records); err != nil {
		return session.Session{}, fmt.Errorf("failed to unmarshal records: %w", err)
	}

	return s, nil
}

func (r *sessionRepository) List(ctx context.Context, filter session.SessionFilter) ([]session.Session, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.class_id, s.teacher_id, s.date, s.start_time, s.end_time,
			   s.records, s.locked, s.created_at, s.updated_at, c.name
		FROM sessions s
		JOIN classes c ON c.id = s.class_id
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.ClassID != nil {
		query += fmt.Sprintf(" AND s.class_id = $%d", argIdx)
		args = append(args, *filter.ClassID)
		argIdx++
	}
	if filter.StudentID != nil {
		query += fmt.Sprintf(` AND s.records @> jsonb_build_array(jsonb_build_object('student_id', $%d::text))`, argIdx)
		args = append(args, *filter.StudentID)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM s.date) = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM s.date) = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND s.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND s.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	query += " ORDER BY s.date ASC, s.start_time ASC"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []session.Session
	for rows.Next() {
		var s session.Session
		var recordsJSON []byte
		if err := rows.Scan(
			&s.ID, &s.ClassID, &s.TeacherID, &s.Date, &s.StartTime, &s.EndTime,
			&recordsJSON, &s.Locked, &s.CreatedAt, &s.UpdatedAt, &s.ClassName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		if err := json.Unmarshal(recordsJSON, &s.Records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records: %w", err)
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

func (r *sessionRepository) Update(ctx context.Context, req session.UpdateSessionRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.TeacherID != nil {
		updates = append(updates, fmt.Sprintf("teacher_id = $%d", argIdx))
		args = append(args, *req.TeacherID)
		argIdx++
	}
	if req.Date != nil {
		updates = append(updates, fmt.Sprintf("date = $%d", argIdx))
		args = append(args, *req.Date)
		argIdx++
	}
	if req.StartTime != nil {
		updates = append(updates, fmt.Sprintf("start_time = $%d", argIdx))
		args = append(args, *req.StartTime)
		argIdx++
	}
	if req.EndTime != nil {
		updates = append(updates, fmt.Sprintf("end_time = $%d", argIdx))
		args = append(args, *req.EndTime)
		argIdx++
	}
	if req.Records != nil {
		recordsJSON, err := json.Marshal(req.Records)
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		updates = append(updates, fmt.Sprintf("records = $%d", argIdx))
		args = append(args, recordsJSON)
		argIdx++
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, req.ID)

	query := fmt.Sprintf(
		"UPDATE sessions SET %s WHERE id = $%d AND NOT locked",
		strings.Join(updates, ", "), argIdx,
	)

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFoundOrLocked(ctx, req.ID)
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM sessions WHERE id = $1 AND NOT locked", id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return r.notFoundOrLocked(ctx, id)
	}

	return nil
}

func (r *sessionRepository) Lock(ctx context.Context, ids []string) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx,
		"UPDATE sessions SET locked = TRUE, updated_at = NOW() WHERE id = ANY($1)",
		ids,
	)
	if err != nil {
		return fmt.Errorf("failed to lock sessions: %w", err)
	}

	return nil
}

// notFoundOrLocked disambiguates a zero-row write: the session either does
// not exist or is frozen under a paid invoice.
func (r *sessionRepository) notFoundOrLocked(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var locked bool
	err := q.QueryRow(ctx, "SELECT locked FROM sessions WHERE id = $1", id).Scan(&locked)
	if err != nil {
		if err == pgx.ErrNoRows {
			return session.ErrSessionNotFound
		}
		return fmt.Errorf("failed to check session: %w", err)
	}
	if locked {
		return session.ErrSessionLocked
	}
	return session.ErrSessionNotFound
}

func scanSession(row pgx.Row) (session.Session, error) {
	var s session.Session
	var recordsJSON []byte
	err := row.Scan(
		&s.ID, &s.ClassID, &s.TeacherID, &s.Date, &s.StartTime, &s.EndTime,
		&recordsJSON, &s.Locked, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return session.Session{}, err
	}
	if err := json.Unmarshal(recordsJSON, &s.Records); err != nil {
		return session.Session{}, fmt.Errorf("failed to unmarshal records: %w", err)
	}
	return s, nil
}
