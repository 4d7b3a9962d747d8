package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/studyloop/studyloop-api/internal/domain"
	"github.com/studyloop/studyloop-api/internal/domain/schedule"
	"github.com/studyloop/studyloop-api/internal/store"
)

// SQLiteStudyStore implements store.StudyStore on SQLite.
type SQLiteStudyStore struct {
	db store.DBTX
}

// NewSQLiteStudyStore creates a new SQLite implementation of the StudyStore interface.
func NewSQLiteStudyStore(db store.DBTX) *SQLiteStudyStore {
	return &SQLiteStudyStore{db: db}
}

var _ store.StudyStore = (*SQLiteStudyStore)(nil)

// Create implements store.StudyStore.Create
func (s *SQLiteStudyStore) Create(ctx context.Context, record *domain.StudyRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	revisions, err := json.Marshal(record.Revisions)
	if err != nil {
		return fmt.Errorf("failed to marshal revisions: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO study_records (id, discipline_id, topic, time_spent, date, notes, created_at, revisions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		record.ID.String(),
		record.DisciplineID.String(),
		record.Topic,
		record.TimeSpent,
		record.Date.String(),
		record.Notes,
		record.CreatedAt,
		string(revisions),
	)
	if err != nil {
		return fmt.Errorf("failed to insert study record %s: %w", record.ID, err)
	}
	return nil
}

// GetByID implements store.StudyStore.GetByID
func (s *SQLiteStudyStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, discipline_id, topic, time_spent, date, notes, created_at, revisions
		FROM study_records WHERE id = ?
	`, id.String())

	record, err := scanStudyRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrStudyNotFound
	}
	return record, err
}

// List implements store.StudyStore.List
func (s *SQLiteStudyStore) List(ctx context.Context) ([]*domain.StudyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, discipline_id, topic, time_spent, date, notes, created_at, revisions
		FROM study_records ORDER BY date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query study records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.StudyRecord
	for rows.Next() {
		record, err := scanStudyRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Update implements store.StudyStore.Update
func (s *SQLiteStudyStore) Update(ctx context.Context, record *domain.StudyRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	revisions, err := json.Marshal(record.Revisions)
	if err != nil {
		return fmt.Errorf("failed to marshal revisions: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE study_records
		SET discipline_id = ?, topic = ?, time_spent = ?, date = ?, notes = ?, revisions = ?
		WHERE id = ?
	`,
		record.DisciplineID.String(),
		record.Topic,
		record.TimeSpent,
		record.Date.String(),
		record.Notes,
		string(revisions),
		record.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update study record %s: %w", record.ID, err)
	}
	return checkAffected(result, store.ErrStudyNotFound)
}

// Delete implements store.StudyStore.Delete
func (s *SQLiteStudyStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM study_records WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete study record %s: %w", id, err)
	}
	return checkAffected(result, store.ErrStudyNotFound)
}

// WithTxStudyStore implements store.StudyStore.WithTxStudyStore
func (s *SQLiteStudyStore) WithTxStudyStore(tx *sql.Tx) store.StudyStore {
	return &SQLiteStudyStore{db: tx}
}

// SQLiteReviewStore implements store.ReviewStore on SQLite.
type SQLiteReviewStore struct {
	db store.DBTX
}

// NewSQLiteReviewStore creates a new SQLite implementation of the ReviewStore interface.
func NewSQLiteReviewStore(db store.DBTX) *SQLiteReviewStore {
	return &SQLiteReviewStore{db: db}
}

var _ store.ReviewStore = (*SQLiteReviewStore)(nil)

// CreateMultiple implements store.ReviewStore.CreateMultiple
func (s *SQLiteReviewStore) CreateMultiple(ctx context.Context, reviews []*domain.Review) error {
	for _, review := range reviews {
		if err := review.Validate(); err != nil {
			return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO reviews (id, study_record_id, discipline_id, topic, due_date, completed, completed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			review.ID.String(),
			review.StudyRecordID.String(),
			review.DisciplineID.String(),
			review.Topic,
			review.DueDate.String(),
			review.Completed,
			nullTime(review.CompletedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert review %s: %w", review.ID, err)
		}
	}
	return nil
}

// GetByID implements store.ReviewStore.GetByID
func (s *SQLiteReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, study_record_id, discipline_id, topic, due_date, completed, completed_at
		FROM reviews WHERE id = ?
	`, id.String())

	review, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrReviewNotFound
	}
	return review, err
}

// List implements store.ReviewStore.List
func (s *SQLiteReviewStore) List(ctx context.Context) ([]*domain.Review, error) {
	return s.queryReviews(ctx, `
		SELECT id, study_record_id, discipline_id, topic, due_date, completed, completed_at
		FROM reviews ORDER BY due_date ASC
	`)
}

// ListByStudy implements store.ReviewStore.ListByStudy
func (s *SQLiteReviewStore) ListByStudy(ctx context.Context, studyID uuid.UUID) ([]*domain.Review, error) {
	return s.queryReviews(ctx, `
		SELECT id, study_record_id, discipline_id, topic, due_date, completed, completed_at
		FROM reviews WHERE study_record_id = ? ORDER BY due_date ASC
	`, studyID.String())
}

// Update implements store.ReviewStore.Update
func (s *SQLiteReviewStore) Update(ctx context.Context, review *domain.Review) error {
	if err := review.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE reviews
		SET discipline_id = ?, topic = ?, due_date = ?, completed = ?, completed_at = ?
		WHERE id = ?
	`,
		review.DisciplineID.String(),
		review.Topic,
		review.DueDate.String(),
		review.Completed,
		nullTime(review.CompletedAt),
		review.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update review %s: %w", review.ID, err)
	}
	return checkAffected(result, store.ErrReviewNotFound)
}

// Delete implements store.ReviewStore.Delete
func (s *SQLiteReviewStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	return checkAffected(result, store.ErrReviewNotFound)
}

// DeleteByStudy implements store.ReviewStore.DeleteByStudy
func (s *SQLiteReviewStore) DeleteByStudy(ctx context.Context, studyID uuid.UUID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM reviews WHERE study_record_id = ?`, studyID.String())
	if err != nil {
		return fmt.Errorf("failed to delete reviews for study %s: %w", studyID, err)
	}
	return nil
}

// WithTxReviewStore implements store.ReviewStore.WithTxReviewStore
func (s *SQLiteReviewStore) WithTxReviewStore(tx *sql.Tx) store.ReviewStore {
	return &SQLiteReviewStore{db: tx}
}

func (s *SQLiteReviewStore) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

// SQLiteSettingsStore implements store.SettingsStore on SQLite.
type SQLiteSettingsStore struct {
	db store.DBTX
}

// NewSQLiteSettingsStore creates a new SQLite implementation of the SettingsStore interface.
func NewSQLiteSettingsStore(db store.DBTX) *SQLiteSettingsStore {
	return &SQLiteSettingsStore{db: db}
}

var _ store.SettingsStore = (*SQLiteSettingsStore)(nil)

// Get implements store.SettingsStore.Get
func (s *SQLiteSettingsStore) Get(ctx context.Context) (schedule.Params, error) {
	var params schedule.Params
	err := s.db.QueryRowContext(ctx, `
		SELECT first_interval, second_interval, third_interval
		FROM schedule_settings WHERE id = 1
	`).Scan(&params.FirstInterval, &params.SecondInterval, &params.ThirdInterval)
	if errors.Is(err, sql.ErrNoRows) {
		return schedule.Params{}, store.ErrSettingsNotFound
	}
	if err != nil {
		return schedule.Params{}, fmt.Errorf("failed to read schedule settings: %w", err)
	}
	return params.Normalize(), nil
}

// Update implements store.SettingsStore.Update
func (s *SQLiteSettingsStore) Update(ctx context.Context, params schedule.Params) error {
	params = params.Normalize()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_settings (id, first_interval, second_interval, third_interval, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET first_interval = excluded.first_interval,
		    second_interval = excluded.second_interval,
		    third_interval = excluded.third_interval,
		    updated_at = excluded.updated_at
	`, params.FirstInterval, params.SecondInterval, params.ThirdInterval, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update schedule settings: %w", err)
	}
	return nil
}

// SQLiteDisciplineStore implements store.DisciplineStore on SQLite.
type SQLiteDisciplineStore struct {
	db store.DBTX
}

// NewSQLiteDisciplineStore creates a new SQLite implementation of the DisciplineStore interface.
func NewSQLiteDisciplineStore(db store.DBTX) *SQLiteDisciplineStore {
	return &SQLiteDisciplineStore{db: db}
}

var _ store.DisciplineStore = (*SQLiteDisciplineStore)(nil)

// GetByID implements store.DisciplineStore.GetByID
func (s *SQLiteDisciplineStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Discipline, error) {
	var discipline domain.Discipline
	var rawID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color FROM disciplines WHERE id = ?`, id.String(),
	).Scan(&rawID, &discipline.Name, &discipline.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrDisciplineNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read discipline %s: %w", id, err)
	}

	discipline.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("malformed discipline id %q: %w", rawID, err)
	}
	return &discipline, nil
}

// List implements store.DisciplineStore.List
func (s *SQLiteDisciplineStore) List(ctx context.Context) ([]*domain.Discipline, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color FROM disciplines ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query disciplines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var disciplines []*domain.Discipline
	for rows.Next() {
		var discipline domain.Discipline
		var rawID string
		if err := rows.Scan(&rawID, &discipline.Name, &discipline.Color); err != nil {
			return nil, err
		}
		discipline.ID, err = uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("malformed discipline id %q: %w", rawID, err)
		}
		disciplines = append(disciplines, &discipline)
	}
	return disciplines, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanStudyRecord(row rowScanner) (*domain.StudyRecord, error) {
	var record domain.StudyRecord
	var rawID, rawDisciplineID, rawDate, revisions string

	err := row.Scan(
		&rawID,
		&rawDisciplineID,
		&record.Topic,
		&record.TimeSpent,
		&rawDate,
		&record.Notes,
		&record.CreatedAt,
		&revisions,
	)
	if err != nil {
		return nil, err
	}

	if record.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("malformed study record id %q: %w", rawID, err)
	}
	if record.DisciplineID, err = uuid.Parse(rawDisciplineID); err != nil {
		return nil, fmt.Errorf("malformed discipline id %q: %w", rawDisciplineID, err)
	}
	if record.Date, err = domain.ParseDay(rawDate); err != nil {
		return nil, err
	}

	// Derived display snapshot; corrupt values fall back to empty.
	if err := json.Unmarshal([]byte(revisions), &record.Revisions); err != nil {
		record.Revisions = nil
	}

	return &record, nil
}

func scanReview(row rowScanner) (*domain.Review, error) {
	var review domain.Review
	var rawID, rawStudyID, rawDisciplineID, rawDueDate string
	var completedAt sql.NullTime

	err := row.Scan(
		&rawID,
		&rawStudyID,
		&rawDisciplineID,
		&review.Topic,
		&rawDueDate,
		&review.Completed,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	if review.ID, err = uuid.Parse(rawID); err != nil {
		return nil, fmt.Errorf("malformed review id %q: %w", rawID, err)
	}
	if review.StudyRecordID, err = uuid.Parse(rawStudyID); err != nil {
		return nil, fmt.Errorf("malformed study record id %q: %w", rawStudyID, err)
	}
	if review.DisciplineID, err = uuid.Parse(rawDisciplineID); err != nil {
		return nil, fmt.Errorf("malformed discipline id %q: %w", rawDisciplineID, err)
	}
	if review.DueDate, err = domain.ParseDay(rawDueDate); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		review.CompletedAt = &t
	}

	return &review, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func checkAffected(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
