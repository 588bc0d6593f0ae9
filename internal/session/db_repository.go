package session

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/studylog/internal/database"
)

var dbColumns = []string{"position", "session_date", "content", "strengths", "improvements", "rating"}

// sessionRow is a study_sessions row. Position keeps the table order, since a
// record's identity is its position.
type sessionRow struct {
	Position     int    `db:"position"`
	Date         string `db:"session_date"`
	Content      string `db:"content"`
	Strengths    string `db:"strengths"`
	Improvements string `db:"improvements"`
	Rating       string `db:"rating"`
}

//go:generate mockgen -source=db_repository.go -destination=../mocks/session/mock_repository.go -package=mock_session Repository

// Repository mirrors the session table in another storage.
type Repository interface {
	FindAll(ctx context.Context) ([]Record, error)
	ReplaceAll(ctx context.Context, records []Record) error
}

// DBRepository implements Repository using MySQL.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns every mirrored record in table order.
func (r *DBRepository) FindAll(ctx context.Context) ([]Record, error) {
	var rows []sessionRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT position, session_date, content, strengths, improvements, rating FROM study_sessions ORDER BY position"); err != nil {
		return nil, fmt.Errorf("load all study sessions: %w", err)
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Date:         row.Date,
			Content:      row.Content,
			Strengths:    row.Strengths,
			Improvements: row.Improvements,
			Rating:       NormalizeRating(row.Rating),
		})
	}
	return records, nil
}

// ReplaceAll deletes the mirrored rows and inserts records in a single transaction.
func (r *DBRepository) ReplaceAll(ctx context.Context, records []Record) error {
	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM study_sessions"); err != nil {
			return fmt.Errorf("delete study sessions: %w", err)
		}
		if len(records) == 0 {
			return nil
		}

		query := database.BuildMultiRowInsert("study_sessions", dbColumns, len(records))
		args := make([]interface{}, 0, len(records)*len(dbColumns))
		for i, rec := range records {
			args = append(args, i, rec.Date, rec.Content, rec.Strengths, rec.Improvements, string(rec.Rating))
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert study sessions: %w", err)
		}
		return nil
	})
}
