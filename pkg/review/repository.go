package review

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

const dateFormat = "2006-01-02"

// DailyProgress is a persisted completion verdict for one logical day and one
// deck scope.
type DailyProgress struct {
	Date      time.Time
	Scope     DeckScope
	Completed bool
}

type Repository interface {
	// Upsert stores the verdict for (date, scope), overwriting any earlier
	// verdict for the same key.
	Upsert(ctx context.Context, progress DailyProgress) error
	ReadRange(ctx context.Context, startDate time.Time, endDate time.Time, scope DeckScope) ([]DailyProgress, error)
	ClearAll(ctx context.Context) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r RepositoryImpl) Upsert(ctx context.Context, progress DailyProgress) error {
	query := `INSERT INTO daily_progress (date, deck_id, completed) VALUES (?, ?, ?)
				ON CONFLICT (date, deck_id) DO UPDATE SET completed = excluded.completed`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx, progress.Date.Format(dateFormat), progress.Scope.StorageID(), progress.Completed)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r RepositoryImpl) ReadRange(ctx context.Context, startDate time.Time, endDate time.Time, scope DeckScope) ([]DailyProgress, error) {
	query := `SELECT date, deck_id, completed FROM daily_progress
				WHERE date BETWEEN ? AND ? AND deck_id = ? ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, startDate.Format(dateFormat), endDate.Format(dateFormat), scope.StorageID())
	if err != nil {
		err := fmt.Errorf("could not query daily progress: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var records []DailyProgress
	for rows.Next() {
		var dateString string
		var deckID int64
		var completed bool
		if err := rows.Scan(&dateString, &deckID, &completed); err != nil {
			err := fmt.Errorf("could not scan daily progress: %w", err)
			log.Error(err)
			return nil, err
		}
		date, err := time.Parse(dateFormat, dateString)
		if err != nil {
			err := fmt.Errorf("could not parse date: %w", err)
			log.Error(err)
			return nil, err
		}
		records = append(records, DailyProgress{
			Date:      date,
			Scope:     ScopeFromStorage(deckID),
			Completed: completed,
		})
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return records, nil
}

func (r RepositoryImpl) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM daily_progress")
	if err != nil {
		err := fmt.Errorf("could not clear daily progress: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
