package widget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrConfigNotFound = errors.New("widget configuration not found")

type Repository interface {
	Store(ctx context.Context, config Config) error
	GetAll(ctx context.Context) ([]Config, error)
	Get(ctx context.Context, uid string) (Config, error)
	Update(ctx context.Context, config Config) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r RepositoryImpl) Store(ctx context.Context, config Config) error {
	query := `INSERT INTO widget_config (
                    uid,
                    name,
                    theme,
                    deck_id,
                    deck_name,
                    show_streak,
                    layout_mode,
                    days_to_show,
                    day_start_hour,
                    dark_mode,
                    color_completed,
                    color_incomplete,
                    color_background
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		config.Uid,
		config.Name,
		config.Theme,
		config.DeckID,
		nullableString(config.DeckName),
		config.ShowStreak,
		config.LayoutMode,
		config.DaysToShow,
		config.DayStartHour,
		config.DarkMode,
		nullableString(config.Colors.Completed),
		nullableString(config.Colors.Incomplete),
		nullableString(config.Colors.Background),
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return err
	}

	return nil
}

func (r RepositoryImpl) GetAll(ctx context.Context) ([]Config, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+" FROM widget_config ORDER BY name")
	if err != nil {
		err := fmt.Errorf("could not query widget configs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var configs []Config
	for rows.Next() {
		config, err := scanConfig(rows.Scan)
		if err != nil {
			log.Error(err)
			return nil, err
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}

	return configs, nil
}

func (r RepositoryImpl) Get(ctx context.Context, uid string) (Config, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+" FROM widget_config WHERE uid = ?", uid)
	config, err := scanConfig(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{}, ErrConfigNotFound
		}
		log.Error(err)
		return Config{}, err
	}
	return config, nil
}

func (r RepositoryImpl) Update(ctx context.Context, config Config) (bool, error) {
	query := `UPDATE widget_config SET
                    name = ?,
                    theme = ?,
                    deck_id = ?,
                    deck_name = ?,
                    show_streak = ?,
                    layout_mode = ?,
                    days_to_show = ?,
                    day_start_hour = ?,
                    dark_mode = ?,
                    color_completed = ?,
                    color_incomplete = ?,
                    color_background = ?
				WHERE uid = ?`

	result, err := r.db.ExecContext(ctx, query,
		config.Name,
		config.Theme,
		config.DeckID,
		nullableString(config.DeckName),
		config.ShowStreak,
		config.LayoutMode,
		config.DaysToShow,
		config.DayStartHour,
		config.DarkMode,
		nullableString(config.Colors.Completed),
		nullableString(config.Colors.Incomplete),
		nullableString(config.Colors.Background),
		config.Uid,
	)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r RepositoryImpl) Delete(ctx context.Context, uid string) (bool, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM widget_config WHERE uid = ?", uid)
	if err != nil {
		err := fmt.Errorf("could not execute query: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

const selectColumns = `SELECT uid, name, theme, deck_id, deck_name, show_streak, layout_mode,
				days_to_show, day_start_hour, dark_mode, color_completed, color_incomplete, color_background`

func scanConfig(scan func(dest ...any) error) (Config, error) {
	var config Config
	var deckID sql.NullInt64
	var deckName, colorCompleted, colorIncomplete, colorBackground sql.NullString
	if err := scan(
		&config.Uid,
		&config.Name,
		&config.Theme,
		&deckID,
		&deckName,
		&config.ShowStreak,
		&config.LayoutMode,
		&config.DaysToShow,
		&config.DayStartHour,
		&config.DarkMode,
		&colorCompleted,
		&colorIncomplete,
		&colorBackground,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{}, err
		}
		return Config{}, fmt.Errorf("could not scan widget config: %w", err)
	}
	if deckID.Valid {
		config.DeckID = &deckID.Int64
	}
	config.DeckName = deckName.String
	config.Colors = CustomColors{
		Completed:  colorCompleted.String,
		Incomplete: colorIncomplete.String,
		Background: colorBackground.String,
	}
	return config, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
