package widget

import (
	"context"
	"fmt"

	"github.com/ankigrid/ankigrid/internal/config"
	"github.com/ankigrid/ankigrid/pkg/grid"
	"github.com/ankigrid/ankigrid/pkg/theme"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	Create(ctx context.Context, cfg Config) (Config, error)
	GetAll(ctx context.Context) ([]Config, error)
	Get(ctx context.Context, uid string) (Config, error)
	Update(ctx context.Context, cfg Config) (bool, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	repo     Repository
	defaults config.Widget
}

func NewService(repo Repository, defaults config.Widget) *ServiceImpl {
	return &ServiceImpl{repo: repo, defaults: defaults}
}

func (s *ServiceImpl) Create(ctx context.Context, cfg Config) (Config, error) {
	cfg.Uid = uuid.NewString()
	s.applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	if err := s.repo.Store(ctx, cfg); err != nil {
		return Config{}, err
	}
	log.Infof("Created widget configuration %s (%s)", cfg.Uid, cfg.Name)
	return cfg, nil
}

func (s *ServiceImpl) GetAll(ctx context.Context) ([]Config, error) {
	return s.repo.GetAll(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Config, error) {
	return s.repo.Get(ctx, uid)
}

func (s *ServiceImpl) Update(ctx context.Context, cfg Config) (bool, error) {
	s.applyDefaults(&cfg)
	if err := validate(cfg); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, cfg)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	return s.repo.Delete(ctx, uid)
}

func (s *ServiceImpl) applyDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = theme.ThemeDynamic
	}
	if cfg.LayoutMode == "" {
		cfg.LayoutMode = string(grid.ModeCalendar)
	}
	if cfg.DaysToShow == 0 {
		cfg.DaysToShow = s.defaults.DaysToShow
	}

	// The window is clamped, not rejected: widget hosts request arbitrary
	// sizes and still expect an image.
	if cfg.DaysToShow < grid.MinDays {
		cfg.DaysToShow = grid.MinDays
	}
	if cfg.DaysToShow > grid.MaxDays {
		cfg.DaysToShow = grid.MaxDays
	}
}

func validate(cfg Config) error {
	if cfg.DayStartHour < 0 || cfg.DayStartHour > 23 {
		return fmt.Errorf("dayStartHour must be between 0 and 23, got %d", cfg.DayStartHour)
	}
	if _, err := grid.ParseMode(cfg.LayoutMode); err != nil {
		return err
	}
	for _, hex := range []string{cfg.Colors.Completed, cfg.Colors.Incomplete, cfg.Colors.Background} {
		if hex == "" {
			continue
		}
		if _, err := theme.ParseHex(hex); err != nil {
			return fmt.Errorf("invalid custom color %q: %w", hex, err)
		}
	}
	return nil
}
