package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/internal/dateutil"
	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/mealstatus"
	"github.com/ifcampus/meal-gateway/internal/models"
	"github.com/ifcampus/meal-gateway/internal/navigator"
	"github.com/ifcampus/meal-gateway/pkg/config"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

type menuRepository interface {
	MenusByDate(ctx context.Context, token, date string) ([]models.MenuEntry, error)
	AllowedMeals(ctx context.Context, token string) ([]models.Meal, error)
}

// The day screen always presents the four standard slots, even when the
// upstream published nothing for them.
var defaultSlots = []struct {
	mealID      int
	description string
}{
	{1, "Lanche da manhã"},
	{2, "Almoço"},
	{3, "Lanche da tarde"},
	{4, "Lanche da noite"},
}

// MenuService composes the day-menu screen: browse-window enforcement, slot
// backfill, status classification and caching.
type MenuService struct {
	repo   menuRepository
	cache  *CacheService
	config config.MenusConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewMenuService constructs a MenuService.
func NewMenuService(repo menuRepository, cache *CacheService, cfg config.MenusConfig, logger *zap.Logger) *MenuService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BrowseWindowDays <= 0 {
		cfg.BrowseWindowDays = 7
	}
	return &MenuService{repo: repo, cache: cache, config: cfg, logger: logger, now: time.Now}
}

// MenusByDay returns the classified menus for the requested ISO date (today
// when empty). The boolean reports whether the response came from cache.
func (s *MenuService) MenusByDay(ctx context.Context, session *models.SessionClaims, date string) (*dto.DayMenusResponse, bool, error) {
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return nil, false, appErrors.Clone(appErrors.ErrValidation, "date must be yyyy-MM-dd")
		}
	}

	nav := navigator.At(date)
	date = nav.Current()

	drift := nav.DriftDays()
	window := float64(s.config.BrowseWindowDays)
	if math.Abs(drift) > window {
		return nil, false, appErrors.Clone(appErrors.ErrOutsideBrowseWindow,
			fmt.Sprintf("menus can only be browsed up to %d days around today", s.config.BrowseWindowDays))
	}

	key := fmt.Sprintf("menus:%d:%s", session.StudentID, date)
	var cached dto.DayMenusResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, true, nil
	}

	entries, err := s.repo.MenusByDate(ctx, session.UpstreamToken, date)
	if err != nil {
		return nil, false, err
	}

	resp := &dto.DayMenusResponse{
		Date:           date,
		DateText:       nav.DisplayText(),
		DriftDays:      drift,
		HasPreviousDay: drift-1 >= -window,
		HasNextDay:     drift+1 <= window,
		HasMenus:       len(entries) > 0,
		Items:          s.composeItems(date, entries),
	}

	if err := s.cache.Set(ctx, key, resp, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache day menus", zap.String("key", key), zap.Error(err))
	}

	return resp, false, nil
}

// composeItems backfills the standard slots and classifies every entry.
// Entries for non-standard slots are appended after the defaults, classified
// the same way.
func (s *MenuService) composeItems(date string, entries []models.MenuEntry) []dto.MenuItem {
	now := s.now()
	items := make([]dto.MenuItem, 0, len(defaultSlots))
	seen := make(map[int]bool, len(entries))

	for _, slot := range defaultSlots {
		entry, found := findEntry(entries, slot.mealID)
		if !found {
			placeholder := &models.MenuDay{
				ID:          slot.mealID,
				Date:        date,
				Description: slot.description,
				MealID:      slot.mealID,
			}
			items = append(items, s.buildItem(models.MenuEntry{Menu: placeholder}, now))
			continue
		}
		seen[slot.mealID] = true
		items = append(items, s.buildItem(entry, now))
	}

	for _, entry := range entries {
		if entry.Menu == nil || seen[entry.Menu.MealID] || isDefaultSlot(entry.Menu.MealID) {
			continue
		}
		items = append(items, s.buildItem(entry, now))
	}

	return items
}

func (s *MenuService) buildItem(entry models.MenuEntry, now time.Time) dto.MenuItem {
	status := mealstatus.Classify(entry.Meal, entry.Menu, now)
	item := dto.MenuItem{
		Meal:   entry.Meal,
		Menu:   entry.Menu,
		Status: status,
		Action: mealstatus.ActionFor(status),
		Badge:  mealstatus.PresentationFor(status),
	}
	if entry.Meal != nil {
		item.TimeRange = fmt.Sprintf("%sh às %sh",
			dateutil.StripSeconds(entry.Meal.TimeStart),
			dateutil.StripSeconds(entry.Meal.TimeEnd))
	}
	return item
}

func findEntry(entries []models.MenuEntry, mealID int) (models.MenuEntry, bool) {
	for _, entry := range entries {
		if entry.Menu != nil && entry.Menu.MealID == mealID {
			return entry, true
		}
	}
	return models.MenuEntry{}, false
}

func isDefaultSlot(mealID int) bool {
	for _, slot := range defaultSlots {
		if slot.mealID == mealID {
			return true
		}
	}
	return false
}

// AllowedMeals lists the meals the student may reserve, cached per student.
func (s *MenuService) AllowedMeals(ctx context.Context, session *models.SessionClaims) ([]models.Meal, bool, error) {
	key := fmt.Sprintf("allowed:%d", session.StudentID)
	var cached []models.Meal
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, true, nil
	}

	meals, err := s.repo.AllowedMeals(ctx, session.UpstreamToken)
	if err != nil {
		return nil, false, err
	}

	if err := s.cache.Set(ctx, key, meals, s.config.CacheTTL); err != nil {
		s.logger.Warn("failed to cache allowed meals", zap.String("key", key), zap.Error(err))
	}

	return meals, false, nil
}
