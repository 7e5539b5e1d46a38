package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ifcampus/meal-gateway/internal/dateutil"
	"github.com/ifcampus/meal-gateway/internal/dto"
	"github.com/ifcampus/meal-gateway/internal/mealstatus"
	"github.com/ifcampus/meal-gateway/internal/models"
	"github.com/ifcampus/meal-gateway/pkg/config"
	appErrors "github.com/ifcampus/meal-gateway/pkg/errors"
)

type fakeMenuRepo struct {
	menus   func(ctx context.Context, token, date string) ([]models.MenuEntry, error)
	allowed func(ctx context.Context, token string) ([]models.Meal, error)
	calls   int
}

func (f *fakeMenuRepo) MenusByDate(ctx context.Context, token, date string) ([]models.MenuEntry, error) {
	f.calls++
	return f.menus(ctx, token, date)
}

func (f *fakeMenuRepo) AllowedMeals(ctx context.Context, token string) ([]models.Meal, error) {
	f.calls++
	return f.allowed(ctx, token)
}

func menusConfig() config.MenusConfig {
	return config.MenusConfig{BrowseWindowDays: 7, CacheTTL: time.Minute}
}

func testSession() *models.SessionClaims {
	return &models.SessionClaims{StudentID: 7, UpstreamToken: "upstream-token"}
}

func lunchEntry(date string) models.MenuEntry {
	return models.MenuEntry{
		Meal: &models.Meal{
			ID:                      2,
			Description:             "Almoço",
			TimeStart:               "11:30:00",
			TimeEnd:                 "13:00:00",
			QtdTimeReservationStart: 24,
			QtdTimeReservationEnd:   1,
		},
		Menu: &models.MenuDay{
			ID:          100,
			Date:        date,
			Description: "Arroz, feijão e frango",
			Permission:  1,
			MealID:      2,
		},
	}
}

func TestMenuServiceBackfillsDefaultSlots(t *testing.T) {
	date := dateutil.ShiftDay(dateutil.Today(), 3)
	repo := &fakeMenuRepo{menus: func(_ context.Context, token, gotDate string) ([]models.MenuEntry, error) {
		assert.Equal(t, "upstream-token", token)
		assert.Equal(t, date, gotDate)
		return []models.MenuEntry{lunchEntry(date)}, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())

	resp, cached, err := svc.MenusByDay(context.Background(), testSession(), date)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.True(t, resp.HasMenus)
	require.Len(t, resp.Items, 4)

	// The published lunch keeps its upstream data.
	lunch := resp.Items[1]
	require.NotNil(t, lunch.Meal)
	assert.Equal(t, "Arroz, feijão e frango", lunch.Menu.Description)
	assert.Equal(t, "11:30h às 13:00h", lunch.TimeRange)

	// The three missing slots come back as unavailable placeholders.
	for _, i := range []int{0, 2, 3} {
		item := resp.Items[i]
		assert.Nil(t, item.Meal)
		assert.Equal(t, mealstatus.StatusUnavailable, item.Status)
		assert.Equal(t, mealstatus.ActionNone, item.Action)
		assert.Equal(t, date, item.Menu.Date)
	}
	assert.Equal(t, "Lanche da manhã", resp.Items[0].Menu.Description)
	assert.Equal(t, "Lanche da tarde", resp.Items[2].Menu.Description)
	assert.Equal(t, "Lanche da noite", resp.Items[3].Menu.Description)
}

func TestMenuServiceEmptyDayStillShowsSlots(t *testing.T) {
	repo := &fakeMenuRepo{menus: func(_ context.Context, _, _ string) ([]models.MenuEntry, error) {
		return nil, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())

	resp, _, err := svc.MenusByDay(context.Background(), testSession(), "")
	require.NoError(t, err)
	assert.False(t, resp.HasMenus)
	assert.Len(t, resp.Items, 4)
	assert.Equal(t, dateutil.Today(), resp.Date)
	assert.Equal(t, "hoje", resp.DateText)
	assert.Zero(t, resp.DriftDays)
}

func TestMenuServiceBrowseWindow(t *testing.T) {
	repo := &fakeMenuRepo{menus: func(_ context.Context, _, _ string) ([]models.MenuEntry, error) {
		return nil, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())
	ctx := context.Background()

	_, _, err := svc.MenusByDay(ctx, testSession(), dateutil.ShiftDay(dateutil.Today(), 8))
	assert.Equal(t, appErrors.ErrOutsideBrowseWindow.Code, appErrors.FromError(err).Code)

	_, _, err = svc.MenusByDay(ctx, testSession(), dateutil.ShiftDay(dateutil.Today(), -8))
	assert.Equal(t, appErrors.ErrOutsideBrowseWindow.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.calls)

	// The edges of the window are still browsable, but stepping further is not.
	resp, _, err := svc.MenusByDay(ctx, testSession(), dateutil.ShiftDay(dateutil.Today(), 7))
	require.NoError(t, err)
	assert.True(t, resp.HasPreviousDay)
	assert.False(t, resp.HasNextDay)

	resp, _, err = svc.MenusByDay(ctx, testSession(), dateutil.ShiftDay(dateutil.Today(), -7))
	require.NoError(t, err)
	assert.False(t, resp.HasPreviousDay)
	assert.True(t, resp.HasNextDay)
}

func TestMenuServiceRejectsBadDate(t *testing.T) {
	repo := &fakeMenuRepo{menus: func(_ context.Context, _, _ string) ([]models.MenuEntry, error) {
		return nil, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())

	_, _, err := svc.MenusByDay(context.Background(), testSession(), "01/09/2026")
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.calls)
}

func TestMenuServiceServesFromCache(t *testing.T) {
	date := dateutil.Today()
	cacheRepo := newStubCacheRepo()
	cacheRepo.seed(t, fmt.Sprintf("menus:7:%s", date), dto.DayMenusResponse{Date: date, HasMenus: true})

	repo := &fakeMenuRepo{menus: func(_ context.Context, _, _ string) ([]models.MenuEntry, error) {
		t.Fatal("upstream should not be called on a cache hit")
		return nil, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(cacheRepo), menusConfig(), zap.NewNop())

	resp, cached, err := svc.MenusByDay(context.Background(), testSession(), date)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, date, resp.Date)
}

func TestMenuServicePropagatesUpstreamFailure(t *testing.T) {
	repo := &fakeMenuRepo{menus: func(_ context.Context, _, _ string) ([]models.MenuEntry, error) {
		return nil, appErrors.Clone(appErrors.ErrUpstreamUnavailable, "")
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())

	_, _, err := svc.MenusByDay(context.Background(), testSession(), "")
	assert.Equal(t, appErrors.ErrUpstreamUnavailable.Code, appErrors.FromError(err).Code)
}

func TestMenuServiceAllowedMealsCached(t *testing.T) {
	meals := []models.Meal{{ID: 2, Description: "Almoço"}}
	repo := &fakeMenuRepo{allowed: func(_ context.Context, token string) ([]models.Meal, error) {
		assert.Equal(t, "upstream-token", token)
		return meals, nil
	}}
	svc := NewMenuService(repo, newTestCacheService(newStubCacheRepo()), menusConfig(), zap.NewNop())
	ctx := context.Background()

	got, cached, err := svc.AllowedMeals(ctx, testSession())
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, meals, got)

	got, cached, err = svc.AllowedMeals(ctx, testSession())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, meals, got)
	assert.Equal(t, 1, repo.calls)
}
