package babycare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateFeeding(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)
	ctx := context.Background()

	start, end := "08:00", "08:25"
	method := "Right Breast"
	updated, err := f.svc.UpdateFeeding(ctx, 2, &UpdateFeedingRequest{Start: &start, End: &end, Method: &method})
	require.NoError(t, err)
	assert.Equal(t, "00:25:00", updated.Duration)
	assert.Equal(t, FeedingMethodRightBreast, updated.Method)
	require.NotNil(t, updated.Amount, "untouched amount is kept")

	none := "none"
	cleared, err := f.svc.UpdateFeeding(ctx, 2, &UpdateFeedingRequest{Amount: &none})
	require.NoError(t, err)
	assert.Nil(t, cleared.Amount)

	_, err = f.svc.UpdateFeeding(ctx, 2, &UpdateFeedingRequest{})
	assert.ErrorIs(t, err, ErrNoUpdates)

	late, early := "09:00", "08:00"
	_, err = f.svc.UpdateFeeding(ctx, 2, &UpdateFeedingRequest{Start: &late, End: &early})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "end")

	_, err = f.svc.UpdateFeeding(ctx, 999, &UpdateFeedingRequest{Notes: &none})
	requireKind(t, err, KindNotFound)
}

func TestUpdateSleep(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)
	ctx := context.Background()

	end := "05:30"
	nap := false
	updated, err := f.svc.UpdateSleep(ctx, 4, &UpdateSleepRequest{End: &end, Nap: &nap})
	require.NoError(t, err)
	require.NotNil(t, updated.Nap)
	assert.False(t, *updated.Nap)
	assert.Equal(t, "02:00:00", updated.Duration, "duration is only recomputed when both ends are given")

	_, err = f.svc.UpdateSleep(ctx, 4, &UpdateSleepRequest{})
	assert.ErrorIs(t, err, ErrNoUpdates)
}

func TestUpdateFeeding_NegativeAmount(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)

	amount := "-1"
	_, err := f.svc.UpdateFeeding(context.Background(), 2, &UpdateFeedingRequest{Amount: &amount})
	e := requireKind(t, err, KindValidation)
	assert.Contains(t, e.Fields, "amount")
	assert.Equal(t, 0, f.driver.CallCount("UpdateFeeding"))
}

func TestUpdateDiaper(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)
	ctx := context.Background()

	contents := "dirty"
	color := "Green"
	updated, err := f.svc.UpdateDiaper(ctx, 6, &UpdateDiaperRequest{Contents: &contents, Color: &color})
	require.NoError(t, err)
	assert.False(t, updated.Wet)
	assert.True(t, updated.Solid)
	assert.Equal(t, "green", updated.Color)

	no := false
	calls := f.driver.CallCount("UpdateDiaper")
	_, err = f.svc.UpdateDiaper(ctx, 6, &UpdateDiaperRequest{Wet: &no, Solid: &no})
	requireKind(t, err, KindValidation)
	assert.Equal(t, calls, f.driver.CallCount("UpdateDiaper"))

	empty := ""
	cleared, err := f.svc.UpdateDiaper(ctx, 6, &UpdateDiaperRequest{Amount: &empty})
	require.NoError(t, err)
	assert.Nil(t, cleared.Amount)
}

func TestUpdateDiaper_LoneClearedFlag(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)
	ctx := context.Background()
	no, yes := false, true

	for name, req := range map[string]*UpdateDiaperRequest{
		"wet":   {Wet: &no},
		"solid": {Solid: &no},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.UpdateDiaper(ctx, 6, req)
			requireKind(t, err, KindValidation)
			assert.Equal(t, 0, f.driver.CallCount("UpdateDiaper"))
		})
	}

	updated, err := f.svc.UpdateDiaper(ctx, 6, &UpdateDiaperRequest{Solid: &yes})
	require.NoError(t, err)
	assert.True(t, updated.Wet)
	assert.True(t, updated.Solid)
}

func TestUpdateDiaper_ColorFollowsSolid(t *testing.T) {
	f := newFixture(t)
	seedRecords(f)
	ctx := context.Background()

	contents := "wet"
	color := "green"
	updated, err := f.svc.UpdateDiaper(ctx, 7, &UpdateDiaperRequest{Contents: &contents, Color: &color})
	require.NoError(t, err)
	assert.False(t, updated.Solid)
	assert.Empty(t, updated.Color)

	both := "both"
	brown := "brown"
	updated, err = f.svc.UpdateDiaper(ctx, 7, &UpdateDiaperRequest{Contents: &both, Color: &brown})
	require.NoError(t, err)
	assert.True(t, updated.Solid)
	assert.Equal(t, "brown", updated.Color)

	black := "black"
	updated, err = f.svc.UpdateDiaper(ctx, 7, &UpdateDiaperRequest{Color: &black})
	require.NoError(t, err)
	assert.Equal(t, "black", updated.Color)
}
