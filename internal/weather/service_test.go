package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errBoom   = errors.New("boom")
	errNoView = errors.New("no view")
)

type fakeProvider struct {
	name    string
	payload Payload
	err     error
	calls   int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchForecast(_ context.Context, _ Location, _ int) (Payload, error) {
	f.calls++
	return f.payload, f.err
}

type fakeStore struct {
	views []ForecastView
}

func (f *fakeStore) SaveView(_ Location, v ForecastView) { f.views = append(f.views, v) }

func (f *fakeStore) GetLatest(Location) (ForecastView, error) {
	if len(f.views) == 0 {
		return ForecastView{}, errNoView
	}
	return f.views[len(f.views)-1], nil
}

func (f *fakeStore) GetRange(_ Location, from, to time.Time) ([]ForecastView, error) {
	var out []ForecastView
	for _, v := range f.views {
		if !v.FetchedAt.Before(from) && !v.FetchedAt.After(to) {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestService(st Store, provs ...Provider) *Service {
	loc := Location{Name: "Braunschweig, DE", City: "Braunschweig", Country: "DE"}
	svc := NewService(st, provs, DefaultPipeline(), loc, 5, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return testDay.Add(10 * time.Hour) }
	svc.newID = func() string { return "view-1" }
	return svc
}

func TestServiceRefreshFallsBack(t *testing.T) {
	st := &fakeStore{}
	failing := &fakeProvider{name: "openmeteo", err: errBoom}
	backup := &fakeProvider{name: "weatherapi", payload: fiveDayPayload()}
	svc := newTestService(st, failing, backup)

	view, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "weatherapi", view.Provider)
	assert.Equal(t, "view-1", view.ID)
	assert.Equal(t, testDay, view.ReferenceDate)
	assert.Equal(t, testDay.Add(10*time.Hour), view.FetchedAt)
	assert.Len(t, view.Groups, 5)
	assert.Equal(t, 1, failing.calls)
	require.Len(t, st.views, 1)

	latest, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, view, latest)
}

func TestServiceRefreshKeepsLastGoodView(t *testing.T) {
	st := &fakeStore{}
	prov := &fakeProvider{name: "openmeteo", payload: fiveDayPayload()}
	svc := newTestService(st, prov)

	good, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	prov.err = errBoom
	_, err = svc.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "openmeteo")

	latest, err := svc.Latest()
	require.NoError(t, err)
	assert.Equal(t, good, latest)
}

func TestServiceRefreshMalformedPayload(t *testing.T) {
	bad := fiveDayPayload()
	bad.Hourly.CloudCover = bad.Hourly.CloudCover[:3]
	svc := newTestService(&fakeStore{}, &fakeProvider{name: "openmeteo", payload: bad})

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrMalformedInput)
}

func TestServiceRefreshWithoutProviders(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestServiceReferenceDateFollowsOffset(t *testing.T) {
	svc := newTestService(&fakeStore{})
	svc.now = func() time.Time { return testDay.Add(23*time.Hour + 30*time.Minute) }

	payload := fiveDayPayload()
	payload.Timezone = ""
	payload.UTCOffsetSeconds = 3600

	view, err := svc.Build(payload, "openmeteo")
	require.NoError(t, err)

	// 23:30 UTC is already the next day at UTC+1.
	assert.Equal(t, testDay.AddDate(0, 0, 1), view.ReferenceDate)
	assert.Equal(t, ModeSummary, view.Groups[0].Mode)
	assert.Equal(t, ModeDetailed, view.Groups[1].Mode)
}

func TestServiceReferenceDateFollowsZoneName(t *testing.T) {
	svc := newTestService(&fakeStore{})
	svc.now = func() time.Time { return testDay.Add(23*time.Hour + 30*time.Minute) }

	payload := fiveDayPayload()
	payload.Timezone = "Europe/Berlin"
	payload.UTCOffsetSeconds = 0

	view, err := svc.Build(payload, "weatherapi")
	require.NoError(t, err)
	assert.Equal(t, testDay.AddDate(0, 0, 1), view.ReferenceDate)
}

func TestZoneForFallsBackToOffset(t *testing.T) {
	loc := zoneFor("Nowhere/Unknown", 3600)
	_, offset := testDay.In(loc).Zone()
	assert.Equal(t, 3600, offset)
}

func TestServiceBuildAt(t *testing.T) {
	svc := newTestService(&fakeStore{})

	view, err := svc.BuildAt(fiveDayPayload(), "file", testDay.AddDate(0, 0, 3))
	require.NoError(t, err)

	assert.Equal(t, testDay.AddDate(0, 0, 3), view.ReferenceDate)
	assert.Equal(t, ModeDetailed, view.Groups[3].Mode)
	assert.Equal(t, ModeDetailed, view.Groups[4].Mode)
	assert.Equal(t, ModeSummary, view.Groups[2].Mode)
}

func TestServiceCurrent(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProvider{name: "openmeteo", payload: fiveDayPayload()})

	_, err := svc.Current()
	assert.ErrorIs(t, err, errNoView)

	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)

	cur, err := svc.Current()
	require.NoError(t, err)
	assert.Equal(t, 12, cur.Record.Hour)
	assert.Equal(t, "W", cur.Direction)

	svc.now = func() time.Time { return testDay.Add(22 * time.Hour) }
	_, err = svc.Current()
	assert.ErrorIs(t, err, ErrNoCurrentHour)
}

func TestServiceHistory(t *testing.T) {
	svc := newTestService(&fakeStore{}, &fakeProvider{name: "openmeteo", payload: fiveDayPayload()})

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	views, err := svc.History(testDay, testDay.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, views, 1)
}
