package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/yourname/timetracker/internal"
	"github.com/yourname/timetracker/internal/storage"
)

type testApp struct {
	logger internal.Logger
	store  *storage.FileStorage
}

func (a *testApp) Logger() internal.Logger                  { return a.logger }
func (a *testApp) EntryRepo() storage.EntryRepository       { return a.store }
func (a *testApp) SettingsRepo() storage.SettingsRepository { return a.store }

func newTestRouter(t *testing.T) (*gin.Engine, *testApp) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	logger := internal.NewZapLogger(zaptest.NewLogger(t).Sugar())
	defaults := internal.Settings{
		DailyGoal:       1000,
		WarnThreshold:   0.5,
		DefaultCategory: "work",
		Categories:      []internal.Category{{ID: "c1", Name: "Development"}},
		Schedule:        internal.WorkSchedule{Template: internal.TemplateFiveTwo, StartDay: 1},
	}
	store, err := storage.NewFileStorage(
		filepath.Join(dir, "entries.json"),
		filepath.Join(dir, "settings.json"),
		defaults, logger,
	)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	app := &testApp{logger: logger, store: store}

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.POST("/api/entries", PostEntry(app))
	r.GET("/api/entries", GetEntries(app))
	r.PUT("/api/entries/:id", PutEntry(app))
	r.DELETE("/api/entries/:id", DeleteEntry(app))
	r.GET("/api/stats/day", GetDayStats(app))
	r.GET("/api/stats/period", GetPeriodStats(app))
	r.GET("/api/stats/categories", GetCategoryStats(app))
	r.GET("/api/stats/calendar", GetCalendar(app))
	r.GET("/api/settings", GetSettings(app))
	r.PUT("/api/settings", PutSettings(app))
	return r, app
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestPostEntryNormalizes(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date":   "2024-03-05",
		"start":  "09:00",
		"end":    "17:30",
		"earned": 850,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var entry internal.TimeEntry
	decodeData(t, w, &entry)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, 8.5, entry.Duration)
	assert.Equal(t, "work", entry.Category)
}

func TestPostEntryValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date":   "05.03.2024",
		"earned": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date":  "2024-03-05",
		"start": "25:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutEntryUnknownID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/entries/nope", gin.H{
		"date":   "2024-03-05",
		"earned": 100,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEntryLifecycle(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date": "2024-03-05", "start": "09:00", "end": "12:00", "earned": 300,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var created internal.TimeEntry
	decodeData(t, w, &created)

	w = doJSON(t, r, http.MethodPut, "/api/entries/"+created.ID, gin.H{
		"date": "2024-03-05", "start": "09:00", "end": "13:00", "earned": 400,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated internal.TimeEntry
	decodeData(t, w, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 4.0, updated.Duration)

	w = doJSON(t, r, http.MethodDelete, "/api/entries/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/entries/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEntriesFilter(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, date := range []string{"2024-03-05", "2024-03-06", "2024-04-01"} {
		w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
			"date": date, "duration": 2, "earned": 200,
		})
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/entries?filter=custom&from=2024-03-01&to=2024-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []internal.TimeEntry
	decodeData(t, w, &entries)
	assert.Len(t, entries, 2)

	w = doJSON(t, r, http.MethodGet, "/api/entries", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &entries)
	assert.Len(t, entries, 3)
}

func TestGetDayStats(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date": "2024-03-05", "start": "09:00", "end": "13:00", "earned": 500,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stats/day?date=2024-03-05", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var metrics internal.DayMetrics
	decodeData(t, w, &metrics)
	assert.Equal(t, 500.0, metrics.TotalEarned)
	assert.Equal(t, internal.StatusWarning, metrics.Status.Status)

	w = doJSON(t, r, http.MethodGet, "/api/stats/day?date=not-a-date", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stats/day", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCategoryStats(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date": "2024-03-05", "duration": 2, "earned": 200, "category": "Development",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stats/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var breakdown []internal.CategoryStats
	decodeData(t, w, &breakdown)
	require.Len(t, breakdown, 1)
	assert.Equal(t, "c1", breakdown[0].Category)
	assert.Equal(t, 200.0, breakdown[0].Earned)
}

func TestGetCalendar(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/entries", gin.H{
		"date": "2024-03-05", "duration": 4, "earned": 400,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stats/calendar?month=2024-03&compare=2024-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var calendars []internal.MonthCalendar
	decodeData(t, w, &calendars)
	require.Len(t, calendars, 2)
	assert.Len(t, calendars[0].Cells, 31)
	assert.Len(t, calendars[1].Cells, 29)

	w = doJSON(t, r, http.MethodGet, "/api/stats/calendar?month=March", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/stats/calendar", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSettingsRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var st internal.Settings
	decodeData(t, w, &st)
	assert.Equal(t, 1000.0, st.DailyGoal)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{
		"daily_goal":       2000,
		"warn_threshold":   0.6,
		"default_category": "consulting",
		"schedule":         gin.H{"template": "2/2", "cycle_anchor": "2024-01-01"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &st)
	assert.Equal(t, 2000.0, st.DailyGoal)
	assert.Equal(t, internal.TemplateTwoTwo, st.Schedule.Template)
}

func TestPutSettingsValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPut, "/api/settings", gin.H{
		"daily_goal":       1000,
		"warn_threshold":   1.5,
		"default_category": "work",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{
		"daily_goal":       1000,
		"warn_threshold":   0.5,
		"default_category": "work",
		"schedule":         gin.H{"template": "4/3"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
