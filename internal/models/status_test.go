package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.covid19.org/internal/memo"
	"dashboard.covid19.org/internal/whodata"
)

func TestNewStatusModel(t *testing.T) {
	loadedAt := time.Date(2024, time.January, 15, 8, 0, 0, 0, time.UTC)
	data := &whodata.Dataset{
		Cases:        make([]whodata.CaseRecord, 15),
		Latest:       make([]whodata.LatestSummaryRecord, 3),
		Vaccinations: make([]whodata.VaccinationRecord, 4),
		Version:      3,
		LoadedAt:     loadedAt,
	}
	stats := memo.Stats{Hits: 5, Misses: 2, Size: 2}

	status := NewStatusModel(data, stats, loadedAt.Add(90*time.Second))

	assert.Equal(t, uint64(3), status.DatasetVersion)
	assert.Equal(t, loadedAt.UnixMilli(), status.LoadedAt)
	assert.Equal(t, "2024-01-15T08:00:00Z", status.ReadableLoadedAt)
	assert.Equal(t, int64(90), status.AgeSeconds)
	assert.Equal(t, RowCounts{Cases: 15, Summary: 3, Vaccinations: 4}, status.Rows)
	assert.Equal(t, stats, status.Cache)

	b, err := json.Marshal(status)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"rows":{"cases":15,"summary":3,"vaccinations":4}`)
	assert.Contains(t, string(b), `"cache":{"hits":5,"misses":2,"size":2}`)
}

func TestNewStatusModelWithoutLoad(t *testing.T) {
	status := NewStatusModel(nil, memo.Stats{}, time.Now())
	assert.Zero(t, status.DatasetVersion)
	assert.Zero(t, status.LoadedAt)
	assert.Empty(t, status.ReadableLoadedAt)

	status = NewStatusModel(&whodata.Dataset{Version: 1}, memo.Stats{}, time.Now())
	assert.Equal(t, uint64(1), status.DatasetVersion)
	assert.Zero(t, status.AgeSeconds, "no load time, no age")
}
