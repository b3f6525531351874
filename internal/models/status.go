package models

import (
	"time"

	"dashboard.covid19.org/internal/memo"
	"dashboard.covid19.org/internal/whodata"
)

// StatusModel tells clients how fresh the served data is.
type StatusModel struct {
	DatasetVersion   uint64     `json:"datasetVersion"`
	LoadedAt         int64      `json:"loadedAt"`
	ReadableLoadedAt string     `json:"readableLoadedAt"`
	AgeSeconds       int64      `json:"ageSeconds"`
	Rows             RowCounts  `json:"rows"`
	Cache            memo.Stats `json:"cache"`
}

type RowCounts struct {
	Cases        int `json:"cases"`
	Summary      int `json:"summary"`
	Vaccinations int `json:"vaccinations"`
}

// NewStatusModel describes data as seen at now. A dataset that was never
// loaded reports zero times.
func NewStatusModel(data *whodata.Dataset, cache memo.Stats, now time.Time) StatusModel {
	status := StatusModel{Cache: cache}
	if data == nil {
		return status
	}
	status.DatasetVersion = data.Version
	status.Rows = RowCounts{
		Cases:        len(data.Cases),
		Summary:      len(data.Latest),
		Vaccinations: len(data.Vaccinations),
	}
	if !data.LoadedAt.IsZero() {
		status.LoadedAt = data.LoadedAt.UnixMilli()
		status.ReadableLoadedAt = data.LoadedAt.UTC().Format(time.RFC3339)
		if age := now.Sub(data.LoadedAt); age > 0 {
			status.AgeSeconds = int64(age / time.Second)
		}
	}
	return status
}
