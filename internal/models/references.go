package models

import "dashboard.covid19.org/internal/whodata"

// ReferencesModel References model for related data
type ReferencesModel struct {
	Regions []whodata.Region `json:"regions"`
	Metrics []MetricModel    `json:"metrics"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Regions: []whodata.Region{},
		Metrics: []MetricModel{},
	}
}

// NewRegionReferences references the given regions only.
func NewRegionReferences(regions ...whodata.Region) ReferencesModel {
	refs := NewEmptyReferences()
	refs.Regions = append(refs.Regions, regions...)
	return refs
}
