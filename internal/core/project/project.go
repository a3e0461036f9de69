// Copyright (c) 2026 Terralens. All rights reserved.
// Author: platform@terralens.earth

/*
Package project manages natural-asset analysis projects.

A project is the unit of work a customer organization runs on the platform:
an area of land analyzed under one theme (forest, wetland, ...) moving
through a fixed status pipeline from draft to completed. Every status change
is recorded in an append-only status log.
*/
package project

import "time"

// # Project Enums

// Status describes where a project sits in the analysis pipeline.
type Status string

const (
	StatusDraft          Status = "draft"
	StatusDataCollection Status = "data_collection"
	StatusAnalysis       Status = "analysis"
	StatusMonitoring     Status = "monitoring"
	StatusCompleted      Status = "completed"
	StatusArchived       Status = "archived"
)

// statusTransitions maps each status to the statuses it may move to.
// Archiving is allowed from anywhere; an archived project is terminal.
var statusTransitions = map[Status][]Status{
	StatusDraft:          {StatusDataCollection, StatusArchived},
	StatusDataCollection: {StatusAnalysis, StatusArchived},
	StatusAnalysis:       {StatusMonitoring, StatusArchived},
	StatusMonitoring:     {StatusCompleted, StatusArchived},
	StatusCompleted:      {StatusArchived},
	StatusArchived:       {},
}

// Valid reports whether the status is a known pipeline stage.
func (status Status) Valid() bool {
	_, ok := statusTransitions[status]
	return ok
}

// CanTransitionTo reports whether the pipeline allows moving to next.
func (status Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Theme identifies the ecosystem type a project analyzes.
type Theme string

const (
	ThemeForest       Theme = "forest"
	ThemeWetland      Theme = "wetland"
	ThemeGrassland    Theme = "grassland"
	ThemePeatland     Theme = "peatland"
	ThemeAgroforestry Theme = "agroforestry"
)

// ThemeDescriptor is the display metadata served to the dashboard's project
// creation form.
type ThemeDescriptor struct {
	Value       Theme  `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Themes returns the fixed descriptor list for all supported themes.
func Themes() []ThemeDescriptor {
	return []ThemeDescriptor{
		{ThemeForest, "Forest", "Carbon stock and canopy analysis for forested areas."},
		{ThemeWetland, "Wetland", "Hydrology and biodiversity assessment of wetland habitats."},
		{ThemeGrassland, "Grassland", "Soil carbon and grazing impact analysis for grasslands."},
		{ThemePeatland, "Peatland", "Peat depth and rewetting potential assessment."},
		{ThemeAgroforestry, "Agroforestry", "Tree-crop integration and yield impact analysis."},
	}
}

// ValidTheme reports whether the value names a supported theme.
func ValidTheme(value Theme) bool {
	for _, descriptor := range Themes() {
		if descriptor.Value == value {
			return true
		}
	}
	return false
}

// # Core Entities

// Project represents a natural-asset analysis project owned by an organization.
type Project struct {
	ID             string     `json:"id"` // UUIDv7
	OrganizationID string     `json:"organization_id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Theme          Theme      `json:"theme"`
	Status         Status     `json:"status"`
	Description    *string    `json:"description,omitempty"`
	AreaHectares   *float64   `json:"area_hectares,omitempty"`
	Country        *string    `json:"country,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"-"`
}

// StatusLogEntry records one status change of a project.
type StatusLogEntry struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	FromStatus *Status   `json:"from_status,omitempty"` // nil for the creation entry
	ToStatus   Status    `json:"to_status"`
	ChangedBy  string    `json:"changed_by"`
	Note       *string   `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// # Search & Filtering

// Filter holds parameters for listing projects.
type Filter struct {
	OrganizationID string
	Theme          Theme
	Status         Status
	Query          string
}

// # Field Identifiers

const (
	FieldName           = "name"
	FieldTheme          = "theme"
	FieldStatus         = "status"
	FieldDescription    = "description"
	FieldAreaHectares   = "area_hectares"
	FieldCountry        = "country"
	FieldOrganizationID = "organization_id"
	FieldNote           = "note"
)
