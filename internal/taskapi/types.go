// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package taskapi

import "time"

// DateLayout is the date filter format accepted by the task service.
const DateLayout = "2006-01-02"

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// Task is one scheduled task as returned by GET /tasks.
type Task struct {
	ID              int       `json:"id"`
	Date            time.Time `json:"date"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Priority        int       `json:"priority"`
	EstimateMinutes int       `json:"estimate_minutes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PriorityTier groups priorities into display tiers.
type PriorityTier int

const (
	TierUrgent PriorityTier = iota // P0
	TierHigh                       // P1
	TierNormal                     // P2
	TierLow                        // P3 and anything outside 0-2
)

// Tier returns the display tier of the task's priority.
func (t Task) Tier() PriorityTier {
	switch t.Priority {
	case 0:
		return TierUrgent
	case 1:
		return TierHigh
	case 2:
		return TierNormal
	default:
		return TierLow
	}
}

// TotalEstimate sums the estimates of tasks.
func TotalEstimate(tasks []Task) time.Duration {
	var total time.Duration
	for _, t := range tasks {
		total += time.Duration(t.EstimateMinutes) * time.Minute
	}
	return total
}
