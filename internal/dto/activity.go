package dto

import "time"

type ActivityResponse struct {
	ID                    string    `json:"id"`
	Action                string    `json:"action"`
	ActionDisplayName     string    `json:"actionDisplayName"`
	EntityType            string    `json:"entityType"`
	EntityTypeDisplayName string    `json:"entityTypeDisplayName"`
	EntityID              string    `json:"entityId"`
	EntityTitle           string    `json:"entityTitle"`
	Description           string    `json:"description"`
	CreatedAt             time.Time `json:"createdAt"`
}

type DashboardResponse struct {
	TotalTasks       int                `json:"totalTasks"`
	CompletedTasks   int                `json:"completedTasks"`
	PendingTasks     int                `json:"pendingTasks"`
	TotalNotes       int                `json:"totalNotes"`
	CompletionRate   float64            `json:"completionRate"`
	NotesPerTask     int                `json:"notesPerTask"`
	RecentActivities []ActivityResponse `json:"recentActivities"`
}
