package dto

import "time"

// RecordActivityRequest body para POST /api/activity-logs.
type RecordActivityRequest struct {
	Action      string `json:"action" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"omitempty,max=2000"`
	EntityType  string `json:"entity_type,omitempty" validate:"omitempty,max=50"`
	EntityID    string `json:"entity_id,omitempty" validate:"omitempty,max=100"`
}

// ActivityLogResponse entrada de la bitácora general.
type ActivityLogResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	UserName    string    `json:"user_name,omitempty"`
	UserEmail   string    `json:"user_email,omitempty"`
	Action      string    `json:"action"`
	Description string    `json:"description,omitempty"`
	EntityType  string    `json:"entity_type,omitempty"`
	EntityID    string    `json:"entity_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
