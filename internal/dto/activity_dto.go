package dto

import (
	"time"

	"github.com/noah-isme/campus-go-api/internal/models"
)

// ActivityLogResponse is the serialized audit entry for the admin feed.
type ActivityLogResponse struct {
	ID         uint                   `json:"id"`
	ActorID    uint                   `json:"actor_id"`
	ActorRole  string                 `json:"actor_role"`
	Action     string                 `json:"action"`
	EntityType string                 `json:"entity_type"`
	EntityID   *uint                  `json:"entity_id"`
	Metadata   map[string]interface{} `json:"metadata"`
	CreatedAt  time.Time              `json:"created_at"`
}

// ActivityFeedResponse is a page of audit entries.
type ActivityFeedResponse struct {
	Entries []ActivityLogResponse `json:"entries"`
	Total   int64                 `json:"total"`
}

// NewActivityLogResponse converts a model into a DTO.
func NewActivityLogResponse(model models.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  string(model.ActorRole),
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   model.Metadata,
		CreatedAt:  model.CreatedAt,
	}
}

// NewActivityFeedResponse converts a page of models into a DTO.
func NewActivityFeedResponse(entries []models.ActivityLog, total int64) ActivityFeedResponse {
	responses := make([]ActivityLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, NewActivityLogResponse(entry))
	}
	return ActivityFeedResponse{Entries: responses, Total: total}
}
