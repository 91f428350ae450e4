package service

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// Audited entity types.
const (
	EntityCourse     = "course"
	EntityAssignment = "assignment"
	EntityEnrollment = "enrollment"
	EntitySubmission = "submission"
)

// ActivityService records and lists the audit trail of API mutations.
type ActivityService interface {
	Record(ctx context.Context, actor authz.Principal, action, entityType string, entityID *uint, metadata map[string]interface{})
	Feed(ctx context.Context, filter repository.ActivityLogFilter) (dto.ActivityFeedResponse, error)
}

type activityService struct {
	repo   repository.ActivityLogRepository
	logger zerolog.Logger
}

// NewActivityService constructs the audit trail service.
func NewActivityService(repo repository.ActivityLogRepository, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:   repo,
		logger: logger.With().Str("component", "activity_service").Logger(),
	}
}

// Record persists one audit entry. Failures are logged and swallowed: the
// audit trail must never fail the mutation it describes.
func (s *activityService) Record(ctx context.Context, actor authz.Principal, action, entityType string, entityID *uint, metadata map[string]interface{}) {
	entry := models.ActivityLog{
		ActorID:    actor.ID,
		ActorRole:  actor.Role,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   datatypes.JSONMap(metadata),
	}

	if err := s.repo.Create(ctx, &entry); err != nil {
		s.logger.Warn().Err(err).
			Str("action", action).
			Str("entity_type", entityType).
			Msg("failed to record activity")
	}
}

func (s *activityService) Feed(ctx context.Context, filter repository.ActivityLogFilter) (dto.ActivityFeedResponse, error) {
	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ActivityFeedResponse{}, err
	}
	return dto.NewActivityFeedResponse(entries, total), nil
}
