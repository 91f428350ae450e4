package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/noah-isme/campus-go-api/internal/apierror"
	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
	"github.com/noah-isme/campus-go-api/internal/repository"
)

// DashboardService produces role-specific aggregate stats. Results are
// cached per principal in redis for a short TTL; the admin counts come from
// a transactional read snapshot so the three numbers agree with each other.
type DashboardService interface {
	GetStats(ctx context.Context, p authz.Principal) (dto.DashboardResponse, error)
}

type dashboardService struct {
	stats    repository.StatsRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(stats repository.StatsRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		stats:    stats,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "dashboard_service").Logger(),
		now:      time.Now,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, p authz.Principal) (dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:%s:%d", p.Role, p.ID)
	tracer := otel.Tracer("github.com/noah-isme/campus-go-api/internal/service/dashboard")
	ctx, span := tracer.Start(ctx, "dashboard.aggregate")
	span.SetAttributes(
		attribute.String("dashboard.role", string(p.Role)),
		attribute.String("dashboard.cache_key", cacheKey),
	)
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("dashboard.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
			span.RecordError(err)
		}
	}

	response := dto.DashboardResponse{
		Role:        string(p.Role),
		GeneratedAt: s.now().UTC(),
	}

	switch p.Role {
	case models.RoleAdmin:
		counts, err := s.stats.AdminCounts(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "admin_counts_failed")
			return dto.DashboardResponse{}, err
		}
		response.Admin = &dto.AdminStats{
			TotalUsers:       counts.Users,
			TotalCourses:     counts.Courses,
			TotalAssignments: counts.Assignments,
		}
	case models.RoleTeacher:
		counts, err := s.stats.TeacherCounts(ctx, p.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "teacher_counts_failed")
			return dto.DashboardResponse{}, err
		}
		response.Teacher = &dto.TeacherStats{
			TotalCourses:     counts.Courses,
			TotalStudents:    counts.Students,
			TotalAssignments: counts.Assignments,
		}
	case models.RoleStudent:
		counts, err := s.stats.StudentCounts(ctx, p.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "student_counts_failed")
			return dto.DashboardResponse{}, err
		}
		response.Student = &dto.StudentStats{
			TotalEnrollments:   counts.Enrollments,
			TotalSubmissions:   counts.Submissions,
			PendingAssignments: counts.PendingAssignments,
		}
	default:
		return dto.DashboardResponse{}, apierror.Forbidden("")
	}

	if s.cache != nil {
		payload, err := json.Marshal(response)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
				span.RecordError(err)
			}
		}
	}

	return response, nil
}
