package contract_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-go-api/internal/authz"
	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/handler"
	"github.com/noah-isme/campus-go-api/internal/middleware"
	"github.com/noah-isme/campus-go-api/internal/models"
)

type stubCourseService struct {
	courses []dto.CourseResponse
}

func (s stubCourseService) List(context.Context, authz.Principal) ([]dto.CourseResponse, error) {
	return s.courses, nil
}

func (s stubCourseService) Get(context.Context, authz.Principal, uint) (dto.CourseResponse, error) {
	return s.courses[0], nil
}

func (s stubCourseService) Create(context.Context, authz.Principal, dto.CourseCreateRequest) (dto.CourseResponse, error) {
	return s.courses[0], nil
}

func (s stubCourseService) Update(context.Context, authz.Principal, uint, dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	return s.courses[0], nil
}

func (s stubCourseService) Delete(context.Context, authz.Principal, uint) error {
	return nil
}

type stubEnrollmentService struct{}

func (s stubEnrollmentService) Enroll(context.Context, authz.Principal, uint) (dto.EnrollmentResponse, error) {
	return dto.EnrollmentResponse{}, nil
}

func TestCourseListContract(t *testing.T) {
	schema := loadSchema(t, "course.schema.json")

	now := time.Now().UTC()
	stub := stubCourseService{courses: []dto.CourseResponse{
		{
			ID:          1,
			Title:       "Algorithms",
			Code:        "CS201",
			Description: "Sorting and searching",
			TeacherID:   2,
			Teacher:     dto.TeacherSummary{ID: 2, Name: "Alice Teacher", Email: "alice@school.test"},
			Enrollments: 3,
			CreatedAt:   now,
			UpdatedAt:   now,
		},
	}}

	validate := validator.New(validator.WithRequiredStructEnabled())
	courseHandler := handler.NewCourseHandler(stub, stubEnrollmentService{}, validate, zerolog.Nop())

	app := fiber.New()
	group := app.Group("/api/v1/courses", func(c *fiber.Ctx) error {
		c.Locals(middleware.PrincipalKey, authz.Principal{ID: 3, Role: models.RoleStudent})
		return c.Next()
	})
	courseHandler.Register(group)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var payload interface{}
	require.NoError(t, json.Unmarshal(body, &payload))
	require.NoError(t, schema.Validate(payload))
}
