package handler_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-go-api/internal/dto"
	"github.com/noah-isme/campus-go-api/internal/models"
)

type assignmentEnvelope struct {
	Success bool                   `json:"success"`
	Data    dto.AssignmentResponse `json:"data"`
	Message string                 `json:"message"`
}

type submissionEnvelope struct {
	Success bool                   `json:"success"`
	Data    dto.SubmissionResponse `json:"data"`
	Message string                 `json:"message"`
}

func (env *testEnv) createAssignment(t *testing.T, as models.User, courseID uint, title string) dto.AssignmentResponse {
	t.Helper()
	resp := env.request(t, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		Title:    title,
		DueDate:  time.Now().Add(7 * 24 * time.Hour).UTC().Format(time.RFC3339),
		CourseID: courseID,
	}, as)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope assignmentEnvelope
	decodeResponse(t, resp, &envelope)
	require.True(t, envelope.Success)
	return envelope.Data
}

func (env *testEnv) enroll(t *testing.T, student models.User, courseID uint) {
	t.Helper()
	resp := env.request(t, "POST", fmt.Sprintf("/api/v1/courses/%d/enroll", courseID), nil, student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAssignmentCreateDefaultsMaxScore(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")

	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	require.Equal(t, 100, assignment.MaxScore, "max_score defaults to 100 when omitted")
	require.Equal(t, course.ID, assignment.CourseID)

	explicit := 50
	resp := env.request(t, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		Title:    "Homework 2",
		MaxScore: &explicit,
		DueDate:  time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		CourseID: course.ID,
	}, env.teacher)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope assignmentEnvelope
	decodeResponse(t, resp, &envelope)
	require.Equal(t, 50, envelope.Data.MaxScore)
}

func TestAssignmentCreateOwnershipAndRoles(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")

	payload := dto.AssignmentCreateRequest{
		Title:    "Homework 1",
		DueDate:  time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		CourseID: course.ID,
	}

	// Only the owning teacher may attach assignments to a course.
	resp := env.request(t, "POST", "/api/v1/assignments", payload, env.other)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body errorBody
	decodeResponse(t, resp, &body)
	require.Equal(t, "you do not own this course", body.Error)

	resp = env.request(t, "POST", "/api/v1/assignments", payload, env.admin)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "POST", "/api/v1/assignments", payload, env.student)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var count int64
	require.NoError(t, env.db.Model(&models.Assignment{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestAssignmentCreateValidation(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")

	resp := env.request(t, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		Title:    "ab",
		DueDate:  "not-a-date",
		CourseID: course.ID,
	}, env.teacher)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeResponse(t, resp, &body)
	require.Equal(t, "validation error", body.Error)
	require.Len(t, body.Details, 2)
	require.Equal(t, "title", body.Details[0].Field)
	require.Equal(t, "due_date", body.Details[1].Field)

	var count int64
	require.NoError(t, env.db.Model(&models.Assignment{}).Count(&count).Error)
	require.Zero(t, count, "a rejected payload must not persist anything")
}

func TestAssignmentCreateMissingCourseIs404(t *testing.T) {
	env := setupCourseApp(t)

	resp := env.request(t, "POST", "/api/v1/assignments", dto.AssignmentCreateRequest{
		Title:    "Homework 1",
		DueDate:  time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		CourseID: 999,
	}, env.teacher)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAssignmentListRequiresCourseID(t *testing.T) {
	env := setupCourseApp(t)

	resp := env.request(t, "GET", "/api/v1/assignments", nil, env.student)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeResponse(t, resp, &body)
	require.Equal(t, "course id is required", body.Error)
}

func TestAssignmentListByCourse(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	other := env.createCourse(t, env.other, "Databases", "CS202")
	env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	env.createAssignment(t, env.other, other.ID, "Lab 1")

	var envelope struct {
		Data []dto.AssignmentResponse `json:"data"`
	}
	resp := env.request(t, "GET", fmt.Sprintf("/api/v1/assignments?courseId=%d", course.ID), nil, env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &envelope)
	require.Len(t, envelope.Data, 1)
	require.Equal(t, "Homework 1", envelope.Data[0].Title)
}

func TestAssignmentUpdateAndDeleteOwnership(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	path := fmt.Sprintf("/api/v1/assignments/%d", assignment.ID)

	payload := dto.AssignmentUpdateRequest{
		Title:   "Homework 1 v2",
		DueDate: time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339),
	}

	resp := env.request(t, "PATCH", path, payload, env.other)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "PATCH", path, payload, env.teacher)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope assignmentEnvelope
	decodeResponse(t, resp, &envelope)
	require.Equal(t, "Homework 1 v2", envelope.Data.Title)
	require.Equal(t, 100, envelope.Data.MaxScore, "an update without max_score keeps the stored value")

	resp = env.request(t, "DELETE", path, nil, env.other)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "DELETE", path, nil, env.teacher)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Once gone, mutations report 404 before any ownership decision.
	resp = env.request(t, "PATCH", path, payload, env.other)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubmitRequiresEnrollment(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	path := fmt.Sprintf("/api/v1/assignments/%d/submit", assignment.ID)

	resp := env.request(t, "POST", path, dto.SubmissionRequest{Content: "my answer"}, env.student)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	var body errorBody
	decodeResponse(t, resp, &body)
	require.Equal(t, "you are not enrolled in this course", body.Error)

	var count int64
	require.NoError(t, env.db.Model(&models.Submission{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestSubmitRejectsNonStudents(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	path := fmt.Sprintf("/api/v1/assignments/%d/submit", assignment.ID)

	resp := env.request(t, "POST", path, dto.SubmissionRequest{Content: "answer"}, env.teacher)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = env.request(t, "POST", path, dto.SubmissionRequest{Content: "answer"}, env.admin)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestSubmitMissingAssignmentIs404(t *testing.T) {
	env := setupCourseApp(t)

	resp := env.request(t, "POST", "/api/v1/assignments/999/submit", dto.SubmissionRequest{Content: "answer"}, env.student)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestResubmissionOverwrites(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	env.enroll(t, env.student, course.ID)
	path := fmt.Sprintf("/api/v1/assignments/%d/submit", assignment.ID)

	resp := env.request(t, "POST", path, dto.SubmissionRequest{Content: "first draft"}, env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var first submissionEnvelope
	decodeResponse(t, resp, &first)
	require.Equal(t, "first draft", first.Data.Content)
	require.Equal(t, env.student.ID, first.Data.StudentID)

	resp = env.request(t, "POST", path, dto.SubmissionRequest{Content: "final answer"}, env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var second submissionEnvelope
	decodeResponse(t, resp, &second)
	require.Equal(t, "final answer", second.Data.Content)
	require.Equal(t, first.Data.ID, second.Data.ID, "resubmission reuses the existing row")
	require.False(t, second.Data.SubmittedAt.Before(first.Data.SubmittedAt), "the submission timestamp never moves backwards")

	var count int64
	require.NoError(t, env.db.Model(&models.Submission{}).
		Where("assignment_id = ? AND student_id = ?", assignment.ID, env.student.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSubmitValidation(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")
	env.enroll(t, env.student, course.ID)

	resp := env.request(t, "POST", fmt.Sprintf("/api/v1/assignments/%d/submit", assignment.ID), dto.SubmissionRequest{}, env.student)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeResponse(t, resp, &body)
	require.Equal(t, "validation error", body.Error)
	require.Len(t, body.Details, 1)
	require.Equal(t, "content", body.Details[0].Field)
}

func TestAssignmentDetailScopesSubmissions(t *testing.T) {
	env := setupCourseApp(t)
	course := env.createCourse(t, env.teacher, "Algorithms", "CS201")
	assignment := env.createAssignment(t, env.teacher, course.ID, "Homework 1")

	second := models.User{Name: "Second Student", Email: "second@school.test", Role: models.RoleStudent}
	require.NoError(t, env.db.Create(&second).Error)

	env.enroll(t, env.student, course.ID)
	env.enroll(t, second, course.ID)

	submitPath := fmt.Sprintf("/api/v1/assignments/%d/submit", assignment.ID)
	resp := env.request(t, "POST", submitPath, dto.SubmissionRequest{Content: "jane's answer"}, env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	resp = env.request(t, "POST", submitPath, dto.SubmissionRequest{Content: "second's answer"}, second)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var detail struct {
		Data dto.AssignmentDetailResponse `json:"data"`
	}
	path := fmt.Sprintf("/api/v1/assignments/%d", assignment.ID)

	resp = env.request(t, "GET", path, nil, env.teacher)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &detail)
	require.Len(t, detail.Data.Submissions, 2, "the owning teacher sees every submission")

	resp = env.request(t, "GET", path, nil, env.student)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	decodeResponse(t, resp, &detail)
	require.Len(t, detail.Data.Submissions, 1, "a student sees only their own submission")
	require.Equal(t, "jane's answer", detail.Data.Submissions[0].Content)
}
