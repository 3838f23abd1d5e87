package enrollments_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edukit/coursehub/internal/app/features/enrollments"
	"github.com/edukit/coursehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestHandleEnroll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Go Basics", primitive.NewObjectID())
	student := testutil.StudentUser()

	body := strings.NewReader(`{"course_id":"` + course.ID.Hex() + `"}`)
	req := testutil.NewAuthenticatedRequest("POST", "/enrollments", body, student)
	rec := httptest.NewRecorder()

	h.HandleEnroll(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}
	var enr struct {
		StudentID string `json:"student_id"`
		CourseID  string `json:"course_id"`
		Status    string `json:"status"`
		Progress  int    `json:"progress"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &enr); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if enr.StudentID != student.ID {
		t.Errorf("student_id: got %q, want %q", enr.StudentID, student.ID)
	}
	if enr.Status != "enrolled" || enr.Progress != 0 {
		t.Errorf("expected fresh enrollment, got status=%q progress=%d", enr.Status, enr.Progress)
	}
}

func TestHandleEnroll_Duplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Go Basics", primitive.NewObjectID())
	student := testutil.StudentUser()

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body := strings.NewReader(`{"course_id":"` + course.ID.Hex() + `"}`)
		req := testutil.NewAuthenticatedRequest("POST", "/enrollments", body, student)
		rec := httptest.NewRecorder()

		h.HandleEnroll(rec, req)

		if rec.Code != want {
			t.Errorf("attempt %d: expected status %d, got %d: %s", i+1, want, rec.Code, rec.Body.String())
		}
	}
}

func TestHandleEnroll_BadRequests(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing course_id", `{}`, http.StatusBadRequest},
		{"malformed id", `{"course_id":"zzz"}`, http.StatusBadRequest},
		{"unknown course", `{"course_id":"` + primitive.NewObjectID().Hex() + `"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.NewAuthenticatedRequest("POST", "/enrollments", strings.NewReader(tc.body), testutil.StudentUser())
			rec := httptest.NewRecorder()

			h.HandleEnroll(rec, req)

			if rec.Code != tc.want {
				t.Errorf("expected status %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleUpdateProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Go Basics", primitive.NewObjectID())
	student := testutil.StudentUser()
	enr := fixtures.CreateEnrollment(ctx, student.ObjectID(), course.ID)

	body := strings.NewReader(`{"progress":100}`)
	req := testutil.NewAuthenticatedRequest("PUT", "/enrollments/"+enr.ID.Hex()+"/progress", body, student)
	req = testutil.WithChiURLParam(req, "id", enr.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdateProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}
	var updated struct {
		Status         string  `json:"status"`
		Progress       int     `json:"progress"`
		CompletionDate *string `json:"completion_date"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if updated.Status != "completed" {
		t.Errorf("status: got %q, want completed", updated.Status)
	}
	if updated.CompletionDate == nil {
		t.Error("expected completion_date to be set")
	}
}

func TestHandleUpdateProgress_OutOfRange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Go Basics", primitive.NewObjectID())
	student := testutil.StudentUser()
	enr := fixtures.CreateEnrollment(ctx, student.ObjectID(), course.ID)

	for _, body := range []string{`{"progress":101}`, `{"progress":-1}`, `{}`} {
		req := testutil.NewAuthenticatedRequest("PUT", "/enrollments/"+enr.ID.Hex()+"/progress", strings.NewReader(body), student)
		req = testutil.WithChiURLParam(req, "id", enr.ID.Hex())
		rec := httptest.NewRecorder()

		h.HandleUpdateProgress(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected status %d, got %d", body, http.StatusBadRequest, rec.Code)
		}
	}
}

func TestHandleUpdateProgress_NotOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	course := fixtures.CreateCourse(ctx, "Go Basics", primitive.NewObjectID())
	enr := fixtures.CreateEnrollment(ctx, primitive.NewObjectID(), course.ID)

	body := strings.NewReader(`{"progress":10}`)
	req := testutil.NewAuthenticatedRequest("PUT", "/enrollments/"+enr.ID.Hex()+"/progress", body, testutil.StudentUser())
	req = testutil.WithChiURLParam(req, "id", enr.ID.Hex())
	rec := httptest.NewRecorder()

	h.HandleUpdateProgress(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestServeMyEnrollments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructorID := primitive.NewObjectID()
	courseA := fixtures.CreateCourse(ctx, "Course A", instructorID)
	courseB := fixtures.CreateCourse(ctx, "Course B", instructorID)
	student := testutil.StudentUser()
	fixtures.CreateEnrollment(ctx, student.ObjectID(), courseA.ID)
	fixtures.CreateEnrollment(ctx, student.ObjectID(), courseB.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/enrollments/my-courses", nil, student)
	rec := httptest.NewRecorder()

	h.ServeMyEnrollments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var rows []struct {
		Enrollment struct {
			CourseID string `json:"course_id"`
		} `json:"enrollment"`
		Course struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"course"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Course.ID != row.Enrollment.CourseID {
			t.Errorf("course %s does not match enrollment course %s", row.Course.ID, row.Enrollment.CourseID)
		}
		if row.Course.Title == "" {
			t.Error("joined course is missing its fields")
		}
	}
}

func TestHandlers_Unauthenticated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := enrollments.NewHandler(db, zap.NewNop())

	req := httptest.NewRequest("POST", "/enrollments", strings.NewReader(`{"course_id":"abc"}`))
	rec := httptest.NewRecorder()

	h.HandleEnroll(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}
