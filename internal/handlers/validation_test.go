package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"smartwaste-backend/internal/handlers"
	"smartwaste-backend/internal/middleware"
)

// Request-body validation runs before any database access, so these tests
// exercise the handlers with a nil connection.

func withTaskID(req *http.Request, taskID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("taskid", taskID)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	body := map[string]string{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestCollectTaskRejectsBadKg(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero", `{"collected_kg": 0}`},
		{"negative", `{"collected_kg": -4}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/tasks/collect/t1", strings.NewReader(tc.body))
		req = withTaskID(req, "t1")
		rec := httptest.NewRecorder()
		handlers.CollectTask(nil)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestCollectTaskMissingTaskID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks/collect/", strings.NewReader(`{}`))
	req = withTaskID(req, "")
	rec := httptest.NewRecorder()
	handlers.CollectTask(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestReceiveTaskRequiresKg(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/tasks/receive/t1", strings.NewReader(`{}`))
	req = withTaskID(req, "t1")
	rec := httptest.NewRecorder()
	handlers.ReceiveTask(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestRecycleTaskRequiresBothFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"kg only", `{"recycled_kg": 5}`},
		{"percent only", `{"recycle_percent": 50}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/tasks/recycle/t1", strings.NewReader(tc.body))
		req = withTaskID(req, "t1")
		rec := httptest.NewRecorder()
		handlers.RecycleTask(nil)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
		body := errorBody(t, rec)
		if body["error"] == "" {
			t.Errorf("%s: expected an error message", tc.name)
		}
	}
}

func TestRecycleTaskRejectsPercentOutOfRange(t *testing.T) {
	for _, body := range []string{
		`{"recycled_kg": 5, "recycle_percent": 120}`,
		`{"recycled_kg": 5, "recycle_percent": -1}`,
		`{"recycled_kg": -2, "recycle_percent": 50}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/tasks/recycle/t1", strings.NewReader(body))
		req = withTaskID(req, "t1")
		rec := httptest.NewRecorder()
		handlers.RecycleTask(nil)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	body := `{"email":"x@y.com","password":"secret1","role":"supervisor","area":"North","full_name":"X"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Signup(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSignupRejectsMissingFields(t *testing.T) {
	body := `{"email":"x@y.com","password":"secret1","role":"worker"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Signup(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSignupRejectsShortPassword(t *testing.T) {
	body := `{"email":"x@y.com","password":"abc","role":"worker","area":"North","full_name":"X"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Signup(nil)(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestSignupNormalizesRoleSpelling(t *testing.T) {
	// "Recycling Manager" should get past role validation; with a nil
	// connection the duplicate-email lookup then panics, which proves the
	// role check accepted the spelling. Recovered here on purpose.
	defer func() { _ = recover() }()

	body := `{"email":"m@y.com","password":"secret1","role":"Recycling Manager","area":"North","full_name":"M"}`
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handlers.Signup(nil)(rec, req)
	if rec.Code == http.StatusBadRequest {
		t.Errorf("spaced role spelling should normalize, got 400: %s", rec.Body.String())
	}
}

func TestCreateCollectionValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing fields", `{"waste_type":"Wet","quantity_kg":5}`},
		{"bad waste type", `{"date":"2026-08-28","area":"North","waste_type":"Metal","quantity_kg":5}`},
		{"zero quantity", `{"date":"2026-08-28","area":"North","waste_type":"Wet","quantity_kg":0}`},
		{"missing quantity", `{"date":"2026-08-28","area":"North","waste_type":"Wet"}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/collections", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		handlers.CreateCollection(nil)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestCreateRecyclingValidation(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"negative input", `{"date":"2026-08-28","waste_type":"Dry","input_kg":-1,"recycled_kg":0,"landfill_kg":0}`},
		{"sum exceeds input", `{"date":"2026-08-28","waste_type":"Dry","input_kg":10,"recycled_kg":8,"landfill_kg":5}`},
		{"missing kg fields", `{"date":"2026-08-28","waste_type":"Dry","input_kg":10}`},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/recycling", strings.NewReader(tc.body))
		rec := httptest.NewRecorder()
		handlers.CreateRecycling(nil)(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

func TestMe(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	handlers.Me()(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no claims: status = %d, want 401", rec.Code)
	}

	ctx := context.WithValue(req.Context(), middleware.UserContextKey, middleware.UserClaims{
		UserID: "u1", Email: "worker@smartwaste.local", Role: "worker",
	})
	rec = httptest.NewRecorder()
	handlers.Me()(rec, req.WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("with claims: status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "u1" || body["email"] != "worker@smartwaste.local" {
		t.Errorf("body = %v", body)
	}
}
