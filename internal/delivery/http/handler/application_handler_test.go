package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"lynxhire/internal/delivery/http/middleware"
	"lynxhire/internal/domain/application"
	"lynxhire/internal/domain/profile"
	"lynxhire/internal/logger"
	"lynxhire/internal/pkg/jwt"
	"lynxhire/internal/repository"
	"lynxhire/internal/scoring"
	"lynxhire/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// stubApplications mimics the workflow rules that matter for the HTTP layer.
type stubApplications struct {
	openJob uuid.UUID
	applied map[[2]uuid.UUID]bool
}

func (s *stubApplications) Create(_ context.Context, caller profile.Caller, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	switch {
	case !caller.Authenticated():
		return application.Application{}, usecase.ErrUnauthorized
	case caller.Role != profile.RoleCandidate:
		return application.Application{}, usecase.ErrRoleForbidden
	case s.applied[[2]uuid.UUID{jobID, caller.ID}]:
		return application.Application{}, usecase.ErrDuplicateApplication
	case jobID != s.openJob:
		return application.Application{}, usecase.ErrJobUnavailable
	}
	s.applied[[2]uuid.UUID{jobID, caller.ID}] = true
	return application.Application{ID: uuid.New(), JobID: jobID, CandidateID: caller.ID, Status: application.StatusNew}, nil
}

func (s *stubApplications) UpdateStatus(context.Context, profile.Caller, uuid.UUID, string) error {
	return usecase.ErrUnauthorized
}

func (s *stubApplications) ListForCandidate(context.Context, profile.Caller, int) ([]repository.CandidateApplicationRow, error) {
	return nil, nil
}

func (s *stubApplications) ListForJob(context.Context, profile.Caller, uuid.UUID) ([]repository.JobApplicationRow, error) {
	return nil, usecase.ErrNotFound
}

func (s *stubApplications) GetForEmployer(context.Context, profile.Caller, uuid.UUID) (usecase.ApplicationDetail, error) {
	return usecase.ApplicationDetail{}, usecase.ErrNotFound
}

type stubMatching struct {
	err error
}

func (s stubMatching) Score(_ context.Context, _ profile.Caller, _ uuid.UUID) (scoring.Result, error) {
	if s.err != nil {
		return scoring.Result{}, s.err
	}
	return scoring.Result{Score: 87, Reason: "Strong Go background"}, nil
}

func newApplicationTestApp(t *testing.T, apps usecase.ApplicationUsecase, matching usecase.MatchingUsecase) (*fiber.App, *jwt.HMACService) {
	t.Helper()

	svc := jwt.NewHMACService("access", "refresh", time.Minute, time.Hour)
	authMw := middleware.NewAuthMiddleware(svc)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(logger.Discard()).Middleware())
	NewApplicationHandler(apps, matching).RegisterRoutes(app.Group("/api/v1"), authMw.Middleware(), authMw.Optional())
	return app, svc
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) envelope {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	if env.Status != resp.StatusCode {
		t.Fatalf("%s %s: envelope status %d != http %d", method, path, env.Status, resp.StatusCode)
	}
	return env
}

func TestApplicationHandler_ApplyThenReapply(t *testing.T) {
	jobID := uuid.New()
	app, svc := newApplicationTestApp(t, &stubApplications{openJob: jobID, applied: map[[2]uuid.UUID]bool{}}, stubMatching{})

	token, err := svc.GenerateAccessToken(uuid.New(), "cand@example.com", string(profile.RoleCandidate))
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	body := map[string]string{"job_id": jobID.String(), "cover_letter": "Hi"}

	first := doJSON(t, app, "POST", "/api/v1/applications", token, body)
	if first.Status != fiber.StatusCreated || !first.Success {
		t.Fatalf("expected 201 success, got %+v", first)
	}
	var created struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(first.Data, &created); err != nil || created.Status != "new" {
		t.Fatalf("expected status new in data, got %s", first.Data)
	}

	second := doJSON(t, app, "POST", "/api/v1/applications", token, body)
	if second.Success || second.Error != MsgAlreadyApplied {
		t.Fatalf("expected duplicate rejection, got %+v", second)
	}
	if second.Status != fiber.StatusConflict {
		t.Fatalf("expected 409, got %d", second.Status)
	}
}

func TestApplicationHandler_ApplyMessages(t *testing.T) {
	jobID := uuid.New()
	app, svc := newApplicationTestApp(t, &stubApplications{openJob: jobID, applied: map[[2]uuid.UUID]bool{}}, stubMatching{})

	employerToken, _ := svc.GenerateAccessToken(uuid.New(), "hr@example.com", string(profile.RoleEmployer))
	candidateToken, _ := svc.GenerateAccessToken(uuid.New(), "cand@example.com", string(profile.RoleCandidate))

	tests := []struct {
		name  string
		token string
		jobID string
		want  string
	}{
		{"anonymous", "", jobID.String(), MsgApplyLoginRequired},
		{"bad token treated as anonymous", "not-a-jwt", jobID.String(), MsgApplyLoginRequired},
		{"employer", employerToken, jobID.String(), MsgApplyCandidatesOnly},
		{"closed job", candidateToken, uuid.NewString(), MsgJobNotAccepting},
		{"malformed job id", candidateToken, "abc", MsgJobNotAccepting},
		{"anonymous with malformed job id", "", "abc", MsgApplyLoginRequired},
		{"employer with malformed job id", employerToken, "abc", MsgApplyCandidatesOnly},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := doJSON(t, app, "POST", "/api/v1/applications", tt.token, map[string]string{"job_id": tt.jobID})
			if env.Success || env.Error != tt.want {
				t.Fatalf("expected error %q, got %+v", tt.want, env)
			}
		})
	}
}

func TestApplicationHandler_Score(t *testing.T) {
	app, svc := newApplicationTestApp(t, &stubApplications{applied: map[[2]uuid.UUID]bool{}}, stubMatching{})
	token, _ := svc.GenerateAccessToken(uuid.New(), "hr@example.com", string(profile.RoleEmployer))
	id := uuid.New()

	env := doJSON(t, app, "POST", "/api/v1/applications/"+id.String()+"/score", token, nil)
	if env.Status != fiber.StatusOK {
		t.Fatalf("expected 200, got %+v", env)
	}
	var got struct {
		ApplicationID uuid.UUID `json:"application_id"`
		Score         int       `json:"score"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ApplicationID != id || got.Score != 87 {
		t.Fatalf("unexpected score payload: %+v", got)
	}

	unauth := doJSON(t, app, "POST", "/api/v1/applications/"+id.String()+"/score", "", nil)
	if unauth.Status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", unauth.Status)
	}
}

func TestApplicationHandler_ScoreFailureHidesDetail(t *testing.T) {
	app, svc := newApplicationTestApp(t, &stubApplications{applied: map[[2]uuid.UUID]bool{}}, stubMatching{err: usecase.ErrScoringFailed})
	token, _ := svc.GenerateAccessToken(uuid.New(), "hr@example.com", string(profile.RoleEmployer))

	env := doJSON(t, app, "POST", "/api/v1/applications/"+uuid.NewString()+"/score", token, nil)
	if env.Success || env.Status != fiber.StatusBadGateway {
		t.Fatalf("expected 502, got %+v", env)
	}
	if env.Error != "Scoring failed" {
		t.Fatalf("unexpected message %q", env.Error)
	}
}

func TestApplicationHandler_ApplyUnreadableBodyRanksCallerFirst(t *testing.T) {
	app, svc := newApplicationTestApp(t, &stubApplications{openJob: uuid.New(), applied: map[[2]uuid.UUID]bool{}}, stubMatching{})
	employerToken, _ := svc.GenerateAccessToken(uuid.New(), "hr@example.com", string(profile.RoleEmployer))
	candidateToken, _ := svc.GenerateAccessToken(uuid.New(), "cand@example.com", string(profile.RoleCandidate))

	tests := []struct {
		name   string
		token  string
		body   any
		status int
		want   string
	}{
		{"anonymous without body", "", nil, fiber.StatusUnauthorized, MsgApplyLoginRequired},
		{"anonymous with non-object body", "", "not an object", fiber.StatusUnauthorized, MsgApplyLoginRequired},
		{"employer with non-object body", employerToken, "not an object", fiber.StatusForbidden, MsgApplyCandidatesOnly},
		{"candidate with non-object body", candidateToken, "not an object", fiber.StatusBadRequest, "Invalid request payload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := doJSON(t, app, "POST", "/api/v1/applications", tt.token, tt.body)
			if env.Status != tt.status || env.Error != tt.want {
				t.Fatalf("expected %d %q, got %+v", tt.status, tt.want, env)
			}
		})
	}
}
