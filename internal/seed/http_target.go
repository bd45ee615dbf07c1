package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yigit/unisession/internal/app/models/dto"
)

// HTTPTarget seeds a running API over HTTP
type HTTPTarget struct {
	baseURL string
	client  *http.Client
}

// NewHTTPTarget creates a Target that POSTs to the API at baseURL
func NewHTTPTarget(baseURL string, client *http.Client) *HTTPTarget {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTarget{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// APIError is a non-2xx answer from the API
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.Path, e.Status, e.Message)
}

type createdEnvelope struct {
	Data struct {
		ID int64 `json:"id"`
	} `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

func (t *HTTPTarget) post(ctx context.Context, path string, payload interface{}) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("encode %s payload: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s response: %w", path, err)
	}

	var env createdEnvelope
	decodeErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if decodeErr == nil && env.Error != nil {
			msg = env.Error.Message
		}
		return 0, &APIError{Method: http.MethodPost, Path: path, Status: resp.StatusCode, Message: msg}
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("decode %s response: %w", path, decodeErr)
	}
	return env.Data.ID, nil
}

func (t *HTTPTarget) CreateFaculty(ctx context.Context, req dto.CreateFacultyRequest) (int64, error) {
	return t.post(ctx, "/faculties/", req)
}

func (t *HTTPTarget) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest) (int64, error) {
	return t.post(ctx, "/departments/", req)
}

func (t *HTTPTarget) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (int64, error) {
	return t.post(ctx, "/teachers/", req)
}

func (t *HTTPTarget) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (int64, error) {
	return t.post(ctx, "/groups/", req)
}

func (t *HTTPTarget) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (int64, error) {
	return t.post(ctx, "/subjects/", req)
}

func (t *HTTPTarget) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (int64, error) {
	return t.post(ctx, "/sessions/", req)
}
