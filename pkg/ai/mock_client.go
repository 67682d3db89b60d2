package ai

import (
	"context"
	"sync"
)

// MockClient returns a scripted response and counts calls. Used in tests and
// as a dev fallback when no API key is configured.
type MockClient struct {
	Response string
	Err      error

	mu    sync.Mutex
	calls int
}

func NewMock() *MockClient {
	return &MockClient{
		Response: `{"disease":"Healthy","confidence":95,"severity":"LOW","crop":"Rice","status":"HEALTHY","treatment":"None needed","prevention":"Maintain current practices"}`,
	}
}

func (m *MockClient) DiagnoseCrop(ctx context.Context, image []byte, mimeType string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

func (m *MockClient) ModelVersion() string { return "mock" }

// Calls reports how many times the model was invoked; validation tests assert
// this stays at zero for rejected uploads.
func (m *MockClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
