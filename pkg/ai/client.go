package ai

import (
	"context"
	"net/http"

	"cropdoc/pkg/errs"
)

// Client is the external image-understanding endpoint. One synchronous,
// single-turn request per diagnosis; the raw text comes back unvalidated and
// goes through ParseDiagnosis before anything is persisted.
type Client interface {
	DiagnoseCrop(ctx context.Context, image []byte, mimeType string) (string, error)

	// ModelVersion identifies the endpoint/version for auditability; it is
	// stored on every diagnostic record.
	ModelVersion() string
}

// NewUnconfigured is wired when no API key is present and mock mode is off:
// the server still boots, but every diagnosis fails with a 500 that names the
// missing credential instead of a generic error.
func NewUnconfigured() Client { return unconfigured{} }

type unconfigured struct{}

func (unconfigured) DiagnoseCrop(ctx context.Context, image []byte, mimeType string) (string, error) {
	return "", errs.NewAppError(errs.CodeMissingCredentials, http.StatusInternalServerError, "GENAI_API_KEY is not configured")
}

func (unconfigured) ModelVersion() string { return "unconfigured" }
