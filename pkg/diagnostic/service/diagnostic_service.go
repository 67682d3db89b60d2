package service

import (
	"context"
	"io"
	"time"
)

// DiagnoseInput carries one validated-to-be upload through the pipeline.
// Open is called at most once, and only after validation has passed.
type DiagnoseInput struct {
	UID         string
	FarmID      uint // 0 = let the resolver pick the user's farm
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

type DiagnoseResult struct {
	ID         uint      `json:"id"`
	Disease    string    `json:"disease"`
	Confidence int       `json:"confidence"`
	Severity   string    `json:"severity"`
	Crop       string    `json:"crop"`
	Status     string    `json:"status"`
	Treatment  string    `json:"treatment"`
	Prevention string    `json:"prevention"`
	ImageURL   string    `json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
}

type DiagnosticService interface {
	// Diagnose runs the full pipeline: validate, resolve farm, call the
	// model, parse, store the image, persist the record.
	Diagnose(ctx context.Context, in DiagnoseInput) (*DiagnoseResult, error)

	// History aggregates records across every farm the user owns inside a
	// rolling window (day|week|month|year|all), newest-first, capped at 50.
	History(ctx context.Context, uid, period string) ([]DiagnoseResult, error)

	// Delete removes one record after verifying its owning farm belongs to uid.
	Delete(ctx context.Context, uid string, diagID uint) error

	// ScansToday counts the user's diagnostics in the last 24 hours.
	ScansToday(ctx context.Context, uid string) (int64, error)
}
