package serviceImp

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"cropdoc/entities"
	"cropdoc/pkg/ai"
	"cropdoc/pkg/blob"
	diagRepo "cropdoc/pkg/diagnostic/repository"
	"cropdoc/pkg/diagnostic/service"
	"cropdoc/pkg/errs"
	farmRepo "cropdoc/pkg/farm/repository"
	"cropdoc/pkg/logging"
	"cropdoc/pkg/upload"
)

const historyLimit = 50

type diagSvc struct {
	farms farmRepo.FarmRepository
	diags diagRepo.DiagnosticRepository
	llm   ai.Client
	blobs blob.Store
}

func New(farms farmRepo.FarmRepository, diags diagRepo.DiagnosticRepository, llm ai.Client, blobs blob.Store) service.DiagnosticService {
	return &diagSvc{farms: farms, diags: diags, llm: llm, blobs: blobs}
}

// Diagnose order matters: everything client-fixable fails before the model is
// invoked, and the image is persisted only after a valid parse so a failed
// model call never orphans a blob.
func (s *diagSvc) Diagnose(ctx context.Context, in service.DiagnoseInput) (*service.DiagnoseResult, error) {
	if err := upload.Validate(in.Filename, in.ContentType, in.Size); err != nil {
		return nil, err
	}

	farm, err := s.resolveFarm(in.UID, in.FarmID)
	if err != nil {
		return nil, err
	}
	ctx = logging.WithAttrs(ctx, slog.Uint64("farm_id", uint64(farm.FarmID)))

	contentType := upload.NormalizeMIME(in.Filename, in.ContentType)
	image, err := readImage(in)
	if err != nil {
		return nil, errs.Internal("read upload", err)
	}

	start := time.Now()
	raw, err := s.llm.DiagnoseCrop(ctx, image, contentType)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			// caller went away; abort quietly, write nothing
			return nil, ctxErr
		}
		var ae *errs.AppError
		if errors.As(err, &ae) {
			return nil, err // e.g. MISSING_AI_CREDENTIALS, keep its code
		}
		return nil, errs.Internal("inference call failed", err)
	}
	logging.Info(ctx, "inference completed",
		slog.String("model", s.llm.ModelVersion()),
		slog.Duration("latency", time.Since(start)),
	)

	diagnosis, err := ai.ParseDiagnosis(raw)
	if err != nil {
		logging.Warn(ctx, "model output failed to parse", slog.Any("err", errs.Loggable(err)))
		return nil, err
	}

	key := blob.DiagnosticKey(in.UID, contentType, time.Now())
	imageURL, err := s.blobs.Put(ctx, key, contentType, bytes.NewReader(image), int64(len(image)))
	if err != nil {
		return nil, errs.Internal("store image", err)
	}

	rec := &entities.Diagnostic{
		FarmID:       farm.FarmID,
		ImageURL:     imageURL,
		Disease:      diagnosis.Disease,
		Confidence:   diagnosis.Confidence,
		Severity:     diagnosis.Severity,
		Status:       diagnosis.Status,
		Crop:         diagnosis.Crop,
		Treatment:    diagnosis.Treatment,
		Prevention:   diagnosis.Prevention,
		ModelVersion: s.llm.ModelVersion(),
		CreatedAt:    time.Now(),
	}
	if err := s.diags.Create(rec); err != nil {
		return nil, errs.Internal("persist diagnostic", err)
	}
	logging.Info(ctx, "diagnostic created",
		slog.Uint64("diag_id", uint64(rec.DiagID)),
		slog.String("disease", rec.Disease),
		slog.String("severity", rec.Severity),
	)

	res := toResult(rec)
	return &res, nil
}

// resolveFarm maps the request onto exactly one tenant. An explicit farm id is
// only honored when it belongs to the requesting user.
func (s *diagSvc) resolveFarm(uid string, farmID uint) (*entities.Farm, error) {
	if farmID != 0 {
		f, err := s.farms.FindByID(farmID, uid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errs.Validation(errs.CodeNoFarm, "farm not found for this user")
			}
			return nil, errs.Internal("look up farm", err)
		}
		return f, nil
	}
	f, err := s.farms.FirstByUser(uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Validation(errs.CodeNoFarm, "create a farm profile first")
		}
		return nil, errs.Internal("look up farm", err)
	}
	return f, nil
}

func (s *diagSvc) History(ctx context.Context, uid, period string) ([]service.DiagnoseResult, error) {
	since, err := periodBound(period, time.Now())
	if err != nil {
		return nil, err
	}

	farms, err := s.farms.FindByUser(uid)
	if err != nil {
		return nil, errs.Internal("list farms", err)
	}
	if len(farms) == 0 {
		return []service.DiagnoseResult{}, nil
	}
	ids := make([]uint, 0, len(farms))
	for _, f := range farms {
		ids = append(ids, f.FarmID)
	}

	recs, err := s.diags.ListByFarms(ids, since, historyLimit)
	if err != nil {
		return nil, errs.Internal("list diagnostics", err)
	}
	out := make([]service.DiagnoseResult, 0, len(recs))
	for i := range recs {
		out = append(out, toResult(&recs[i]))
	}
	return out, nil
}

func (s *diagSvc) Delete(ctx context.Context, uid string, diagID uint) error {
	rec, err := s.diags.FindByID(diagID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("diagnostic not found")
		}
		return errs.Internal("look up diagnostic", err)
	}
	// a record owned by someone else's farm is indistinguishable from a
	// missing one
	if _, err := s.farms.FindByID(rec.FarmID, uid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("diagnostic not found")
		}
		return errs.Internal("verify ownership", err)
	}
	if err := s.diags.Delete(diagID); err != nil {
		return errs.Internal("delete diagnostic", err)
	}
	logging.Info(ctx, "diagnostic deleted", slog.Uint64("diag_id", uint64(diagID)))
	return nil
}

func (s *diagSvc) ScansToday(ctx context.Context, uid string) (int64, error) {
	farms, err := s.farms.FindByUser(uid)
	if err != nil {
		return 0, errs.Internal("list farms", err)
	}
	ids := make([]uint, 0, len(farms))
	for _, f := range farms {
		ids = append(ids, f.FarmID)
	}
	n, err := s.diags.CountSince(ids, time.Now().Add(-24*time.Hour))
	if err != nil {
		return 0, errs.Internal("count diagnostics", err)
	}
	return n, nil
}

// periodBound returns the rolling lower bound for a history window, computed
// from now rather than calendar-aligned. nil means unbounded.
func periodBound(period string, now time.Time) (*time.Time, error) {
	var d time.Duration
	switch period {
	case "day", "":
		d = 24 * time.Hour
	case "week":
		d = 7 * 24 * time.Hour
	case "month":
		d = 30 * 24 * time.Hour
	case "year":
		d = 365 * 24 * time.Hour
	case "all":
		return nil, nil
	default:
		return nil, errs.Validation(errs.CodeBadPeriod, "period must be one of day, week, month, year, all")
	}
	t := now.Add(-d)
	return &t, nil
}

func toResult(d *entities.Diagnostic) service.DiagnoseResult {
	return service.DiagnoseResult{
		ID:         d.DiagID,
		Disease:    d.Disease,
		Confidence: d.Confidence,
		Severity:   d.Severity,
		Crop:       d.Crop,
		Status:     d.Status,
		Treatment:  d.Treatment,
		Prevention: d.Prevention,
		ImageURL:   d.ImageURL,
		CreatedAt:  d.CreatedAt,
	}
}

func readImage(in service.DiagnoseInput) ([]byte, error) {
	rc, err := in.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	// validation already bounded Size; the limit here is a backstop against a
	// lying Content-Length
	return io.ReadAll(io.LimitReader(rc, upload.MaxImageBytes+1))
}
