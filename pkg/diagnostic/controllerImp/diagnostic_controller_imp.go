package controllerImp

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"cropdoc/pkg/diagnostic/service"
	"cropdoc/pkg/errs"
	"cropdoc/pkg/logging"
)

type DiagCtrl struct{ svc service.DiagnosticService }

func New(svc service.DiagnosticService) *DiagCtrl { return &DiagCtrl{svc} }

// Create handles the multipart upload: `file` plus optional `farm_id`.
func (h *DiagCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		return respondErr(c, errs.Validation(errs.CodeMissingFile, "no image file in request"))
	}

	var farmID uint
	if v := c.FormValue("farm_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return respondErr(c, errs.Validation(errs.CodeNoFarm, "bad farm_id"))
		}
		farmID = uint(n)
	}

	in := service.DiagnoseInput{
		UID:         uid,
		FarmID:      farmID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open:        func() (io.ReadCloser, error) { return fh.Open() },
	}
	res, err := h.svc.Diagnose(c.Request().Context(), in)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *DiagCtrl) History(c echo.Context) error {
	uid := c.Get("uid").(string)
	items, err := h.svc.History(c.Request().Context(), uid, c.QueryParam("period"))
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *DiagCtrl) Delete(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return respondErr(c, errs.NotFound("diagnostic not found"))
	}
	if err := h.svc.Delete(c.Request().Context(), uid, uint(id)); err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"deleted": true})
}

func (h *DiagCtrl) Stats(c echo.Context) error {
	uid := c.Get("uid").(string)
	n, err := h.svc.ScansToday(c.Request().Context(), uid)
	if err != nil {
		return respondErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]int64{"scans_today": n})
}

// respondErr renders any pipeline failure as a structured body. Unparseable
// model output additionally carries the raw text for operator diagnosis.
func respondErr(c echo.Context, err error) error {
	ae := errs.AsAppError(err)
	if ae.Status >= 500 {
		logging.Error(c.Request().Context(), "request failed",
			slog.String("code", ae.Code),
			slog.Any("err", errs.Loggable(err)),
		)
	}
	body := map[string]any{"error": ae.Code, "message": ae.Message}
	if ae.Raw != "" {
		body["raw"] = ae.Raw
	}
	return c.JSON(ae.Status, body)
}
