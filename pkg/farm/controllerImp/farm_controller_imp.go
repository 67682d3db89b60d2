package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"cropdoc/entities"
	"cropdoc/pkg/farm/repository"
)

type FarmCtrl struct{ repo repository.FarmRepository }

func New(repo repository.FarmRepository) *FarmCtrl { return &FarmCtrl{repo} }

type createReq struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	AreaRai  float64 `json:"area_rai"`
	CropType string  `json:"crop_type"`
}

func (h *FarmCtrl) Create(c echo.Context) error {
	uid := c.Get("uid").(string)
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
	}
	f := &entities.Farm{UserID: uid, Name: req.Name, Location: req.Location, AreaRai: req.AreaRai, CropType: req.CropType}
	if err := h.repo.Create(f); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FarmCtrl) List(c echo.Context) error {
	uid := c.Get("uid").(string)
	farms, err := h.repo.FindByUser(uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, farms)
}

func (h *FarmCtrl) Get(c echo.Context) error {
	uid := c.Get("uid").(string)
	id, err := parseUint(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad farm id"})
	}
	f, err := h.repo.FindByID(id, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	}
	return c.JSON(http.StatusOK, f)
}
