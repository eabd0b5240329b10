package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

type coverageApi struct {
	svc      *coverage.Service
	validate *validator.Validate
}

func registerCoverageAPI(g *echo.Group, deps ServerDeps) {
	api := coverageApi{
		svc:      deps.CoverageSvc,
		validate: deps.Validate,
	}

	cg := g.Group("/coverage")
	cg.GET("", api.retrieve)
	cg.POST("", api.save)
}

// retrieve returns the coverage tree for a (phone, class) pair, creating a
// blank one on first access.
func (api *coverageApi) retrieve(ctx echo.Context) error {
	var query coverageQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to coverageQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	rec, isNew, err := api.svc.Ensure(ctx.Request().Context(), query.Phone, syllabus.Class(query.Class))
	if err != nil {
		return errors.Wrap(err, "ensuring coverage")
	}

	return ctx.JSON(http.StatusOK, coverageResponse{
		Data:  rec.Data,
		Meta:  newCoverageMeta(rec),
		IsNew: &isNew,
	})
}

func (api *coverageApi) save(ctx echo.Context) error {
	var data saveCoverageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to saveCoverageRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	rec, err := api.svc.Replace(ctx.Request().Context(), data.Phone, syllabus.Class(data.Class), data.Data)
	if err != nil {
		return errors.Wrap(err, "saving coverage")
	}

	return ctx.JSON(http.StatusOK, coverageResponse{
		Data:    rec.Data,
		Meta:    newCoverageMeta(rec),
		Message: "Coverage saved successfully.",
	})
}
