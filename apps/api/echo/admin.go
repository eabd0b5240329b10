package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

type adminApi struct {
	conf     *core.Config
	svc      *coverage.Service
	validate *validator.Validate
}

func registerAdminAPI(g *echo.Group, deps ServerDeps) {
	api := adminApi{
		conf:     deps.Conf,
		svc:      deps.CoverageSvc,
		validate: deps.Validate,
	}

	ag := g.Group("/admin")

	// un-authed endpoints
	ag.POST("/login", api.login)

	// authed endpoints
	cg := ag.Group("/coverage", adminMiddleware(api.conf))
	cg.GET("", api.query)

	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *adminApi) login(ctx echo.Context) error {
	var data loginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to loginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := authenticate(data.Password, api.conf)
	if err != nil {
		return err
	}
	token, err := GenerateToken(claims, api.conf)
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, loginResponse{Token: token})
}

// query lists records flat, most recently updated first. The class filter
// narrows to matching-class records only; the search term matches per record.
func (api *adminApi) query(ctx echo.Context) error {
	var query adminListQuery
	if err := ctx.Bind(&query); err != nil {
		return errors.Wrap(err, "binding to adminListQuery")
	}
	if err := query.Validate(api.validate); err != nil {
		return err
	}

	records, err := api.svc.Query(ctx.Request().Context(), &coverage.QueryFilter{
		Class: syllabus.Class(query.Class),
	})
	if err != nil {
		return errors.Wrap(err, "querying coverage")
	}

	records = coverage.FilterRecords(records, query.Search)
	return ctx.JSON(http.StatusOK, adminListResponse{Records: records, Total: len(records)})
}

func (api *adminApi) retrieve(ctx echo.Context) error {
	rec, err := api.getObject(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, coverageResponse{Data: rec.Data, Meta: newCoverageMeta(rec)})
}

func (api *adminApi) update(ctx echo.Context) error {
	rec, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	var data updateCoverageRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to updateCoverageRequest")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	rec, err = api.svc.Replace(ctx.Request().Context(), rec.Phone, rec.Class, data.Data)
	if err != nil {
		return errors.Wrap(err, "replacing coverage")
	}

	return ctx.JSON(http.StatusOK, coverageResponse{
		Data:    rec.Data,
		Meta:    newCoverageMeta(rec),
		Message: "Coverage saved successfully.",
	})
}

func (api *adminApi) destroy(ctx echo.Context) error {
	rec, err := api.getObject(ctx)
	if err != nil {
		return err
	}

	if err = api.svc.RemoveByID(ctx.Request().Context(), rec.ID); err != nil {
		return errors.Wrap(err, "deleting coverage")
	}
	return ctx.JSON(http.StatusOK, deleteResponse{Record: rec, Message: "Coverage deleted successfully."})
}

func (api *adminApi) getObject(ctx echo.Context) (coverage.Record, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return coverage.Record{}, core.NewValidationError(nil,
			core.FieldError{Field: "id", Error: "must be a number"})
	}

	rec, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == coverage.ErrNotFound {
			return coverage.Record{}, errHttpNotFound
		}
		return coverage.Record{}, errors.Wrap(err, "finding coverage by ID")
	}
	return rec, nil
}
