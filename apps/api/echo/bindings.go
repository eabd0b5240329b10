package echoapi

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/syllabio/backend/core"
	"github.com/syllabio/backend/core/coverage"
	"github.com/syllabio/backend/core/syllabus"
)

type (
	coverageQuery struct {
		Phone string `query:"phone" json:"phone" validate:"required,phone"`
		Class string `query:"student_class" json:"student_class" validate:"required,studentclass"`
	}

	saveCoverageRequest struct {
		Phone string        `json:"phone" validate:"required,phone"`
		Class string        `json:"student_class" validate:"required,studentclass"`
		Data  coverage.Data `json:"data" validate:"required"`
	}

	loginRequest struct {
		Password string `json:"password" validate:"required"`
	}

	loginResponse struct {
		Token string `json:"token"`
	}

	updateCoverageRequest struct {
		Data coverage.Data `json:"data" validate:"required"`
	}

	adminListQuery struct {
		Class  string `query:"student_class" json:"student_class" validate:"omitempty,studentclass"`
		Search string `query:"search" json:"search"`
	}

	coverageMeta struct {
		ID        int            `json:"id"`
		Phone     string         `json:"phone"`
		Class     syllabus.Class `json:"student_class"`
		CreatedAt time.Time      `json:"created_at"`
		UpdatedAt time.Time      `json:"updated_at"`
	}

	coverageResponse struct {
		Data    coverage.Data `json:"data"`
		Meta    coverageMeta  `json:"meta"`
		IsNew   *bool         `json:"is_new,omitempty"`
		Message string        `json:"message,omitempty"`
	}

	adminListResponse struct {
		Records []coverage.Record `json:"records"`
		Total   int               `json:"total"`
	}

	deleteResponse struct {
		Record  coverage.Record `json:"record"`
		Message string          `json:"message"`
	}
)

func newCoverageMeta(rec coverage.Record) coverageMeta {
	return coverageMeta{
		ID:        rec.ID,
		Phone:     rec.Phone,
		Class:     rec.Class,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
}

func (cq *coverageQuery) Validate(validate *validator.Validate) error {
	cq.Phone = core.CleanString(cq.Phone)
	cq.Class = core.CleanString(cq.Class)
	return validate.Struct(cq)
}

func (sr *saveCoverageRequest) Validate(validate *validator.Validate) error {
	sr.Phone = core.CleanString(sr.Phone)
	sr.Class = core.CleanString(sr.Class)
	return validate.Struct(sr)
}

func (lq *adminListQuery) Validate(validate *validator.Validate) error {
	lq.Class = core.CleanString(lq.Class)
	return validate.Struct(lq)
}

func (lr *loginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

func (ur *updateCoverageRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(ur)
}
