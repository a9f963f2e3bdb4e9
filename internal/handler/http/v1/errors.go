package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shenikar/eudr_ingestion_system/internal/analysis"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
	"github.com/sirupsen/logrus"
)

// writeError отображает ошибку сервиса в HTTP-ответ
func writeError(c *gin.Context, log *logrus.Entry, err error, result *models.BatchResult) {
	resp := ErrorResponse{}
	if result != nil {
		resp.State = string(result.State)
	}

	var (
		verrs validation.Errors
		perr  *service.PersistenceError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		resp.Error = "validation failed"
		resp.Errors = ValidationErrorsToIssues(verrs)
	case errors.Is(err, geometry.ErrMalformedGeometry):
		status = http.StatusBadRequest
		resp.Error = err.Error()
	case errors.Is(err, analysis.ErrNoFeatures):
		status = http.StatusBadRequest
		resp.Error = "no farms to analyze"
	case analysis.IsProviderError(err):
		status = http.StatusBadGateway
		resp.Error = "risk analysis provider failed: " + err.Error()
	case errors.As(err, &perr):
		status = http.StatusUnprocessableEntity
		resp.Error = perr.Error()
		resp.Fields = perr.Fields
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
		resp.Error = "not found"
	default:
		resp.Error = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Warn("Request rejected")
	}
	c.JSON(status, resp)
}
