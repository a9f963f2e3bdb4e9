package v1

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
	"github.com/sirupsen/logrus"
)

// максимальный размер загружаемого файла
const maxUploadSize = 32 << 20

type Handler struct {
	ingestionService service.IngestionService
	farmService      service.FarmService
	logger           *logrus.Logger
	validate         *validator.Validate
	cfg              *config.Config
}

func NewHandler(ingestionService service.IngestionService, farmService service.FarmService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		ingestionService: ingestionService,
		farmService:      farmService,
		logger:           logger,
		validate:         validator.New(),
		cfg:              cfg,
	}
}

// @Summary Upload farms file
// @Description Upload a CSV or GeoJSON file with farm plots. The batch is validated, analyzed for deforestation risk and stored atomically. Requires API key.
// @Tags Farms
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "CSV or GeoJSON file"
// @Param format query string false "csv or geojson; derived from the file extension when omitted"
// @Param file_name formData string false "Logical file name; defaults to the uploaded file name"
// @Param uploaded_by formData string false "Uploader identity"
// @Success 201 {object} BatchResponse
// @Failure 400 {object} ErrorResponse "Invalid file or validation errors"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} ErrorResponse "Record could not be stored"
// @Failure 502 {object} ErrorResponse "Risk analysis provider failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farms/upload [post]
func (h *Handler) uploadFarms(c *gin.Context) {
	log := h.logger.WithField("method", "uploadFarms")

	header, err := c.FormFile("file")
	if err != nil {
		log.WithError(err).Warn("File is missing from request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file is too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	format, ok := parseFormat(c.Query("format"), ext)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be csv or geojson"})
		return
	}

	f, err := header.Open()
	if err != nil {
		log.WithError(err).Error("Failed to open uploaded file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	fileName := c.PostForm("file_name")
	if fileName == "" {
		fileName = strings.TrimSuffix(filepath.Base(header.Filename), filepath.Ext(header.Filename))
	}
	req := models.IngestRequest{
		Format:     format,
		FileName:   fileName,
		UploadedBy: c.PostForm("uploaded_by"),
	}

	switch format {
	case models.FormatCSV:
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		if err != nil {
			log.WithError(err).Warn("Failed to parse CSV")
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid CSV: " + err.Error()})
			return
		}
		req.Rows = rows
	case models.FormatGeoJSON:
		data, err := io.ReadAll(f)
		if err != nil {
			log.WithError(err).Error("Failed to read uploaded file")
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
			return
		}
		req.GeoJSON = data
	}

	log = log.WithFields(logrus.Fields{"file_name": fileName, "format": format})
	result, err := h.ingestionService.Ingest(c.Request.Context(), req)
	if err != nil {
		writeError(c, log, err, result)
		return
	}
	c.JSON(http.StatusCreated, ModelToBatchResponse(result))
}

// @Summary Sync farms from a device
// @Description Store farm records collected by a mobile device. Records are matched by remote_id. Requires API key.
// @Tags Farms
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sync body SyncRequest true "Sync request"
// @Success 201 {object} BatchResponse
// @Failure 400 {object} ErrorResponse "Invalid request body or validation errors"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 422 {object} ErrorResponse "Record could not be stored"
// @Failure 502 {object} ErrorResponse "Risk analysis provider failed"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farms/sync [post]
func (h *Handler) syncFarms(c *gin.Context) {
	var input SyncRequest
	log := h.logger.WithField("method", "syncFarms")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req, err := DTOToSyncRequest(input)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	result, err := h.ingestionService.Sync(c.Request.Context(), req)
	if err != nil {
		writeError(c, log, err, result)
		return
	}
	c.JSON(http.StatusCreated, ModelToBatchResponse(result))
}

// @Summary Get a list of farms
// @Description Get a paginated list of farms. Requires API key.
// @Tags Farms
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} FarmResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farms [get]
func (h *Handler) listFarms(c *gin.Context) {
	log := h.logger.WithField("method", "listFarms")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	farms, err := h.farmService.ListFarms(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, ModelsToFarmResponses(farms))
}

// @Summary Get farm by ID
// @Description Get a single farm with its analysis result. Requires API key.
// @Tags Farms
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Farm ID"
// @Success 200 {object} FarmResponse
// @Failure 400 {object} map[string]string "Invalid farm ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} ErrorResponse "Farm not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /farms/{id} [get]
func (h *Handler) getFarm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid farm ID"})
		return
	}
	log := h.logger.WithField("method", "getFarm").WithField("id", id)

	farm, err := h.farmService.GetFarm(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, ModelToFarmResponse(farm))
}

// @Summary Get a list of uploaded files
// @Description Get a paginated list of uploaded files and device syncs. Requires API key.
// @Tags Files
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Number of items per page" default(20)
// @Success 200 {array} FileResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /files [get]
func (h *Handler) listFiles(c *gin.Context) {
	log := h.logger.WithField("method", "listFiles")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	files, err := h.farmService.ListFiles(c.Request.Context(), page, pageSize)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, ModelsToFileResponses(files))
}

// @Summary Get uploaded file by ID
// @Tags Files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "File ID"
// @Success 200 {object} FileResponse
// @Failure 400 {object} map[string]string "Invalid file ID"
// @Failure 404 {object} ErrorResponse "File not found"
// @Router /files/{id} [get]
func (h *Handler) getFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return
	}
	log := h.logger.WithField("method", "getFile").WithField("id", id)

	file, err := h.farmService.GetFile(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, ModelToFileResponse(file))
}

// @Summary Get farms of an uploaded file
// @Tags Files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "File ID"
// @Success 200 {array} FarmResponse
// @Failure 400 {object} map[string]string "Invalid file ID"
// @Failure 404 {object} ErrorResponse "File not found"
// @Router /files/{id}/farms [get]
func (h *Handler) listFileFarms(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return
	}
	log := h.logger.WithField("method", "listFileFarms").WithField("id", id)

	farms, err := h.farmService.ListFileFarms(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, ModelsToFarmResponses(farms))
}

// @Summary Reanalyze farms of a file
// @Description Send the stored farms of a file to the risk analysis provider again and update their results. Requires API key.
// @Tags Files
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "File ID"
// @Success 200 {object} BatchResponse
// @Failure 400 {object} map[string]string "Invalid file ID"
// @Failure 404 {object} ErrorResponse "File not found"
// @Failure 502 {object} ErrorResponse "Risk analysis provider failed"
// @Router /files/{id}/reanalyze [post]
func (h *Handler) reanalyzeFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return
	}
	log := h.logger.WithField("method", "reanalyzeFile").WithField("id", id)

	result, err := h.ingestionService.Reanalyze(c.Request.Context(), id)
	if err != nil {
		writeError(c, log, err, result)
		return
	}
	c.JSON(http.StatusOK, ModelToBatchResponse(result))
}

// @Summary Export farms of a file
// @Description Download the farms of a file as CSV or GeoJSON. The CSV export can be uploaded again. Requires API key.
// @Tags Files
// @Produce text/csv
// @Produce application/geo+json
// @Security ApiKeyAuth
// @Param id path string true "File ID"
// @Param format query string false "csv or geojson" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid file ID or format"
// @Failure 404 {object} ErrorResponse "File not found"
// @Router /files/{id}/export [get]
func (h *Handler) exportFile(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file ID"})
		return
	}
	log := h.logger.WithField("method", "exportFile").WithField("id", id)
	format := models.SourceFormat(c.DefaultQuery("format", string(models.FormatCSV)))

	var buf bytes.Buffer
	if err := h.farmService.Export(c.Request.Context(), id, format, &buf); err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="farms_%s.%s"`, id, format))
	c.Data(http.StatusOK, contentType(format), buf.Bytes())
}

// @Summary Download upload template
// @Tags Files
// @Produce text/csv
// @Produce application/geo+json
// @Security ApiKeyAuth
// @Param format query string false "csv or geojson" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} ErrorResponse "Invalid format"
// @Router /templates [get]
func (h *Handler) downloadTemplate(c *gin.Context) {
	log := h.logger.WithField("method", "downloadTemplate")
	format := models.SourceFormat(c.DefaultQuery("format", string(models.FormatCSV)))

	var buf bytes.Buffer
	if err := h.farmService.Template(format, &buf); err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="template.%s"`, format))
	c.Data(http.StatusOK, contentType(format), buf.Bytes())
}

// @Summary Get risk layer
// @Description Get a GeoJSON FeatureCollection of farms with the given EUDR risk level. Requires API key.
// @Tags Map
// @Produce json
// @Security ApiKeyAuth
// @Param level path string true "low, medium, high or more_info_needed"
// @Success 200 {object} object "FeatureCollection"
// @Failure 400 {object} ErrorResponse "Invalid risk level"
// @Router /map/risk-layers/{level} [get]
func (h *Handler) getRiskLayer(c *gin.Context) {
	level := models.RiskLevel(c.Param("level"))
	log := h.logger.WithField("method", "getRiskLayer").WithField("level", level)

	layer, err := h.farmService.RiskLayer(c.Request.Context(), level)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, layer)
}

// @Summary Get analysis settings
// @Tags Settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} AnalysisSettingsResponse
// @Router /settings/analysis [get]
func (h *Handler) getAnalysisSettings(c *gin.Context) {
	log := h.logger.WithField("method", "getAnalysisSettings")

	setting, err := h.farmService.GetAnalysisSettings(c.Request.Context())
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, AnalysisSettingsResponse{ChunkSize: setting.ChunkSize, UpdatedAt: setting.UpdatedAt})
}

// @Summary Update analysis settings
// @Description Change the number of farms sent to the risk analysis provider per request. Applies to the next batch. Requires API key.
// @Tags Settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param settings body AnalysisSettingsRequest true "Analysis settings"
// @Success 200 {object} AnalysisSettingsResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Router /settings/analysis [put]
func (h *Handler) updateAnalysisSettings(c *gin.Context) {
	var input AnalysisSettingsRequest
	log := h.logger.WithField("method", "updateAnalysisSettings")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	setting, err := h.farmService.UpdateAnalysisSettings(c.Request.Context(), input.ChunkSize)
	if err != nil {
		writeError(c, log, err, nil)
		return
	}
	c.JSON(http.StatusOK, AnalysisSettingsResponse{ChunkSize: setting.ChunkSize, UpdatedAt: setting.UpdatedAt})
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseFormat определяет формат по параметру запроса или расширению файла
func parseFormat(query, ext string) (models.SourceFormat, bool) {
	if query != "" {
		ext = "." + strings.ToLower(query)
	}
	switch ext {
	case ".csv":
		return models.FormatCSV, true
	case ".geojson", ".json":
		return models.FormatGeoJSON, true
	}
	return "", false
}

func contentType(format models.SourceFormat) string {
	if format == models.FormatGeoJSON {
		return "application/geo+json"
	}
	return "text/csv; charset=utf-8"
}
