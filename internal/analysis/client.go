package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shenikar/eudr_ingestion_system/internal/config"
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/metrics"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultChunkSize - размер чанка, если настройка не задана
const DefaultChunkSize = 500

// сколько байт тела ошибки провайдера попадает в лог
const errorBodyLimit = 1024

// Client - клиент провайдера анализа риска вырубки
type Client struct {
	url        string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

type analysisResponse struct {
	Data []models.AnalysisRecord `json:"data"`
}

// NewClient создает клиента. ANALYSIS_RATE_PER_MINUTE <= 0 отключает ограничение частоты.
func NewClient(cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) *Client {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.AnalysisRatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.AnalysisRatePerMinute)), 1)
	}
	return &Client{
		url: cfg.AnalysisURL,
		httpClient: &http.Client{
			Timeout: cfg.AnalysisTimeout,
		},
		limiter: limiter,
		logger:  logger,
		metrics: m,
	}
}

// Analyze отправляет участки провайдеру последовательными чанками и склеивает ответы.
// Результат i соответствует участку i. Любой сбой чанка прерывает анализ без частичных результатов.
func (c *Client) Analyze(ctx context.Context, fc models.FeatureCollection, chunkSize int) ([]models.AnalysisRecord, error) {
	log := c.logger.WithFields(logrus.Fields{
		"component": "analysis",
		"method":    "Analyze",
		"features":  len(fc.Features),
	})

	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	flat := geometry.FlattenCollection(fc)
	total := len(flat.Features)
	results := make([]models.AnalysisRecord, 0, total)

	for chunk, start := 0, 0; start < total; chunk, start = chunk+1, start+chunkSize {
		end := min(start+chunkSize, total)
		batch := models.FeatureCollection{
			Type:           flat.Type,
			Features:       flat.Features[start:end],
			GenerateGeoids: flat.GenerateGeoids,
		}

		records, err := c.analyzeChunk(ctx, chunk, batch)
		if err != nil {
			log.WithError(err).WithField("chunk", chunk).Error("Analysis chunk failed, aborting batch")
			return nil, err
		}
		results = append(results, records...)
		log.WithFields(logrus.Fields{"chunk": chunk, "from": start, "to": end}).Debug("Analysis chunk completed")
	}

	log.Info("Analysis completed")
	return results, nil
}

func (c *Client) analyzeChunk(ctx context.Context, chunk int, batch models.FeatureCollection) ([]models.AnalysisRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &ProviderError{Chunk: chunk, Err: fmt.Errorf("%w: %v", classify(err), err)}
	}

	body, err := json.Marshal(batch)
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to marshal chunk %d: %w", chunk, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("analysis: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.ObserveChunk(false, time.Since(started))
		return nil, &ProviderError{Chunk: chunk, Err: fmt.Errorf("%w: %v", classify(err), err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.ObserveChunk(false, time.Since(started))
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		c.logger.WithFields(logrus.Fields{
			"chunk":  chunk,
			"status": resp.StatusCode,
			"body":   string(snippet),
		}).Warn("Analysis provider returned non-success status")
		return nil, &ProviderError{Chunk: chunk, StatusCode: resp.StatusCode, Err: ErrProviderUnavailable}
	}

	var decoded analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.metrics.ObserveChunk(false, time.Since(started))
		return nil, &ProviderError{Chunk: chunk, StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: invalid response: %v", classify(err), err)}
	}
	if len(decoded.Data) != len(batch.Features) {
		c.metrics.ObserveChunk(false, time.Since(started))
		return nil, &ProviderError{
			Chunk:      chunk,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: expected %d results, got %d", ErrProviderUnavailable, len(batch.Features), len(decoded.Data)),
		}
	}

	c.metrics.ObserveChunk(true, time.Since(started))
	return decoded.Data, nil
}
