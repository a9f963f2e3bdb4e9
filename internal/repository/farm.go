package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
)

const farmColumns = `
	id, file_id, remote_id, farmer_name, farm_size, collection_site, agent_name, member_id,
	farm_village, farm_district, commodity, latitude, longitude, polygon, polygon_type,
	accuracies, geoid, analysis, created_at, updated_at`

// querier - общее подмножество пула и транзакции
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type FarmRepository struct {
	db *pgxpool.Pool
}

func NewFarmRepository(db *pgxpool.Pool) service.FarmRepository {
	return &FarmRepository{db: db}
}

// BeginBatch открывает транзакцию для записи пакета участков
func (r *FarmRepository) BeginBatch(ctx context.Context) (service.FarmBatch, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin farm transaction: %w", err)
	}
	return &farmBatch{tx: tx}, nil
}

// GetByID возвращает участок по его UUID
func (r *FarmRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error) {
	return getFarm(ctx, r.db, `SELECT `+farmColumns+` FROM farms WHERE id = $1;`, id)
}

// ListFarms возвращает список участков с пагинацией
func (r *FarmRepository) ListFarms(ctx context.Context, page, pageSize int) ([]*models.FarmRecord, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + farmColumns + ` FROM farms ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	return listFarms(ctx, r.db, query, pageSize, offset)
}

// ListByFile возвращает участки файла в порядке создания
func (r *FarmRepository) ListByFile(ctx context.Context, fileID uuid.UUID) ([]*models.FarmRecord, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE file_id = $1 ORDER BY created_at, id;`
	return listFarms(ctx, r.db, query, fileID)
}

// ListByRiskLevel возвращает участки с заданным уровнем риска EUDR
func (r *FarmRepository) ListByRiskLevel(ctx context.Context, level models.RiskLevel) ([]*models.FarmRecord, error) {
	query := `SELECT ` + farmColumns + ` FROM farms WHERE analysis->>'eudr_risk_level' = $1 ORDER BY id;`
	return listFarms(ctx, r.db, query, string(level))
}

// SetGeoid сохраняет geo-ID, выданный реестром
func (r *FarmRepository) SetGeoid(ctx context.Context, id uuid.UUID, geoid string) error {
	query := `UPDATE farms SET geoid = $1, updated_at = NOW() WHERE id = $2;`
	cmdTag, err := r.db.Exec(ctx, query, geoid, id)
	if err != nil {
		return fmt.Errorf("failed to set farm geoid: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("farm with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// farmBatch - реализация service.FarmBatch поверх одной транзакции pgx
type farmBatch struct {
	tx pgx.Tx
}

// LockIdentity берет транзакционную advisory-блокировку ключа участка.
// Блокировка снимается при фиксации или откате.
func (b *farmBatch) LockIdentity(ctx context.Context, key string) error {
	if _, err := b.tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, key); err != nil {
		return fmt.Errorf("failed to lock farm identity: %w", err)
	}
	return nil
}

func (b *farmBatch) FindByID(ctx context.Context, id uuid.UUID) (*models.FarmRecord, error) {
	return getFarm(ctx, b.tx, `SELECT `+farmColumns+` FROM farms WHERE id = $1;`, id)
}

func (b *farmBatch) FindByRemoteID(ctx context.Context, remoteID string) (*models.FarmRecord, error) {
	return getFarm(ctx, b.tx, `SELECT `+farmColumns+` FROM farms WHERE remote_id = $1;`, remoteID)
}

// FindCandidates возвращает записи с тем же (farmer_name, collection_site)
func (b *farmBatch) FindCandidates(ctx context.Context, farmerName, collectionSite string) ([]*models.FarmRecord, error) {
	query := `
		SELECT ` + farmColumns + `
		FROM farms
		WHERE farmer_name = $1 AND collection_site = $2
		ORDER BY updated_at DESC;
	`
	return listFarms(ctx, b.tx, query, farmerName, collectionSite)
}

// Insert создает участок
func (b *farmBatch) Insert(ctx context.Context, farm *models.FarmRecord) error {
	args, err := farmArgs(farm)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO farms (
			file_id, remote_id, farmer_name, farm_size, collection_site, agent_name, member_id,
			farm_village, farm_district, commodity, latitude, longitude, polygon, polygon_type,
			accuracies, geoid, analysis
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id, created_at, updated_at;
	`
	if err := b.tx.QueryRow(ctx, query, args...).Scan(&farm.ID, &farm.CreatedAt, &farm.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert farm: %w", err)
	}
	return nil
}

// Update перезаписывает участок новыми значениями
func (b *farmBatch) Update(ctx context.Context, farm *models.FarmRecord) error {
	args, err := farmArgs(farm)
	if err != nil {
		return err
	}
	query := `
		UPDATE farms SET
			file_id = $1,
			remote_id = $2,
			farmer_name = $3,
			farm_size = $4,
			collection_site = $5,
			agent_name = $6,
			member_id = $7,
			farm_village = $8,
			farm_district = $9,
			commodity = $10,
			latitude = $11,
			longitude = $12,
			polygon = $13,
			polygon_type = $14,
			accuracies = $15,
			geoid = $16,
			analysis = $17,
			updated_at = NOW()
		WHERE id = $18
		RETURNING updated_at;
	`
	err = b.tx.QueryRow(ctx, query, append(args, farm.ID)...).Scan(&farm.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("farm with id %s not found for update: %w", farm.ID, service.ErrNotFound)
		}
		return fmt.Errorf("failed to update farm: %w", err)
	}
	return nil
}

func (b *farmBatch) Commit(ctx context.Context) error {
	if err := b.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit farm transaction: %w", err)
	}
	return nil
}

func (b *farmBatch) Rollback(ctx context.Context) error {
	if err := b.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to roll back farm transaction: %w", err)
	}
	return nil
}

// farmArgs - параметры INSERT/UPDATE в порядке колонок; jsonb-поля кодируются явно
func farmArgs(farm *models.FarmRecord) ([]any, error) {
	polygon := farm.Polygon
	if polygon == nil {
		polygon = [][][]float64{}
	}
	polygonJSON, err := json.Marshal(polygon)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal farm polygon: %w", err)
	}
	accuracies := farm.Accuracies
	if accuracies == nil {
		accuracies = []float64{}
	}
	accuraciesJSON, err := json.Marshal(accuracies)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal farm accuracies: %w", err)
	}
	var analysisJSON []byte
	if farm.Analysis != nil {
		if analysisJSON, err = json.Marshal(farm.Analysis); err != nil {
			return nil, fmt.Errorf("failed to marshal farm analysis: %w", err)
		}
	}

	return []any{
		farm.FileID,
		farm.RemoteID,
		farm.FarmerName,
		farm.FarmSize,
		farm.CollectionSite,
		farm.AgentName,
		farm.MemberID,
		farm.FarmVillage,
		farm.FarmDistrict,
		farm.Commodity,
		farm.Latitude,
		farm.Longitude,
		polygonJSON,
		string(farm.PolygonType),
		accuraciesJSON,
		farm.Geoid,
		analysisJSON,
	}, nil
}

func getFarm(ctx context.Context, q querier, query string, arg any) (*models.FarmRecord, error) {
	farm, err := scanFarm(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("farm %v: %w", arg, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get farm: %w", err)
	}
	return farm, nil
}

func listFarms(ctx context.Context, q querier, query string, args ...any) ([]*models.FarmRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list farms: %w", err)
	}
	defer rows.Close()

	farms := make([]*models.FarmRecord, 0)
	for rows.Next() {
		farm, err := scanFarm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan farm row: %w", err)
		}
		farms = append(farms, farm)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return farms, nil
}

func scanFarm(row pgx.Row) (*models.FarmRecord, error) {
	farm := &models.FarmRecord{}
	var (
		polygonType    string
		polygonJSON    []byte
		accuraciesJSON []byte
		analysisJSON   []byte
	)
	err := row.Scan(
		&farm.ID,
		&farm.FileID,
		&farm.RemoteID,
		&farm.FarmerName,
		&farm.FarmSize,
		&farm.CollectionSite,
		&farm.AgentName,
		&farm.MemberID,
		&farm.FarmVillage,
		&farm.FarmDistrict,
		&farm.Commodity,
		&farm.Latitude,
		&farm.Longitude,
		&polygonJSON,
		&polygonType,
		&accuraciesJSON,
		&farm.Geoid,
		&analysisJSON,
		&farm.CreatedAt,
		&farm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	farm.PolygonType = models.GeometryType(polygonType)
	if len(polygonJSON) > 0 {
		if err := json.Unmarshal(polygonJSON, &farm.Polygon); err != nil {
			return nil, fmt.Errorf("failed to unmarshal farm polygon: %w", err)
		}
	}
	if len(accuraciesJSON) > 0 {
		if err := json.Unmarshal(accuraciesJSON, &farm.Accuracies); err != nil {
			return nil, fmt.Errorf("failed to unmarshal farm accuracies: %w", err)
		}
	}
	if len(analysisJSON) > 0 {
		farm.Analysis = &models.AnalysisResult{}
		if err := json.Unmarshal(analysisJSON, farm.Analysis); err != nil {
			return nil, fmt.Errorf("failed to unmarshal farm analysis: %w", err)
		}
	}
	return farm, nil
}
