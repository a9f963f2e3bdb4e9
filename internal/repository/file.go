package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/service"
)

const fileColumns = `id, file_name, uploaded_by, device_id, created_at, updated_at`

type FileRepository struct {
	db *pgxpool.Pool
}

func NewFileRepository(db *pgxpool.Pool) service.FileRepository {
	return &FileRepository{db: db}
}

// CreateFile создает запись о загруженном файле
func (r *FileRepository) CreateFile(ctx context.Context, file *models.UploadedFile) error {
	query := `
		INSERT INTO uploaded_files (file_name, uploaded_by, device_id)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		file.FileName,
		file.UploadedBy,
		file.DeviceID,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create uploaded file: %w", err)
	}
	return nil
}

// FindFileByName ищет файл по имени
func (r *FileRepository) FindFileByName(ctx context.Context, fileName string) (*models.UploadedFile, error) {
	query := `SELECT ` + fileColumns + ` FROM uploaded_files WHERE file_name = $1;`
	return r.getOne(ctx, query, fileName)
}

// FindFileByDevice ищет файл синхронизации устройства
func (r *FileRepository) FindFileByDevice(ctx context.Context, deviceID string) (*models.UploadedFile, error) {
	query := `SELECT ` + fileColumns + ` FROM uploaded_files WHERE device_id = $1 ORDER BY created_at LIMIT 1;`
	return r.getOne(ctx, query, deviceID)
}

// GetFile возвращает файл по его UUID
func (r *FileRepository) GetFile(ctx context.Context, id uuid.UUID) (*models.UploadedFile, error) {
	query := `SELECT ` + fileColumns + ` FROM uploaded_files WHERE id = $1;`
	return r.getOne(ctx, query, id)
}

// DeleteFile удаляет файл; участки файла удаляются каскадно
func (r *FileRepository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM uploaded_files WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete uploaded file: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("uploaded file with id %s: %w", id, service.ErrNotFound)
	}
	return nil
}

// ListFiles возвращает список файлов с пагинацией
func (r *FileRepository) ListFiles(ctx context.Context, page, pageSize int) ([]*models.UploadedFile, error) {
	offset := (page - 1) * pageSize

	query := `SELECT ` + fileColumns + ` FROM uploaded_files ORDER BY created_at DESC LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list uploaded files: %w", err)
	}
	defer rows.Close()

	files := make([]*models.UploadedFile, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan uploaded file row: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return files, nil
}

func (r *FileRepository) getOne(ctx context.Context, query string, arg any) (*models.UploadedFile, error) {
	file, err := scanFile(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("uploaded file %v: %w", arg, service.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get uploaded file: %w", err)
	}
	return file, nil
}

func scanFile(row pgx.Row) (*models.UploadedFile, error) {
	file := &models.UploadedFile{}
	err := row.Scan(
		&file.ID,
		&file.FileName,
		&file.UploadedBy,
		&file.DeviceID,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return file, nil
}
