package v1

import (
	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
	"github.com/shenikar/eudr_ingestion_system/internal/models"
	"github.com/shenikar/eudr_ingestion_system/internal/validation"
)

// DTOToSyncRequest преобразует DTO синхронизации в запрос сервиса.
// Контур принимается в любой форме, которую понимает загрузка CSV.
func DTOToSyncRequest(dto SyncRequest) (models.SyncRequest, error) {
	req := models.SyncRequest{
		UploadedBy: dto.UploadedBy,
		Records:    make([]models.SyncRecord, len(dto.Records)),
	}
	for i, r := range dto.Records {
		var polygon [][][]float64
		if len(r.Polygon) > 0 && string(r.Polygon) != "null" {
			rings, err := geometry.ParsePolygonLiteral(string(r.Polygon))
			if err != nil {
				return models.SyncRequest{}, err
			}
			polygon = rings
		}
		req.Records[i] = models.SyncRecord{
			DeviceID:       r.DeviceID,
			RemoteID:       r.RemoteID,
			FarmerName:     r.FarmerName,
			FarmSize:       r.FarmSize,
			CollectionSite: r.CollectionSite,
			FarmVillage:    r.FarmVillage,
			FarmDistrict:   r.FarmDistrict,
			Latitude:       r.Latitude,
			Longitude:      r.Longitude,
			Polygon:        polygon,
			Commodity:      r.Commodity,
			MemberID:       r.MemberID,
			AgentName:      r.AgentName,
			Accuracies:     r.Accuracies,
		}
	}
	return req, nil
}

// ModelToFarmResponse преобразует доменную модель в DTO для ответа
func ModelToFarmResponse(model *models.FarmRecord) *FarmResponse {
	polygon := model.Polygon
	if polygon == nil {
		polygon = [][][]float64{}
	}
	return &FarmResponse{
		ID:             model.ID,
		FileID:         model.FileID,
		RemoteID:       model.RemoteID,
		FarmerName:     model.FarmerName,
		FarmSize:       model.FarmSize,
		CollectionSite: model.CollectionSite,
		AgentName:      model.AgentName,
		MemberID:       model.MemberID,
		FarmVillage:    model.FarmVillage,
		FarmDistrict:   model.FarmDistrict,
		Commodity:      model.Commodity,
		Latitude:       model.Latitude,
		Longitude:      model.Longitude,
		Polygon:        polygon,
		PolygonType:    model.PolygonType,
		Accuracies:     model.Accuracies,
		Geoid:          model.Geoid,
		Analysis:       model.Analysis,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// ModelsToFarmResponses преобразует слайс моделей в слайс DTO
func ModelsToFarmResponses(models []*models.FarmRecord) []*FarmResponse {
	responses := make([]*FarmResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToFarmResponse(model)
	}
	return responses
}

func ModelToFileResponse(model *models.UploadedFile) *FileResponse {
	return &FileResponse{
		ID:         model.ID,
		FileName:   model.FileName,
		UploadedBy: model.UploadedBy,
		DeviceID:   model.DeviceID,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func ModelsToFileResponses(models []*models.UploadedFile) []*FileResponse {
	responses := make([]*FileResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToFileResponse(model)
	}
	return responses
}

// ModelToBatchResponse преобразует итог пакета в DTO
func ModelToBatchResponse(result *models.BatchResult) *BatchResponse {
	resp := &BatchResponse{
		FileID: result.FileID,
		State:  string(result.State),
		Farms:  make([]*FarmResponse, len(result.Results)),
	}
	for i, r := range result.Results {
		if r.Created {
			resp.Created++
		} else {
			resp.Updated++
		}
		resp.Farms[i] = ModelToFarmResponse(r.Record)
	}
	return resp
}

// ValidationErrorsToIssues преобразует ошибки проверки в DTO
func ValidationErrorsToIssues(errs validation.Errors) []ValidationIssue {
	issues := make([]ValidationIssue, len(errs))
	for i, e := range errs {
		issues[i] = ValidationIssue{
			Scope:   e.Scope,
			Index:   e.Index,
			Field:   e.Field,
			Reason:  e.Reason,
			Message: e.Error(),
		}
	}
	return issues
}
