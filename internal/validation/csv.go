package validation

import (
	"fmt"
	"slices"

	"github.com/shenikar/eudr_ingestion_system/internal/geometry"
)

// PolygonRequiredHectares - начиная с этой площади участок должен иметь контур
const PolygonRequiredHectares = 4.0

var RequiredFields = []string{
	"farmer_name",
	"farm_size",
	"collection_site",
	"farm_district",
	"farm_village",
	"latitude",
	"longitude",
	"polygon",
	"commodity",
}

var OptionalFields = []string{
	"remote_id",
	"member_id",
	"agent_name",
	"created_at",
	"updated_at",
	"accuracyArray",
	"accuracies",
}

// строковые поля, которые не могут быть пустыми в строке CSV
var requiredTextFields = []string{"farmer_name", "collection_site", "farm_district", "farm_village", "commodity"}

// IsValidPolygon проверяет внешний контур: не меньше 3 пар, в каждой ровно 2 координаты.
// Внутренние контуры (дыры) не проверяются.
func IsValidPolygon(rings [][][]float64) bool {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return false
	}
	for _, pair := range rings[0] {
		if len(pair) != 2 {
			return false
		}
	}
	return true
}

// ValidateCSV проверяет строки CSV (первая строка - заголовок). Вход не изменяется.
// Ошибки заголовка отклоняют пакет до проверки строк.
func ValidateCSV(rows [][]string) Errors {
	if len(rows) == 0 {
		return Errors{batchError("CSV has no header row.")}
	}
	header := geometry.Header(rows[0])

	var errs Errors
	for _, field := range RequiredFields {
		if !slices.Contains(header, field) {
			errs = append(errs, batchError(fmt.Sprintf("%q is required.", field)))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	for _, field := range header {
		if !slices.Contains(RequiredFields, field) && !slices.Contains(OptionalFields, field) {
			errs = append(errs, batchError(fmt.Sprintf("%q is not a valid field.", field)))
		}
	}
	if len(errs) > 0 {
		return errs
	}

	dataRows := 0
	for i, row := range rows[1:] {
		if geometry.IsBlankRow(row) {
			continue
		}
		dataRows++
		errs = append(errs, validateCSVRecord(i+1, geometry.ZipRow(header, row))...)
	}
	if dataRows == 0 {
		errs = append(errs, batchError("CSV has no data rows."))
	}
	return errs
}

func validateCSVRecord(index int, record map[string]string) Errors {
	var errs Errors

	for _, field := range requiredTextFields {
		if record[field] == "" {
			errs = append(errs, recordError(index, field, fmt.Sprintf("%q is required.", field)))
		}
	}

	farmSize, sizeErr := geometry.ParseNumber(record["farm_size"], 0)
	if record["farm_size"] == "" || sizeErr != nil {
		errs = append(errs, recordError(index, "farm_size", `"farm_size" must be a number.`))
	}
	if _, err := geometry.ParseNumber(record["latitude"], 0); err != nil {
		errs = append(errs, recordError(index, "latitude", `"latitude" must be a number.`))
	}
	if _, err := geometry.ParseNumber(record["longitude"], 0); err != nil {
		errs = append(errs, recordError(index, "longitude", `"longitude" must be a number.`))
	}

	literal := record["polygon"]
	if geometry.IsEmptyPolygonLiteral(literal) {
		if sizeErr == nil && farmSize >= PolygonRequiredHectares {
			errs = append(errs, recordError(index, "polygon",
				fmt.Sprintf("Farms of %g hectares or more require a valid polygon.", PolygonRequiredHectares)))
		}
		return errs
	}

	rings, err := geometry.ParsePolygonLiteral(literal)
	if err != nil {
		errs = append(errs, recordError(index, "polygon", `"polygon" must be a valid list.`))
		return errs
	}
	if !IsValidPolygon(rings) {
		errs = append(errs, recordError(index, "polygon", "Should have valid polygon format."))
	}
	return errs
}
