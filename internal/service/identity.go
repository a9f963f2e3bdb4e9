package service

import (
	"sort"
	"strings"

	"github.com/shenikar/eudr_ingestion_system/internal/models"
)

// IdentityKey - ключ сериализации записей одного участка внутри транзакции.
// Записи с remote_id блокируются по нему, остальные по (farmer_name, collection_site).
func IdentityKey(farm *models.FarmRecord) string {
	if farm.RemoteID != nil && *farm.RemoteID != "" {
		return "remote:" + *farm.RemoteID
	}
	return "farm:" + strings.ToLower(farm.FarmerName) + "|" + strings.ToLower(farm.CollectionSite)
}

// RankCandidates отбирает существующие записи, совпадающие с входной по нестрогому ключу:
// то же (farmer_name, collection_site), непустой контур и совпадение широты или долготы
// (если входные координаты не обе нулевые). Совпадение обеих координат ранжируется выше,
// при равенстве - более свежая запись.
//
// Разные участки с одинаковыми именем и пунктом сбора могут совпасть ложно.
func RankCandidates(farm *models.FarmRecord, candidates []*models.FarmRecord) []*models.FarmRecord {
	zeroCoords := farm.Latitude == 0 && farm.Longitude == 0

	type scored struct {
		farm  *models.FarmRecord
		score int
	}
	matches := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		if c.FarmerName != farm.FarmerName || c.CollectionSite != farm.CollectionSite {
			continue
		}
		if !c.HasPolygon() {
			continue
		}
		score := 0
		if c.Latitude == farm.Latitude {
			score++
		}
		if c.Longitude == farm.Longitude {
			score++
		}
		if !zeroCoords && score == 0 {
			continue
		}
		matches = append(matches, scored{farm: c, score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].farm.UpdatedAt.After(matches[j].farm.UpdatedAt)
	})

	out := make([]*models.FarmRecord, len(matches))
	for i, m := range matches {
		out[i] = m.farm
	}
	return out
}
