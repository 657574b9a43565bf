package mapping

import (
	"github.com/juud-8/ContractorPro02-sub000/internal/core/domain"
	"github.com/juud-8/ContractorPro02-sub000/internal/models"
)

// ToModelSettings converts domain Settings to model Settings
func ToModelSettings(d domain.Settings) models.Settings {
	return models.Settings(d)
}

// ToDomainSettings converts model Settings to domain Settings
func ToDomainSettings(m models.Settings) domain.Settings {
	return domain.Settings(m)
}
