package dto

import "github.com/transport-service/internal/domain"

// UsageResponse - ответ /stats
type UsageResponse struct {
	Operations map[string]domain.OperationStats `json:"operations"`
	Costings   map[string]int64                 `json:"costings"`
	Cached     bool                             `json:"cached"`
}
