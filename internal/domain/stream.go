package domain

import "time"

// StreamAccounting - стрим событий учёта обращений к движку
const StreamAccounting = "stream:transport:accounting"

// AccountingEvent - одно обращение к движку маршрутизации
type AccountingEvent struct {
	Ticket         string    `json:"ticket" validate:"required,uuid"`
	Operation      Operation `json:"operation" validate:"required,operation"`
	Costing        string    `json:"costing,omitempty"`
	Success        bool      `json:"success"`
	StatusCode     int       `json:"status_code,omitempty" validate:"gte=0"`
	ExecutionStart time.Time `json:"execution_start" validate:"required"`
	ExecutionTime  float64   `json:"execution_time" validate:"gte=0"`
	Rows           int       `json:"rows,omitempty" validate:"gte=0"`
	RemoteAddr     string    `json:"remote_addr,omitempty"`
	Comment        string    `json:"comment,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
	// Reclaimed - сообщение забрано из pending другого (или этого же) потребителя
	// после простоя, т.е. это повторная доставка
	Reclaimed bool
}

// UsageStats - накопленная статистика обращений
type UsageStats struct {
	Operations  map[string]OperationStats `json:"operations"`
	Costings    map[string]int64          `json:"costings"`
	LastUpdated *time.Time                `json:"last_updated,omitempty"`
}

// OperationStats - счётчики одной операции
type OperationStats struct {
	Total        int64   `json:"total"`
	Failed       int64   `json:"failed"`
	TotalTimeSec float64 `json:"total_time_sec"`
	AvgTimeSec   float64 `json:"avg_time_sec"`
}
