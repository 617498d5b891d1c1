package dto

import "github.com/transport-service/internal/schema"

// RequestMeta - контекст входящего запроса для учёта обращений
type RequestMeta struct {
	RequestID  string
	RemoteAddr string
	Encoding   schema.Encoding
}

// RawRequest - декодированный запрос до валидации
type RawRequest struct {
	Meta   RequestMeta
	Fields map[string]any
}
