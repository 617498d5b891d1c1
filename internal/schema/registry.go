// Package schema содержит схемы запросов по операциям и режимам передвижения.
// Все схемы строятся один раз при инициализации пакета и далее только читаются.
package schema

import (
	"fmt"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
)

// Encoding - способ передачи запроса
type Encoding string

const (
	EncodingJSON      Encoding = "json"
	EncodingMultipart Encoding = "multipart"
	EncodingQuery     Encoding = "query"
)

// Key - ключ поиска схемы
type Key struct {
	Operation domain.Operation
	Mode      domain.Costing
	Encoding  Encoding
}

func (k Key) String() string {
	if k.Mode == "" {
		return fmt.Sprintf("%s/%s", k.Operation, k.Encoding)
	}
	return fmt.Sprintf("%s/%s/%s", k.Operation, k.Mode, k.Encoding)
}

var registry = map[Key]*form.Schema{}

func register(s *form.Schema, keys ...Key) {
	for _, k := range keys {
		if _, ok := registry[k]; ok {
			panic(fmt.Sprintf("schema: duplicate registration for %s", k))
		}
		registry[k] = s
	}
}

// Lookup возвращает схему по ключу
func Lookup(key Key) (*form.Schema, bool) {
	s, ok := registry[key]
	return s, ok
}

// Route - схема маршрутизации для режима
func Route(mode domain.Costing) (*form.Schema, bool) {
	return Lookup(Key{Operation: domain.OperationRoute, Mode: mode, Encoding: EncodingJSON})
}

// Keys возвращает все зарегистрированные ключи
func Keys() []Key {
	keys := make([]Key, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	return keys
}

func init() {
	for mode, s := range routingSchemas {
		register(s, Key{Operation: domain.OperationRoute, Mode: mode, Encoding: EncodingJSON})
	}

	register(Isoline,
		Key{Operation: domain.OperationIsochrone, Encoding: EncodingQuery},
		Key{Operation: domain.OperationIsodistance, Encoding: EncodingQuery},
	)

	register(TraceRoute,
		Key{Operation: domain.OperationTraceRoute, Encoding: EncodingJSON},
		Key{Operation: domain.OperationTraceRoute, Encoding: EncodingMultipart},
	)
	register(TraceAttributes,
		Key{Operation: domain.OperationTraceAttributes, Encoding: EncodingJSON},
		Key{Operation: domain.OperationTraceAttributes, Encoding: EncodingMultipart},
	)
}
