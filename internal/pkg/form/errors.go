package form

import (
	"fmt"
	"sort"
	"strings"
)

// Сообщения об ошибках, возвращаемые клиенту
const (
	MsgRequired   = "This field is required."
	MsgNotString  = "Not a valid string value."
	MsgNotInteger = "Not a valid integer value."
	MsgNotFloat   = "Not a valid float value."
	MsgNotBoolean = "Not a valid boolean value."
	MsgNotList    = "Not a valid List field."
	MsgNotObject  = "Not a valid JSON field."
)

// Errors - ошибки валидации по пути поля.
// Значение - либо []string (ошибки скалярного поля), либо вложенный Errors
// (ошибки вложенного объекта или элемента списка).
type Errors map[string]any

// Add добавляет сообщение к полю
func (e Errors) Add(field, message string) {
	if msgs, ok := e[field].([]string); ok {
		e[field] = append(msgs, message)
		return
	}
	e[field] = []string{message}
}

// Paths возвращает отсортированный список путей полей с ошибками.
// Вложенные пути склеиваются через точку.
func (e Errors) Paths() []string {
	var paths []string
	for key, val := range e {
		if nested, ok := val.(Errors); ok {
			for _, p := range nested.Paths() {
				paths = append(paths, key+"."+p)
			}
			continue
		}
		paths = append(paths, key)
	}
	sort.Strings(paths)
	return paths
}

// FieldError - ошибка одного скалярного правила
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ItemErrors - ошибки элементов списка, по индексу элемента.
// Значение - []string для скалярных элементов или Errors для объектов.
type ItemErrors map[int]any

func (e ItemErrors) Error() string {
	idx := make([]int, 0, len(e))
	for i := range e {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	parts := make([]string, len(idx))
	for n, i := range idx {
		parts[n] = fmt.Sprintf("%d", i)
	}
	return "invalid items: " + strings.Join(parts, ", ")
}

// ValidationError - полный набор ошибок валидации одного объекта
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors.Paths(), ", "))
}

// DecodeError - запрос не удалось разобрать (битый JSON, неверный CSV, неверный MIME).
// Прерывает обработку до валидации полей.
type DecodeError struct {
	Field   string
	Message string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors возвращает ошибку декодирования в том же виде, что и ошибки валидации
func (e *DecodeError) Errors() Errors {
	return Errors{e.Field: []string{e.Message}}
}
