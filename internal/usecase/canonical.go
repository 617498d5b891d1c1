package usecase

import (
	"strings"

	"github.com/transport-service/internal/domain"
	"github.com/transport-service/internal/pkg/form"
	"github.com/transport-service/internal/schema"
)

// DropNulls рекурсивно удаляет ключи со значением nil.
// 0, false и пустые списки сохраняются; nil-элементы списков тоже.
func DropNulls(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return dropNullsMap(t)
	case form.Values:
		return dropNullsMap(t)
	case domain.Payload:
		return domain.Payload(dropNullsMap(t))
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = DropNulls(item)
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = dropNullsMap(item)
		}
		return out
	default:
		return v
	}
}

func dropNullsMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if v == nil {
			continue
		}
		out[k] = DropNulls(v)
	}
	return out
}

// FlattenLocations переносит поля вложенного объекта side в саму точку.
// При совпадении ключей остаётся значение точки. Вход не изменяется.
func FlattenLocations(locations []any) []any {
	out := make([]any, len(locations))
	for i, item := range locations {
		loc, ok := item.(map[string]any)
		if !ok {
			out[i] = item
			continue
		}

		flat := make(map[string]any, len(loc))
		for k, v := range loc {
			if k != "side" {
				flat[k] = v
			}
		}
		if side, ok := loc["side"].(map[string]any); ok {
			for k, v := range side {
				if _, exists := flat[k]; !exists {
					flat[k] = v
				}
			}
		}
		out[i] = flat
	}
	return out
}

// RouteParams - параметры маршрута, разделённые по назначению
type RouteParams struct {
	Locations      []any
	Directions     map[string]any
	CostingOptions map[string]any
}

// SplitRouteParams разделяет провалидированный запрос маршрута
// на точки, параметры инструкций и costing options
func SplitRouteParams(values form.Values) RouteParams {
	params := RouteParams{
		Directions:     map[string]any{},
		CostingOptions: map[string]any{},
	}

	if locations, ok := DropNulls(values["locations"]).([]any); ok {
		params.Locations = FlattenLocations(locations)
	}

	direction := make(map[string]bool, len(schema.DirectionFields))
	for _, name := range schema.DirectionFields {
		direction[name] = true
		if v := values[name]; v != nil {
			params.Directions[name] = DropNulls(v)
		}
	}

	for k, v := range values {
		if k == "locations" || direction[k] || v == nil {
			continue
		}
		params.CostingOptions[k] = DropNulls(v)
	}

	return params
}

// BuildContours склеивает пороги и цвета по индексу; отсутствующий цвет - nil
func BuildContours(metric string, ranges, colors []any) []any {
	contours := make([]any, len(ranges))
	for i, r := range ranges {
		var color any
		if i < len(colors) {
			color = colors[i]
		}
		contours[i] = map[string]any{metric: r, "color": color}
	}
	return contours
}

// NormalizeFilters приводит filters к упорядоченному списку строк
func NormalizeFilters(v any) []string {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(t, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}

// Canonicalize удаляет nil-значения и разворачивает side у точек маршрута.
// Повторное применение к результату ничего не меняет.
func Canonicalize(payload domain.Payload) domain.Payload {
	out := DropNulls(payload).(domain.Payload)
	if locations, ok := out["locations"].([]any); ok {
		out["locations"] = FlattenLocations(locations)
	}
	return out
}

// RoutePayload строит запрос маршрута для движка
func RoutePayload(mode domain.Costing, values form.Values) domain.Payload {
	params := SplitRouteParams(values)

	payload := domain.Payload{
		"costing":   string(mode),
		"locations": params.Locations,
	}
	for k, v := range params.Directions {
		payload[k] = v
	}
	payload["costing_options"] = map[string]any{string(mode): params.CostingOptions}
	return payload
}

// IsolinePayload строит запрос изолиний. Цвета контуров без значения
// передаются как null, движок назначит их сам.
func IsolinePayload(op domain.Operation, values form.Values) domain.Payload {
	ranges, _ := values["range"].([]any)
	colors, _ := values["color"].([]any)

	return domain.Payload{
		"locations": []any{map[string]any{"lat": values["lat"], "lon": values["lon"]}},
		"costing":   values["costing"],
		"contours":  BuildContours(op.ContourMetric(), ranges, colors),
		"polygons":  values["polygons"],
		"denoise":   values["denoise"],
	}
}

// TracePayload строит запрос trace_route / trace_attributes
func TracePayload(values form.Values) domain.Payload {
	payload := domain.Payload(dropNullsMap(values))
	if f, ok := payload["filters"]; ok {
		payload["filters"] = NormalizeFilters(f)
	}
	return payload
}
