// Package decoder приводит тело запроса (JSON, multipart, query string)
// к единому словарю сырых значений перед валидацией схемой.
package decoder

import (
	"bytes"
	"mime/multipart"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/transport-service/internal/pkg/form"
)

const (
	bodyField    = "body"
	MsgNotObject = "Request body must be a JSON object."
)

// DecodeJSON разбирает тело запроса; тело должно быть JSON-объектом.
// Числа остаются float64, списки и объекты - []any и map[string]any.
func DecodeJSON(body []byte) (map[string]any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return nil, &form.DecodeError{Field: bodyField, Message: MsgNotObject}
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &form.DecodeError{Field: bodyField, Message: "Not a valid JSON body."}
	}
	return raw, nil
}

// DecodeMultipart собирает скалярные поля формы (первое значение каждого ключа)
// и разбирает CSV файл поля shape. Отсутствие файла не ошибка декодирования:
// обязательность shape проверяет схема.
func DecodeMultipart(mf *multipart.Form) (map[string]any, error) {
	raw := make(map[string]any, len(mf.Value)+1)
	for key, values := range mf.Value {
		if len(values) > 0 {
			raw[key] = values[0]
		}
	}

	// строковое поле shape в multipart не принимается
	delete(raw, ShapeField)

	files := mf.File[ShapeField]
	if len(files) == 0 {
		return raw, nil
	}

	fh := files[0]
	f, err := fh.Open()
	if err != nil {
		return nil, shapeError(MsgShapeCSV)
	}
	defer f.Close()

	rows, err := ParseShapeCSV(ShapeFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	})
	if err != nil {
		return nil, err
	}
	raw[ShapeField] = rows
	return raw, nil
}

// IndexedFields - поля query string, передаваемые как key-0, key-1, ...
var IndexedFields = []string{"range", "color"}

// DecodeQuery собирает параметры query string.
// Индексированные ключи range-N собираются в список по возрастанию N;
// color-N выравнивается по индексам range, отсутствующий цвет - nil.
func DecodeQuery(args map[string][]string) map[string]any {
	raw := make(map[string]any, len(args))
	indexed := make(map[string]map[int]string, len(IndexedFields))

	for key, values := range args {
		if len(values) == 0 {
			continue
		}
		if name, idx, ok := splitIndexed(key); ok {
			if indexed[name] == nil {
				indexed[name] = map[int]string{}
			}
			indexed[name][idx] = values[0]
			continue
		}
		raw[key] = values[0]
	}

	ranges := indexed["range"]
	if len(ranges) == 0 {
		return raw
	}

	order := make([]int, 0, len(ranges))
	for i := range ranges {
		order = append(order, i)
	}
	sort.Ints(order)

	rangeList := make([]any, len(order))
	for n, i := range order {
		rangeList[n] = ranges[i]
	}
	raw["range"] = rangeList

	if colors := indexed["color"]; len(colors) > 0 {
		colorList := make([]any, len(order))
		for n, i := range order {
			if c, ok := colors[i]; ok && strings.TrimSpace(c) != "" {
				colorList[n] = c
			}
		}
		raw["color"] = colorList
	}

	return raw
}

func splitIndexed(key string) (string, int, bool) {
	for _, name := range IndexedFields {
		suffix, found := strings.CutPrefix(key, name+"-")
		if !found {
			continue
		}
		idx, err := strconv.Atoi(suffix)
		if err != nil || idx < 0 {
			return "", 0, false
		}
		return name, idx, true
	}
	return "", 0, false
}
