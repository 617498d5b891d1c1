package decoder

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/transport-service/internal/pkg/form"
)

const (
	// ShapeField - поле multipart-формы с CSV треком
	ShapeField = "shape"

	MsgShapeCSV = "CSV must include a lat and a lon attribute."
)

// ShapeColumns - распознаваемые колонки CSV трека
var ShapeColumns = []string{"lat", "lon", "time", "type"}

var delimiters = []rune{',', ';', '\t', '|', ' '}

// ShapeFile - загруженный CSV файл
type ShapeFile struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ParseShapeCSV разбирает CSV трек в список точек.
// Разделитель определяется по первой строке, в заголовке обязательны lat и lon.
// Каждая строка превращается в объект только из распознанных колонок заголовка.
func ParseShapeCSV(f ShapeFile) ([]any, error) {
	if !isCSV(f.ContentType, f.Filename) {
		return nil, shapeError(MsgShapeCSV)
	}

	br := bufio.NewReader(f.Body)
	first, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, shapeError(MsgShapeCSV)
	}
	first = strings.TrimPrefix(strings.TrimRight(first, "\r\n"), "\ufeff")

	delim, ok := sniffDelimiter(first)
	if !ok {
		return nil, shapeError(MsgShapeCSV)
	}

	header, err := readHeader(first, delim)
	if err != nil {
		return nil, shapeError(MsgShapeCSV)
	}
	columns := headerIndex(header)
	if _, ok := columns["lat"]; !ok {
		return nil, shapeError(MsgShapeCSV)
	}
	if _, ok := columns["lon"]; !ok {
		return nil, shapeError(MsgShapeCSV)
	}

	r := csv.NewReader(br)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var rows []any
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, shapeError(fmt.Sprintf("Invalid CSV row %d.", line))
		}

		row := make(map[string]any, len(ShapeColumns))
		for _, name := range ShapeColumns {
			i, ok := columns[name]
			if !ok {
				continue
			}
			if i < len(record) {
				row[name] = strings.TrimSpace(record[i])
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func isCSV(contentType, filename string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "text/csv" {
		return false
	}
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

// sniffDelimiter выбирает самый частый разделитель в строке заголовка
func sniffDelimiter(line string) (rune, bool) {
	var (
		best  rune
		count int
	)
	for _, d := range delimiters {
		n := strings.Count(line, string(d))
		if n > count {
			best, count = d, n
		}
	}
	return best, count > 0
}

func readHeader(line string, delim rune) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = delim
	r.FieldsPerRecord = -1
	return r.Read()
}

func headerIndex(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, k := range header {
		k = strings.TrimSpace(k)
		if _, dup := m[k]; !dup {
			m[k] = i
		}
	}
	return m
}

func shapeError(msg string) *form.DecodeError {
	return &form.DecodeError{Field: ShapeField, Message: msg}
}
