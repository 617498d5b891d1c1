package decoder

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/transport-service/internal/pkg/form"
)

func decodeError(t *testing.T, err error) *form.DecodeError {
	t.Helper()
	var derr *form.DecodeError
	require.True(t, errors.As(err, &derr), "expected *form.DecodeError, got %v", err)
	return derr
}

func csvFile(body string) ShapeFile {
	return ShapeFile{Filename: "trace.csv", ContentType: "text/csv", Body: strings.NewReader(body)}
}

func TestParseShapeCSV(t *testing.T) {
	t.Run("lat lon only", func(t *testing.T) {
		rows, err := ParseShapeCSV(csvFile("lat,lon\n41.38,2.17\n41.39,2.18\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{
			map[string]any{"lat": "41.38", "lon": "2.17"},
			map[string]any{"lat": "41.39", "lon": "2.18"},
		}, rows)
	})

	t.Run("all recognized columns", func(t *testing.T) {
		rows, err := ParseShapeCSV(csvFile("lat,lon,time,type\n41.38,2.17,0,break\n41.39,2.18,15,via\n"))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, map[string]any{"lat": "41.39", "lon": "2.18", "time": "15", "type": "via"}, rows[1])
	})

	t.Run("unknown columns ignored", func(t *testing.T) {
		rows, err := ParseShapeCSV(csvFile("id;lat;lon;speed\n7;41.38;2.17;30\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"lat": "41.38", "lon": "2.17"}}, rows)
	})

	t.Run("sniffed delimiters", func(t *testing.T) {
		for _, body := range []string{
			"lat\tlon\n1\t2\n",
			"lat|lon\n1|2\n",
			"lat lon\n1 2\n",
			"lat, lon\r\n1, 2\r\n",
		} {
			rows, err := ParseShapeCSV(csvFile(body))
			require.NoError(t, err, body)
			assert.Equal(t, []any{map[string]any{"lat": "1", "lon": "2"}}, rows, body)
		}
	})

	t.Run("header is case sensitive", func(t *testing.T) {
		_, err := ParseShapeCSV(csvFile("Lat,Lon\n1,2\n"))
		derr := decodeError(t, err)
		assert.Equal(t, ShapeField, derr.Field)
		assert.Equal(t, MsgShapeCSV, derr.Message)
	})

	t.Run("missing lon", func(t *testing.T) {
		_, err := ParseShapeCSV(csvFile("lat,time\n1,2\n"))
		assert.Equal(t, MsgShapeCSV, decodeError(t, err).Message)
	})

	t.Run("no delimiter", func(t *testing.T) {
		_, err := ParseShapeCSV(csvFile("latlon\n"))
		assert.Equal(t, MsgShapeCSV, decodeError(t, err).Message)
	})

	t.Run("wrong content type", func(t *testing.T) {
		_, err := ParseShapeCSV(ShapeFile{Filename: "trace.csv", ContentType: "application/json", Body: strings.NewReader("lat,lon\n")})
		assert.Equal(t, MsgShapeCSV, decodeError(t, err).Message)
	})

	t.Run("wrong extension", func(t *testing.T) {
		_, err := ParseShapeCSV(ShapeFile{Filename: "trace.txt", ContentType: "text/csv", Body: strings.NewReader("lat,lon\n")})
		assert.Equal(t, MsgShapeCSV, decodeError(t, err).Message)
	})

	t.Run("content type with charset", func(t *testing.T) {
		rows, err := ParseShapeCSV(ShapeFile{Filename: "TRACE.CSV", ContentType: "text/csv; charset=utf-8", Body: strings.NewReader("lat,lon\n1,2")})
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})

	t.Run("short row keeps blank values", func(t *testing.T) {
		rows, err := ParseShapeCSV(csvFile("lat,lon,time\n1,2\n"))
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"lat": "1", "lon": "2", "time": ""}}, rows)
	})
}

func TestDecodeJSON(t *testing.T) {
	raw, err := DecodeJSON([]byte(`{"locations":[{"lat":1,"lon":2}],"units":"miles","side":{"preferred_side":"same"}}`))
	require.NoError(t, err)
	assert.Equal(t, "miles", raw["units"])
	locations := raw["locations"].([]any)
	assert.Equal(t, 1.0, locations[0].(map[string]any)["lat"])

	for _, body := range []string{``, `[]`, `"x"`, `{"a":`} {
		_, err := DecodeJSON([]byte(body))
		derr := decodeError(t, err)
		assert.Equal(t, "body", derr.Field, body)
	}
}

func newMultipartForm(t *testing.T, fields map[string]string, filename, contentType, body string) *multipart.Form {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="shape"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	mf, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return mf
}

func TestDecodeMultipart(t *testing.T) {
	t.Run("fields and shape", func(t *testing.T) {
		mf := newMultipartForm(t,
			map[string]string{"costing": "bicycle", "filters": "edge.id,edge.names"},
			"trace.csv", "text/csv", "lat,lon,time\n41.38,2.17,1\n",
		)
		raw, err := DecodeMultipart(mf)
		require.NoError(t, err)
		assert.Equal(t, "bicycle", raw["costing"])
		assert.Equal(t, "edge.id,edge.names", raw["filters"])
		assert.Equal(t, []any{map[string]any{"lat": "41.38", "lon": "2.17", "time": "1"}}, raw["shape"])
	})

	t.Run("missing file left to schema", func(t *testing.T) {
		mf := newMultipartForm(t, map[string]string{"shape": "1,2"}, "", "", "")
		raw, err := DecodeMultipart(mf)
		require.NoError(t, err)
		assert.NotContains(t, raw, "shape")
	})

	t.Run("bad file", func(t *testing.T) {
		mf := newMultipartForm(t, nil, "trace.csv", "text/plain", "lat,lon\n1,2\n")
		_, err := DecodeMultipart(mf)
		derr := decodeError(t, err)
		assert.Equal(t, form.Errors{"shape": []string{MsgShapeCSV}}, derr.Errors())
	})
}

func TestDecodeQuery(t *testing.T) {
	t.Run("indexed keys ordered", func(t *testing.T) {
		raw := DecodeQuery(map[string][]string{
			"lat":     {"37.97"},
			"lon":     {"23.73"},
			"range-1": {"10"},
			"range-0": {"5"},
			"range-2": {"15"},
			"color-0": {"ff0000"},
			"color-2": {"0000ff"},
		})
		assert.Equal(t, "37.97", raw["lat"])
		assert.Equal(t, []any{"5", "10", "15"}, raw["range"])
		assert.Equal(t, []any{"ff0000", nil, "0000ff"}, raw["color"])
	})

	t.Run("no colors", func(t *testing.T) {
		raw := DecodeQuery(map[string][]string{"range-0": {"5"}, "range-1": {"10"}})
		assert.Equal(t, []any{"5", "10"}, raw["range"])
		assert.NotContains(t, raw, "color")
	})

	t.Run("sparse indexes", func(t *testing.T) {
		raw := DecodeQuery(map[string][]string{"range-3": {"30"}, "range-10": {"100"}, "color-10": {"00ff00"}})
		assert.Equal(t, []any{"30", "100"}, raw["range"])
		assert.Equal(t, []any{nil, "00ff00"}, raw["color"])
	})

	t.Run("malformed index passes through", func(t *testing.T) {
		raw := DecodeQuery(map[string][]string{"range-x": {"5"}})
		assert.NotContains(t, raw, "range")
		assert.Equal(t, "5", raw["range-x"])
	})
}
