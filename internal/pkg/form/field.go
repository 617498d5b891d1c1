package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind - тип значения поля
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindBool
	KindList
	KindObject
	KindStringList
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindStringList:
		return "string list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Field - описание поля схемы
type Field struct {
	Name    string
	Kind    Kind
	Default any
	Rules   []Rule
}

func String(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindString, Rules: rules}
}

func Int(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindInt, Rules: rules}
}

func Float(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindFloat, Rules: rules}
}

func Bool(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindBool, Rules: rules}
}

// List - поле-список; элементы проверяются правилами Each / EachValue
func List(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindList, Rules: rules}
}

// Object - поле-объект; проверяется правилом Object
func Object(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindObject, Rules: rules}
}

// StringList принимает массив строк или строку через запятую
func StringList(name string, rules ...Rule) Field {
	return Field{Name: name, Kind: KindStringList, Rules: rules}
}

// WithDefault возвращает копию поля с другим значением по умолчанию
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// WithRules возвращает копию поля с другим набором правил
func (f Field) WithRules(rules ...Rule) Field {
	f.Rules = append([]Rule(nil), rules...)
	return f
}

// evaluate проверяет сырое значение поля.
// Отсутствующее значение решает первое правило присутствия (Required / Optional);
// присутствующее приводится к типу поля и проходит правила по порядку до первой ошибки.
func (f Field) evaluate(raw any) (any, error) {
	if isBlank(raw) {
		for _, rule := range f.Rules {
			if p, ok := rule.(presenceRule); ok {
				if p.required {
					return nil, &FieldError{Message: MsgRequired}
				}
				break
			}
		}
		return f.Default, nil
	}

	value, err := coerce(f.Kind, raw)
	if err != nil {
		return nil, err
	}

	for _, rule := range f.Rules {
		if _, ok := rule.(presenceRule); ok {
			continue
		}
		value, err = rule.Apply(value)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// normalizeDefault приводит значение по умолчанию к типу поля при определении схемы
func (f Field) normalizeDefault() (any, error) {
	if f.Default == nil {
		return nil, nil
	}

	if f.Kind == KindBool {
		switch d := f.Default.(type) {
		case bool:
			return d, nil
		case string:
			b, err := parseBool(d)
			if err != nil {
				return nil, fmt.Errorf("field %q: invalid boolean default %q", f.Name, d)
			}
			return b, nil
		case int:
			return d != 0, nil
		default:
			return nil, fmt.Errorf("field %q: unsupported boolean default of type %T", f.Name, f.Default)
		}
	}

	v, err := coerce(f.Kind, f.Default)
	if err != nil {
		return nil, fmt.Errorf("field %q: invalid %s default %v: %w", f.Name, f.Kind, f.Default, err)
	}
	return v, nil
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case KindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
		return nil, &FieldError{Message: MsgNotString}

	case KindInt:
		switch t := v.(type) {
		case int:
			return t, nil
		case int64:
			return int(t), nil
		case float64:
			return intFromFloat(t)
		case string:
			t = strings.TrimSpace(t)
			if n, err := strconv.Atoi(t); err == nil {
				return n, nil
			}
			// "5.0" или "3e9" - то же значение, что JSON число
			f, err := strconv.ParseFloat(t, 64)
			if err != nil {
				return nil, &FieldError{Message: MsgNotInteger}
			}
			return intFromFloat(f)
		}
		return nil, &FieldError{Message: MsgNotInteger}

	case KindFloat:
		switch t := v.(type) {
		case float64:
			return t, nil
		case float32:
			return float64(t), nil
		case int:
			return float64(t), nil
		case int64:
			return float64(t), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, &FieldError{Message: MsgNotFloat}
			}
			return f, nil
		}
		return nil, &FieldError{Message: MsgNotFloat}

	case KindBool:
		switch t := v.(type) {
		case bool:
			return t, nil
		case string:
			b, err := parseBool(t)
			if err != nil {
				return nil, &FieldError{Message: MsgNotBoolean}
			}
			return b, nil
		case float64:
			if t == 0 || t == 1 {
				return t == 1, nil
			}
		case int:
			if t == 0 || t == 1 {
				return t == 1, nil
			}
		}
		return nil, &FieldError{Message: MsgNotBoolean}

	case KindList:
		switch t := v.(type) {
		case []any:
			return t, nil
		case []map[string]any:
			out := make([]any, len(t))
			for i, item := range t {
				out[i] = item
			}
			return out, nil
		case []string:
			out := make([]any, len(t))
			for i, item := range t {
				out[i] = item
			}
			return out, nil
		}
		return nil, &FieldError{Message: MsgNotList}

	case KindObject:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
		return nil, &FieldError{Message: MsgNotObject}

	case KindStringList:
		switch t := v.(type) {
		case string:
			parts := strings.Split(t, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			return parts, nil
		case []string:
			return append([]string(nil), t...), nil
		case []any:
			out := make([]string, len(t))
			for i, item := range t {
				s, ok := item.(string)
				if !ok {
					return nil, &FieldError{Message: MsgNotList}
				}
				out[i] = s
			}
			return out, nil
		}
		return nil, &FieldError{Message: MsgNotList}
	}

	return nil, fmt.Errorf("unknown field kind %s", kind)
}

// intLimit - 2^(IntSize-1), первое значение за пределами int платформы
var intLimit = math.Ldexp(1, strconv.IntSize-1)

// intFromFloat принимает только целые значения в диапазоне int
func intFromFloat(f float64) (any, error) {
	if math.IsNaN(f) || f != math.Trunc(f) || f < -intLimit || f >= intLimit {
		return nil, &FieldError{Message: MsgNotInteger}
	}
	return int(f), nil
}

// parseBool - разбор булевых строк: y/yes/t/true/on/1 и n/no/f/false/off/0
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", s)
}
