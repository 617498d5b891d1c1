package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Rule - правило проверки значения поля.
// Apply получает значение, уже приведённое к типу поля, и может вернуть
// преобразованное значение.
type Rule interface {
	Apply(value any) (any, error)
}

// RuleFunc позволяет использовать функцию как правило
type RuleFunc func(value any) (any, error)

func (f RuleFunc) Apply(value any) (any, error) {
	return f(value)
}

type presenceRule struct {
	required bool
}

func (r presenceRule) Apply(value any) (any, error) {
	return value, nil
}

// Required - поле обязательно
func Required() Rule {
	return presenceRule{required: true}
}

// Optional - при отсутствии значения используется значение по умолчанию
// и остальные правила не выполняются
func Optional() Rule {
	return presenceRule{required: false}
}

type rangeRule struct {
	min, max *float64
	message  string
}

func (r rangeRule) Apply(value any) (any, error) {
	var n float64
	switch t := value.(type) {
	case int:
		n = float64(t)
	case float64:
		n = t
	default:
		return nil, &FieldError{Message: MsgNotFloat}
	}
	if (r.min != nil && n < *r.min) || (r.max != nil && n > *r.max) {
		return nil, &FieldError{Message: r.message}
	}
	return value, nil
}

// Range - значение в [min, max] включительно
func Range(min, max float64) Rule {
	return rangeRule{
		min:     &min,
		max:     &max,
		message: fmt.Sprintf("Number must be between %s and %s.", formatNumber(min), formatNumber(max)),
	}
}

// Min - значение не меньше min
func Min(min float64) Rule {
	return rangeRule{min: &min, message: fmt.Sprintf("Number must be at least %s.", formatNumber(min))}
}

// Max - значение не больше max
func Max(max float64) Rule {
	return rangeRule{max: &max, message: fmt.Sprintf("Number must be at most %s.", formatNumber(max))}
}

// Coordinate - координата в градусах (EPSG:4326)
func Coordinate(lower, upper float64) Rule {
	return rangeRule{
		min:     &lower,
		max:     &upper,
		message: fmt.Sprintf("Invalid value: must be in [%s, %s].", formatNumber(lower), formatNumber(upper)),
	}
}

func Lat() Rule { return Coordinate(-90, 90) }

func Lon() Rule { return Coordinate(-180, 180) }

type oneOfRule struct {
	allowed map[string]struct{}
	message string
}

func (r oneOfRule) Apply(value any) (any, error) {
	if _, ok := r.allowed[enumKey(value)]; !ok {
		return nil, &FieldError{Message: r.message}
	}
	return value, nil
}

// OneOf - значение входит в перечисление
func OneOf[T string | int](values ...T) Rule {
	allowed := make(map[string]struct{}, len(values))
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = fmt.Sprint(v)
		allowed[enumKey(v)] = struct{}{}
	}
	return oneOfRule{
		allowed: allowed,
		message: fmt.Sprintf("Invalid value, must be one of: %s.", strings.Join(names, ", ")),
	}
}

type someOfRule struct {
	allowed map[string]struct{}
	message string
}

func (r someOfRule) Apply(value any) (any, error) {
	items, ok := value.([]string)
	if !ok {
		return nil, &FieldError{Message: MsgNotList}
	}
	for _, item := range items {
		if _, ok := r.allowed[item]; !ok {
			return nil, &FieldError{Message: r.message}
		}
	}
	return items, nil
}

// SomeOf - каждый элемент списка строк входит в перечисление
func SomeOf(values ...string) Rule {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	return someOfRule{
		allowed: allowed,
		message: fmt.Sprintf("Invalid value, must be a comma separated list of %s.", strings.Join(values, ", ")),
	}
}

type matchRule struct {
	re      *regexp.Regexp
	message string
}

func (r matchRule) Apply(value any) (any, error) {
	s, ok := value.(string)
	if !ok || !r.re.MatchString(s) {
		return nil, &FieldError{Message: r.message}
	}
	return value, nil
}

// Match - строка соответствует регулярному выражению
func Match(pattern, message string) Rule {
	return matchRule{re: regexp.MustCompile(pattern), message: message}
}

func enumKey(v any) string {
	switch t := v.(type) {
	case string:
		return "s:" + t
	case int:
		return "n:" + strconv.Itoa(t)
	}
	return fmt.Sprintf("?:%v", v)
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
