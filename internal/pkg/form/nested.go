package form

import "errors"

type eachRule struct {
	schema *Schema
}

// Each - каждый элемент списка должен быть объектом, удовлетворяющим схеме.
// Элементы проверяются независимо; ошибки собираются по индексам.
func Each(schema *Schema) Rule {
	return eachRule{schema: schema}
}

func (r eachRule) Apply(value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &FieldError{Message: MsgNotList}
	}

	out := make([]any, 0, len(items))
	var failed ItemErrors
	for i, item := range items {
		row, ok := item.(map[string]any)
		if !ok {
			return nil, &FieldError{Message: MsgNotList}
		}

		values, err := Validate(r.schema, row)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return nil, err
			}
			if failed == nil {
				failed = ItemErrors{}
			}
			failed[i] = verr.Errors
			continue
		}
		out = append(out, map[string]any(values))
	}

	if len(failed) > 0 {
		return nil, failed
	}
	return out, nil
}

type eachValueRule struct {
	field Field
}

// EachValue - каждый элемент списка проверяется как скалярное поле
func EachValue(field Field) Rule {
	return eachValueRule{field: field}
}

func (r eachValueRule) Apply(value any) (any, error) {
	items, ok := value.([]any)
	if !ok {
		return nil, &FieldError{Message: MsgNotList}
	}

	out := make([]any, len(items))
	var failed ItemErrors
	for i, item := range items {
		v, err := r.field.evaluate(item)
		if err != nil {
			if failed == nil {
				failed = ItemErrors{}
			}
			failed[i] = errorValue(err)
			continue
		}
		out[i] = v
	}

	if len(failed) > 0 {
		return nil, failed
	}
	return out, nil
}

type objectRule struct {
	schema *Schema
}

// Object - значение должно быть объектом, удовлетворяющим схеме.
// Ошибки вложенной схемы возвращаются целиком под именем поля.
func ObjectOf(schema *Schema) Rule {
	return objectRule{schema: schema}
}

func (r objectRule) Apply(value any) (any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, &FieldError{Message: MsgNotObject}
	}
	values, err := Validate(r.schema, m)
	if err != nil {
		return nil, err
	}
	return map[string]any(values), nil
}
