package form

import (
	"errors"
	"fmt"
)

// Schema - упорядоченный неизменяемый набор полей
type Schema struct {
	name   string
	fields []Field
	index  map[string]int
}

// Values - результат успешной валидации.
// Содержит все поля схемы; отсутствующие без значения по умолчанию равны nil.
type Values map[string]any

// NewSchema создает схему из списка полей
func NewSchema(name string, fields ...Field) (*Schema, error) {
	s := &Schema{
		name:  name,
		index: make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		if err := s.put(f); err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
	}
	return s, nil
}

// MustSchema - как NewSchema, но паникует при ошибке определения
func MustSchema(name string, fields ...Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Compose объединяет схемы слоями.
// Поля более поздних слоев заменяют одноименные поля на их исходной позиции,
// новые поля добавляются в конец.
func Compose(name string, bases []*Schema, overrides ...Field) (*Schema, error) {
	s := &Schema{
		name:  name,
		index: make(map[string]int),
	}
	for _, base := range bases {
		if base == nil {
			return nil, fmt.Errorf("schema %s: nil base schema", name)
		}
		for _, f := range base.fields {
			if err := s.put(f); err != nil {
				return nil, fmt.Errorf("schema %s: %w", name, err)
			}
		}
	}
	for _, f := range overrides {
		if err := s.put(f); err != nil {
			return nil, fmt.Errorf("schema %s: %w", name, err)
		}
	}
	return s, nil
}

func MustCompose(name string, bases []*Schema, overrides ...Field) *Schema {
	s, err := Compose(name, bases, overrides...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) put(f Field) error {
	if f.Name == "" {
		return errors.New("field without name")
	}
	def, err := f.normalizeDefault()
	if err != nil {
		return err
	}
	f.Default = def
	f.Rules = append([]Rule(nil), f.Rules...)

	if i, ok := s.index[f.Name]; ok {
		s.fields[i] = f
		return nil
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, f)
	return nil
}

func (s *Schema) Name() string {
	return s.name
}

// Field возвращает поле по имени
func (s *Schema) Field(name string) (Field, bool) {
	i, ok := s.index[name]
	if !ok {
		return Field{}, false
	}
	return s.fields[i], true
}

// MustField - для построения переопределений при инициализации пакета
func (s *Schema) MustField(name string) Field {
	f, ok := s.Field(name)
	if !ok {
		panic(fmt.Sprintf("schema %s: unknown field %q", s.name, name))
	}
	return f
}

// Fields возвращает копию полей в порядке объявления
func (s *Schema) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Len - количество полей
func (s *Schema) Len() int {
	return len(s.fields)
}

// Validate проверяет сырой объект по схеме.
// Все поля проверяются независимо, ошибки собираются в один *ValidationError.
// Ключи, не описанные в схеме, отбрасываются.
func Validate(s *Schema, raw map[string]any) (Values, error) {
	values := make(Values, len(s.fields))
	errs := Errors{}

	for _, f := range s.fields {
		v, err := f.evaluate(raw[f.Name])
		if err != nil {
			place(errs, f.Name, err)
			continue
		}
		values[f.Name] = v
	}

	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return values, nil
}

// place раскладывает ошибку поля в общий набор ошибок
func place(errs Errors, field string, err error) {
	var items ItemErrors
	if errors.As(err, &items) {
		for i, itemErr := range items {
			errs[fmt.Sprintf("%s-%d", field, i)] = itemErr
		}
		return
	}

	var nested *ValidationError
	if errors.As(err, &nested) {
		errs[field] = nested.Errors
		return
	}

	errs.Add(field, err.Error())
}

func errorValue(err error) any {
	var nested *ValidationError
	if errors.As(err, &nested) {
		return nested.Errors
	}
	return []string{err.Error()}
}
