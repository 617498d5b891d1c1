package validator

import "errors"

// ErrInvalid - структура не прошла валидацию
var ErrInvalid = errors.New("validation failed")
