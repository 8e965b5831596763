package domain

import "errors"

// Классификация ошибок ядра. REST-адаптер мапит их на HTTP-статусы,
// всё остальное считается внутренней ошибкой хранилища (500).
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidGeometry   = errors.New("invalid geometry")
	ErrInvalidPagination = errors.New("invalid pagination")
	ErrImageNotFound     = errors.New("image not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
)
