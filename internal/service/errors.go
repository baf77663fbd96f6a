package service

import "errors"

var (
	// ErrInvalidInput is returned for malformed requests
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyDictionary is returned when there is nothing to quiz on
	ErrEmptyDictionary = errors.New("dictionary is empty")
)
