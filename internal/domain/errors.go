package domain

import "errors"

var (
	ErrInvalidTermLabel = errors.New("invalid term label")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidFrequency = errors.New("invalid frequency")
)
