package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidState      = errors.New("action is not available in the current state")
	ErrInvalidInput      = errors.New("invalid input")
	ErrRecognitionFailed = errors.New("recognition failed")
	ErrGenerationFailed  = errors.New("generation failed")
	ErrUnknownCategory   = errors.New("unknown product category")
	ErrEmptyPool         = errors.New("category has no candidate images")
	ErrNoFlow            = errors.New("no active flow")
)

// ReasonCode код причины некритичной ошибки потока
type ReasonCode string

const (
	ReasonRecognitionFailed ReasonCode = "recognition_failed"
	ReasonGenerationFailed  ReasonCode = "generation_failed"
	ReasonInvalidInput      ReasonCode = "invalid_input"
	ReasonTimeout           ReasonCode = "timeout"
)

// FlowError ошибка шага потока, после которой поток продолжает жить
type FlowError struct {
	Reason ReasonCode
	Err    error
}

func (e *FlowError) Error() string {
	if e.Err == nil {
		return string(e.Reason)
	}
	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

func (e *FlowError) Unwrap() error {
	return e.Err
}
