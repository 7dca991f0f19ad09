package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p MovePayload) Validate() error {
	if strings.TrimSpace(p.Group) == "" {
		return errors.New("group is required")
	}
	return nil
}

func (p GroupPayload) Validate() error {
	if strings.TrimSpace(p.Group) == "" {
		return errors.New("group is required")
	}
	return nil
}

func (p CreateGamePayload) Validate() error {
	if p.Radius < 0 {
		return errors.New("radius cannot be negative")
	}
	if p.Radius > 32 {
		return errors.New("radius too large")
	}
	return nil
}
