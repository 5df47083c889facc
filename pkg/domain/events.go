package domain

import (
	"context"
	"time"
)

// ResolveEvent describes the outcome of interval resolution for one sequence.
type ResolveEvent struct {
	SequenceID string        `json:"sequence_id"`
	Hits       int           `json:"hits"`
	Domains    int           `json:"domains"`
	Duration   time.Duration `json:"duration"`
}

// ClassifyEvent describes the outcome of classification for one sequence.
type ClassifyEvent struct {
	SequenceID string        `json:"sequence_id"`
	Paths      []LabelPath   `json:"paths"`
	Duration   time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for pipeline observability.
type LifecycleHooks struct {
	OnResolved   func(context.Context, *ResolveEvent)
	OnClassified func(context.Context, *ClassifyEvent)
}
