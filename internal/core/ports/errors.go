package ports

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every service operation. Call sites never invent
// their own handling; the REST layer maps these kinds to HTTP statuses in
// exactly one place.

var (
	ErrStore          = errors.New("store failure")
	ErrPlatform       = errors.New("platform api failure")
	ErrRecommendation = errors.New("recommendation failure")
)

// StoreError wraps a failed read or write against the session store.
type StoreError struct {
	Op  string
	Err error
}

func (e StoreError) Error() string        { return fmt.Sprintf("store: %s: %v", e.Op, e.Err) }
func (e StoreError) Unwrap() error        { return e.Err }
func (e StoreError) Is(target error) bool { return target == ErrStore }

// PlatformAPIError reports a non-2xx or malformed response from the music
// platform. Status is zero when the request never got a response.
type PlatformAPIError struct {
	Op     string
	Status int
	Err    error
}

func (e PlatformAPIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("platform: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("platform: %s: status %d", e.Op, e.Status)
}

func (e PlatformAPIError) Unwrap() error        { return e.Err }
func (e PlatformAPIError) Is(target error) bool { return target == ErrPlatform }

// RecommendationError reports a failed or malformed recommendation call.
// Materialization is never attempted past one of these; there is no retry.
type RecommendationError struct {
	Op     string
	Status int
	Err    error
}

func (e RecommendationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("recs: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("recs: %s: status %d", e.Op, e.Status)
}

func (e RecommendationError) Unwrap() error        { return e.Err }
func (e RecommendationError) Is(target error) bool { return target == ErrRecommendation }
