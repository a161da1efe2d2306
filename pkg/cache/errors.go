package cache

import "errors"

// ErrBackendUnavailable is returned when a shared backend (Redis)
// cannot be reached. Callers should degrade to recomputation.
var ErrBackendUnavailable = errors.New("cache backend unavailable")
