package errors

import "net/http"

var (
	ErrInvalidLocation = New(
		"INVALID_LOCATION",
		"Origin coordinates are out of valid range",
		http.StatusBadRequest,
	)

	ErrInvalidDetailLevel = New(
		"INVALID_DETAIL_LEVEL",
		"Invalid detail level",
		http.StatusBadRequest,
	)

	ErrUnknownSortMode = New(
		"UNKNOWN_SORT_MODE",
		"Unknown sort mode",
		http.StatusBadRequest,
	)

	ErrProviderNotFound = New(
		"PROVIDER_NOT_FOUND",
		"Provider not found",
		http.StatusNotFound,
	)

	ErrStoreUnavailable = New(
		"STORE_UNAVAILABLE",
		"Provider store failed to respond",
		http.StatusServiceUnavailable,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
