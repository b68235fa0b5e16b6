package errors

import "net/http"

var (
	ErrLocationNotFound = New(
		"LOCATION_NOT_FOUND",
		"Location not found",
		http.StatusNotFound,
	)

	ErrPickupPointNotFound = New(
		"PICKUP_POINT_NOT_FOUND",
		"Pickup point not found",
		http.StatusNotFound,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidQuery = New(
		"INVALID_QUERY",
		"Search query is empty or too long",
		http.StatusBadRequest,
	)

	ErrUserRequired = New(
		"USER_REQUIRED",
		"User identity is required for this operation",
		http.StatusUnauthorized,
	)

	ErrConcurrentUpdate = New(
		"CONCURRENT_UPDATE",
		"Resource was modified concurrently, retry the request",
		http.StatusConflict,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
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
