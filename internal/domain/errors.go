package domain

import "errors"

// Error taxonomy for the resolution pipeline and store. Adapters collapse
// transport sub-causes (network, auth, rate limit, malformed response) before
// surfacing; callers match with errors.Is.
var (
	// ErrCityNotFound means geocoding returned zero candidates for a name.
	ErrCityNotFound = errors.New("city not found")

	// ErrProvider means the current-conditions or forecast request failed.
	ErrProvider = errors.New("weather provider request failed")

	// ErrLocationUnavailable means the device location capability is absent,
	// denied the request, or timed out.
	ErrLocationUnavailable = errors.New("device location unavailable")

	// ErrDuplicateLocation means a saved location with the same
	// coordinate-derived ID already exists.
	ErrDuplicateLocation = errors.New("location already saved")
)
