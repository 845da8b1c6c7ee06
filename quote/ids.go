package quote

import "github.com/google/uuid"

// NewID generates entity ids. Tests may replace it for deterministic output.
var NewID = func() string {
	return uuid.NewString()
}
