package uid

import "github.com/google/uuid"

// GenerateGameID returns a random UUIDv4 for a new session.
func GenerateGameID() string {
	return uuid.NewString()
}
