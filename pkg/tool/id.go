package tool

import "github.com/google/uuid"

// GenerateUUIDV7 returns a time-ordered id. Ids generated by one process sort in
// creation order, which the ledger relies on to break timestamp ties.
func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}
