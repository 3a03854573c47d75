package usecase

import "context"

// Seeder guarantees the default category set exists for a user. It is
// best-effort: failures are logged and swallowed so bootstrap never breaks
// on a seeding problem, which is why EnsureDefaults returns nothing.
type Seeder interface {
	// EnsureDefaults inserts whichever default categories the user is
	// missing. Concurrent calls for the same user within one process
	// observe a single underlying operation.
	EnsureDefaults(ctx context.Context, userID string)
}
