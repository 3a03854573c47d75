package seeding

import (
	"context"
	"sync"

	"github.com/uangku/uangku-backend/internal/domain/entity"
	errs "github.com/uangku/uangku-backend/internal/domain/error"
	coreport "github.com/uangku/uangku-backend/internal/domain/port/core"
	"github.com/uangku/uangku-backend/internal/domain/port/persistence"
)

// seedOp is the handle for one in-flight or completed seeding operation.
// Awaiters block on done; err records the terminal outcome for logging only.
type seedOp struct {
	done chan struct{}
	err  error
}

// Coordinator guarantees at most one in-flight seeding operation per user
// within the process. Entries for successful seeds are kept for the process
// lifetime so replays short-circuit; failed seeds are evicted so a later
// bootstrap can retry.
type Coordinator struct {
	categoryRepo persistence.CategoryRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger

	mu  sync.Mutex
	ops map[string]*seedOp
}

// NewCoordinator creates a new seeding coordinator
func NewCoordinator(
	categoryRepo persistence.CategoryRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Coordinator {
	return &Coordinator{
		categoryRepo: categoryRepo,
		timeProvider: timeProvider,
		logger:       logger,
		ops:          make(map[string]*seedOp),
	}
}

// EnsureDefaults inserts whichever default categories the user is missing.
// Failures are logged and swallowed; the caller's bootstrap continues either
// way. Concurrent callers for the same user await the same operation instead
// of racing independent inserts.
func (c *Coordinator) EnsureDefaults(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	c.mu.Lock()
	if op, ok := c.ops[userID]; ok {
		c.mu.Unlock()
		select {
		case <-op.done:
		case <-ctx.Done():
		}
		return
	}

	op := &seedOp{done: make(chan struct{})}
	c.ops[userID] = op
	c.mu.Unlock()

	op.err = c.seed(ctx, userID)
	if op.err != nil {
		c.mu.Lock()
		delete(c.ops, userID)
		c.mu.Unlock()

		fields := map[string]any{"user_id": userID, "error": op.err.Error()}
		if seedErr, ok := op.err.(*errs.SeedError); ok {
			fields = seedErr.LogFields()
		}
		c.logger.Warn("Category seeding failed, will retry on next bootstrap", fields)
	}
	close(op.done)
}

// seed runs one read-diff-insert cycle for the user
func (c *Coordinator) seed(ctx context.Context, userID string) error {
	pairs, err := c.categoryRepo.ListPairsByUser(ctx, userID)
	if err != nil {
		return errs.NewSeedError(userID, "query", err)
	}

	existing := make(map[string]struct{}, len(pairs))
	for _, pair := range pairs {
		existing[pair.Key()] = struct{}{}
	}

	var missing []*entity.Category
	for _, def := range entity.DefaultCategories() {
		if _, ok := existing[def.Key()]; ok {
			continue
		}
		category, err := entity.NewCategory(userID, def.Name, string(def.Type), def.Color, def.Icon, c.timeProvider)
		if err != nil {
			return errs.NewSeedError(userID, "build", err)
		}
		missing = append(missing, category)
	}

	if len(missing) == 0 {
		return nil
	}

	if err := c.categoryRepo.CreateBatch(ctx, missing); err != nil {
		// Another replica seeded the same user between our read and write.
		// The unique index turned the race into a duplicate-key failure,
		// which means the rows exist; that is the outcome we wanted.
		if errs.IsDuplicateCategoryError(err) {
			c.logger.Debug("Default categories already seeded by another process", map[string]any{
				"user_id": userID,
			})
			return nil
		}
		return errs.NewSeedError(userID, "insert", err)
	}

	c.logger.Info("Seeded default categories", map[string]any{
		"user_id":  userID,
		"inserted": len(missing),
	})
	return nil
}
