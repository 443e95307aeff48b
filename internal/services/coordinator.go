package services

import (
	"context"
	"log"
	"time"

	"boxtribute/internal/caching"
	"boxtribute/internal/common"
	"boxtribute/internal/models"
	"boxtribute/internal/reconcile"
	"boxtribute/internal/repositories"
)

// commonActor resolves the acting user for audit rows.
func commonActor(ctx context.Context) (string, bool) {
	actor, ok := common.GetActorFromContext(ctx)
	if !ok {
		return "unknown", false
	}
	return actor, true
}

const (
	boxCacheTTL      = 5 * time.Minute
	shipmentCacheTTL = 5 * time.Minute
)

// coordinatorBase carries the side-effect plumbing shared by all feature
// coordinators: cache merging after a response is interpreted and
// best-effort audit recording. Neither may fail an operation.
type coordinatorBase struct {
	cache     caching.CacheService
	auditRepo repositories.BatchAuditRepository
}

// mergeBoxCache writes the authoritative after-states into the cache and
// drops the affected shipment snapshots. Called only for successful or
// partially successful outcomes.
func (b *coordinatorBase) mergeBoxCache(ctx context.Context, outcome reconcile.Outcome, updated []models.Box, shipmentIDs ...string) {
	if outcome != reconcile.OutcomeSuccess && outcome != reconcile.OutcomePartialFail {
		return
	}
	if err := b.cache.MergeBoxes(ctx, updated, boxCacheTTL); err != nil {
		log.Printf("Failed to merge %d boxes into cache: %v", len(updated), err)
	}
	for _, id := range shipmentIDs {
		if err := b.cache.DeleteShipment(ctx, id); err != nil {
			log.Printf("Failed to invalidate cached shipment %s: %v", id, err)
		}
	}
}

// dropBoxes evicts the snapshots of identifiers the server rejected: the
// cached state that made them look eligible is suspect, so the next
// resolution refetches them.
func (b *coordinatorBase) dropBoxes(ctx context.Context, labelIdentifiers []string) {
	for _, label := range labelIdentifiers {
		if err := b.cache.DeleteBox(ctx, label); err != nil {
			log.Printf("Failed to evict cached box %s: %v", label, err)
		}
	}
}

// recordAudit persists one audit row for the invocation. Audit failures are
// logged and swallowed.
func (b *coordinatorBase) recordAudit(ctx context.Context, operation string, targetID *string, requested []string, out *OperationResult) {
	actor, _ := commonActor(ctx)
	entry := &models.BatchAuditEntry{
		Operation: operation,
		Actor:     actor,
		TargetID:  targetID,
		Requested: requested,
		Succeeded: out.Succeeded,
		Failed:    out.Failed,
		Invalid:   out.Invalid,
		Outcome:   string(out.Outcome),
	}
	if err := b.auditRepo.Create(ctx, entry); err != nil {
		log.Printf("Failed to record audit entry for %s: %v", operation, err)
	}
}
