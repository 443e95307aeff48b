package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"boxtribute/internal/caching"
	"boxtribute/internal/gateway"
	"boxtribute/internal/repositories"
)

const (
	shipmentCacheTTL    = 10 * time.Minute
	auditRetentionAge   = 90 * 24 * time.Hour
	shipmentRefreshSpan = 5 * time.Minute
	auditPruneSpan      = 24 * time.Hour
)

// JobScheduler manages the recurring maintenance jobs: warming the cache of
// shipments under preparation and pruning old audit rows.
type JobScheduler struct {
	scheduler gocron.Scheduler
	gw        gateway.Client
	cacheSvc  caching.CacheService
	auditRepo repositories.BatchAuditRepository
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

func NewJobScheduler(gw gateway.Client, cacheSvc caching.CacheService, auditRepo repositories.BatchAuditRepository) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler: scheduler,
		gw:        gw,
		cacheSvc:  cacheSvc,
		auditRepo: auditRepo,
		jobs:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

// Start starts the job scheduler.
func (js *JobScheduler) Start() error {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler.
func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	shipmentJob, err := js.scheduler.NewJob(
		gocron.DurationJob(shipmentRefreshSpan),
		gocron.NewTask(js.refreshOpenShipments, context.Background()),
		gocron.WithName("open-shipments-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create shipment refresh job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["shipments"] = shipmentJob
		js.mu.Unlock()
	}

	auditJob, err := js.scheduler.NewJob(
		gocron.DurationJob(auditPruneSpan),
		gocron.NewTask(js.pruneAuditLogs, context.Background()),
		gocron.WithName("audit-retention"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create audit retention job: %v", err)
	} else {
		js.mu.Lock()
		js.jobs["audit"] = auditJob
		js.mu.Unlock()
	}
}

// refreshOpenShipments warms the cache with every shipment still under
// preparation so assignment eligibility checks rarely hit the remote
// service.
func (js *JobScheduler) refreshOpenShipments(ctx context.Context) {
	shipments, err := js.gw.OpenShipments(ctx)
	if err != nil {
		log.Printf("Failed to refresh open shipments: %v", err)
		return
	}
	for i := range shipments {
		if err := js.cacheSvc.SetShipment(ctx, &shipments[i], shipmentCacheTTL); err != nil {
			log.Printf("Failed to cache shipment %s: %v", shipments[i].ID, err)
		}
	}
	log.Printf("Refreshed %d open shipments", len(shipments))
}

// pruneAuditLogs enforces the audit retention window.
func (js *JobScheduler) pruneAuditLogs(ctx context.Context) {
	cutoff := time.Now().Add(-auditRetentionAge)
	deleted, err := js.auditRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("Failed to prune audit logs: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("Pruned %d audit entries older than %s", deleted, cutoff.Format("2006-01-02"))
	}
}
