package background

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"stockroom/internal/jobs"
	"stockroom/internal/services"
)

// JobScheduler manages the background jobs: the periodic low-stock sweep and
// the catalog cache warmer.
type JobScheduler struct {
	scheduler       gocron.Scheduler
	lowStockChecker *jobs.LowStockChecker
	catalogService  services.CatalogService
	registered      map[string]gocron.Job
	mu              sync.RWMutex
}

func NewJobScheduler(lowStockChecker *jobs.LowStockChecker, catalogService services.CatalogService) *JobScheduler {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	js := &JobScheduler{
		scheduler:       scheduler,
		lowStockChecker: lowStockChecker,
		catalogService:  catalogService,
		registered:      make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	lowStockJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.sweepLowStock),
		gocron.WithName("low-stock-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Printf("Failed to create low stock job: %v", err)
	} else {
		js.registered["low-stock-sweep"] = lowStockJob
	}

	warmJob, err := js.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(js.warmCatalogCache),
		gocron.WithName("catalog-cache-warm"),
	)
	if err != nil {
		log.Printf("Failed to create cache warm job: %v", err)
	} else {
		js.registered["catalog-cache-warm"] = warmJob
	}

	log.Printf("Registered %d background jobs", len(js.registered))
}

func (js *JobScheduler) sweepLowStock() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	alerts, err := js.lowStockChecker.CheckLowStock(ctx)
	if err != nil {
		log.Printf("Low stock sweep failed: %v", err)
		return err
	}
	js.lowStockChecker.LogLowStockAlerts(alerts)
	return nil
}

func (js *JobScheduler) warmCatalogCache() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	js.catalogService.Invalidate(ctx)
	if _, err := js.catalogService.Snapshot(ctx); err != nil {
		log.Printf("Catalog cache warm failed: %v", err)
		return err
	}
	return nil
}

// JobStatus reports the registered job names.
func (js *JobScheduler) JobStatus() map[string]interface{} {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.registered))
	for name := range js.registered {
		names = append(names, name)
	}
	return map[string]interface{}{
		"total_jobs": len(js.registered),
		"jobs":       names,
	}
}
