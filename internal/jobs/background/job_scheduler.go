package background

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

const (
	analyticsInterval = 5 * time.Minute
	menuWarmInterval  = 4 * time.Minute
	jobTimeout        = time.Minute
)

// DashboardRefresher recomputes and caches the admin dashboard.
type DashboardRefresher interface {
	Refresh(ctx context.Context) (*models.DashboardData, error)
}

// MenuWarmer repopulates the public menu cache.
type MenuWarmer interface {
	WarmMenuCache(ctx context.Context) error
}

// JobScheduler runs the periodic cache maintenance jobs
type JobScheduler struct {
	scheduler gocron.Scheduler
	dashboard DashboardRefresher
	menu      MenuWarmer
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler with the dashboard refresh and menu warm-up jobs registered
func NewJobScheduler(dashboard DashboardRefresher, menu MenuWarmer) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		dashboard: dashboard,
		menu:      menu,
		jobs:      make(map[string]gocron.Job),
	}
	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

// Start starts the job scheduler
func (js *JobScheduler) Start() {
	log.Info().Int("jobs", len(js.jobs)).Msg("Starting background job scheduler")
	js.scheduler.Start()
}

// Stop waits for running jobs and stops the scheduler
func (js *JobScheduler) Stop() error {
	log.Info().Msg("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if err := js.addJob("dashboard-refresh", analyticsInterval, js.refreshDashboard); err != nil {
		return err
	}
	return js.addJob("menu-cache-warm", menuWarmInterval, js.warmMenu)
}

func (js *JobScheduler) addJob(name string, interval time.Duration, task func()) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}
	js.jobs[name] = job
	return nil
}

func (js *JobScheduler) refreshDashboard() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	if _, err := js.dashboard.Refresh(ctx); err != nil {
		log.Error().Err(err).Msg("Dashboard refresh failed")
		return
	}
	log.Debug().Dur("took", time.Since(start)).Msg("Dashboard refreshed")
}

func (js *JobScheduler) warmMenu() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := js.menu.WarmMenuCache(ctx); err != nil {
		log.Error().Err(err).Msg("Menu cache warm-up failed")
		return
	}
	log.Debug().Msg("Menu cache warmed")
}

// JobStatus describes one scheduled job for the readiness endpoint.
type JobStatus struct {
	Name    string    `json:"name"`
	LastRun time.Time `json:"last_run,omitempty"`
	NextRun time.Time `json:"next_run,omitempty"`
}

// Status lists the registered jobs by name.
func (js *JobScheduler) Status() []JobStatus {
	js.mu.RLock()
	defer js.mu.RUnlock()

	out := make([]JobStatus, 0, len(js.jobs))
	for name, job := range js.jobs {
		st := JobStatus{Name: name}
		if last, err := job.LastRun(); err == nil {
			st.LastRun = last
		}
		if next, err := job.NextRun(); err == nil {
			st.NextRun = next
		}
		out = append(out, st)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
