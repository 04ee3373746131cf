package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"TokenSentinel/internal/economy"
	"TokenSentinel/internal/export"
	"TokenSentinel/internal/model"
	"TokenSentinel/internal/montecarlo"
	"TokenSentinel/internal/notifier"
	"TokenSentinel/internal/recorder"
	"TokenSentinel/internal/scenario"
)

// Scheduler manages the recurring simulation tasks: a daily scenario sweep
// and a weekly Monte Carlo batch.
type Scheduler struct {
	Cron       *cron.Cron
	Base       model.SimParams
	Scenarios  []scenario.Scenario
	Aggregator *montecarlo.Aggregator
	Notifier   *notifier.TelegramNotifier
	Recorder   recorder.Recorder
	Ctx        context.Context

	RunJSONPath        string
	MonteCarloJSONPath string

	mu         sync.Mutex
	lastRun    *model.RunSummary
	lastReport *model.MonteCarloReport
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, base model.SimParams, scenarios []scenario.Scenario,
	agg *montecarlo.Aggregator, tn *notifier.TelegramNotifier, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Base:       base,
		Scenarios:  scenarios,
		Aggregator: agg,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
	}
}

// RegisterAll registers the daily and weekly tasks.
func (s *Scheduler) RegisterAll(dailyCron, weeklyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	if _, err := s.Cron.AddFunc(weeklyCron, s.weeklyTask); err != nil {
		return fmt.Errorf("register weekly task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScenariosNow executes the scenario sweep immediately.
func (s *Scheduler) RunScenariosNow() { s.dailyTask() }

// RunMonteCarloNow executes the Monte Carlo batch immediately.
func (s *Scheduler) RunMonteCarloNow() { s.weeklyTask() }

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running scenario sweep")

	// The base case runs first and keeps its full daily history; the remaining
	// scenarios only contribute summaries to the comparison.
	base := s.Scenarios[0]
	econ := economy.New(base.Params)
	if err := econ.Run(s.Ctx); err != nil {
		log.Printf("[ERROR] base scenario %q: %v", base.Name, err)
		s.trySend(fmt.Sprintf("❌ Scenario sweep failed: %v", err))
		return
	}
	baseSummary := econ.Summary()
	if err := s.Recorder.RecordRun(base.Name, baseSummary, econ.History); err != nil {
		log.Printf("[ERROR] record scenario %q: %v", base.Name, err)
	}

	rest, err := scenario.RunAll(s.Ctx, s.Scenarios[1:])
	if err != nil {
		log.Printf("[ERROR] scenario sweep: %v", err)
		s.trySend(fmt.Sprintf("❌ Scenario sweep failed: %v", err))
		return
	}
	for _, res := range rest {
		if err := s.Recorder.RecordRun(res.Name, res.Summary, nil); err != nil {
			log.Printf("[ERROR] record scenario %q: %v", res.Name, err)
		}
	}
	results := append([]scenario.Result{{Name: base.Name, Summary: baseSummary}}, rest...)

	s.mu.Lock()
	s.lastRun = &baseSummary
	s.mu.Unlock()

	s.trySend(notifier.FormatRunReport(base.Name, base.Params, baseSummary))
	s.trySend(notifier.FormatComparison(results))

	if s.RunJSONPath != "" {
		if err := export.WriteRunResult(s.RunJSONPath, base.Params, baseSummary, econ.History); err != nil {
			log.Printf("[ERROR] export run result: %v", err)
		}
	}
}

func (s *Scheduler) weeklyTask() {
	log.Printf("[INFO] running monte carlo batch")

	report, records, err := s.Aggregator.Run(s.Ctx)
	if err != nil {
		log.Printf("[ERROR] monte carlo: %v", err)
		s.trySend(fmt.Sprintf("❌ Monte Carlo batch failed: %v", err))
		return
	}
	if report.Failed > 0 {
		log.Printf("[WARN] monte carlo excluded %d failed runs", report.Failed)
	}

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()

	if err := s.Recorder.RecordMonteCarlo(report); err != nil {
		log.Printf("[ERROR] record monte carlo: %v", err)
	}
	if s.MonteCarloJSONPath != "" {
		if err := export.WriteMonteCarloResult(s.MonteCarloJSONPath, s.Base, report, records); err != nil {
			log.Printf("[ERROR] export monte carlo result: %v", err)
		}
	}

	s.trySend(notifier.FormatMonteCarloReport(report))
	if report.Risk == model.RiskHigh {
		s.trySend(notifier.FormatRiskAlert(report))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/run":
		go s.dailyTask()
		return "Scenario sweep started."
	case "/montecarlo":
		go s.weeklyTask()
		return "Monte Carlo batch started, this may take a while."
	case "/scenarios":
		results, err := scenario.RunAll(s.Ctx, s.Scenarios)
		if err != nil {
			return fmt.Sprintf("Scenario comparison failed: %v", err)
		}
		return notifier.FormatComparison(results)
	case "/status":
		return s.statusReply()
	default:
		return "Commands:\n• /run — scenario sweep\n• /montecarlo — Monte Carlo batch\n• /scenarios — scenario comparison\n• /status — last results"
	}
}

func (s *Scheduler) statusReply() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastRun == nil && s.lastReport == nil {
		return "No results yet."
	}
	var reply string
	if s.lastRun != nil {
		reply += notifier.FormatRunReport(s.Scenarios[0].Name, s.Scenarios[0].Params, *s.lastRun)
	}
	if s.lastReport != nil {
		reply += "\n" + notifier.FormatMonteCarloReport(s.lastReport)
	}
	return reply
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
