package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"TokenSentinel/internal/model"
)

// SQLiteRecorder persists run summaries, daily records, and Monte Carlo
// statistics to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the simulator writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS run_summaries (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			scenario         TEXT,
			days             INTEGER,
			circulating      REAL,
			staked           REAL,
			burned           REAL,
			treasury         REAL,
			circulating_pct  REAL,
			staked_pct       REAL,
			burned_pct       REAL,
			treasury_pct     REAL,
			total_revenue    REAL,
			staking_ratio    REAL,
			burn_rate_actual REAL,
			price_index      REAL,
			yearly_burn      REAL,
			years_to_half    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_run_ts ON run_summaries(timestamp)`,

		`CREATE TABLE IF NOT EXISTS daily_records (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           INTEGER NOT NULL,
			day              INTEGER NOT NULL,
			daily_tasks      INTEGER,
			daily_revenue    REAL,
			circulating      REAL,
			staked           REAL,
			burned           REAL,
			treasury         REAL,
			burn_rate_actual REAL,
			staking_ratio    REAL,
			price_index      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_run ON daily_records(run_id, day)`,

		`CREATE TABLE IF NOT EXISTS mc_statistics (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			runs            INTEGER,
			failed          INTEGER,
			burn_mean       REAL,
			burn_median     REAL,
			burn_std        REAL,
			burn_p5         REAL,
			burn_p95        REAL,
			staking_mean    REAL,
			staking_median  REAL,
			staking_std     REAL,
			staking_p5      REAL,
			staking_p95     REAL,
			price_mean      REAL,
			price_median    REAL,
			price_std       REAL,
			price_p5        REAL,
			price_p95       REAL,
			low_price       INTEGER,
			high_burn       INTEGER,
			low_staking     INTEGER,
			risk_score      REAL,
			risk_level      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mc_ts ON mc_statistics(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun stores the summary plus the full daily history in one transaction.
func (r *SQLiteRecorder) RecordRun(scenario string, summary model.RunSummary, history []model.DayRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO run_summaries
		(timestamp, scenario, days, circulating, staked, burned, treasury,
		 circulating_pct, staked_pct, burned_pct, treasury_pct,
		 total_revenue, staking_ratio, burn_rate_actual, price_index,
		 yearly_burn, years_to_half)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), scenario, summary.Days,
		summary.Circulating, summary.Staked, summary.Burned, summary.Treasury,
		summary.CirculatingPct, summary.StakedPct, summary.BurnedPct, summary.TreasuryPct,
		summary.TotalRevenue, summary.StakingRatio, summary.BurnRateActual, summary.PriceIndex,
		summary.YearlyBurn, summary.YearsToHalf,
	)
	if err != nil {
		return fmt.Errorf("insert summary: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO daily_records
		(run_id, day, daily_tasks, daily_revenue, circulating, staked, burned, treasury,
		 burn_rate_actual, staking_ratio, price_index)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare daily insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range history {
		if _, err := stmt.Exec(runID, rec.Day, rec.DailyTasks, rec.DailyRevenue,
			rec.Circulating, rec.Staked, rec.Burned, rec.Treasury,
			rec.BurnRateActual, rec.StakingRatio, rec.PriceIndex); err != nil {
			return fmt.Errorf("insert day %d: %w", rec.Day, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) RecordMonteCarlo(report *model.MonteCarloReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO mc_statistics
		(timestamp, runs, failed,
		 burn_mean, burn_median, burn_std, burn_p5, burn_p95,
		 staking_mean, staking_median, staking_std, staking_p5, staking_p95,
		 price_mean, price_median, price_std, price_p5, price_p95,
		 low_price, high_burn, low_staking, risk_score, risk_level)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), report.Runs, report.Failed,
		report.BurnRatePct.Mean, report.BurnRatePct.Median, report.BurnRatePct.Std,
		report.BurnRatePct.P5, report.BurnRatePct.P95,
		report.StakingRatioPct.Mean, report.StakingRatioPct.Median, report.StakingRatioPct.Std,
		report.StakingRatioPct.P5, report.StakingRatioPct.P95,
		report.PriceIndex.Mean, report.PriceIndex.Median, report.PriceIndex.Std,
		report.PriceIndex.P5, report.PriceIndex.P95,
		report.LowPrice, report.HighBurn, report.LowStaking,
		report.RiskScore, string(report.Risk),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
