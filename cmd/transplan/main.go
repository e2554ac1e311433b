package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/inboundlogistics/transplan/pkg/application/services/planning"
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
	csvrepo "github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/csv"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/memory"
	"github.com/inboundlogistics/transplan/pkg/infrastructure/repositories/sqlite"
)

func main() {
	// Optional .env for local runs; absence is not an error
	_ = godotenv.Load()

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			os.Getenv("TRANSPLAN_SCENARIO"),
			"Path to scenario directory containing CSV files",
		)
		dbPath     = flag.String("db", os.Getenv("TRANSPLAN_DB"), "Path to SQLite snapshot database")
		refDate    = flag.String("date", "", "Planning reference date (YYYY-MM-DD, default today)")
		modes      = flag.String("modes", "", "Comma-separated transport modes to evaluate (default all)")
		scope      = flag.String("scope", "P2P", "Service scope: P2P, P2D, D2P, D2D")
		originCode = flag.String("origin", "", "Default lane origin code")
		destCode   = flag.String("dest", "", "Default lane destination code")
		conditions = flag.String("conditions", "", "Comma-separated shipment condition flags (e.g. REEFER,DG)")
		windowDays = flag.Int("window", 7, "Consolidation window in days")
		maxPacks   = flag.Int("max-tranche-packs", 0, "Maximum packs per tranche (0 = uncapped)")
		workers    = flag.Int("workers", 0, "Parallel line evaluation workers (0 = NumCPU)")
		outputDir  = flag.String("output", "", "Output directory for results (optional)")
		format     = flag.String("format", "text", "Output format: text, json")
		verbose    = flag.Bool("verbose", false, "Enable verbose output")
		help       = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *help {
		printUsage()
		return
	}

	if err := run(runConfig{
		ScenarioDir: *scenarioDir,
		DBPath:      *dbPath,
		RefDate:     *refDate,
		Modes:       *modes,
		Scope:       *scope,
		OriginCode:  *originCode,
		DestCode:    *destCode,
		Conditions:  *conditions,
		WindowDays:  *windowDays,
		MaxPacks:    *maxPacks,
		Workers:     *workers,
		OutputDir:   *outputDir,
		Format:      *format,
		Verbose:     *verbose,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	ScenarioDir string
	DBPath      string
	RefDate     string
	Modes       string
	Scope       string
	OriginCode  string
	DestCode    string
	Conditions  string
	WindowDays  int
	MaxPacks    int
	Workers     int
	OutputDir   string
	Format      string
	Verbose     bool
}

func run(cfg runConfig) error {
	snap, err := loadSnapshot(cfg)
	if err != nil {
		return err
	}

	planConfig := planning.Config{
		Scope:                   entities.ServiceScope(strings.ToUpper(cfg.Scope)),
		ConsolidationWindowDays: cfg.WindowDays,
		MaxTranchePacks:         cfg.MaxPacks,
		Workers:                 cfg.Workers,
	}
	if cfg.RefDate != "" {
		ref, err := time.Parse("2006-01-02", cfg.RefDate)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: %w", cfg.RefDate, err)
		}
		planConfig.ReferenceDate = ref
	}
	for _, m := range splitList(cfg.Modes) {
		planConfig.Modes = append(planConfig.Modes, entities.TransportMode(strings.ToUpper(m)))
	}
	for _, f := range splitList(cfg.Conditions) {
		planConfig.Flags = append(planConfig.Flags, entities.ConditionFlag(strings.ToUpper(f)))
	}
	if cfg.OriginCode != "" && cfg.DestCode != "" {
		planConfig.DefaultLane = entities.Lane{
			OriginType: entities.NodeCity,
			OriginCode: strings.ToUpper(cfg.OriginCode),
			DestType:   entities.NodeCity,
			DestCode:   strings.ToUpper(cfg.DestCode),
		}
	}

	planner := planning.NewPlanner(snap.SKUs, snap.PackRules, snap.LeadTimes, snap.Equipment, snap.Rates, planConfig)

	lines, err := snap.Demands.GetDemandLines()
	if err != nil {
		return fmt.Errorf("failed to load demand lines: %w", err)
	}

	start := time.Now()
	result, err := planner.Run(context.Background(), lines)
	if err != nil {
		return fmt.Errorf("planning run failed: %w", err)
	}

	return generateOutput(result, OutputConfig{
		Format:    cfg.Format,
		OutputDir: cfg.OutputDir,
		Verbose:   cfg.Verbose,
		PlanTime:  time.Since(start),
	})
}

func loadSnapshot(cfg runConfig) (*memory.Snapshot, error) {
	switch {
	case cfg.DBPath != "":
		loader, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot database: %w", err)
		}
		defer loader.Close()
		return loader.LoadSnapshot()
	case cfg.ScenarioDir != "":
		return csvrepo.NewLoader().LoadScenario(cfg.ScenarioDir)
	default:
		return nil, fmt.Errorf("either -scenario or -db is required (see -help)")
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("transplan - inbound shipment planning and rating")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  transplan -scenario <dir> [options]")
	fmt.Println("  transplan -db <file.sqlite> [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  transplan -scenario ./scenarios/apac -modes OCEAN,AIR -format json")
	fmt.Println("  transplan -db planning.sqlite -date 2026-01-15 -origin SHA -dest RTM")
}
