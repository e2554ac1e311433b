package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inboundlogistics/transplan/pkg/application/dto"
	"github.com/inboundlogistics/transplan/pkg/domain/entities"
)

// OutputConfig controls how planning results are rendered
type OutputConfig struct {
	Format    string
	OutputDir string
	Verbose   bool
	PlanTime  time.Duration
}

// generateOutput generates formatted output based on configuration
func generateOutput(result *dto.PlanResult, config OutputConfig) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput generates human-readable text output
func generateTextOutput(result *dto.PlanResult, config OutputConfig) error {
	var b strings.Builder

	b.WriteString("═══════════════════════════════════════════════════════════════\n")
	b.WriteString("                 INBOUND SHIPMENT PLAN\n")
	b.WriteString("═══════════════════════════════════════════════════════════════\n\n")

	errorCount := 0
	for _, line := range result.Lines {
		errorCount += len(line.Errors)
	}

	b.WriteString("SUMMARY\n")
	fmt.Fprintf(&b, "  Reference Date:  %s\n", result.ReferenceDate.Format("2006-01-02"))
	fmt.Fprintf(&b, "  Planning Time:   %v\n", config.PlanTime)
	fmt.Fprintf(&b, "  Demand Lines:    %d\n", len(result.Lines))
	fmt.Fprintf(&b, "  Shipments:       %d\n", len(result.Shipments))
	fmt.Fprintf(&b, "  Excess Rows:     %d\n", len(result.Excess))
	fmt.Fprintf(&b, "  Line Errors:     %d\n", errorCount)
	b.WriteString("\n")

	if len(result.Shipments) > 0 {
		b.WriteString("SHIPMENTS\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		for _, row := range result.Shipments {
			fmt.Fprintf(&b, "%s  %-5s %-6s ship-by %s\n",
				formatLane(row.Lane), row.Mode, row.Equipment, row.ShipBy.Format("2006-01-02"))
			fmt.Fprintf(&b, "    packs: %d  weight: %s kg  volume: %s m3",
				row.TotalPacks, row.TotalWeight.StringFixed(1), row.TotalVolume.StringFixed(3))
			if row.EquipmentCount > 0 {
				fmt.Fprintf(&b, "  equipment: %d", row.EquipmentCount)
			}
			fmt.Fprintf(&b, "  util: %.0f%%\n", row.Utilization*100)
			if row.Currency != "" {
				fmt.Fprintf(&b, "    cost: %s %s\n", row.Cost.StringFixed(2), row.Currency)
			}
			fmt.Fprintf(&b, "    lines: %s\n", joinLines(row.Lines))
		}
		b.WriteString("\n")
	}

	if len(result.Excess) > 0 {
		b.WriteString("EXCESS / UNPLANNABLE\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		for _, ex := range result.Excess {
			fmt.Fprintf(&b, "  %-14s tranche %d  %4d packs  %s", ex.DemandLine, ex.SequenceIndex, ex.PackQty, ex.Reason)
			if ex.Detail != "" {
				fmt.Fprintf(&b, "  (%s)", ex.Detail)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if errorCount > 0 {
		b.WriteString("LINE ERRORS\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		for _, line := range result.Lines {
			for _, e := range line.Errors {
				fmt.Fprintf(&b, "  %-14s [%s", line.DemandLine, e.Code)
				if e.Mode != "" {
					fmt.Fprintf(&b, "/%s", e.Mode)
				}
				fmt.Fprintf(&b, "] %s\n", e.Message)
			}
		}
		b.WriteString("\n")
	}

	if len(result.RateWarnings) > 0 {
		b.WriteString("RATE CARD OVERLAP WARNINGS\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		for _, pair := range result.RateWarnings {
			fmt.Fprintf(&b, "  %s overlaps %s\n", pair[0], pair[1])
		}
		b.WriteString("\n")
	}

	if config.Verbose {
		b.WriteString("LINE DETAIL\n")
		b.WriteString("────────────────────────────────────────────────────────────────\n")
		for _, line := range result.Lines {
			fmt.Fprintf(&b, "%s  %s  required %s  shipped %s  excess %s  packs %d\n",
				line.DemandLine, line.PartNumber,
				line.RequiredUnits.String(), line.ShippedUnits.String(), line.ExcessUnits.String(),
				line.TotalPacks)
			for _, tr := range line.Tranches {
				fmt.Fprintf(&b, "  tranche %d (%d packs):\n", tr.Tranche.SequenceIndex, tr.Tranche.PackQty)
				for _, rec := range tr.Recommendations {
					b.WriteString("    " + formatRecommendation(rec) + "\n")
				}
			}
		}
		b.WriteString("\n")
	}

	return writeOutput(b.String(), config.OutputDir, "plan_result.txt")
}

// generateJSONOutput generates machine-readable JSON output
func generateJSONOutput(result *dto.PlanResult, config OutputConfig) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return writeOutput(string(data)+"\n", config.OutputDir, "plan_result.json")
}

func writeOutput(content, outputDir, filename string) error {
	if outputDir == "" {
		fmt.Print(content)
		return nil
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outputDir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Results written to %s\n", path)
	return nil
}

func formatRecommendation(rec entities.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %-5s %-6s", rec.Rank, rec.Mode, rec.Equipment)
	if rec.ManualOverride {
		b.WriteString(" [manual]")
	}
	if !rec.Feasible {
		fmt.Fprintf(&b, " INFEASIBLE(%s)", rec.Reason)
		return b.String()
	}
	fmt.Fprintf(&b, " ship-by %s  lead %dd", rec.ShipBy.Format("2006-01-02"), rec.LeadDays)
	if rec.Priced {
		fmt.Fprintf(&b, "  %s %s via %s", rec.Cost.StringFixed(2), rec.Currency, rec.Carrier)
	}
	fmt.Fprintf(&b, "  util %.0f%%", rec.Utilization*100)
	if rec.EquipmentCount > 0 {
		fmt.Fprintf(&b, "  x%d", rec.EquipmentCount)
	}
	return b.String()
}

func formatLane(l entities.Lane) string {
	return fmt.Sprintf("%s:%s → %s:%s", l.OriginType, l.OriginCode, l.DestType, l.DestCode)
}

func joinLines(ids []entities.DemandLineID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
