package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/southpole/internal/emissions"
	"github.com/rshade/southpole/internal/scenario"
	"github.com/rshade/southpole/internal/sweep"
)

// tabwriterPadding is the minimum padding between table columns.
const tabwriterPadding = 2

// Table colors (ANSI 256).
const (
	colorTitle  = lipgloss.Color("39")
	colorHeader = lipgloss.Color("33")
	colorTotal  = lipgloss.Color("214")
	colorError  = lipgloss.Color("196")
	colorMuted  = lipgloss.Color("240")
)

// Renderer writes results in one of the supported formats. Styled enables
// lipgloss colors in table output and should only be set for terminals.
type Renderer struct {
	Out    io.Writer
	Styled bool
}

// ValidFormat reports whether format is supported for scenario output.
func ValidFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON:
		return true
	default:
		return false
	}
}

// ValidSweepFormat reports whether format is supported for sweep output.
func ValidSweepFormat(format string) bool {
	return ValidFormat(format) || format == FormatNDJSON
}

// Scenario renders one evaluated scenario.
func (r Renderer) Scenario(res scenario.Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case FormatTable:
		return r.scenarioTable(res)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Scenarios renders several evaluated scenarios: consecutive tables separated
// by a blank line, or one JSON array.
func (r Renderer) Scenarios(results []scenario.Result, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case FormatTable:
		for i, res := range results {
			if i > 0 {
				if _, err := io.WriteString(r.Out, "\n"); err != nil {
					return err
				}
			}
			if err := r.scenarioTable(res); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (r Renderer) scenarioTable(res scenario.Result) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, tabwriterPadding, ' ', tabwriter.AlignRight)

	gases := res.Total.Keys()
	header := make([]string, len(gases))
	for i, p := range gases {
		header[i] = string(p)
	}
	fmt.Fprintf(tw, "CATEGORY\t%s\tCO2e\t\n", strings.Join(header, "\t"))
	for _, name := range res.Categories() {
		cells := categoryGases(res, name, gases)
		fmt.Fprintf(tw, "%s\t%s\t%s\t\n", name, strings.Join(cells, "\t"), FormatMass(res.CategoryCO2e[name]))
	}
	fmt.Fprintf(tw, "TOTAL\t%s\t%s\t\n",
		strings.Join(gasCells(res.Total, gases), "\t"), FormatMass(res.TotalCO2e))
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	title := "Scenario: " + res.Name
	if res.Name == "" {
		title = "Scenario"
	}

	var out strings.Builder
	out.WriteString(r.style(title, lipgloss.NewStyle().Bold(true).Foreground(colorTitle)) + "\n")
	for i, line := range lines {
		switch i {
		case 0:
			line = r.style(line, lipgloss.NewStyle().Bold(true).Foreground(colorHeader))
		case len(lines) - 1:
			line = r.style(line, lipgloss.NewStyle().Bold(true).Foreground(colorTotal))
		}
		out.WriteString(line + "\n")
	}

	eq, err := Equivalencies(res.TotalCO2e, "g")
	if err == nil && !eq.IsEmpty {
		out.WriteString(r.style(eq.DisplayText, lipgloss.NewStyle().Italic(true).Foreground(colorMuted)) + "\n")
	}

	_, err = io.WriteString(r.Out, out.String())
	return err
}

// categoryGases formats the masses of gases in a category. Embodied scalars
// have no gas split and show CO2e only.
func categoryGases(res scenario.Result, name string, gases []emissions.Pollutant) []string {
	var rec emissions.Record
	if r, ok := res.Transport[name]; ok {
		rec = r
	} else if name == scenario.CategoryFuelProduction {
		rec = res.FuelProduction
	} else if entry, ok := res.Embodied[name]; ok {
		if b, isBreakdown := entry.Breakdown(); isBreakdown {
			rec = b
		}
	}

	if rec == nil {
		cells := make([]string, len(gases))
		for i := range cells {
			cells[i] = "-"
		}
		return cells
	}
	return gasCells(rec, gases)
}

func gasCells(rec emissions.Record, gases []emissions.Pollutant) []string {
	cells := make([]string, len(gases))
	for i, p := range gases {
		cells[i] = FormatMass(rec[p])
	}
	return cells
}

// sweepRow is the flattened per-scenario record used for sweep output.
type sweepRow struct {
	RunID     string                  `json:"run_id"`
	Index     int                     `json:"index"`
	Name      string                  `json:"name"`
	Input     emissions.ScenarioInput `json:"input"`
	Total     emissions.Record        `json:"total,omitempty"`
	TotalCO2e float64                 `json:"total_co2e"`
	Cached    bool                    `json:"cached"`
	Error     string                  `json:"error,omitempty"`
}

func rowsOf(rep sweep.Report) []sweepRow {
	rows := make([]sweepRow, len(rep.Results))
	for i, res := range rep.Results {
		row := sweepRow{
			RunID:  rep.RunID,
			Index:  res.Index,
			Name:   res.Input.Name,
			Input:  res.Input.Capacities,
			Cached: res.Cached,
		}
		if res.Failed() {
			row.Error = res.Err.Error()
		} else {
			row.Total = res.Evaluation.Total
			row.TotalCO2e = res.Evaluation.TotalCO2e
		}
		rows[i] = row
	}
	return rows
}

// Sweep renders a sweep report.
func (r Renderer) Sweep(rep sweep.Report, format string) error {
	rows := rowsOf(rep)

	switch format {
	case FormatNDJSON:
		enc := json.NewEncoder(r.Out)
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return fmt.Errorf("writing ndjson: %w", err)
			}
		}
		return nil
	case FormatJSON:
		enc := json.NewEncoder(r.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			RunID     string     `json:"run_id"`
			Failed    int        `json:"failed"`
			CacheHits int        `json:"cache_hits"`
			Results   []sweepRow `json:"results"`
		}{rep.RunID, rep.Failed, rep.CacheHits, rows})
	case FormatTable:
		return r.sweepTable(rep, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (r Renderer) sweepTable(rep sweep.Report, rows []sweepRow) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, tabwriterPadding, ' ', 0)

	fmt.Fprintln(tw, "#\tSCENARIO\tCO2e\tSTATUS")
	for _, row := range rows {
		status := "ok"
		co2e := FormatMass(row.TotalCO2e)
		switch {
		case row.Error != "":
			status = "error: " + row.Error
			co2e = "-"
		case row.Cached:
			status = "ok (cached)"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", row.Index, row.Name, co2e, status)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	var out strings.Builder
	out.WriteString(r.style("Sweep "+rep.RunID, lipgloss.NewStyle().Bold(true).Foreground(colorTitle)) + "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			line = r.style(line, lipgloss.NewStyle().Bold(true).Foreground(colorHeader))
		case rows[i-1].Error != "":
			line = r.style(line, lipgloss.NewStyle().Foreground(colorError))
		}
		out.WriteString(line + "\n")
	}
	fmt.Fprintf(&out, "%s scenarios, %s failed, %s cached\n",
		FormatNumber(int64(len(rows))), FormatNumber(int64(rep.Failed)), FormatNumber(int64(rep.CacheHits)))

	_, err := io.WriteString(r.Out, out.String())
	return err
}

func (r Renderer) style(s string, st lipgloss.Style) string {
	if !r.Styled {
		return s
	}
	return st.Render(s)
}
