package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andrescamacho/factory-planner-go/internal/adapters/grpc"
	"github.com/andrescamacho/factory-planner-go/internal/domain/material"
	"github.com/andrescamacho/factory-planner-go/internal/domain/planning"
	"github.com/andrescamacho/factory-planner-go/internal/domain/project"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8f98"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
)

// table renders aligned columns with a muted separator
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func newTable(title string, headers ...string) *table {
	return &table{title: title, headers: headers}
}

func (t *table) addRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	var sb strings.Builder
	if t.title != "" {
		sb.WriteString(titleStyle.Render(t.title))
		sb.WriteString("\n")
	}
	if len(t.rows) == 0 {
		sb.WriteString(mutedStyle.Render("  (none)"))
		sb.WriteString("\n")
		return sb.String()
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	// Width includes padding
	for i := range widths {
		widths[i] += 2
	}

	sep := mutedStyle.Render("|")
	line := func(cells []string, style lipgloss.Style) {
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(style.Width(widths[i]).Render(cell))
			if i < len(widths)-1 {
				sb.WriteString(sep)
			}
		}
		sb.WriteString("\n")
	}

	line(t.headers, headerStyle)
	for _, row := range t.rows {
		line(row, cellStyle)
	}
	return sb.String()
}

// formatAmount prints rates without trailing zeros, dropping LP round-off
func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e9)/1e9, 'f', -1, 64)
}

func formatBound(b planning.BoundEntry) string {
	if b.Amount == nil {
		return "unbounded"
	}
	return formatAmount(*b.Amount)
}

// FormatResult renders a solve result
func FormatResult(doc planning.ResultDocument) string {
	var sb strings.Builder

	switch doc.Kind {
	case planning.ResultNoSolution:
		sb.WriteString(errorStyle.Render("✗ No solution"))
		sb.WriteString("\n")
		if doc.Reason != "" {
			sb.WriteString(mutedStyle.Render("  " + doc.Reason))
			sb.WriteString("\n")
		}

	case planning.ResultOneSolution:
		sb.WriteString(successStyle.Render("✓ Unique solution"))
		sb.WriteString("\n\n")
		t := newTable("Process rates", "Process", "Rate (/s)")
		for _, r := range doc.Rates {
			t.addRow(r.Process.String(), formatAmount(r.Rate))
		}
		sb.WriteString(t.render())

	case planning.ResultMultipleSolutions:
		sb.WriteString(warningStyle.Render("⚠ Multiple solutions: pin more materials to pick one"))
		sb.WriteString("\n\n")
		sb.WriteString(boundsTable("Inputs that can vary", doc.LowerBounds).render())
		sb.WriteString("\n")
		sb.WriteString(boundsTable("Outputs that can vary", doc.HigherBounds).render())

	default:
		sb.WriteString(fmt.Sprintf("unknown result kind %q\n", doc.Kind))
	}

	return sb.String()
}

func boundsTable(title string, bounds []planning.BoundEntry) *table {
	t := newTable(title, "Material", "Up to")
	for _, b := range bounds {
		t.addRow(b.Material.ID(), formatBound(b))
	}
	return t
}

// FormatMachines renders the machine report of a unique solution
func FormatMachines(rows []grpc.MachineRow) string {
	t := newTable("Machines", "Process", "Machine", "Count")
	for _, row := range rows {
		machine, count := row.Machine, "n/a"
		if machine == "" {
			machine = "-"
		}
		if row.Applicable {
			count = strconv.FormatFloat(row.Count, 'f', 2, 64)
		}
		t.addRow(row.Process, machine, count)
	}
	return t.render()
}

// machineRows converts a local machine report to the daemon's row form
func machineRows(report []planning.MachineRequirement) []grpc.MachineRow {
	rows := make([]grpc.MachineRow, 0, len(report))
	for _, m := range report {
		rows = append(rows, grpc.MachineRow{
			Process:    m.Process.String(),
			Rate:       m.Rate,
			Machine:    m.Machine,
			Count:      m.Count,
			Applicable: m.Applicable,
		})
	}
	return rows
}

// FormatProject renders a project's selected processes and pins
func FormatProject(p *project.Project) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(p.Name()))
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  (%s)", p.ID())))
	sb.WriteString("\n")
	summary := p.Catalog().Summary()
	sb.WriteString(fmt.Sprintf("Catalog: %d recipes, %d resources, %d plants\n",
		summary.Recipes, summary.Resources, summary.Plants))
	sb.WriteString(fmt.Sprintf("Updated: %s\n\n", p.UpdatedAt().Format("2006-01-02 15:04:05")))

	processes := newTable("Processes", "Process", "Productivity", "Machine")
	for _, proc := range p.Processes() {
		settings, _ := p.SettingsFor(proc.Key())
		machine := settings.Machine
		if machine == "" {
			machine = "-"
		}
		processes.addRow(proc.Key().String(), formatAmount(proc.Productivity), machine)
	}
	sb.WriteString(processes.render())
	sb.WriteString("\n")

	model := p.Model()
	sb.WriteString(pinsTable("Inputs", model.Inputs).render())
	sb.WriteString("\n")
	sb.WriteString(pinsTable("Outputs", model.Outputs).render())
	return sb.String()
}

func pinsTable(title string, pins map[material.Key]float64) *table {
	t := newTable(title, "Material", "Amount (/s)")
	for _, key := range material.SortedKeys(pins) {
		t.addRow(key.ID(), formatAmount(pins[key]))
	}
	return t
}
