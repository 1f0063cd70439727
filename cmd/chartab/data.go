package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/verte-zerg/chartab/internal/chart"
	"github.com/verte-zerg/chartab/internal/dataset"
	"github.com/verte-zerg/chartab/internal/model"
)

const (
	formatText = "text"
	formatYAML = "yaml"

	defaultChartWidth  = 80
	defaultChartHeight = 24
)

var (
	dataFormat string

	chartKind   string
	chartOut    string
	chartWidth  int
	chartHeight int
)

type dataReport struct {
	Source     string         `yaml:"source"`
	Origin     string         `yaml:"origin"`
	Warning    string         `yaml:"warning,omitempty"`
	Records    int            `yaml:"records"`
	MostCommon paymentCount   `yaml:"most_common"`
	Counts     []paymentCount `yaml:"counts"`
}

type paymentCount struct {
	Payment string `yaml:"payment"`
	Rides   int    `yaml:"rides"`
}

func newDataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Show payment counts of the loaded dataset",
		Args:  cobra.NoArgs,
		RunE:  runDataCmd,
	}
	cmd.Flags().StringVar(&dataFormat, "format", formatText, "output format (text, yaml)")
	return cmd
}

func runDataCmd(cmd *cobra.Command, _ []string) error {
	if dataFormat != formatText && dataFormat != formatYAML {
		return fmt.Errorf("--format must be %q or %q", formatText, formatYAML)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, counts, err := loadData(cmd.Context(), a)
	if err != nil {
		return err
	}
	report, err := buildDataReport(res, counts)
	if err != nil {
		return err
	}
	if dataFormat == formatYAML {
		return writeDataYAML(cmd.OutOrStdout(), report)
	}
	return writeDataText(cmd.OutOrStdout(), report)
}

func buildDataReport(res dataset.Result, counts model.PaymentCounts) (dataReport, error) {
	label, n, err := dataset.Mode(counts)
	if err != nil {
		return dataReport{}, err
	}
	report := dataReport{
		Source:     res.Source,
		Origin:     string(res.Origin),
		Warning:    res.Warning,
		Records:    counts.Total(),
		MostCommon: paymentCount{Payment: label, Rides: n},
	}
	for _, c := range dataset.Sorted(counts) {
		report.Counts = append(report.Counts, paymentCount{Payment: c.Label, Rides: c.Count})
	}
	return report, nil
}

func writeDataYAML(w io.Writer, report dataReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return nil
}

func writeDataText(w io.Writer, report dataReport) error {
	labelWidth := runewidth.StringWidth("Payment")
	for _, c := range report.Counts {
		if lw := runewidth.StringWidth(c.Payment); lw > labelWidth {
			labelWidth = lw
		}
	}
	lines := []string{
		fmt.Sprintf("Source: %s (%s)", report.Source, report.Origin),
		fmt.Sprintf("Records: %d", report.Records),
		fmt.Sprintf("Most Common Payment: %s", report.MostCommon.Payment),
		fmt.Sprintf("Total Rides: %d", report.MostCommon.Rides),
		"",
		fmt.Sprintf("%s  %s", runewidth.FillRight("Payment", labelWidth), "Rides"),
	}
	for _, c := range report.Counts {
		lines = append(lines, fmt.Sprintf("%s  %5d", runewidth.FillRight(c.Payment, labelWidth), c.Rides))
	}
	if _, err := fmt.Fprintln(w, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newChartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render the payment chart to the terminal or a PNG file",
		Args:  cobra.NoArgs,
		RunE:  runChartCmd,
	}
	cmd.Flags().StringVar(&chartKind, "kind", string(model.ChartBar), "chart type (bar, pie)")
	cmd.Flags().StringVar(&chartOut, "out", "", "write a PNG image to this path")
	cmd.Flags().IntVar(&chartWidth, "width", 0, "output width (columns, or pixels with --out)")
	cmd.Flags().IntVar(&chartHeight, "height", 0, "output height (rows, or pixels with --out)")
	return cmd
}

func runChartCmd(cmd *cobra.Command, _ []string) error {
	kind, err := model.ParseChartType(chartKind)
	if err != nil {
		return fmt.Errorf("invalid --kind: %w", err)
	}
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	_, counts, err := loadData(cmd.Context(), a)
	if err != nil {
		return err
	}
	spec, err := chart.Render(kind, counts)
	if err != nil {
		return err
	}
	if chartOut != "" {
		return writeChartPNG(chartOut, spec, chartWidth, chartHeight)
	}

	width, height, useColor := terminalSize()
	if chartWidth > 0 {
		width = chartWidth
	}
	if chartHeight > 0 {
		height = chartHeight
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), chart.Draw(spec, width, height, useColor)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func writeChartPNG(path string, spec chart.Spec, width, height int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	if err := chart.WritePNG(f, spec, width, height); err != nil {
		return err
	}
	logErrf("Wrote %s\n", path)
	return nil
}

func terminalSize() (int, int, bool) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultChartWidth, defaultChartHeight, false
	}
	width, height, err := term.GetSize(fd)
	if err != nil || width <= 0 || height <= 0 {
		return defaultChartWidth, defaultChartHeight, false
	}
	return width, height, os.Getenv("NO_COLOR") == ""
}
