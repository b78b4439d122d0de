// Command report prints dashboard views on the terminal from the files the
// server reads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/okian/competency/internal/adapters/repository"
	app "github.com/okian/competency/internal/app"
	"github.com/okian/competency/internal/config"
	"github.com/okian/competency/internal/domain/table"
	"github.com/okian/competency/internal/report"
	"github.com/okian/competency/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// cli holds the persistent flags and the service they resolve to.
type cli struct {
	configPath string
	dataPath   string
	surveyPath string
	format     string
	verbose    bool

	svc *app.Service
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:          "report",
		Short:        "Competency assessment reports",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if c.svc != nil {
				c.svc.Stop()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "YAML config file (default: $"+config.EnvConfig+")")
	flags.StringVarP(&c.dataPath, "data", "d", "", "assessment file (CSV, XLSX or XLS)")
	flags.StringVar(&c.surveyPath, "survey", "", "survey export file")
	flags.StringVarP(&c.format, "format", "f", report.FormatText, "output format: text, csv or json")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(c.tableCmd(), c.lookupCmd(), c.statsCmd(), c.surveyCmd())
	return root
}

// setup loads configuration, applies flag overrides, and starts the service.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFile(c.configPath)
	} else {
		cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}
	if c.dataPath != "" {
		cfg.DataPath = c.dataPath
	}
	if c.surveyPath != "" {
		cfg.SurveyPath = c.surveyPath
	}

	log := logger.Nop()
	if c.verbose {
		if err := logger.Init(logger.WithWriter(cmd.ErrOrStderr()), logger.WithFormat(cfg.LogFormat)); err != nil {
			return err
		}
		log = logger.Get()
	}

	c.svc, err = app.NewFromConfig(cfg, log)
	if err != nil {
		return err
	}
	if err := c.svc.Start(ctx); err != nil {
		return err
	}
	// Reports require a loaded dataset.
	if st, ok := c.svc.GetStats()["dataset"].(repository.Status); ok && !st.Loaded {
		return fmt.Errorf("%w: %s: %s", repository.ErrNotLoaded, st.Source, st.LastError)
	}
	return nil
}

// emit writes v as JSON, or the grids in the text or csv format.
func (c *cli) emit(cmd *cobra.Command, v any, grids ...report.Grid) error {
	if c.format == report.FormatJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return report.Write(cmd.OutOrStdout(), c.format, grids...)
}

func (c *cli) tableCmd() *cobra.Command {
	var f table.Filter
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the aggregated table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.svc.Table(cmd.Context(), f)
			if err != nil {
				return err
			}
			return c.emit(cmd, res, report.TableGrid(res.View))
		},
	}
	cmd.Flags().StringVar(&f.Level, "level", table.AllValues, "level filter")
	cmd.Flags().StringVar(&f.Region, "region", table.AllValues, "region filter")
	return cmd
}

func (c *cli) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <nip>",
		Short: "Show the competency breakdown of an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.svc.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !res.Found {
				grid := report.Grid{Title: "NIP tidak ditemukan: " + res.Query, Headers: []string{"Mungkin maksud Anda"}}
				for _, s := range res.Suggestions {
					grid.Rows = append(grid.Rows, []string{s})
				}
				return c.emit(cmd, res, grid)
			}

			e := res.Employee
			grids := []report.Grid{{
				Title:   e.Name,
				Headers: []string{"NIP", "Jabatan", "Wilayah", "Level"},
				Rows:    [][]string{{e.ID, e.Position, e.Region, e.Level}},
			}}
			for _, it := range res.Items {
				grids = append(grids, report.ItemGrid(it))
			}
			if len(res.Matches) > 1 {
				grids = append(grids, report.Grid{
					Title:   strconv.Itoa(len(res.Matches)) + " NIP cocok",
					Headers: []string{"NIP"},
					Rows:    column(res.Matches),
				})
			}
			return c.emit(cmd, res, grids...)
		},
	}
}

func (c *cli) statsCmd() *cobra.Command {
	var f table.Filter
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics per catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.svc.Table(cmd.Context(), f)
			if err != nil {
				return err
			}
			return c.emit(cmd, res.Summary, report.SummaryGrid(res.Summary))
		},
	}
	cmd.Flags().StringVar(&f.Level, "level", table.AllValues, "level filter")
	cmd.Flags().StringVar(&f.Region, "region", table.AllValues, "region filter")
	return cmd
}

func (c *cli) surveyCmd() *cobra.Command {
	var (
		sep   string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "survey [column]",
		Short: "List survey columns, or count the answers of one column",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cols, err := c.svc.SurveyColumns(cmd.Context())
				if err != nil {
					return err
				}
				return c.emit(cmd, cols, report.Grid{Headers: []string{"Kolom"}, Rows: column(cols)})
			}
			res, err := c.svc.SurveyChoices(cmd.Context(), args[0], sep, limit)
			if err != nil {
				return err
			}
			return c.emit(cmd, res, report.CountGrid(res.Column, res.Counts))
		},
	}
	cmd.Flags().StringVar(&sep, "sep", ",", "answer separator")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum answers (0 uses the configured limit)")
	return cmd
}

func column(values []string) [][]string {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	return rows
}
