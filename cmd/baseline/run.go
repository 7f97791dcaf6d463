package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/energybaselines/agent"
	"github.com/samuelfneumann/energybaselines/experiment"
	"github.com/samuelfneumann/energybaselines/experiment/report"
	"github.com/samuelfneumann/energybaselines/experiment/tracker"
	"github.com/samuelfneumann/energybaselines/internal/config"
	"github.com/samuelfneumann/energybaselines/utils/floatutils"
)

const (
	returnFile    = "return.bin"
	lengthFile    = "length.bin"
	decisionFile  = "decisions.bin"
	timelineFile  = "timeline.png"
	returnsReport = "returns.html"
)

func newRunCmd() *cobra.Command {
	def := config.Default()

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an experiment document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := cfg.Logger(cmd.ErrOrStderr())

			runID, results, err := run(cfg, logger, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), runID, results)
			return nil
		},
	}

	// Experiment settings
	cmd.Flags().String("experiment", def.Experiment, "JSON experiment document")
	cmd.Flags().Uint64("seed", def.Seed, "Seed for the environment and agents")
	cmd.Flags().Int("index", def.Index, "Agent config index to run (-1 for all)")

	// Output
	cmd.Flags().String("output", def.Output, "Directory to save run data in")
	cmd.Flags().Bool("report", def.Report, "Write HTML and PNG reports")
	cmd.Flags().String("timeline-field", def.TimelineField, "Observation field to plot against the first action dimension")

	// Display
	cmd.Flags().Bool("progress", def.Progress, "Show a progress bar")

	return cmd
}

// result summarizes the run of a single agent config
type result struct {
	Index    int
	Type     agent.Type
	Steps    uint
	Episodes int
	Returns  floatutils.Summary
}

// run executes the experiment described by cfg, saving data into a new
// run directory under the output directory
func run(cfg *config.Config, logger zerolog.Logger,
	progress io.Writer) (string, []result, error) {
	exp, err := experiment.LoadConfig(cfg.Experiment)
	if err != nil {
		return "", nil, fmt.Errorf("run: %w", err)
	}

	indices, err := configIndices(cfg.Index, exp.AgentConf.Len())
	if err != nil {
		return "", nil, fmt.Errorf("run: %w", err)
	}

	runID := uuid.New().String()
	dir := filepath.Join(cfg.Output, runID)
	logger = logger.With().Str("run", runID).Logger()
	logger.Info().Str("dir", dir).Ints("configs", indices).Msg("starting run")

	var results []result
	var series []report.Series
	for _, i := range indices {
		res, returns, err := runConfig(exp, i, filepath.Join(dir,
			strconv.Itoa(i)), cfg, logger, progress)
		if err != nil {
			return "", nil, fmt.Errorf("run: config %v: %w", i, err)
		}
		results = append(results, res)
		series = append(series, report.Series{
			Name:   fmt.Sprintf("%v/%v", res.Type, i),
			Values: returns,
		})
	}

	if cfg.Report {
		if err := writeReturns(filepath.Join(dir, returnsReport), runID,
			series); err != nil {
			return "", nil, fmt.Errorf("run: %w", err)
		}
	}

	return runID, results, nil
}

func runConfig(exp experiment.Config, i int, dir string, cfg *config.Config,
	logger zerolog.Logger, progress io.Writer) (result, []float64, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return result{}, nil, err
	}

	conf, err := exp.AgentConf.At(i)
	if err != nil {
		return result{}, nil, err
	}

	ret := tracker.NewReturn(filepath.Join(dir, returnFile))
	lengths := tracker.NewEpisodeLength(filepath.Join(dir, lengthFile))
	e, err := exp.CreateExp(i, cfg.Seed, logger, ret)
	if err != nil {
		return result{}, nil, err
	}
	e.Register(tracker.Register(lengths, e.Environment()))

	var decisions *tracker.Decisions
	if cfg.TimelineField != "" {
		decisions, err = tracker.NewDecisions(filepath.Join(dir, decisionFile),
			e.Environment().ObservationInfo(), cfg.TimelineField)
		if err != nil {
			return result{}, nil, err
		}
		e.Register(decisions)
	}

	if cfg.Progress {
		e.ShowProgress(progress)
	}

	if err := e.Run(); err != nil {
		return result{}, nil, err
	}
	if err := e.Save(); err != nil {
		return result{}, nil, err
	}

	if cfg.Report && decisions != nil {
		err := report.Timeline(filepath.Join(dir, timelineFile),
			decisions.Data(), cfg.TimelineField, 0, 800, 400)
		if err != nil {
			return result{}, nil, err
		}
	}

	returns := ret.Returns()
	return result{
		Index:    i,
		Type:     conf.Type(),
		Steps:    e.Steps(),
		Episodes: e.Episodes(),
		Returns:  floatutils.Summarize(returns),
	}, returns, nil
}

// configIndices returns the config indices to run out of n configs
func configIndices(index, n int) ([]int, error) {
	if n == 0 {
		return nil, fmt.Errorf("configIndices: no agent configs")
	}
	if index >= n {
		return nil, fmt.Errorf("configIndices: index %v out of range for "+
			"%v configs", index, n)
	}
	if index >= 0 {
		return []int{index}, nil
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices, nil
}

func writeReturns(path, title string, series []report.Series) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writeReturns: %w", err)
	}

	if err := report.Returns(f, title, series...); err != nil {
		f.Close()
		return fmt.Errorf("writeReturns: %w", err)
	}
	return f.Close()
}

func printSummary(out io.Writer, runID string, results []result) {
	au := colours(out)

	fmt.Fprintf(out, "%v %v\n", au.Bold("run"), au.Cyan(runID))
	for _, r := range results {
		fmt.Fprintf(out, "  [%v] %v  steps %v  episodes %v  ", r.Index,
			au.Bold(r.Type), r.Steps, r.Episodes)

		if r.Returns.N == 0 {
			fmt.Fprintln(out, au.Yellow("no completed episodes"))
			continue
		}
		fmt.Fprintf(out, "return %v ± %.3f  [%.3f, %.3f]\n",
			au.Green(fmt.Sprintf("%.3f", r.Returns.Mean)), r.Returns.StdDev,
			r.Returns.Range.Min, r.Returns.Range.Max)
	}
}

// colours returns an aurora that only colours output written to a
// standard stream
func colours(out io.Writer) aurora.Aurora {
	f, ok := out.(*os.File)
	return aurora.NewAurora(ok && (f == os.Stdout || f == os.Stderr))
}
