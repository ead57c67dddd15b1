package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"statkit/adapters/excel"
	"statkit/domain/stats"
	"statkit/internal/analysis"
	"statkit/internal/config"
	"statkit/internal/testkit"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := &cobra.Command{
		Use:           "statkit",
		Short:         "Synthetic student performance data and effect size / inference helpers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newGenerateCmd(cfg, logger),
		newAnalyzeCmd(cfg, logger),
	)

	os.Exit(execute(rootCmd, logger))
}

// execute runs cmd and flushes the logger before the exit code is returned
func execute(cmd *cobra.Command, logger *zap.Logger) int {
	code := 0
	if err := cmd.Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		code = 1
	}
	logger.Sync() //nolint:errcheck
	return code
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(cfg.Level)
	return zcfg.Build()
}

func newGenerateCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	gen := cfg.Generator

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the synthetic student performance dataset",
		Long: `Generate a student performance dataset from a seeded model and write it
as CSV (or XLSX when the output path ends in .xlsx).

Example: statkit generate --samples 4000 --seed 42 --out data/student_performance.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := testkit.NewStudentDataGenerator(testkit.StudentGeneratorConfig{
				Samples:  gen.Samples,
				Seed:     gen.Seed,
				SavePath: gen.OutputPath,
			}, logger).Generate()
			if err != nil {
				return err
			}
			printHead(cmd, ds, 5)
			return nil
		},
	}

	cmd.Flags().IntVar(&gen.Samples, "samples", gen.Samples, "Number of students to generate")
	cmd.Flags().Int64Var(&gen.Seed, "seed", gen.Seed, "Random seed for reproducible output")
	cmd.Flags().StringVar(&gen.OutputPath, "out", gen.OutputPath, "Optional output path (.csv or .xlsx)")

	return cmd
}

func newAnalyzeCmd(cfg *config.Config, logger *zap.Logger) *cobra.Command {
	gen := cfg.Generator
	inf := cfg.Inference
	var inputPath string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Summarize effect sizes and inference checks for a dataset",
		Long: `Analyze an exported dataset (--in) or a freshly generated one and print a
JSON report with confidence intervals, Cohen's d, eta squared, and normality and
equal-variance checks.

Example: statkit analyze --in data/student_performance.csv --confidence 0.99`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ds  *stats.Dataset
				err error
			)
			if inputPath != "" {
				ds, err = excel.NewDataReader(inputPath, logger).ReadDataset()
			} else {
				ds, err = testkit.NewStudentDataGenerator(testkit.StudentGeneratorConfig{
					Samples: gen.Samples,
					Seed:    gen.Seed,
				}, logger).Generate()
			}
			if err != nil {
				return err
			}

			report, err := analysis.NewAnalyzer(inf.Confidence, inf.Alpha, logger).Analyze(ds)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVar(&inputPath, "in", "", "Dataset to analyze (.csv or .xlsx); generated when empty")
	cmd.Flags().IntVar(&gen.Samples, "samples", gen.Samples, "Number of students to generate when --in is empty")
	cmd.Flags().Int64Var(&gen.Seed, "seed", gen.Seed, "Random seed when --in is empty")
	cmd.Flags().Float64Var(&inf.Confidence, "confidence", inf.Confidence, "Confidence level for intervals")
	cmd.Flags().Float64Var(&inf.Alpha, "alpha", inf.Alpha, "Significance level for normality and variance checks")

	return cmd
}

// printHead prints the first n rows like a dataframe preview
func printHead(cmd *cobra.Command, ds *stats.Dataset, n int) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%8s %11s %15s %12s %6s %15s %11s %6s\n",
		"score", "study_hours", "attendance_rate", "previous_gpa", "gender", "teaching_method", "school_type", "passed")
	for i, r := range ds.Records {
		if i >= n {
			break
		}
		fmt.Fprintf(out, "%8.3f %11.3f %15.3f %12.3f %6s %15s %11s %6d\n",
			r.Score, r.StudyHours, r.AttendanceRate, r.PreviousGPA, r.Gender, r.TeachingMethod, r.SchoolType, r.Passed)
	}
	fmt.Fprintf(out, "[%d rows x %d columns]\n", ds.Len(), len(stats.DatasetColumns))
}
