// Package main provides a CLI tool for replaying outcome sequences through
// the prediction engine.
package main

import (
	"bufio"
	"log"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/bacbo-predictor/internal/config"
	"github.com/yourusername/bacbo-predictor/internal/engine"
	"github.com/yourusername/bacbo-predictor/internal/metrics"
)

// demoSequence is a sample shoe used when no input is given.
var demoSequence = []string{
	"PLAYER", "BANKER", "PLAYER", "PLAYER", "BANKER",
	"BANKER", "BANKER", "PLAYER", "TIE", "BANKER",
	"PLAYER", "PLAYER", "PLAYER", "PLAYER", "BANKER",
	"PLAYER", "BANKER", "BANKER", "BANKER", "BANKER",
}

var (
	configPath string
	sequence   string
	inputFile  string
	verbose    bool
)

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "config/config.yaml", "Path to configuration file")
	rootCmd.Flags().StringVar(&sequence, "sequence", "", "Comma-separated outcomes to replay (PLAYER,BANKER,TIE)")
	rootCmd.Flags().StringVar(&inputFile, "file", "", "File with one outcome per line")
	rootCmd.Flags().BoolVar(&verbose, "verbose", false, "Log every round instead of only predictions")
}

var rootCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay an outcome sequence through the prediction engine",
	Long: `Feeds a BacBo outcome sequence round by round into the prediction engine,
logging every prediction and scored comparison, and prints the final accuracy
stats. Input comes from --sequence, --file, or a built-in demo shoe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSimulation()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func runSimulation() error {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	metrics.InitRegistry()

	outcomes, err := resolveOutcomes(sequence, inputFile)
	if err != nil {
		return err
	}

	logger.WithField("rounds", len(outcomes)).Info("Starting simulation")
	run(engine.New(engine.FromConfig(&cfg.Engine)), outcomes, logger, verbose)
	return nil
}

// resolveOutcomes picks the input source: explicit sequence, file, or the
// built-in demo shoe.
func resolveOutcomes(sequence, file string) ([]string, error) {
	if sequence != "" {
		parts := strings.Split(sequence, ",")
		outcomes := make([]string, 0, len(parts))
		for _, part := range parts {
			outcomes = append(outcomes, strings.TrimSpace(part))
		}
		return outcomes, nil
	}

	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		var outcomes []string
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			outcomes = append(outcomes, line)
		}
		return outcomes, scanner.Err()
	}

	return demoSequence, nil
}

func run(e *engine.Engine, outcomes []string, log *logrus.Logger, verbose bool) {
	for i, raw := range outcomes {
		result, err := e.Record(raw)
		if err != nil {
			log.WithError(err).WithField("round", i+1).Warn("Skipping invalid outcome")
			continue
		}

		if result.Scored != nil {
			log.WithFields(logrus.Fields{
				"round":     i + 1,
				"predicted": result.Scored.Predicted,
				"actual":    result.Scored.Actual,
				"hit":       result.Scored.Hit(),
			}).Info("Prediction scored")
		}

		pred := e.Predict()
		if pred.Prediction != nil {
			log.WithFields(logrus.Fields{
				"round":      i + 1,
				"prediction": *pred.Prediction,
				"confidence": pred.Confidence,
				"reason":     pred.Reason,
			}).Info("Prediction")
		} else if verbose {
			log.WithFields(logrus.Fields{
				"round":  i + 1,
				"reason": pred.Reason,
			}).Info("No prediction")
		}
	}

	stats := e.Stats()
	fields := logrus.Fields{
		"rounds":   e.Rounds(),
		"wins":     stats.Wins,
		"total":    stats.Total,
		"win_rate": stats.WinRate,
	}
	if stats.RecentWinRate != nil {
		fields["recent_win_rate"] = *stats.RecentWinRate
	}
	log.WithFields(fields).Info("Simulation finished")
}
