package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"

	"github.com/KIM3310/kbbq-idle/internal/catalog"
	"github.com/KIM3310/kbbq-idle/internal/config"
	"github.com/KIM3310/kbbq-idle/internal/game"
	"github.com/KIM3310/kbbq-idle/internal/ops"
	"github.com/KIM3310/kbbq-idle/internal/save"
)

func main() {
	root := &cobra.Command{
		Use:           "ops",
		Short:         "kbbq-idle operational tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newBackupCmd(),
		newRestoreCmd(),
		newSchemaCmd(),
		newSimulateCmd(),
	)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newBackupCmd() *cobra.Command {
	var dataDir, out string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Archive the save directory to a tar.gz",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				ts := time.Now().UTC().Format("20060102T150405Z")
				out = filepath.Join("backups", "kbbq-"+ts+".tar.gz")
			}
			if err := ops.BackupSaveDir(dataDir, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "backup written:", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&dataDir, "data-dir", "data", "save directory")
	cmd.Flags().StringVar(&out, "out", "", "output archive path (.tar.gz)")
	return cmd
}

func newRestoreCmd() *cobra.Command {
	var archive, target string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Unpack a backup archive into a save directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			if archive == "" {
				return fmt.Errorf("--archive is required")
			}
			if err := ops.RestoreSaveDir(archive, target); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "restored into:", target)
			return nil
		},
	}
	cmd.Flags().StringVar(&archive, "archive", "", "backup archive path")
	cmd.Flags().StringVar(&target, "target", "data", "target save directory")
	return cmd
}

func newSchemaCmd() *cobra.Command {
	var outDir string
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Write JSON schemas for the catalog, balance and save formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			reflector := jsonschema.Reflector{AllowAdditionalProperties: true}
			targets := []struct {
				name  string
				title string
				value any
			}{
				{"catalog.schema.json", "Game data catalog", new(catalog.Catalog)},
				{"balance.schema.json", "Balance configuration", new(config.Balance)},
				{"save.schema.json", "Save snapshot", new(save.Data)},
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for _, t := range targets {
				schema := reflector.Reflect(t.value)
				schema.Title = t.title
				data, err := json.MarshalIndent(schema, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal %s: %w", t.name, err)
				}
				path := filepath.Join(outDir, t.name)
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema written:", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "schemas", "output directory")
	return cmd
}

func newSimulateCmd() *cobra.Command {
	var seed int64
	var seconds, dt float64
	var autoServe bool
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a headless deterministic session and print summary stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			if seconds <= 0 || dt <= 0 {
				return fmt.Errorf("--seconds and --dt must be positive")
			}
			cat := catalog.Default()
			clock := game.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
			rng := rand.New(rand.NewSource(seed))
			g, err := game.New(config.Default(), &cat, save.NewMemoryStore(), nil, clock, rng)
			if err != nil {
				return err
			}
			g.SetAutoServe(autoServe)
			g.CompleteTutorial()
			g.Boot()

			steps := int(seconds / dt)
			for i := 0; i < steps; i++ {
				clock.Advance(time.Duration(dt * float64(time.Second)))
				g.Tick(dt)
			}

			summary := map[string]any{
				"seed":          seed,
				"sim_seconds":   seconds,
				"currency":      g.Currency(),
				"total_earned":  g.TotalEarned(),
				"income_per_sec": g.IncomePerSec(),
				"player_level":  g.PlayerLevel(),
				"satisfaction":  g.Satisfaction(),
				"queue_metrics": g.QueueMetrics(),
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 1, "rng seed")
	cmd.Flags().Float64Var(&seconds, "seconds", 600, "simulated seconds")
	cmd.Flags().Float64Var(&dt, "dt", 0.1, "tick size in seconds")
	cmd.Flags().BoolVar(&autoServe, "auto-serve", true, "serve customers automatically")
	return cmd
}
