package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbehnke/morseled/internal/database"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit int
		path  string
		id    uint
		since time.Duration
		prune time.Duration
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded transmissions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.GetDatabasePath()
			}

			db, err := database.NewDB(database.Config{Path: path}, nil)
			if err != nil {
				return fmt.Errorf("failed to open db: %w", err)
			}
			defer db.Close()

			repo := database.NewTransmissionRepository(db.GetDB())
			if err := repo.HealthCheck(); err != nil {
				return fmt.Errorf("history database unusable: %w", err)
			}

			out := cmd.OutOrStdout()
			now := time.Now()

			switch {
			case prune > 0:
				deleted, err := repo.DeleteBefore(now.Add(-prune))
				if err != nil {
					return err
				}
				remaining, err := repo.Count()
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "pruned %d transmissions, %d remaining\n", deleted, remaining)
				return nil

			case id > 0:
				t, err := repo.GetByID(id)
				if err != nil {
					return err
				}
				printTransmission(out, *t)
				return nil
			}

			var transmissions []database.Transmission
			if since > 0 {
				transmissions, err = repo.Since(now.Add(-since), limit)
			} else {
				transmissions, err = repo.Recent(limit)
			}
			if err != nil {
				return err
			}
			for _, t := range transmissions {
				printTransmission(out, t)
			}

			stats, err := repo.GetStatistics()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d transmissions, %d letters, %v keyed, %d dropped\n",
				stats.Transmissions, stats.Letters,
				time.Duration(stats.KeyedMS)*time.Millisecond, stats.Dropped)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVarP(&limit, "limit", "n", 20, "number of transmissions to show")
	flags.StringVar(&path, "db", "", "history database (default: from config)")
	flags.UintVar(&id, "id", 0, "show a single transmission")
	flags.DurationVar(&since, "since", 0, "show transmissions from this long ago, oldest first")
	flags.DurationVar(&prune, "prune", 0, "delete transmissions older than this")
	return cmd
}

func printTransmission(out io.Writer, t database.Transmission) {
	fmt.Fprintln(out, t.String())
	fmt.Fprintf(out, "    %s\n", t.Transcript)
}
