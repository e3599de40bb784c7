/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/contran/internal/store"
)

var (
	historyDBPath string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded consensus runs",
	Long:  `List past runs and summarise spend from the run-history ledger.`,
}

func openHistoryDB() (*store.Store, error) {
	path := historyDBPath
	if path == "" {
		path = viper.GetString("history.db")
	}
	return store.New(path)
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		runs, err := db.ListRuns(context.Background(), historyLimit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}

		if len(runs) == 0 {
			fmt.Println("No recorded runs.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tTARGET\tFORMALITY\tCOST\tWHEN\tSENTENCE")
		for _, r := range runs {
			snippet := r.Sentence
			if len(snippet) > 40 {
				snippet = snippet[:37] + "..."
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				r.ID, r.SourceLang, r.TargetLang, r.Formality,
				formatCost(uint64(r.TotalCost)),
				r.CreatedAt.Format("2006-01-02 15:04"), snippet)
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show every translation of a recorded run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		translations, err := db.GetRunTranslations(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load run: %w", err)
		}
		if len(translations) == 0 {
			fmt.Println("Run not found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "MODEL\tCOMBINED\tSCORE\tLATENCY\tTEXT")
		for _, tr := range translations {
			latency := "-"
			if tr.LatencyMs > 0 {
				latency = fmt.Sprintf("%dms", tr.LatencyMs)
			}
			fmt.Fprintf(w, "%s\t%v\t%d\t%s\t%s\n", tr.Model, tr.Combined, tr.Score, latency, tr.Text)
		}
		return w.Flush()
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarise recorded runs and spend",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openHistoryDB()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		stats, err := db.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		fmt.Printf("Total runs:        %d\n", stats.TotalRuns)
		fmt.Printf("Total candidates:  %d\n", stats.TotalCandidates)
		fmt.Printf("Total spend:       %s\n", formatCost(stats.TotalCost))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.PersistentFlags().StringVar(&historyDBPath, "db", "", "Run history database path")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
}
