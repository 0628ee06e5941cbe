// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/newslens/newslens/internal/store"
	"github.com/newslens/newslens/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent stored reports and news batches",
	Long: `History reads the local SQLite database written by validate --store and
news --store and prints the most recent rows, newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum rows per section")
	historyCmd.Flags().Bool("articles", false, "show stored news articles instead of reports")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	articles, _ := cmd.Flags().GetBool("articles")

	hist, err := store.Open(types.StoreConfig{
		Path:    viper.GetString("store.path"),
		MaxRows: limit,
	})
	if err != nil {
		return err
	}
	defer hist.Close()

	if articles {
		rows, err := hist.RecentArticles()
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No stored articles.")
			return nil
		}
		fmt.Printf("%-19s  %-30s  %-6s  %s\n", "When", "Query", "Rating", "Title")
		fmt.Println(strings.Repeat("-", 100))
		for _, a := range rows {
			fmt.Printf("%-19s  %-30s  %-6s  %s\n", a.CreatedAt, clip(a.Query, 30), a.Rating, clip(a.Title, 50))
		}
		return nil
	}

	rows, err := hist.RecentReports()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No stored reports.")
		return nil
	}
	fmt.Printf("%-19s  %-30s  %-6s  %-5s  %s\n", "When", "Query", "Score", "Stars", "URL")
	fmt.Println(strings.Repeat("-", 110))
	for _, r := range rows {
		fmt.Printf("%-19s  %-30s  %6.1f  %-5d  %s\n", r.CreatedAt, clip(r.Query, 30), r.Composite, r.Stars, clip(r.URL, 50))
	}
	return nil
}

// clip shortens s to at most n runes with an ellipsis. Slicing on runes
// keeps multibyte queries and titles valid.
func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
