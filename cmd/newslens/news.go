// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/newslens/newslens/internal/newsfetch"
	"github.com/newslens/newslens/internal/rater"
	"github.com/newslens/newslens/internal/store"
	"github.com/newslens/newslens/pkg/types"
)

const (
	defaultListingTimeout = 15 * time.Second
	// browserUserAgent is sent on article fetches; several publishers
	// refuse plain bot agents.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

var newsCmd = &cobra.Command{
	Use:   "news <query>",
	Short: "Search news, fetch each article, and grade its quality",
	Long: `News runs one retrieval batch: it queries the news search provider,
fans out over the candidates concurrently to fetch every article body,
grades each body with the configured chat model, and prints the
surviving results in listing order. Candidates whose article cannot be
reached are dropped; the batch succeeds as long as at least one
candidate survives.`,
	Args: cobra.ExactArgs(1),
	RunE: runNews,
}

func init() {
	newsCmd.Flags().Int("num", 5, "number of candidates to process (max 10)")
	newsCmd.Flags().String("location", "us-en", "region code for location-based results")
	newsCmd.Flags().String("time", "w", "time window: d, w, m, or y")
	newsCmd.Flags().Int("concurrency", 0, "max in-flight candidate tasks (default 5)")
	newsCmd.Flags().Duration("task-timeout", 0, "per-candidate deadline (default 30s)")
	newsCmd.Flags().Bool("json", false, "output the result envelope as JSON")
	newsCmd.Flags().Bool("no-rate", false, "skip chat-model quality grading")
	newsCmd.Flags().Bool("store", false, "record the batch in the history database")

	rootCmd.AddCommand(newsCmd)
}

func runNews(cmd *cobra.Command, args []string) error {
	query := args[0]

	num, _ := cmd.Flags().GetInt("num")
	location, _ := cmd.Flags().GetString("location")
	window, _ := cmd.Flags().GetString("time")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	taskTimeout, _ := cmd.Flags().GetDuration("task-timeout")
	asJSON, _ := cmd.Flags().GetBool("json")
	noRate, _ := cmd.Flags().GetBool("no-rate")
	useStore, _ := cmd.Flags().GetBool("store")

	if !strings.Contains("dwmy", window) || len(window) != 1 {
		return fmt.Errorf("invalid time window %q: want d, w, m, or y", window)
	}

	cfg := types.NewsConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   defaultListingTimeout,
			UserAgent: "Mozilla/5.0",
		},
		MaxResults:       num,
		Location:         location,
		TimeWindow:       window,
		MaxConcurrent:    concurrency,
		TaskTimeout:      taskTimeout,
		ArticleUserAgent: browserUserAgent,
	}

	var chat rater.ChatClient
	if !noRate {
		var err error
		chat, err = rater.NewChatModelClient(cmd.Context(), types.ModelConfig{
			BaseURL:    viper.GetString("model.base_url"),
			APIKey:     secretDefault("chat-api-key", viper.GetString("model.api_key")),
			Model:      viper.GetString("model.model"),
			RPM:        viper.GetInt("model.rpm"),
			Burst:      viper.GetInt("model.burst"),
			MaxRetries: viper.GetInt("model.max_retries"),
		})
		if err != nil {
			return err
		}
	}

	pipeline := &newsfetch.Pipeline{
		ListingClient: &http.Client{Timeout: cfg.Timeout},
		Chat:          chat,
		Cfg:           cfg,
		Log:           log,
	}

	resp := pipeline.Search(cmd.Context(), query)

	if useStore && resp.Status == types.StatusSuccess {
		hist, err := store.Open(types.StoreConfig{Path: viper.GetString("store.path")})
		if err != nil {
			return err
		}
		defer hist.Close()
		if err := hist.SaveBatch(query, resp); err != nil {
			return err
		}
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		newsfetch.FormatTable(resp, os.Stdout)
	}

	if resp.Status != types.StatusSuccess {
		return fmt.Errorf("news search failed: %s", resp.Message)
	}
	return nil
}
