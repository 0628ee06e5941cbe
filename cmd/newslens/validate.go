// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/newslens/newslens/internal/credibility"
	"github.com/newslens/newslens/internal/signal"
	"github.com/newslens/newslens/internal/store"
	"github.com/newslens/newslens/pkg/types"
)

const (
	defaultValidateTimeout = 10 * time.Second
	defaultUserAgent       = "newslens/0.1"
)

var validateCmd = &cobra.Command{
	Use:   "validate [urls...]",
	Short: "Score page credibility against a query",
	Long: `Validate fetches each page, runs the five signal evaluators, and fuses
them into a composite credibility score with a 1-5 star rating and an
explanation. Pages are scored independently, never ranked against each
other.

With --input, query/URL pairs are read from a CSV file (columns
user_prompt, url_to_check) instead of the command line, and --csv
writes the ratings back out in the same shape.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().String("query", "", "the query the pages are scored against")
	validateCmd.Flags().String("format", "table", "output format: table, json, or yaml")
	validateCmd.Flags().String("input", "", "CSV file of query,url pairs to score")
	validateCmd.Flags().String("csv", "", "write ratings to this CSV file")
	validateCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	validateCmd.Flags().String("trust-overlay", "", "YAML file extending the domain trust table")
	validateCmd.Flags().Bool("store", false, "record reports in the history database")

	rootCmd.AddCommand(validateCmd)
}

// pair is one query/URL evaluation request.
type pair struct {
	query string
	url   string
}

func runValidate(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	format, _ := cmd.Flags().GetString("format")
	input, _ := cmd.Flags().GetString("input")
	csvOut, _ := cmd.Flags().GetString("csv")
	overlay, _ := cmd.Flags().GetString("trust-overlay")
	useStore, _ := cmd.Flags().GetBool("store")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultValidateTimeout
	}

	var pairs []pair
	switch {
	case input != "":
		var err error
		pairs, err = readPairs(input)
		if err != nil {
			return err
		}
	case len(args) > 0 && query != "":
		for _, url := range args {
			pairs = append(pairs, pair{query: query, url: url})
		}
	default:
		return fmt.Errorf("provide --query with one or more URLs, or --input with a CSV of pairs")
	}

	rater, err := buildRater(overlay, timeout)
	if err != nil {
		return err
	}

	var hist *store.Store
	if useStore {
		hist, err = store.Open(types.StoreConfig{Path: viper.GetString("store.path")})
		if err != nil {
			return err
		}
		defer hist.Close()
	}

	var reports []types.Report
	for _, p := range pairs {
		report := rater.Rate(cmd.Context(), p.query, p.url)
		reports = append(reports, report)

		if hist != nil {
			if err := hist.SaveReport(report); err != nil {
				return err
			}
		}
	}

	if csvOut != "" {
		if err := writeRatingsCSV(csvOut, reports); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d rating(s) to %s\n", len(reports), csvOut)
	}

	return renderReports(reports, format)
}

// buildRater wires the five evaluators from config, secrets, and flags.
func buildRater(overlayPath string, timeout time.Duration) (*credibility.Rater, error) {
	client := &http.Client{Timeout: timeout}

	trust, err := signal.NewDomainTrust(overlayPath)
	if err != nil {
		return nil, err
	}

	relevance := &signal.Relevance{
		Embedder: &signal.OpenAIEmbedder{
			Client: client,
			APIKey: secretDefault("embedding-api-key", viper.GetString("signal.embedding_api_key")),
			Model:  viper.GetString("signal.embedding_model"),
		},
		Log: log,
	}
	factCheck := &signal.FactCheck{
		Client: client,
		APIKey: secretDefault("fact-check-api-key", viper.GetString("signal.fact_check_api_key")),
		Log:    log,
	}
	bias := &signal.Bias{
		Classifier: &signal.HFClassifier{
			Client: client,
			APIKey: secretDefault("sentiment-api-key", viper.GetString("signal.sentiment_api_key")),
			Model:  viper.GetString("signal.sentiment_model"),
		},
		Log: log,
	}
	citation := &signal.Citation{
		Source: &signal.OpenAlexCitations{
			Client:    client,
			Email:     secretDefault("openalex-email", viper.GetString("signal.citation_email")),
			UserAgent: defaultUserAgent,
		},
		Log: log,
	}

	return credibility.NewRater(
		trust, relevance, factCheck, bias, citation,
		credibility.DefaultWeights(),
		credibility.WithHTTPClient(client),
		credibility.WithUserAgent(defaultUserAgent),
		credibility.WithLogger(log),
	)
}

// readPairs loads query/url rows from a CSV file. A header row naming
// the original column layout (user_prompt, url_to_check) is skipped.
func readPairs(path string) ([]pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading input CSV: %w", err)
	}

	var pairs []pair
	for i, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("input CSV row %d: want at least query and url columns", i+1)
		}
		if i == 0 && rec[0] == "user_prompt" {
			continue
		}
		pairs = append(pairs, pair{query: rec[0], url: rec[1]})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("input CSV %s contains no pairs", path)
	}
	return pairs, nil
}

// writeRatingsCSV writes one row per report in the original validation
// sheet layout, leaving custom_rating blank for hand evaluation.
func writeRatingsCSV(path string, reports []types.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output CSV: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"user_prompt", "url_to_check", "func_rating", "custom_rating"}); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range reports {
		if err := w.Write([]string{r.Query, r.URL, strconv.Itoa(r.Stars), ""}); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func renderReports(reports []types.Report, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		return yaml.NewEncoder(os.Stdout).Encode(reports)
	case "table":
		for _, r := range reports {
			credibility.FormatReport(r, os.Stdout)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q: want table, json, or yaml", format)
	}
}
