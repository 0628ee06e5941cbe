// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the newslens CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/newslens/newslens/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process-wide logger, configured in the root pre-run.
var log = logrus.New()

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or
// fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the newslens CLI.
var rootCmd = &cobra.Command{
	Use:   "newslens",
	Short: "Credibility scoring for search results and news articles",
	Long: `newslens evaluates content credibility. The validate command scores a
single page against a query by fusing five independent trust signals
(domain authority, semantic relevance, fact-check corroboration, tonal
bias, scholarly citations) into one rating. The news command searches
for news articles, fetches each article concurrently, and grades every
body with a chat model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := logrus.WarnLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = logrus.InfoLevel
		}
		log.SetLevel(level)
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./newslens.yaml or ~/.config/newslens/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log pipeline progress")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("newslens")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "newslens"))
		}
	}

	viper.SetEnvPrefix("NEWSLENS")
	viper.AutomaticEnv()

	viper.SetDefault("signal.embedding_model", "text-embedding-3-small")
	viper.SetDefault("signal.sentiment_model", "cardiffnlp/twitter-roberta-base-sentiment")
	viper.SetDefault("model.base_url", "http://localhost:11434/v1")
	viper.SetDefault("model.model", "llama3.2:latest")
	viper.SetDefault("store.path", "newslens.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
