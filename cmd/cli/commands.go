package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	slot   string
	game   string
	date   string
	userID string
	dryRun bool
)

func init() {
	mountCmd.Flags().StringVar(&slot, "slot", "", "The slot to mount the widget into")
	unmountCmd.Flags().StringVar(&slot, "slot", "", "The slot to unmount the widget from")
	leaderboardCmd.Flags().StringVar(&game, "game", "nfl-connections", "The game to query")
	leaderboardCmd.Flags().StringVar(&date, "date", "", "The puzzle date (YYYY-MM-DD)")
	rankCmd.Flags().StringVar(&game, "game", "nfl-connections", "The game to query")
	rankCmd.Flags().StringVar(&date, "date", "", "The puzzle date (YYYY-MM-DD)")
	rankCmd.Flags().StringVar(&userID, "user", "", "The user ID to rank")
	completedCmd.Flags().StringVar(&game, "game", "nfl-connections", "The game to query")
	digestCmd.Flags().StringVar(&game, "game", "nfl-connections", "The game to digest")
	digestCmd.Flags().StringVar(&date, "date", "", "The puzzle date (YYYY-MM-DD)")
	digestCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the digest instead of sending it")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(unmountCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(completedCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Dump the widget's current view state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/widget/state")
	},
}

var mountCmd = &cobra.Command{
	Use:   "mount",
	Short: "Mount the widget into a slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/widget/mount?slot=" + url.QueryEscape(slot))
	},
}

var unmountCmd = &cobra.Command{
	Use:   "unmount",
	Short: "Unmount the widget from a slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/widget/unmount?slot=" + url.QueryEscape(slot))
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Fetch the leaderboard for a game and date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard?game=" + url.QueryEscape(game) + "&date=" + url.QueryEscape(date))
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Look up a user's leaderboard rank",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/rank?game=" + url.QueryEscape(game) + "&date=" + url.QueryEscape(date) + "&userId=" + url.QueryEscape(userID))
	},
}

var completedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed puzzle dates for the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/completed-games?game=" + url.QueryEscape(game))
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Send the leaderboard digest to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/notify-digest?game=" + url.QueryEscape(game) + "&date=" + url.QueryEscape(date)
		if dryRun {
			endpoint += "&dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
