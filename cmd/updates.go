package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/showsync/tvmaze"
)

var updatesSince string

// updatesCmd represents the updates command
var updatesCmd = &cobra.Command{
	Use:   "updates",
	Short: "List shows updated within a lookback period",
	Long: `Fetch the TVMaze updates feed and list the shows whose metadata changed
within the given lookback period (day, week, or month).`,
	RunE: runUpdates,
}

func init() {
	rootCmd.AddCommand(updatesCmd)

	updatesCmd.Flags().StringVar(&updatesSince, "since", tvmaze.PeriodDay,
		"lookback period: day, week, or month")
}

func runUpdates(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	updates, err := client.GetShowUpdates(ctx, updatesSince)
	if err != nil {
		return err
	}
	if updates == nil {
		return fmt.Errorf("unsupported period '%s': use one of %s",
			updatesSince, strings.Join(tvmaze.SupportedUpdatePeriods, ", "))
	}

	if len(updates) == 0 {
		fmt.Printf("No show updates in the last %s.\n", updatesSince)
		return nil
	}

	fmt.Printf("\n%d shows updated in the last %s:\n", len(updates), updatesSince)
	fmt.Println(strings.Repeat("-", 80))

	// Most recent first
	showIDs := make([]string, 0, len(updates))
	for showID := range updates {
		showIDs = append(showIDs, showID)
	}
	sort.Slice(showIDs, func(i, j int) bool {
		return updates[showIDs[i]] > updates[showIDs[j]]
	})

	for _, showID := range showIDs {
		changed := time.Unix(updates[showID], 0).UTC()
		fmt.Printf("• show %-8s changed %s\n", showID, changed.Format(time.RFC3339))
	}

	return nil
}
