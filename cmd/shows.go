package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/showsync/filter"
)

var (
	showsPage    int
	filterExpr   string
	withSeasons  bool
	withEpisodes bool
)

// showsCmd represents the shows command
var showsCmd = &cobra.Command{
	Use:   "shows",
	Short: "List one page of the TVMaze show index",
	Long: `List shows from one page of the TVMaze show index, optionally filtered
by an expression evaluated against each raw show object.`,
	RunE: runShows,
}

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show details for a single show",
	Long:  `Fetch the details of a single show, optionally with its seasons and episodes.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showsCmd)
	rootCmd.AddCommand(showCmd)

	showsCmd.Flags().IntVarP(&showsPage, "page", "p", 0, "index page to fetch")
	showsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression, e.g. 'language == \"English\"'")

	showCmd.Flags().BoolVar(&withSeasons, "seasons", false, "also fetch seasons")
	showCmd.Flags().BoolVar(&withEpisodes, "episodes", false, "also fetch episodes")
}

func runShows(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	shows, err := client.GetShows(ctx, showsPage)
	if err != nil {
		return err
	}
	if shows == nil {
		fmt.Printf("No shows found on page %d.\n", showsPage)
		return nil
	}

	var results []map[string]any
	if filterExpr != "" {
		f, err := filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
		results, err = f.Apply(shows)
		if err != nil {
			return err
		}
	} else {
		for _, entry := range shows {
			if show, ok := entry.(map[string]any); ok {
				results = append(results, show)
			}
		}
	}

	if len(results) == 0 {
		fmt.Println("No shows matched the filter criteria.")
		return nil
	}

	fmt.Printf("\nFound %d shows on page %d:\n", len(results), showsPage)
	fmt.Println(strings.Repeat("-", 80))

	for _, show := range results {
		fmt.Printf("• %s (ID: %s)", strField(show, "name"), numField(show, "id"))
		if premiered := strField(show, "premiered"); premiered != "" {
			fmt.Printf(" premiered %s", premiered)
		}
		fmt.Println()
	}

	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	showID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid show ID '%s': must be an integer", args[0])
	}

	ctx := context.Background()

	details, err := client.GetShowDetails(ctx, showID)
	if err != nil {
		return err
	}
	if details == nil {
		fmt.Printf("Show %d not found.\n", showID)
		return nil
	}

	// Nested collections are independent; fetch them concurrently.
	var seasons, episodes []any
	g, gctx := errgroup.WithContext(ctx)
	if withSeasons {
		g.Go(func() error {
			var err error
			seasons, err = client.GetSeasons(gctx, showID)
			return err
		})
	}
	if withEpisodes {
		g.Go(func() error {
			var err error
			episodes, err = client.GetEpisodes(gctx, showID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Printf("\n%s (ID: %s)\n", strField(details, "name"), numField(details, "id"))
	fmt.Println(strings.Repeat("-", 80))
	if v := strField(details, "language"); v != "" {
		fmt.Printf("  Language:  %s\n", v)
	}
	if v := strField(details, "status"); v != "" {
		fmt.Printf("  Status:    %s\n", v)
	}
	if v := strField(details, "premiered"); v != "" {
		fmt.Printf("  Premiered: %s\n", v)
	}

	if withSeasons {
		fmt.Printf("\nSeasons: %d\n", len(seasons))
		for _, entry := range seasons {
			season, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			fmt.Printf("  • Season %s (%s episodes)\n",
				numField(season, "number"), numField(season, "episodeOrder"))
		}
	}

	if withEpisodes {
		fmt.Printf("\nEpisodes: %d\n", len(episodes))
		for _, entry := range episodes {
			episode, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			fmt.Printf("  • S%sE%s %s\n",
				numField(episode, "season"), numField(episode, "number"),
				strField(episode, "name"))
		}
	}

	return nil
}

// strField extracts a string field from a raw JSON object.
func strField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// numField extracts a numeric field from a raw JSON object as a string.
func numField(m map[string]any, key string) string {
	if v, ok := m[key].(float64); ok {
		return strconv.FormatInt(int64(v), 10)
	}
	return "?"
}
