package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/crubio/surfe-diem/backend-go/internal/recommend"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		lat, lon float64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Recommend the best nearby spots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
				return fmt.Errorf("invalid coordinates: %f,%f", lat, lon)
			}

			ctx := cmd.Context()
			finder, err := a.spotFinder(ctx)
			if err != nil {
				return err
			}
			fetcher, err := a.forecastFetcher()
			if err != nil {
				return err
			}

			spots, err := finder.FindNearestSpots(ctx, lat, lon, limit)
			if err != nil {
				return fmt.Errorf("finding spots: %w", err)
			}

			rec, err := recommend.NewSelector(fetcher, a.cacheCfg.BatchConcurrency).Recommend(ctx, spots)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printJSON(rec)
			}
			if rec == nil {
				fmt.Fprintln(a.out, "No spots found nearby")
				return nil
			}

			w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
			printPick(w, "Best conditions", rec.Best, "nothing to recommend")
			printPick(w, "Cleanest", rec.Cleanest, "nearby spots are not great")
			printPick(w, "Biggest waves", rec.Highest, "no significant waves")
			return w.Flush()
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	cmd.Flags().IntVar(&limit, "limit", 5, "number of nearby spots to compare")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func printPick(w *tabwriter.Writer, title string, r *models.ConditionResult, empty string) {
	if r == nil {
		fmt.Fprintf(w, "%s:\t%s\n", title, empty)
		return
	}
	fmt.Fprintf(w, "%s:\t%s\t%s\t%s\t%s\n", title, r.Spot, r.WaveHeight, r.Conditions, r.Score.Description)
}
