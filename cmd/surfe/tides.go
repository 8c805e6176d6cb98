package main

import (
	"errors"
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/spf13/cobra"
)

func newTidesCmd(a *app) *cobra.Command {
	var stationID, spotID, timezone, start, end string

	cmd := &cobra.Command{
		Use:   "tides",
		Short: "Show the current tide at a station or spot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if stationID == "" && spotID == "" {
				return errors.New("one of --station or --spot is required")
			}

			ctx := cmd.Context()
			tides, err := a.tideService(ctx)
			if err != nil {
				return err
			}

			var resp *models.ExtendedTideResponse
			if stationID != "" {
				resp, err = tides.GetTidesForStation(ctx, stationID, optional(start), optional(end), timezone)
			} else {
				resp, err = tides.GetTidesForSpot(ctx, spotID, optional(start), optional(end), timezone)
			}
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printJSON(resp)
			}

			fmt.Fprintf(a.out, "Station %s (%s) at %s\n", resp.NearestStation, resp.Timezone, resp.LocalTime)
			if resp.WaterLevel != nil {
				fmt.Fprintf(a.out, "Water level: %.1fft\n", *resp.WaterLevel)
			}
			if st := resp.State; st != nil {
				fmt.Fprintf(a.out, "Tide %s at %.1fft/hr, %s %.1fft in %dmin (%s)\n",
					st.Direction, st.RateOfChange, st.NextType, st.NextHeight, st.TimeToNext, st.NextTime)
			}
			for _, e := range resp.Extremes {
				fmt.Fprintf(a.out, "  %-4s %s %.1fft\n", e.Type, e.LocalTime, e.Height)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&stationID, "station", "", "NOAA station id")
	cmd.Flags().StringVar(&spotID, "spot", "", "spot id or slug with a linked tide station")
	cmd.Flags().StringVar(&timezone, "timezone", "", "IANA timezone for display (default UTC)")
	cmd.Flags().StringVar(&start, "start", "", "range start, 2006-01-02T15:04:05")
	cmd.Flags().StringVar(&end, "end", "", "range end, 2006-01-02T15:04:05")

	return cmd
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
