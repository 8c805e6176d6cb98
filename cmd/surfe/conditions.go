package main

import (
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/conditions"
	"github.com/crubio/surfe-diem/backend-go/internal/swell"
	"github.com/crubio/surfe-diem/backend-go/internal/units"
	"github.com/spf13/cobra"
)

func newConditionsCmd(a *app) *cobra.Command {
	var (
		spotID     string
		waterTempF float64
	)

	cmd := &cobra.Command{
		Use:   "conditions",
		Short: "Show current conditions at a spot",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			finder, err := a.spotFinder(ctx)
			if err != nil {
				return err
			}
			fetcher, err := a.forecastFetcher()
			if err != nil {
				return err
			}

			s, err := finder.FindSpot(ctx, spotID)
			if err != nil {
				return err
			}
			f, err := fetcher.FetchForecast(ctx, *s)
			if err != nil {
				return err
			}
			result, err := conditions.Transform(f, *s)
			if err != nil {
				return err
			}

			// a reading from the command line wins over the model
			if cmd.Flags().Changed("water-temp") {
				c := units.FahrenheitToCelsius(waterTempF)
				result.WaterTemperature = &c
			}

			if a.jsonOut {
				return a.printJSON(result)
			}

			fmt.Fprintf(a.out, "%s: %s %s, %s [%s]\n", result.Spot, result.WaveHeight, result.Direction, result.Conditions,
				swell.WaveHeightColor(result.WaveHeightValue))
			if result.SwellPeriod != nil {
				fmt.Fprintf(a.out, "Period: %.0fs (%s)\n", *result.SwellPeriod, swell.PeriodLabel(*result.SwellPeriod))
			}
			if t := result.WaterTemperature; t != nil {
				fmt.Fprintf(a.out, "Water: %.0fF %s, %s [%s]\n", units.CelsiusToFahrenheit(*t),
					swell.WaterTempLabel(*t), swell.WaterTempGear(*t), swell.WaterTempColor(*t))
			}
			fmt.Fprintf(a.out, "%s: %s\n", result.Score.Label, result.Score.Description)
			return nil
		},
	}

	cmd.Flags().StringVar(&spotID, "spot", "", "spot id or slug")
	cmd.Flags().Float64Var(&waterTempF, "water-temp", 0, "observed water temperature in Fahrenheit")
	_ = cmd.MarkFlagRequired("spot")

	return cmd
}
