package main

import (
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/favorites"
	"github.com/crubio/surfe-diem/backend-go/internal/models"
	"github.com/spf13/cobra"
)

func newFavoritesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage saved spots and buoys",
	}

	open := func(cmd *cobra.Command) (*favorites.Store, error) {
		kv, err := a.store(cmd.Context())
		if err != nil {
			return nil, err
		}
		return favorites.Open(cmd.Context(), kv)
	}

	var typ string

	list := &cobra.Command{
		Use:   "list",
		Short: "List favorites",
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs, err := open(cmd)
			if err != nil {
				return err
			}

			items := favs.List()
			if typ != "" {
				items = favs.ListByType(models.FavoriteType(typ))
			}
			if a.jsonOut {
				return a.printJSON(items)
			}
			if len(items) == 0 {
				fmt.Fprintln(a.out, "No favorites yet")
			}
			for _, f := range items {
				fmt.Fprintf(a.out, "%-4s %-10s %s\n", f.Type, f.ID, f.Name)
			}
			return nil
		},
	}
	list.Flags().StringVar(&typ, "type", "", "only list spot or buoy favorites")

	var (
		name     string
		lat, lon float64
	)

	toggle := &cobra.Command{
		Use:   "toggle <spot|buoy> <id>",
		Short: "Save a favorite, or remove it if already saved",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			favs, err := open(cmd)
			if err != nil {
				return err
			}

			f := models.Favorite{ID: args[1], Type: models.FavoriteType(args[0]), Name: name}
			if f.Name == "" {
				f.Name = f.ID
			}
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				f.Latitude, f.Longitude = &lat, &lon
			}

			saved, err := favs.Toggle(cmd.Context(), f)
			if err != nil {
				return err
			}
			if saved {
				fmt.Fprintf(a.out, "Saved %s %s\n", f.Type, f.ID)
			} else {
				fmt.Fprintf(a.out, "Removed %s %s\n", f.Type, f.ID)
			}
			return nil
		},
	}
	toggle.Flags().StringVar(&name, "name", "", "display name")
	toggle.Flags().Float64Var(&lat, "lat", 0, "latitude")
	toggle.Flags().Float64Var(&lon, "lon", 0, "longitude")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every favorite",
		RunE: func(cmd *cobra.Command, _ []string) error {
			favs, err := open(cmd)
			if err != nil {
				return err
			}
			return favs.Clear(cmd.Context())
		},
	}

	cmd.AddCommand(list, toggle, clearCmd)
	return cmd
}
