package main

import (
	"fmt"

	"github.com/crubio/surfe-diem/backend-go/internal/session"
	"github.com/spf13/cobra"
)

func newSessionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the anonymous session id and its A/B variation",
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := a.store(cmd.Context())
			if err != nil {
				return err
			}
			s, err := session.Open(cmd.Context(), kv)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return a.printJSON(map[string]string{
					"session_id":   s.ID(),
					"ab_variation": string(s.Variation()),
				})
			}
			fmt.Fprintf(a.out, "%s %s\n", s.ID(), s.Variation())
			return nil
		},
	}
}
