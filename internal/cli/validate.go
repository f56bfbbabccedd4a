package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rummikub/internal/domain"
)

func validateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate TILE...",
		Short: "Check whether tiles form a legal run or group",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tiles, err := domain.ParseTiles(args)
			if err != nil {
				return err
			}
			set, err := domain.ParseSet(tiles)
			if err != nil {
				return fmt.Errorf("not a set (%s): %w", domain.KindOf(err), err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), opts.theme().Set(set))
			return nil
		},
	}
}

func meldCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "meld TILE...",
		Short: "Find an initial meld in a rack",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := opts.rules()
			if err != nil {
				return err
			}
			tiles, err := domain.ParseTiles(args)
			if err != nil {
				return err
			}
			rack, err := domain.NewRack(tiles...)
			if err != nil {
				return err
			}

			th := opts.theme()
			out := cmd.OutOrStdout()
			meld, ok := rack.CanPlayInitialMeldAt(rules.InitialMeldThreshold)
			if !ok {
				fmt.Fprintf(out, "no initial meld worth %d or more\n", rules.InitialMeldThreshold)
				return nil
			}
			fmt.Fprintf(out, "initial meld scores %d\n", meld.Score())
			for _, s := range meld.Sets() {
				fmt.Fprintln(out, th.Set(s))
			}
			return nil
		},
	}
}
