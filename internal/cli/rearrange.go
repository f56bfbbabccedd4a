package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"rummikub/internal/domain"
	"rummikub/internal/rearrange"
	"rummikub/internal/render"
	"rummikub/internal/scenario"
)

func rearrangeCmd(opts *rootOptions) *cobra.Command {
	var rackCodes []string
	var sets []string
	var policy string
	var unmelded bool

	c := &cobra.Command{
		Use:   "rearrange",
		Short: "Move rack tiles onto a table using a rearrangement policy",
		Example: `  rummikub rearrange --rack B3,B8 --set "B4 B5 B6" --set "R8 O8 K8"
  rummikub rearrange --rack R8 --set "R5 B5 O5" --set "R6 B6 O6" --set "R7 B7 O7" --policy exhaustive`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := rearrange.ParsePolicy(policy)
			if err != nil {
				return err
			}
			if policy == "" {
				rules, err := opts.rules()
				if err != nil {
					return err
				}
				p = rules.Policy
			}

			tiles, err := domain.ParseTiles(rackCodes)
			if err != nil {
				return fmt.Errorf("rack: %w", err)
			}
			rack, err := domain.NewRack(tiles...)
			if err != nil {
				return fmt.Errorf("rack: %w", err)
			}
			if !unmelded {
				rack = rack.WithInitialMeldPlayed()
			}
			table, err := parseSetArgs(sets)
			if err != nil {
				return err
			}

			log := opts.logger(cmd)
			log.Debug().Str("policy", string(p)).Int("rack", rack.Len()).Int("sets", table.Len()).Msg("rearranging")

			res := rearrange.Rearrange(p, rack, table)
			printResult(cmd.OutOrStdout(), opts.theme(), table, res)
			return nil
		},
	}

	c.Flags().StringSliceVarP(&rackCodes, "rack", "r", nil, "rack tiles, comma separated (required)")
	c.Flags().StringArrayVarP(&sets, "set", "s", nil, "a table set as space separated tiles; repeatable")
	c.Flags().StringVarP(&policy, "policy", "p", "", "incremental, exhaustive or auto (default from config)")
	c.Flags().BoolVar(&unmelded, "unmelded", false, "treat the rack as not having played its initial meld")

	_ = c.MarkFlagRequired("rack")
	return c
}

func parseSetArgs(args []string) (domain.Table, error) {
	sets := make([]domain.Set, 0, len(args))
	for i, arg := range args {
		tiles, err := domain.ParseTiles(strings.Fields(arg))
		if err != nil {
			return domain.Table{}, fmt.Errorf("set %d: %w", i+1, err)
		}
		s, err := domain.ParseSet(tiles)
		if err != nil {
			return domain.Table{}, fmt.Errorf("set %d: %w", i+1, err)
		}
		sets = append(sets, s)
	}
	return domain.NewTable(sets...), nil
}

func printResult(w io.Writer, th render.Theme, before domain.Table, res rearrange.Result) {
	switch r := res.(type) {
	case rearrange.Placement:
		fmt.Fprintf(w, "placed %s with %s\n", th.Tiles(r.Moved), r.Strategy)
		fmt.Fprintln(w, th.Panel("table", th.Table(r.Table)))
		fmt.Fprintln(w, th.Rack(r.Rack))
	case rearrange.NoPlacement:
		fmt.Fprintf(w, "no placement (%s): %s\n", r.Strategy, r.Reason)
		fmt.Fprintln(w, th.Panel("table", th.Table(before)))
	}
}

func scenariosCmd(opts *rootOptions) *cobra.Command {
	var verbose bool

	c := &cobra.Command{
		Use:   "scenarios FILE...",
		Short: "Run scenario files and check their expectations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := opts.logger(cmd)
			out := cmd.OutOrStdout()
			th := opts.theme()

			failed := 0
			for _, path := range args {
				scenarios, err := scenario.Load(path)
				if err != nil {
					return err
				}
				log.Debug().Str("file", path).Int("count", len(scenarios)).Msg("loaded scenarios")

				for _, o := range scenario.RunAll(scenarios) {
					if o.Passed() {
						fmt.Fprintf(out, "PASS %s\n", o.Scenario.Name)
					} else {
						failed++
						fmt.Fprintf(out, "FAIL %s: %s\n", o.Scenario.Name, strings.Join(o.Failures, "; "))
					}
					if verbose {
						printResult(out, th, o.Scenario.Table, o.Result)
					}
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d scenario(s) failed", failed)
			}
			return nil
		},
	}

	c.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every resulting table")
	return c
}
