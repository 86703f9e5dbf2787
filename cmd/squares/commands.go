package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fystack/squares-pool/internal/payout"
	"github.com/fystack/squares-pool/internal/reconcile"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type scheduleView struct {
	Category    string           `json:"category"`
	Checkpoints []checkpointView `json:"checkpoints"`
	House       decimal.Decimal  `json:"house"`
	Scored      int              `json:"scored"`
}

type checkpointView struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Fraction decimal.Decimal `json:"fraction"`
}

func newSchedulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedules",
		Short: "Validate and print the payout schedule of every sport.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := payout.ValidateAll(); err != nil {
				return err
			}
			views := make([]scheduleView, 0, len(payout.Categories))
			for _, c := range payout.Categories {
				s := payout.ScheduleFor(c)
				v := scheduleView{Category: c.String(), House: s.House, Scored: s.ScoredCount()}
				for _, cp := range s.Checkpoints {
					v.Checkpoints = append(v.Checkpoints, checkpointView{cp.Key, cp.Label, cp.Fraction})
				}
				views = append(views, v)
			}
			return writeJSON(cmd.OutOrStdout(), views)
		},
	}
}

func newAxesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "axes",
		Short: "Generate row and column digits for every checkpoint of a game.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			set, err := a.engine.StartGame(cmd.Context(), flags.gameID, flags.league)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), set)
		},
	}
}

func newPayoutsCmd(flags *rootFlags) *cobra.Command {
	var pot string
	cmd := &cobra.Command{
		Use:   "payouts",
		Short: "Split a pot across the checkpoints of the league's sport.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := decimal.NewFromString(pot)
			if err != nil {
				return fmt.Errorf("invalid pot %q: %w", pot, err)
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			table, err := a.engine.UpdatePot(cmd.Context(), flags.gameID, flags.league, amount)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().StringVar(&pot, "pot", "0", "Total pot.")
	return cmd
}

func newRollCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "roll",
		Short: "Roll one Bau Cua round.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			roll, err := a.engine.RollRound(cmd.Context(), flags.gameID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), roll)
		},
	}
}

func newPendingCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pending",
		Short: "Save or resume a square selection interrupted by sign-in.",
	}

	var squares string
	save := &cobra.Command{
		Use:   "save",
		Short: "Remember squares for the game.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := parseSquares(squares)
			if err != nil {
				return err
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.engine.SavePending(flags.gameID, list); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %d squares for %s\n", len(list), flags.gameID)
			return nil
		},
	}
	save.Flags().StringVar(&squares, "squares", "", "Comma separated square indices (0-99).")
	_ = save.MarkFlagRequired("squares")

	var occupancyPath string
	resume := &cobra.Command{
		Use:   "resume",
		Short: "Reconcile the saved squares against a board occupancy snapshot.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			occ, err := readOccupancy(occupancyPath)
			if err != nil {
				return err
			}
			a, err := newApp(flags)
			if err != nil {
				return err
			}
			defer a.Close()

			res, ok, err := a.engine.ResumeClaim(cmd.Context(), flags.gameID, occ)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no pending selection for %s\n", flags.gameID)
				return nil
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	resume.Flags().StringVar(&occupancyPath, "occupancy", "", `JSON file mapping "row-col" to claimants.`)

	cmd.AddCommand(save, resume)
	return cmd
}

func parseSquares(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid square %q: %w", part, err)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no squares given")
	}
	return out, nil
}

func readOccupancy(path string) (reconcile.Occupancy, error) {
	if path == "" {
		return reconcile.Occupancy{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read occupancy: %w", err)
	}
	var occ reconcile.Occupancy
	if err := json.Unmarshal(data, &occ); err != nil {
		return nil, fmt.Errorf("parse occupancy: %w", err)
	}
	return occ, nil
}
