package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/convergent-research/scholarmatch/internal/model"
	"github.com/convergent-research/scholarmatch/internal/proposal"
)

var matchesCmd = &cobra.Command{
	Use:   "matches <proposal-id>",
	Short: "Match the researcher roster against a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		outcome, err := env.Proposals.FindMatches(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n%s\n\n", outcome.Proposal.Title, outcome.Proposal.Company.Name)
		for _, m := range outcome.Results {
			fmt.Printf("  %3d  %-30s %s\n", m.MatchScore, m.DisplayName, strings.Join(m.MatchReasons, "; "))
		}

		return nil
	},
}

var (
	proposalsRole  string
	proposalsQuery string
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List collaboration proposals",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Proposals.List(cmd.Context(), proposal.ListRequest{
			Query: proposalsQuery,
			Role:  model.Role(proposalsRole),
		})
		if err != nil {
			return err
		}

		fmt.Printf("%d proposals\n\n", result.Meta.Total)
		for _, p := range result.Proposals {
			fmt.Printf("  %-10s %-10s %-45s %s\n", p.ID, p.Status, p.Title, p.Company.Name)
		}

		return nil
	},
}

func init() {
	proposalsCmd.Flags().StringVar(&proposalsRole, "role", "faculty", "viewer role: company, faculty, or admin")
	proposalsCmd.Flags().StringVar(&proposalsQuery, "query", "", "free-text filter")
	rootCmd.AddCommand(matchesCmd, proposalsCmd)
}
