package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/convergent-research/scholarmatch/internal/store"
)

var seedCmd = &cobra.Command{
	Use:     "seed",
	Aliases: []string{"migrate"},
	Short:   "Create the store schema and load the proposal fixtures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return eris.Wrap(err, "migrate store")
		}

		seed, err := store.LoadSeed(cfg.Store.SeedFile)
		if err != nil {
			return err
		}
		if err := st.Seed(ctx, seed.Proposals, seed.Roster); err != nil {
			return err
		}

		fmt.Printf("seeded %d proposals, %d roster researchers\n", len(seed.Proposals), len(seed.Roster))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
