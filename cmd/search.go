package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/convergent-research/scholarmatch/internal/catalog"
	"github.com/convergent-research/scholarmatch/pkg/openalex"
)

var (
	searchCategory     string
	searchCountry      string
	searchInstitution  string
	searchConcept      string
	searchMinHIndex    int
	searchMinCitations int
	searchPage         int
	searchPerPage      int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the scholarly catalog for authors or institutions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer env.Close()

		filters := openalex.Filters{
			Country:      searchCountry,
			Institution:  searchInstitution,
			ConceptID:    searchConcept,
			MinHIndex:    searchMinHIndex,
			MinCitations: searchMinCitations,
		}

		result, err := env.Catalog.Search(cmd.Context(), catalog.Category(searchCategory), args[0], filters, searchPage, searchPerPage)
		if err != nil {
			return err
		}

		switch result.Category {
		case catalog.CategoryInstitutions:
			fmt.Printf("%d institutions (page %d)\n\n", result.Meta.Count, result.Meta.Page)
			for _, inst := range result.Institutions {
				fmt.Printf("  %-14s %-50s %s\n", inst.ID, inst.DisplayName, inst.CountryCode)
			}
		default:
			fmt.Printf("%d authors (page %d)\n\n", result.Meta.Count, result.Meta.Page)
			for _, a := range result.Authors {
				inst := ""
				if len(a.Institutions) > 0 {
					inst = a.Institutions[0].DisplayName
				}
				fmt.Printf("  %3d  %-14s %-30s %s\n", a.MatchScore, a.ID, a.DisplayName, inst)
			}
		}

		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchCategory, "category", "authors", "authors or institutions")
	searchCmd.Flags().StringVar(&searchCountry, "country", "", "filter by country code")
	searchCmd.Flags().StringVar(&searchInstitution, "institution", "", "filter by institution name")
	searchCmd.Flags().StringVar(&searchConcept, "concept", "", "filter by concept id")
	searchCmd.Flags().IntVar(&searchMinHIndex, "min-h-index", 0, "minimum h-index")
	searchCmd.Flags().IntVar(&searchMinCitations, "min-citations", 0, "minimum citation count")
	searchCmd.Flags().IntVar(&searchPage, "page", 1, "result page")
	searchCmd.Flags().IntVar(&searchPerPage, "per-page", 10, "results per page")
	rootCmd.AddCommand(searchCmd)
}
