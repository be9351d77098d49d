package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/godilite/program-recommender/internal/app"
	"github.com/godilite/program-recommender/internal/repository"
	"github.com/godilite/program-recommender/internal/seed"
	"github.com/godilite/program-recommender/internal/service"
)

func newSeedCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a program and question catalog from YAML",
		Long:  "Load a program and question catalog from YAML. Without --file the bundled catalog is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer logger.Sync()

			catalog, err := seed.Default()
			if file != "" {
				catalog, err = seed.LoadFile(file)
			}
			if err != nil {
				return err
			}

			db, err := app.OpenDatabase(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			scoring := service.NewScoringService(repository.NewAnswerScoreRepository(db), logger)
			sum, err := seed.Apply(cmd.Context(), catalog, repository.NewCatalogRepository(db), scoring, logger)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d programs, %d questions, %d answers, %d scores\n",
				sum.Programs, sum.Questions, sum.Answers, sum.Scores)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "catalog YAML file")
	return cmd
}
