package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"reviewlens/internal/config"
	"reviewlens/internal/render"
	"reviewlens/internal/store"
)

// NewRunsCmd creates the runs command group
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect persisted analysis runs",
	}

	cmd.AddCommand(newRunsListCmd())
	cmd.AddCommand(newRunsShowCmd())

	return cmd
}

func newRunsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored analysis runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runs, err := st.ListRuns()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No stored runs.")
				return nil
			}

			for _, info := range runs {
				fmt.Printf("%s  %-20s %5d reviews  %s  %s\n",
					info.DateGenerated.Format("2006-01-02 15:04"),
					info.Category, info.SurvivedReviews, info.ModelUsed, info.ID)
			}
			return nil
		},
	}
}

func newRunsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <run-id>",
		Short: "Render a stored run as a markdown report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("no run with ID %s", args[0])
			}

			fmt.Print(render.RunReport(run))
			return nil
		},
	}
}

func openStore() (*store.Store, error) {
	return store.NewStore(config.Get().App.DataDir)
}
