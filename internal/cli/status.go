package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/parow/mob/internal/schedule"
	"github.com/parow/mob/internal/tui"
)

var statusRaw bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session: phase, timer, branches and roster",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusRaw, "raw", false, "Dump the persisted state as YAML")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	s, err := a.store.Load()
	if err != nil {
		return err
	}

	if statusRaw {
		out, err := yaml.Marshal(s)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
		return nil
	}

	fmt.Print(tui.RenderStatus(s, schedule.ComputeStatus(s, time.Now())))
	return nil
}
