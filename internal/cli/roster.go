package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/parow/mob/internal/rotation"
)

var joinCmd = &cobra.Command{
	Use:   "join <name>",
	Short: "Add a participant to the rotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runJoin,
}

var leaveCmd = &cobra.Command{
	Use:   "leave <name>",
	Short: "Remove a participant from the rotation",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeave,
}

func init() {
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
}

func runJoin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}

	name := args[0]
	roster := rotation.Add(s.Participants, name)
	if len(roster) == len(s.Participants) {
		fmt.Printf("%s is already in the rotation\n", name)
		return nil
	}
	s.Participants = roster

	if err := a.store.Save(s); err != nil {
		return err
	}
	fmt.Printf("👯 %s joined, driving after %s\n", name, s.Participants[len(s.Participants)-2])
	return nil
}

func runLeave(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	s, err := a.loadActive()
	if err != nil {
		return err
	}

	name := args[0]
	wasDriver := s.Driver() == name
	roster, idx, err := rotation.Remove(s.Participants, name, s.DriverIndex)
	if err != nil {
		return err
	}
	s.Participants = roster
	s.DriverIndex = idx

	if err := a.store.Save(s); err != nil {
		return err
	}
	if wasDriver {
		fmt.Printf("👋 %s left, %s takes over the turn\n", name, s.Driver())
	} else {
		fmt.Printf("👋 %s left the rotation\n", name)
	}
	return nil
}
