package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"greenpath/internal/ui"
)

func newDonateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "donate",
		Short: "Open the donation request form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(opts)
			if err != nil {
				return err
			}
			defer s.Close()

			p := tea.NewProgram(ui.NewDonateModel(s.deps), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running donation form: %w", err)
			}
			return nil
		},
	}
}
