package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/exammail/pkg/notice"
)

func newPreviewCmd(e *env) *cobra.Command {
	var (
		address string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Render the notice for one lecturer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipients, err := loadRecipients(e, args[0])
			if err != nil {
				return err
			}

			if address == "" {
				address = recipients.Addresses()[0]
			}
			r, ok := recipients.Get(address)
			if !ok {
				return fmt.Errorf("no rows for %s in %s", address, args[0])
			}

			html, err := notice.Render(r)
			if err != nil {
				return err
			}

			if output != "" {
				return writeFile(output, html)
			}
			_, err = io.WriteString(cmd.OutOrStdout(), html)
			return err
		},
	}

	cmd.Flags().StringVar(&address, "email", "", "recipient address (default: the first one)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
