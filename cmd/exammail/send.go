package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/mailer"
)

// passwordEnv supplies the app password when --password is omitted.
const passwordEnv = "EXAMMAIL_PASSWORD"

func newSendCmd(e *env) *cobra.Command {
	var (
		from       string
		password   string
		live       bool
		previewDir string
	)

	cmd := &cobra.Command{
		Use:   "send FILE",
		Long:  "send reads an .xlsx, .xlsm or .csv schedule. Legacy .xls workbooks must be re-saved as .xlsx first.",
		Short: "Send one notice per lecturer (test mode unless --live)",
		Example: `  exammail send schedule.xlsx --preview-dir out
  EXAMMAIL_PASSWORD=app-password exammail send schedule.xlsx --from office@example.edu --live`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv(passwordEnv)
			}
			creds := mailer.Credentials{Address: from, Password: password}
			if live {
				if err := creds.Validate(); err != nil {
					return fmt.Errorf("--from and --password (or %s) are required with --live: %w", passwordEnv, err)
				}
			}

			recipients, err := loadRecipients(e, args[0])
			if err != nil {
				return err
			}

			if previewDir != "" && !live {
				if err := os.MkdirAll(previewDir, 0o755); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			var writeErrs []error
			res, err := newDispatcher(e).Dispatch(cmd.Context(), recipients, creds, !live,
				dispatch.ObserverFunc(func(p dispatch.Progress) {
					fmt.Fprintln(out, progressLine(p, live))
					if p.Preview == "" || previewDir == "" {
						return
					}
					if err := writePreview(previewDir, p.Address, p.Preview); err != nil {
						e.log.Warn("failed to write preview",
							slog.String("email", p.Address),
							slog.String("error", err.Error()),
						)
						writeErrs = append(writeErrs, err)
					}
				}),
			)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, res)
			if len(writeErrs) > 0 {
				return fmt.Errorf("write previews: %w", errors.Join(writeErrs...))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "sender email address")
	cmd.Flags().StringVar(&password, "password", "", "app password or API key (default: $"+passwordEnv+")")
	cmd.Flags().BoolVar(&live, "live", false, "actually send; without it nothing leaves the machine")
	cmd.Flags().StringVar(&previewDir, "preview-dir", "", "write each test-mode preview to DIR/<escaped address>.html")
	return cmd
}

// previewFileName escapes address so it is always a single path element
// inside the preview directory.
func previewFileName(address string) string {
	return url.PathEscape(address) + ".html"
}

func writePreview(dir, address, html string) error {
	name := previewFileName(address)
	if name != filepath.Base(name) {
		return fmt.Errorf("%s: unsafe preview file name %q", address, name)
	}
	return writeFile(filepath.Join(dir, name), html)
}

func progressLine(p dispatch.Progress, live bool) string {
	status := "previewed"
	switch {
	case p.Err != nil:
		return fmt.Sprintf("[%d/%d] failed %s (%s): %v", p.Index, p.Total, p.Address, p.Name, p.Err)
	case live:
		status = "sent"
	}
	return fmt.Sprintf("[%d/%d] %s %s (%s)", p.Index, p.Total, status, p.Address, p.Name)
}
