package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/exammail/internal/config"
	"github.com/dmitrymomot/exammail/middlewares"
	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/mailer/netsmtp"
	"github.com/dmitrymomot/exammail/pkg/mailer/resend"
	"github.com/dmitrymomot/exammail/pkg/mailer/smtp"
	"github.com/dmitrymomot/exammail/pkg/schedule"
	"github.com/dmitrymomot/exammail/pkg/sheet"
)

// env holds what every subcommand needs once the configuration is loaded.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	columns schedule.Columns
}

func newRootCmd() *cobra.Command {
	var (
		envFile   string
		sheetName string
		logLevel  string
		e         = &env{}
	)

	root := &cobra.Command{
		Use:           "exammail",
		Short:         "Mail each lecturer their exam schedule",
		Long:          "exammail reads an exam schedule spreadsheet, groups the rows by lecturer email\nand sends every lecturer one HTML notice listing their classes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if sheetName != "" {
				cfg.Sheet.Name = sheetName
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}

			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cols, err := cfg.Columns()
			if err != nil {
				return err
			}

			*e = env{cfg: cfg, log: log, columns: cols}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load, ignored when missing")
	root.PersistentFlags().StringVar(&sheetName, "sheet", "", "workbook sheet to read (default: SHEET_NAME or the first sheet)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error (default: LOG_LEVEL)")

	root.AddCommand(
		newServeCmd(e),
		newSendCmd(e),
		newPreviewCmd(e),
	)
	return root
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	opts, err := cfg.Log.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		logger.WithWriter(w),
		logger.WithExtractors(middlewares.RequestIDExtractor()),
	)
	return logger.NewWithSentry(cfg.Log.Sentry, opts...), nil
}

// newDispatcher wires the configured primary transport. SMTP falls back to
// the net/smtp client once per run.
func newDispatcher(e *env) *dispatch.Dispatcher {
	opts := []dispatch.Option{
		dispatch.WithLogger(e.log),
		dispatch.WithReplyTo(e.cfg.Mail.ReplyTo),
		dispatch.WithTags(map[string]string{"category": "exam_notice"}),
	}

	switch e.cfg.Mail.Provider {
	case mailer.ProviderResend:
		opts = append(opts, dispatch.WithPrimary(resend.New(e.cfg.Resend)))
	default:
		opts = append(opts,
			dispatch.WithPrimary(smtp.New(e.cfg.SMTP, smtp.WithLogger(e.log))),
			dispatch.WithFallback(netsmtp.New(e.cfg.SMTP, netsmtp.WithLogger(e.log))),
		)
	}
	return dispatch.New(opts...)
}

// loadRecipients reads path and groups the rows that carry an address.
func loadRecipients(e *env, path string) (*schedule.RecipientMap, error) {
	table, err := sheet.ReadFile(path,
		sheet.WithSheet(e.cfg.Sheet.Name),
		sheet.WithColumns(e.columns),
	)
	if err != nil {
		return nil, err
	}

	rows := schedule.FilterAddressed(table.Rows, e.columns)
	recipients := schedule.Group(rows, e.columns)

	e.log.Info("spreadsheet loaded",
		slog.String("file", path),
		slog.String("sheet", table.Sheet),
		slog.Int("rows", len(table.Rows)),
		slog.Int("addressed_rows", len(rows)),
		slog.Int("recipients", recipients.Len()),
	)
	if recipients.Len() == 0 {
		return nil, fmt.Errorf("%s: no rows with an email address", path)
	}
	return recipients, nil
}

func writeFile(path string, data string) error {
	return os.WriteFile(path, []byte(data), 0o644)
}
