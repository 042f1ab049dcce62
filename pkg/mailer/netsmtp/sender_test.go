package netsmtp_test

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/mailer/netsmtp"
	mailsmtp "github.com/dmitrymomot/exammail/pkg/mailer/smtp"
)

var creds = mailer.Credentials{Address: "office@example.edu", Password: "app-password"}

// plainServer accepts one connection and answers like an SMTP server that
// does not offer STARTTLS.
func plainServer(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		r := bufio.NewReader(conn)
		fmt.Fprint(conn, "220 fake ESMTP\r\n")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			switch {
			case strings.HasPrefix(line, "EHLO"):
				fmt.Fprint(conn, "250-fake\r\n250 AUTH PLAIN\r\n")
			case strings.HasPrefix(line, "QUIT"):
				fmt.Fprint(conn, "221 bye\r\n")
				return
			default:
				fmt.Fprint(conn, "502 not implemented\r\n")
			}
		}
	}()

	return ln.Addr().(*net.TCPAddr).Port
}

func closedPort(t *testing.T) int {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestDialer_Dial(t *testing.T) {
	t.Parallel()

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		d := netsmtp.New(mailsmtp.Config{Host: "127.0.0.1", Port: closedPort(t)})
		_, err := d.Dial(context.Background(), mailer.Credentials{Address: "office@example.edu"})
		require.ErrorIs(t, err, mailer.ErrNoCredentials)
	})

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()

		d := netsmtp.New(mailsmtp.Config{Host: "127.0.0.1", Port: closedPort(t), Timeout: time.Second})
		_, err := d.Dial(context.Background(), creds)
		require.ErrorIs(t, err, mailer.ErrDialFailed)
	})

	t.Run("server without STARTTLS", func(t *testing.T) {
		t.Parallel()

		d := netsmtp.New(mailsmtp.Config{Host: "127.0.0.1", Port: plainServer(t), Timeout: time.Second})
		_, err := d.Dial(context.Background(), creds)
		require.ErrorIs(t, err, mailer.ErrDialFailed)
		require.ErrorIs(t, err, netsmtp.ErrStartTLSUnsupported)
	})
}

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	date := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)

	t.Run("headers and body", func(t *testing.T) {
		t.Parallel()

		msg, err := netsmtp.BuildMessage("Phòng Đào tạo <office@example.edu>", &mailer.Email{
			To:      []string{"lecturer@example.edu"},
			Subject: "EXAM SCHEDULE NOTICE - NGUYỄN VĂN A",
			HTML:    "<p>Hello</p>",
			Headers: map[string]string{"X-Mailer": "exammail"},
		}, date)
		require.NoError(t, err)

		raw := string(msg)
		assert.Contains(t, raw, "From: =?utf-8?q?")
		assert.Contains(t, raw, "<office@example.edu>\r\n")
		assert.Contains(t, raw, "To: <lecturer@example.edu>\r\n")
		assert.Contains(t, raw, "Subject: =?utf-8?q?")
		assert.Contains(t, raw, "Date: Fri, 03 May 2024 08:00:00 +0000\r\n")
		assert.Contains(t, raw, "@example.edu>\r\n")
		assert.Contains(t, raw, "X-Mailer: exammail\r\n")
		assert.Contains(t, raw, "Content-Type: text/html; charset=\"UTF-8\"\r\n")
		assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>Hello</p>"))
	})

	t.Run("invalid email", func(t *testing.T) {
		t.Parallel()

		_, err := netsmtp.BuildMessage("office@example.edu", &mailer.Email{Subject: "s", HTML: "h"}, date)
		require.ErrorIs(t, err, mailer.ErrNoRecipient)

		_, err = netsmtp.BuildMessage("office@example.edu", &mailer.Email{To: []string{"a@x.com"}, HTML: "h"}, date)
		require.ErrorIs(t, err, mailer.ErrNoSubject)

		_, err = netsmtp.BuildMessage("office@example.edu", &mailer.Email{To: []string{"a@x.com"}, Subject: "s"}, date)
		require.ErrorIs(t, err, mailer.ErrNoContent)
	})
}
