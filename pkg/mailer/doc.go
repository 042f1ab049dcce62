// Package mailer defines the mail transport used to deliver exam notices.
//
// Delivery is split in two steps so that connection problems surface before
// any message is sent:
//
//   - Dialer: opens an authenticated Session using the operator's Credentials
//   - Session: sends fully-prepared Email values and is closed when done
//
// Three transports are provided in sub-packages:
//
//   - smtp: SMTP submission with mandatory STARTTLS (github.com/wneessen/go-mail)
//   - netsmtp: a lower-level net/smtp transport used as the fallback
//   - resend: the Resend HTTP API, with the API key supplied as the password
//
// # Usage
//
//	dialer := smtp.New(smtp.Config{Host: "smtp.gmail.com", Port: 587})
//
//	session, err := dialer.Dial(ctx, mailer.Credentials{
//		Address:  "office@example.edu",
//		Password: appPassword,
//	})
//	if err != nil {
//		return err
//	}
//	defer session.Close()
//
//	err = session.Send(ctx, &mailer.Email{
//		To:      []string{"lecturer@example.edu"},
//		Subject: "EXAM SCHEDULE NOTICE - LECTURER",
//		HTML:    html,
//	})
//
// # Errors
//
//   - ErrNoCredentials: sender address or password missing
//   - ErrNoRecipient: no recipient specified
//   - ErrNoSubject: no subject provided
//   - ErrNoContent: no HTML content provided
//   - ErrDialFailed: the transport session could not be established
//   - ErrSendFailed: a message could not be delivered
package mailer
