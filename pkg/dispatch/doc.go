// Package dispatch delivers rendered exam notices to every recipient of a
// schedule.
//
// A Dispatcher walks a schedule.RecipientMap in order, renders each notice and
// either sends it through a mailer.Session (live mode) or hands the HTML to
// the Observer without touching the network (test mode).
//
// In live mode the primary mailer.Dialer is tried first and the fallback
// exactly once after it. When neither produces a session, Dispatch returns a
// *ConnectionError and sends nothing. Once a session is open, a failure for
// one recipient is counted and the loop moves on.
//
// # Usage
//
//	d := dispatch.New(
//		dispatch.WithPrimary(smtp.New(cfg.SMTP)),
//		dispatch.WithFallback(netsmtp.New(cfg.SMTP)),
//		dispatch.WithLogger(log),
//	)
//
//	res, err := d.Dispatch(ctx, recipients, creds, false, dispatch.ObserverFunc(func(p dispatch.Progress) {
//		fmt.Printf("%d/%d %s\n", p.Index, p.Total, p.Address)
//	}))
//	if errors.Is(err, dispatch.ErrConnection) {
//		// nothing was sent
//	}
package dispatch
