// Package workspace keeps parsed uploads between the upload, preview and send
// requests of the web UI.
//
// An Upload holds the grouped recipients of one spreadsheet plus a summary
// of the file. It never holds credentials. Entries expire after a TTL, so an
// abandoned upload disappears on its own.
//
// Two stores are provided:
//
//   - Memory: a process-local map with LRU eviction and a janitor goroutine
//   - Redis: JSON values under "exammail:upload:<id>" with a Redis TTL, for
//     running several web instances behind a load balancer
//
// # Usage
//
//	store := workspace.NewMemory(workspace.WithTTL(time.Hour), workspace.WithMaxEntries(100))
//	defer store.Close()
//
//	u := workspace.NewUpload("schedule.xlsx")
//	u.SetRecipients(recipients)
//	if err := store.Save(ctx, u); err != nil {
//		return err
//	}
//
//	u, err := store.Load(ctx, id)
//	if errors.Is(err, workspace.ErrNotFound) {
//		// expired or never existed
//	}
package workspace
