package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/notice"
	"github.com/dmitrymomot/exammail/pkg/schedule"
	"github.com/dmitrymomot/exammail/pkg/sheet"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

const (
	msgNoFile         = "choose a spreadsheet to upload"
	msgNoCredentials  = "sender email and app password are required"
	msgUploadNotFound = "upload not found or expired, please upload the file again"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "index", indexPage{MaxUploadMB: s.maxUpload >> 20})
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	fail := func(status int, msg string) {
		s.render(w, r, status, "index", indexPage{Error: msg, MaxUploadMB: s.maxUpload >> 20})
	}

	if r.ContentLength > s.maxUpload {
		fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("file is larger than %d MB", s.maxUpload>>20))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			fail(http.StatusRequestEntityTooLarge, fmt.Sprintf("file is larger than %d MB", s.maxUpload>>20))
		default:
			fail(http.StatusUnprocessableEntity, msgNoFile)
		}
		return
	}
	defer file.Close()

	table, err := sheet.Read(file, header.Filename,
		sheet.WithSheet(s.sheetName),
		sheet.WithColumns(s.columns),
	)
	if err != nil {
		s.logger.WarnContext(r.Context(), "failed to read upload",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		fail(http.StatusUnprocessableEntity, "Error reading file: "+err.Error())
		return
	}

	rows := schedule.FilterAddressed(table.Rows, s.columns)
	recipients := schedule.Group(rows, s.columns)

	u := workspace.NewUpload(header.Filename)
	u.Sheet = table.Sheet
	u.Columns = table.Columns
	u.TotalRows = len(table.Rows)
	u.AddressedRows = len(rows)
	u.SetRecipients(recipients)

	if err := s.store.Save(r.Context(), u); err != nil {
		s.serverError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "spreadsheet uploaded",
		slog.String("upload_id", u.ID),
		slog.String("filename", u.Filename),
		slog.Int("rows", u.TotalRows),
		slog.Int("recipients", recipients.Len()),
	)

	http.Redirect(w, r, "/uploads/"+u.ID, http.StatusSeeOther)
}

func (s *Server) show(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUpload(w, r)
	if !ok {
		return
	}
	s.render(w, r, http.StatusOK, "upload", uploadPage{Upload: u, TestMode: true})
}

func (s *Server) preview(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUpload(w, r)
	if !ok {
		return
	}

	recipients := u.RecipientMap()
	addr := strings.TrimSpace(r.URL.Query().Get("email"))
	if addr == "" {
		if addrs := recipients.Addresses(); len(addrs) > 0 {
			addr = addrs[0]
		}
	}

	recipient, found := recipients.Get(addr)
	if !found {
		http.Error(w, "recipient not found", http.StatusNotFound)
		return
	}

	html, err := notice.Render(recipient)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	u, ok := s.loadUpload(w, r)
	if !ok {
		return
	}

	creds := mailer.Credentials{
		Address:  strings.TrimSpace(r.PostFormValue("sender")),
		Password: r.PostFormValue("password"),
	}
	testMode := formBool(r.PostFormValue("test_mode"))

	if err := creds.Validate(); err != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "upload", uploadPage{
			Upload:   u,
			Error:    msgNoCredentials,
			Sender:   creds.Address,
			TestMode: testMode,
		})
		return
	}

	var progress []dispatch.Progress
	res, err := s.dispatcher.Dispatch(r.Context(), u.RecipientMap(), creds, testMode,
		dispatch.ObserverFunc(func(p dispatch.Progress) {
			progress = append(progress, p)
		}),
	)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "dispatch aborted",
			slog.String("upload_id", u.ID),
			slog.String("error", err.Error()),
		)
		status := http.StatusInternalServerError
		if errors.Is(err, dispatch.ErrConnection) {
			status = http.StatusBadGateway
		}
		s.render(w, r, status, "upload", uploadPage{
			Upload:   u,
			Error:    err.Error(),
			Sender:   creds.Address,
			TestMode: testMode,
		})
		return
	}

	s.render(w, r, http.StatusOK, "result", resultPage{
		Upload:   u,
		Result:   res,
		Progress: progress,
		TestMode: testMode,
	})
}

func (s *Server) discard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if workspace.ValidID(id) {
		if err := s.store.Delete(r.Context(), id); err != nil {
			s.serverError(w, r, err)
			return
		}
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// loadUpload writes a 404 page and reports false when the upload is gone.
func (s *Server) loadUpload(w http.ResponseWriter, r *http.Request) (*workspace.Upload, bool) {
	id := chi.URLParam(r, "id")
	if !workspace.ValidID(id) {
		s.render(w, r, http.StatusNotFound, "index", indexPage{Error: msgUploadNotFound, MaxUploadMB: s.maxUpload >> 20})
		return nil, false
	}

	u, err := s.store.Load(r.Context(), id)
	switch {
	case errors.Is(err, workspace.ErrNotFound):
		s.render(w, r, http.StatusNotFound, "index", indexPage{Error: msgUploadNotFound, MaxUploadMB: s.maxUpload >> 20})
		return nil, false
	case err != nil:
		s.serverError(w, r, err)
		return nil, false
	}
	return u, true
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func formBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
