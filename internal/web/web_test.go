package web_test

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/exammail/internal/web"
	"github.com/dmitrymomot/exammail/pkg/dispatch"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/notice"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

const scheduleCSV = "Email,Giang_vien,Nganh,Lop,Mon_thi,Hinh_thuc_thi,Ngay_thi,Gio_thi\n" +
	"a@x.com,Lecturer A,Computer Science,CS101,Databases,Written,2024-05-03,07:30\n" +
	"a@x.com,Lecturer A,Computer Science,CS102,Networks,Oral,2024-05-04,09:00\n" +
	",Nobody,Physics,PH1,Optics,Written,2024-05-05,10:00\n" +
	"b@y.com,Lecturer B,Physics,PH201,Compilers,Written,2024-06-10,13:00\n"

type fixture struct {
	store  *workspace.Memory
	client *http.Client
	url    string
}

func newFixture(t *testing.T, dialer mailer.Dialer, opts ...web.Option) *fixture {
	t.Helper()

	store := workspace.NewMemory()
	t.Cleanup(func() { _ = store.Close() })

	var dopts []dispatch.Option
	if dialer != nil {
		dopts = append(dopts, dispatch.WithPrimary(dialer))
	}
	srv := httptest.NewServer(web.New(store, dispatch.New(dopts...), opts...).Router())
	t.Cleanup(srv.Close)

	client := srv.Client()
	client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

	return &fixture{store: store, client: client, url: srv.URL}
}

func (f *fixture) upload(t *testing.T, filename, content string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := f.client.Post(f.url+"/uploads", mw.FormDataContentType(), &body)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

// uploadID uploads the sample schedule and returns the new upload ID.
func (f *fixture) uploadID(t *testing.T) string {
	t.Helper()

	resp := f.upload(t, "schedule.csv", scheduleCSV)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, "/uploads/"), loc)
	return strings.TrimPrefix(loc, "/uploads/")
}

func (f *fixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()

	resp, err := f.client.Get(f.url + path)
	require.NoError(t, err)
	return read(t, resp)
}

func (f *fixture) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	resp, err := f.client.PostForm(f.url+path, form)
	require.NoError(t, err)
	return read(t, resp)
}

func read(t *testing.T, resp *http.Response) (*http.Response, string) {
	t.Helper()
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.String()
}

func TestIndex(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	resp, body := f.get(t, "/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, body, `enctype="multipart/form-data"`)
	assert.Contains(t, body, "10 MB")
	assert.Contains(t, body, "save as <code>.xlsx</code>")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestUpload(t *testing.T) {
	t.Parallel()

	t.Run("stores grouped recipients", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		id := f.uploadID(t)

		u, err := f.store.Load(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "schedule.csv", u.Filename)
		assert.Equal(t, 4, u.TotalRows)
		assert.Equal(t, 3, u.AddressedRows)
		require.Len(t, u.Recipients, 2)
		assert.Equal(t, "a@x.com", u.Recipients[0].Address)
		assert.Equal(t, 3, u.ClassCount())

		resp, body := f.get(t, "/uploads/"+id)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Lecturer A")
		assert.Contains(t, body, "Lecturer B")
		assert.NotContains(t, body, "Nobody")
	})

	t.Run("unsupported file", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		resp := f.upload(t, "schedule.pdf", "%PDF")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		resp, body := f.post(t, "/uploads", url.Values{})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "choose a spreadsheet")
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil, web.WithMaxUploadSize(64))
		resp := f.upload(t, "schedule.csv", scheduleCSV)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}

func TestShow_NotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	resp, _ := f.get(t, "/uploads/not-an-id")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body := f.get(t, "/uploads/4d6b1c4e-93a7-4f3c-9a55-0b0e3c2f9d11")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "upload not found")
}

func TestPreview(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	id := f.uploadID(t)

	u, err := f.store.Load(context.Background(), id)
	require.NoError(t, err)
	want, err := notice.Render(u.Recipients[1])
	require.NoError(t, err)

	resp, body := f.get(t, "/uploads/"+id+"/preview?email=b@y.com")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Equal(t, want, body)

	_, body = f.get(t, "/uploads/"+id+"/preview")
	assert.Contains(t, body, "Lecturer A")

	resp, _ = f.get(t, "/uploads/"+id+"/preview?email=c@z.com")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSend(t *testing.T) {
	t.Parallel()

	form := func(testMode bool) url.Values {
		v := url.Values{"sender": {"office@example.edu"}, "password": {"app-password"}}
		if testMode {
			v.Set("test_mode", "on")
		}
		return v
	}

	t.Run("requires credentials", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		id := f.uploadID(t)

		resp, body := f.post(t, "/uploads/"+id+"/send", url.Values{"sender": {"office@example.edu"}, "test_mode": {"on"}})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, body, "sender email and app password are required")
		assert.Contains(t, body, `value="office@example.edu"`)
	})

	t.Run("test mode previews every recipient", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, nil)
		id := f.uploadID(t)

		resp, body := f.post(t, "/uploads/"+id+"/send", form(true))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Test run")
		assert.Equal(t, 2, strings.Count(body, "<iframe srcdoc="))
		assert.Contains(t, body, notice.Title+" - LECTURER B")
	})

	t.Run("live mode sends through the dialer", func(t *testing.T) {
		t.Parallel()

		var sent []string
		dialer := mailer.DialerFunc(func(_ context.Context, creds mailer.Credentials) (mailer.Session, error) {
			assert.Equal(t, "office@example.edu", creds.Address)
			return &recordingSession{sent: &sent}, nil
		})

		f := newFixture(t, dialer)
		id := f.uploadID(t)

		resp, body := f.post(t, "/uploads/"+id+"/send", form(false))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []string{"a@x.com", "b@y.com"}, sent)
		assert.NotContains(t, body, "<iframe srcdoc=")
	})

	t.Run("connection failure", func(t *testing.T) {
		t.Parallel()

		dialer := mailer.DialerFunc(func(context.Context, mailer.Credentials) (mailer.Session, error) {
			return nil, errors.New("535 authentication failed")
		})

		f := newFixture(t, dialer)
		id := f.uploadID(t)

		resp, body := f.post(t, "/uploads/"+id+"/send", form(false))
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
		assert.Contains(t, body, "could not connect to the mail server")
		assert.Equal(t, 1, strings.Count(body, `class="error"`))
	})
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)
	id := f.uploadID(t)

	resp, _ := f.post(t, "/uploads/"+id+"/delete", nil)
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	_, err := f.store.Load(context.Background(), id)
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	f := newFixture(t, nil)

	resp, _ := f.get(t, "/health/live")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = f.get(t, "/health/ready")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

type recordingSession struct {
	sent *[]string
}

func (s *recordingSession) Send(_ context.Context, email *mailer.Email) error {
	*s.sent = append(*s.sent, email.To...)
	return nil
}

func (s *recordingSession) Close() error { return nil }
