package workspace_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/exammail/pkg/schedule"
	"github.com/dmitrymomot/exammail/pkg/workspace"
)

func sampleUpload(t *testing.T) *workspace.Upload {
	t.Helper()

	rows := []schedule.RawRow{
		{"Email": "a@x.com", "Giang_vien": "Lecturer A", "Mon_thi": "Databases", "Lop": "CS101"},
		{"Email": "b@y.com", "Giang_vien": "Lecturer B", "Mon_thi": "Optics", "Lop": "PH201"},
		{"Email": "a@x.com", "Giang_vien": "Lecturer A", "Mon_thi": "Networks", "Lop": "CS102"},
	}

	u := workspace.NewUpload("schedule.xlsx")
	u.TotalRows = len(rows)
	u.AddressedRows = len(rows)
	u.SetRecipients(schedule.Group(rows, schedule.DefaultColumns()))
	return u
}

func TestUpload(t *testing.T) {
	t.Parallel()

	u := sampleUpload(t)
	assert.True(t, workspace.ValidID(u.ID))
	assert.False(t, workspace.ValidID("../etc/passwd"))
	assert.Equal(t, 3, u.ClassCount())

	m := u.RecipientMap()
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, m.Addresses())
}

func TestMemory_SaveLoad(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory()
		defer s.Close()

		ctx := context.Background()
		u := sampleUpload(t)
		require.NoError(t, s.Save(ctx, u))

		got, err := s.Load(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u, got)
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory()
		defer s.Close()

		_, err := s.Load(context.Background(), "missing")
		require.ErrorIs(t, err, workspace.ErrNotFound)
	})

	t.Run("invalid upload", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory()
		defer s.Close()

		require.ErrorIs(t, s.Save(context.Background(), nil), workspace.ErrInvalidUpload)
		require.ErrorIs(t, s.Save(context.Background(), &workspace.Upload{}), workspace.ErrInvalidUpload)
	})

	t.Run("expired", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory(workspace.WithTTL(time.Millisecond), workspace.WithCleanupInterval(0))
		defer s.Close()

		ctx := context.Background()
		u := sampleUpload(t)
		require.NoError(t, s.Save(ctx, u))

		time.Sleep(5 * time.Millisecond)

		_, err := s.Load(ctx, u.ID)
		require.ErrorIs(t, err, workspace.ErrNotFound)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("janitor removes expired uploads", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory(
			workspace.WithTTL(time.Millisecond),
			workspace.WithCleanupInterval(5*time.Millisecond),
		)
		defer s.Close()

		require.NoError(t, s.Save(context.Background(), sampleUpload(t)))
		require.Eventually(t, func() bool { return s.Len() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("evicts least recently used", func(t *testing.T) {
		t.Parallel()

		s := workspace.NewMemory(workspace.WithMaxEntries(2))
		defer s.Close()

		ctx := context.Background()
		a, b, c := sampleUpload(t), sampleUpload(t), sampleUpload(t)
		require.NoError(t, s.Save(ctx, a))
		require.NoError(t, s.Save(ctx, b))

		_, err := s.Load(ctx, a.ID)
		require.NoError(t, err)

		require.NoError(t, s.Save(ctx, c))

		_, err = s.Load(ctx, b.ID)
		require.ErrorIs(t, err, workspace.ErrNotFound)
		_, err = s.Load(ctx, a.ID)
		require.NoError(t, err)
		_, err = s.Load(ctx, c.ID)
		require.NoError(t, err)
	})
}

func TestMemory_Delete(t *testing.T) {
	t.Parallel()

	s := workspace.NewMemory()
	defer s.Close()

	ctx := context.Background()
	u := sampleUpload(t)
	require.NoError(t, s.Save(ctx, u))
	require.NoError(t, s.Delete(ctx, u.ID))
	require.NoError(t, s.Delete(ctx, u.ID))

	_, err := s.Load(ctx, u.ID)
	require.ErrorIs(t, err, workspace.ErrNotFound)
}

func TestMemory_Close(t *testing.T) {
	t.Parallel()

	s := workspace.NewMemory()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	require.ErrorIs(t, s.Save(context.Background(), sampleUpload(t)), workspace.ErrClosed)
	_, err := s.Load(context.Background(), "x")
	require.ErrorIs(t, err, workspace.ErrClosed)
}
