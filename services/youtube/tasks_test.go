package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"uploads/base"
	"uploads/models"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHandle(t *testing.T) {
	tests := []struct {
		handle  string
		wantErr bool
	}{
		{handle: "thenewboston"},
		{handle: "@thenewboston"},
		{handle: "", wantErr: true},
		{handle: "../etc/passwd", wantErr: true},
		{handle: `a\b`, wantErr: true},
		{handle: "a?b", wantErr: true},
		{handle: "a#b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.handle, func(t *testing.T) {
			err := ValidateHandle(tt.handle)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var cerr *base.ConfigurationError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, []string{"handle"}, cerr.Fields)
		})
	}
}

func testBase(t *testing.T, siteURL string) *base.Base {
	t.Helper()
	config := base.DefaultConfig()
	config.OutputDir = t.TempDir()
	config.SiteURL = siteURL
	return &base.Base{
		Env:    &base.Env{YOUTUBE_API_KEY: "test-key"},
		Config: config,
	}
}

func TestRunTasks_ScrapeFailureWritesNoFile(t *testing.T) {
	page := channelPageServer(t, http.StatusNotFound, "")
	b := testBase(t, page.URL)

	run, err := RunTasks(context.Background(), b, "thenewboston")

	assert.Nil(t, run)
	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, StageScrape, ferr.Stage)
	assert.Equal(t, http.StatusNotFound, ferr.StatusCode)

	_, statErr := os.Stat(filepath.Join(b.Config.OutputDir, "thenewboston.json"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunTasks_RejectsInvalidHandle(t *testing.T) {
	var hits int
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer page.Close()
	b := testBase(t, page.URL)

	for _, handle := range []string{"", "a/b", "a?b"} {
		run, err := RunTasks(context.Background(), b, handle)

		assert.Nil(t, run)
		var cerr *base.ConfigurationError
		require.ErrorAs(t, err, &cerr)
		assert.Equal(t, []string{"handle"}, cerr.Fields)
	}

	assert.Zero(t, hits)
	entries, err := os.ReadDir(b.Config.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakeArchive struct {
	previous    *models.Run
	previousErr error
	createErr   error
	created     []models.CreateRunParams
}

func (f *fakeArchive) GetLatestRunByHandle(ctx context.Context, handle string) (models.Run, error) {
	if f.previousErr != nil {
		return models.Run{}, f.previousErr
	}
	if f.previous == nil {
		return models.Run{}, pgx.ErrNoRows
	}
	return *f.previous, nil
}

func (f *fakeArchive) CreateRun(ctx context.Context, arg models.CreateRunParams) (models.Run, error) {
	if f.createErr != nil {
		return models.Run{}, f.createErr
	}
	f.created = append(f.created, arg)
	return models.Run{ID: int64(len(f.created)), Handle: arg.Handle}, nil
}

func testRun() *Run {
	return &Run{
		Handle:    "thenewboston",
		ChannelID: "UCabc123",
		Document:  &Document{Count: 1, Links: []string{WatchURLPrefix + "v1"}},
	}
}

func TestArchiveRun_FirstRun(t *testing.T) {
	archive := &fakeArchive{}

	require.NoError(t, archiveRun(context.Background(), archive, testRun()))

	require.Len(t, archive.created, 1)
	assert.Equal(t, models.CreateRunParams{
		Handle:     "thenewboston",
		ChannelID:  "UCabc123",
		VideoCount: 1,
		Links:      []string{WatchURLPrefix + "v1"},
	}, archive.created[0])
}

func TestArchiveRun_WithPreviousRun(t *testing.T) {
	archive := &fakeArchive{previous: &models.Run{Handle: "thenewboston", VideoCount: 5}}

	require.NoError(t, archiveRun(context.Background(), archive, testRun()))
	assert.Len(t, archive.created, 1)
}

func TestArchiveRun_Errors(t *testing.T) {
	boom := errors.New("boom")

	err := archiveRun(context.Background(), &fakeArchive{previousErr: boom}, testRun())
	assert.ErrorIs(t, err, boom)

	err = archiveRun(context.Background(), &fakeArchive{createErr: boom}, testRun())
	assert.ErrorIs(t, err, boom)
}
