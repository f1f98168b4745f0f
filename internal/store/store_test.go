package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/foundry/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleSession(name string) *models.Session {
	session := models.NewSession()
	session.Requirements.Name = name
	session.Responses.Set("agent-name", models.TextValue(name))
	return session
}

func TestNewStoreCreatesParentDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "deep", "sessions.db")
	s, err := NewStore(dbPath)
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, dbPath, s.Path())
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := sampleSession("Helper")
	session.Requirements.Constraints = []string{"local only"}
	session.Requirements.EnsureCapabilities().FileAccess = true
	session.Recommendation = &models.AgentRecommendation{
		AgentType:           "data-analyst",
		EstimatedComplexity: models.ComplexityLow,
		MCPServers:          []string{"filesystem"},
	}

	require.NoError(t, s.Save(ctx, session))

	loaded, err := s.Load(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "Helper", loaded.Requirements.Name)
	assert.Equal(t, []string{"local only"}, loaded.Requirements.Constraints)
	require.NotNil(t, loaded.Requirements.Capabilities)
	assert.True(t, loaded.Requirements.Capabilities.FileAccess)
	require.NotNil(t, loaded.Recommendation)
	assert.Equal(t, "data-analyst", loaded.Recommendation.AgentType)

	v, ok := loaded.Responses.Get("agent-name")
	require.True(t, ok)
	assert.Equal(t, "Helper", v.Text)
}

func TestLoadAbsentSessionReturnsNilNil(t *testing.T) {
	s := newTestStore(t)

	loaded, err := s.Load(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSaveIsIdempotentUpsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := sampleSession("First")
	require.NoError(t, s.Save(ctx, session))

	// Re-saving the same snapshot, then a newer one, leaves exactly one row
	// holding the latest state.
	require.NoError(t, s.Save(ctx, session))
	session.Requirements.Name = "Renamed"
	require.NoError(t, s.Save(ctx, session))

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Renamed", summaries[0].AgentName)

	loaded, err := s.Load(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", loaded.Requirements.Name)
}

func TestSaveNilSessionRejected(t *testing.T) {
	s := newTestStore(t)
	require.Error(t, s.Save(context.Background(), nil))
}

func TestListOrdersByMostRecentUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := sampleSession("First")
	second := sampleSession("Second")

	require.NoError(t, s.Save(ctx, first))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Save(ctx, second))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Save(ctx, first))

	summaries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, first.ID, summaries[0].ID)
	assert.Equal(t, second.ID, summaries[1].ID)
}

func TestLoadLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	latest, err := s.LoadLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest, "empty store yields nil, nil")

	older := sampleSession("Older")
	newer := sampleSession("Newer")
	require.NoError(t, s.Save(ctx, older))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.Save(ctx, newer))

	latest, err = s.LoadLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	session := sampleSession("Helper")
	require.NoError(t, s.Save(ctx, session))
	require.NoError(t, s.Delete(ctx, session.ID))

	loaded, err := s.Load(ctx, session.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Deleting an unknown id is not an error.
	require.NoError(t, s.Delete(ctx, "no-such-session"))
}
