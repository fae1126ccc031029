package store

import (
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s, err := New(Config{Backend: BackendPostgREST, URL: "https://project.supabase.co", Key: "anon"})
	require.NoError(t, err)
	assert.IsType(t, &PostgRESTStore{}, s)

	s, err = New(Config{URL: "https://project.supabase.co", Key: "anon"})
	require.NoError(t, err)
	assert.IsType(t, &PostgRESTStore{}, s)

	s, err = New(Config{Backend: BackendSQLite, DSN: filepath.Join(t.TempDir(), "links.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, s)
	assert.NoError(t, s.Close())

	_, err = New(Config{Backend: BackendPostgres})
	assert.Error(t, err)

	_, err = New(Config{Backend: "redis"})
	assert.True(t, errors.Is(err, ErrUnknownBackend))
}

func TestRecordFromRow(t *testing.T) {
	tests := []struct {
		name       string
		row        map[string]interface{}
		wantSlug   string
		wantTarget string
	}{
		{"supabase columns", map[string]interface{}{"short": "abc", "original_link": "example.com"}, "abc", "example.com"},
		{"slug and target_url", map[string]interface{}{"slug": "abc", "target_url": "https://a.b"}, "abc", "https://a.b"},
		{"original_url", map[string]interface{}{"short": "abc", "original_url": "a.b"}, "abc", "a.b"},
		{"bytes", map[string]interface{}{"short": []byte("abc"), "original_link": []byte("a.b")}, "abc", "a.b"},
		{"null target", map[string]interface{}{"short": "abc", "original_link": nil}, "abc", ""},
		{"first non-empty wins", map[string]interface{}{"short": "abc", "target_url": "", "original_link": "a.b"}, "abc", "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := recordFromRow(tt.row)
			assert.Equal(t, tt.wantSlug, record.Slug)
			assert.Equal(t, tt.wantTarget, record.TargetURL)
		})
	}
}
