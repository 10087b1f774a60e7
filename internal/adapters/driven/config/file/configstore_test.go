package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".minairva", "config.toml"), store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("client.api_url", "http://localhost:8000/triage"))

	val, ok := store.Get("client.api_url")
	assert.True(t, ok)
	assert.Equal(t, "http://localhost:8000/triage", val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	val, ok := store.Get("nonexistent")
	assert.False(t, ok)
	assert.Nil(t, val)
	assert.Empty(t, store.GetString("nonexistent"))
	assert.Zero(t, store.GetInt("nonexistent"))
	assert.Zero(t, store.GetFloat("nonexistent"))
	assert.False(t, store.GetBool("nonexistent"))
}

func TestConfigStore_TypedGettersRejectWrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("number", int64(7)))
	require.NoError(t, store.Set("text", "seven"))

	assert.Empty(t, store.GetString("number"))
	assert.Zero(t, store.GetInt("text"))
	assert.Zero(t, store.GetFloat("text"))
	assert.False(t, store.GetBool("text"))
}

func TestConfigStore_GetFloat_ConvertsIntegers(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	store.mu.Lock()
	store.data["int64_key"] = int64(5)
	store.data["int_key"] = 3
	store.data["float_key"] = 2.5
	store.mu.Unlock()

	assert.InDelta(t, 5.0, store.GetFloat("int64_key"), 0.0001)
	assert.InDelta(t, 3.0, store.GetFloat("int_key"), 0.0001)
	assert.InDelta(t, 2.5, store.GetFloat("float_key"), 0.0001)
}

func TestConfigStore_WritesNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ui.theme", "dark"))
	require.NoError(t, store.Set("client.timeout", "45s"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[ui]")
	assert.Contains(t, string(raw), "[client]")
	assert.NotContains(t, string(raw), `"ui.theme"`)
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[client]
api_url = "https://triage.example.com/triage"
rate_per_second = 2
breaker = true

[ui]
theme = "dark"
reduced_motion = true
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "https://triage.example.com/triage", store.GetString("client.api_url"))
	assert.InDelta(t, 2.0, store.GetFloat("client.rate_per_second"), 0.0001)
	assert.True(t, store.GetBool("client.breaker"))
	assert.True(t, store.GetBool("ui.reduced_motion"))

	theme, ok, err := store.GetPreference("ui.theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", theme)
}

func TestConfigStore_Preference_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok, err := store.GetPreference("ui.theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetPreference("ui.theme", "dark"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	value, ok, err := reopened.GetPreference("ui.theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestConfigStore_Preference_NonString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("ui.theme", int64(1)))

	_, ok, err := store.GetPreference("ui.theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestConfigStore_SaveReload_PreservesData(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	testData := map[string]any{
		"client.api_url":         "http://localhost:8000/triage",
		"client.rate_burst":      int64(42),
		"client.breaker":         true,
		"ui.reduced_motion":      false,
		"client.rate_per_second": 3.5,
	}
	for key, val := range testData {
		require.NoError(t, store.Set(key, val))
	}

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/triage", store2.GetString("client.api_url"))
	assert.Equal(t, 42, store2.GetInt("client.rate_burst"))
	assert.True(t, store2.GetBool("client.breaker"))
	assert.False(t, store2.GetBool("ui.reduced_motion"))
	assert.InDelta(t, 3.5, store2.GetFloat("client.rate_per_second"), 0.00001)
}

func TestConfigStore_ScalarParentCollision(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("ui", "compact"))
	require.NoError(t, store.Set("ui.theme", "dark"))

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "compact", store2.GetString("ui"))
	assert.Equal(t, "dark", store2.GetString("ui.theme"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("key", "value"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = store.SetPreference("ui.theme", "dark")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = store.GetPreference("ui.theme")
		}()
	}
	wg.Wait()

	assert.Equal(t, "dark", store.GetString("ui.theme"))
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("this is not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_Set_WriteErrorRollsBack(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("ui.theme", "light"))

	// Replace the file with a directory so the rename fails.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err = store.Set("ui.theme", "dark")
	assert.Error(t, err)
	assert.Equal(t, "light", store.GetString("ui.theme"))

	err = store.SetPreference("ui.new", "x")
	assert.Error(t, err)
	_, ok := store.Get("ui.new")
	assert.False(t, ok)
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("channel", make(chan int))

	assert.Error(t, err)
	require.NoError(t, store.Set("after", "still works"))
}

func TestConfigStore_Load_EmptyTOMLData(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	_, ok := store.Get("any_key")
	assert.False(t, ok)
	require.NoError(t, store.Set("new_key", "new_value"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"ui.theme":       "dark",
		"client.timeout": "30s",
		"top":            true,
	})

	assert.Equal(t, map[string]any{
		"ui":     map[string]any{"theme": "dark"},
		"client": map[string]any{"timeout": "30s"},
		"top":    true,
	}, nested)
	assert.Equal(t, map[string]any{
		"ui.theme":       "dark",
		"client.timeout": "30s",
		"top":            true,
	}, flattenMap(nested, ""))
}
