package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEncodePreservesMappingOrder(t *testing.T) {
	m := NewMapping()
	m.Set("zulu", Integer(1))
	m.Set("alpha", Integer(2))
	m.Set("mike", Integer(3))

	data, err := EncodeYAML(m)
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Content, 1)
	mapping := doc.Content[0]
	require.Equal(t, yaml.MappingNode, mapping.Kind)

	keys := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	require.Equal(t, []string{"zulu", "alpha", "mike"}, keys)
}

func TestEncodeNestedStructures(t *testing.T) {
	inner := NewMapping()
	inner.Set("hits", Integer(3))
	inner.Set("mean", Number(0.5))

	root := NewMapping()
	root.Set("stats", inner)
	root.Set("files", Sequence{String("a.log"), String("b.log")})
	root.Set("nothing", Null{})

	data, err := EncodeYAML(root)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, map[string]any{"hits": 3, "mean": 0.5}, decoded["stats"])
	require.Equal(t, []any{"a.log", "b.log"}, decoded["files"])
	require.Nil(t, decoded["nothing"])
}

func TestSetReplacesValueKeepingPosition(t *testing.T) {
	m := NewMapping()
	m.Set("first", Integer(1))
	m.Set("second", Integer(2))
	m.Set("first", Integer(10))

	require.Equal(t, []string{"first", "second"}, m.Keys())
	value, ok := m.Get("first")
	require.True(t, ok)
	require.Equal(t, Integer(10), value)
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yml")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	m := NewMapping()
	m.Set("title", String("Request duration"))
	require.NoError(t, WriteFile(path, m))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	require.Equal(t, "Request duration", decoded["title"])
}

func TestWriteFileSurfacesIOError(t *testing.T) {
	m := NewMapping()
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "export.yml"), m)
	require.Error(t, err)
	require.Contains(t, err.Error(), "write export file")
}
