package present

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fseq/fseq/internal/sequence"
)

func sampleContent() sequence.FolderContent {
	return sequence.FolderContent{
		Name: "/renders",
		Directories: []sequence.Item{
			{Type: sequence.Single, Filename: "sub"},
		},
		Files: []sequence.Item{
			{Type: sequence.Single, Filename: "readme.md"},
			{Type: sequence.Indiced, Pattern: "v#.png", Indices: []sequence.Index{1, 3, 7}, Padding: 1},
			{Type: sequence.Packed, Pattern: "f###.exr", Start: 1, End: 100, Step: 1, Padding: 3},
			{Type: sequence.Packed, Pattern: "g#.exr", Start: 0, End: 8, Step: 2, Padding: 1},
		},
	}
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleContent()))

	want := strings.Join([]string{
		"* /renders",
		"sub",
		"",
		"readme.md",
		"v#.png (3) 1",
		"f###.exr [1:100] #3",
		"g#.exr [0:8]/2 #1",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestText_Invalid(t *testing.T) {
	var buf bytes.Buffer
	fc := sequence.FolderContent{Name: "x", Files: []sequence.Item{{Type: sequence.Invalid}}}
	require.NoError(t, Text(&buf, fc))
	assert.Contains(t, buf.String(), "Invalid\n")
}

func TestJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleContent()))

	var decoded FolderJSON
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "/renders", decoded.Path)
	require.Len(t, decoded.Directories, 1)
	assert.Equal(t, "single", decoded.Directories[0].Type)
	require.Len(t, decoded.Files, 4)

	indiced := decoded.Files[1]
	assert.Equal(t, "indiced", indiced.Type)
	assert.Equal(t, "v#.png", indiced.Pattern)
	require.NotNil(t, indiced.Padding)
	assert.Equal(t, 1, *indiced.Padding)
	assert.Equal(t, []sequence.Index{1, 3, 7}, indiced.Indices)
	assert.Nil(t, indiced.Start)

	packed := decoded.Files[2]
	assert.Equal(t, "packed", packed.Type)
	require.NotNil(t, packed.Start)
	assert.Equal(t, sequence.Index(1), *packed.Start)
	assert.Equal(t, sequence.Index(100), *packed.End)
	assert.Equal(t, 1, *packed.Step)
}

func TestJSON_MergedPaddingSentinelKept(t *testing.T) {
	fc := sequence.FolderContent{
		Name: "x",
		Files: []sequence.Item{
			{Type: sequence.Indiced, Pattern: "file#.ext", Indices: []sequence.Index{97, 100}, Padding: 0},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, fc))
	assert.Contains(t, buf.String(), `"padding": 0`,
		"the merged sentinel must be visible, not omitted")
}

func TestJSON_EmptySlicesNotNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sequence.FolderContent{Name: "empty"}))
	assert.Contains(t, buf.String(), `"directories": []`)
	assert.Contains(t, buf.String(), `"files": []`)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "single", TypeString(sequence.Single))
	assert.Equal(t, "indiced", TypeString(sequence.Indiced))
	assert.Equal(t, "packed", TypeString(sequence.Packed))
	assert.Equal(t, "invalid", TypeString(sequence.Invalid))
}
