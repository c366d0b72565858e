package render

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris/catsort/internal/filters"
	"github.com/chris/catsort/internal/logging"
)

const topCategoriesTemplate = `{{range sort_hash_by_value .}}{{.Key}}={{.Size}}
{{end}}`

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewDefaultRenderer(logging.NewDiscard())
	require.NoError(t, err, "failed to build renderer")
	return r
}

// TestNewDefaultRenderer_RegistersFilters tests that the default host knows the filters
func TestNewDefaultRenderer_RegistersFilters(t *testing.T) {
	r := newTestRenderer(t)

	assert.Equal(t, []string{"limit", "sort_hash_by_value"}, r.registry.Names())
}

// TestRender_TopCategories tests a top categories listing
func TestRender_TopCategories(t *testing.T) {
	// Given: a category mapping
	categories := map[string][]string{
		"networking": {"bgp", "evpn", "vxlan"},
		"automation": {"ansible"},
		"linux":      {"netns", "tc"},
	}

	// When: rendering a listing with the filter
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "top", topCategoriesTemplate, categories)

	// Then: categories are listed largest first
	require.NoError(t, err)
	assert.Equal(t, "networking=3\nlinux=2\nautomation=1\n", buf.String())
}

// TestRender_EmptyMapping tests that an empty mapping renders nothing
func TestRender_EmptyMapping(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "top", topCategoriesTemplate, map[string][]string{})

	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

// TestRender_Limit tests the top-N helper in a pipeline
func TestRender_Limit(t *testing.T) {
	categories := map[string][]int{"a": {1}, "b": {1, 2}, "c": {1, 2, 3}, "d": {}}
	body := `{{range sort_hash_by_value . | limit 2}}{{.Key}} {{end}}`

	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "top2", body, categories)

	require.NoError(t, err)
	assert.Equal(t, "c b ", buf.String())
}

// TestRender_LimitNegative tests that a negative limit aborts rendering
func TestRender_LimitNegative(t *testing.T) {
	body := `{{range limit -1 (sort_hash_by_value .)}}{{.Key}}{{end}}`

	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "bad-limit", body, map[string][]int{"a": {1}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative count")
	assert.Empty(t, buf.String())
}

// TestRender_TypeMismatchAborts tests that a malformed mapping aborts the render
func TestRender_TypeMismatchAborts(t *testing.T) {
	// Given: a mapping with a scalar value
	data := map[string]any{"go": []string{"p1"}, "broken": 7}
	body := "header\n" + topCategoriesTemplate

	// When: rendering
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "top", body, data)

	// Then: the error identifies the value and nothing is written
	require.Error(t, err)
	assert.True(t, errors.Is(err, filters.ErrTypeMismatch), "error should wrap the type mismatch: %v", err)
	assert.Contains(t, err.Error(), `"broken"`)
	assert.Contains(t, err.Error(), "top")
	assert.Empty(t, buf.String(), "no partial output")
}

// TestRender_ParseError tests that a malformed template is reported
func TestRender_ParseError(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "broken", "{{range}", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template broken")
}

// TestRender_UnknownFunction tests that unregistered filters are not available
func TestRender_UnknownFunction(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).Render(&buf, "unknown", "{{sort_by_name .}}", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sort_by_name")
}

// TestRenderFile_HTMLEscapes tests that .html templates go through html/template
func TestRenderFile_HTMLEscapes(t *testing.T) {
	// Given: an html template and a category name needing escaping
	path := filepath.Join(t.TempDir(), "top.html")
	body := `<ul>{{range sort_hash_by_value .}}<li>{{.Key}} ({{.Size}})</li>{{end}}</ul>`
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	data := map[string][]int{"<script>": {1, 2}, "go": {1}}

	// When: rendering the file
	var buf bytes.Buffer
	err := newTestRenderer(t).RenderFile(&buf, path, data)

	// Then: keys are escaped and order is preserved
	require.NoError(t, err)
	assert.Equal(t, "<ul><li>&lt;script&gt; (2)</li><li>go (1)</li></ul>", buf.String())
}

// TestRenderFile_Text tests that other extensions render as plain text
func TestRenderFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.md")
	require.NoError(t, os.WriteFile(path, []byte(`{{range sort_hash_by_value .}}- {{.Key}}{{end}}`), 0644))

	var buf bytes.Buffer
	err := newTestRenderer(t).RenderFile(&buf, path, map[string][]int{"<b>": {1}})

	require.NoError(t, err)
	assert.Equal(t, "- <b>", buf.String())
}

// TestRenderFile_Missing tests that a missing template file is reported
func TestRenderFile_Missing(t *testing.T) {
	var buf bytes.Buffer
	err := newTestRenderer(t).RenderFile(&buf, filepath.Join(t.TempDir(), "nope.tmpl"), nil)

	require.Error(t, err)
	assert.True(t, os.IsNotExist(errors.Unwrap(err)), "should wrap the not-exist error: %v", err)
}
