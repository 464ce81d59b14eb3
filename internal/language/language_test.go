package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hinterrors "xqhint/internal/errors"
)

func TestXQuery(t *testing.T) {
	d := XQuery()

	assert.Equal(t, "xquery", d.ID)
	assert.Equal(t, "XQuery", d.Name)
	assert.Equal(t, "xquery", d.Mode)
	assert.Equal(t, []string{"xqy"}, d.FileExtensions)
	assert.Equal(t, []string{"(:", ":)"}, d.LineComment)
	assert.Equal(t, BlockComment{Prefix: "(:", Suffix: ":)"}, d.BlockComment)
}

func TestBuiltinReturnsCopies(t *testing.T) {
	d := XQuery()
	d.FileExtensions[0] = "mutated"

	assert.Equal(t, []string{"xqy"}, XQuery().FileExtensions)
}

func TestParse(t *testing.T) {
	defs, err := Parse([]byte(`
[[language]]
id = "xq"
name = "XQ"
file_extensions = ["xq", "xql"]
`))
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, []string{"xq", "xql"}, defs[0].FileExtensions)

	_, err = Parse([]byte(`[[language]]
name = "anonymous"`))
	assert.Error(t, err)

	_, err = Parse([]byte(`[[language`))
	assert.Error(t, err)
}

func TestDefinition_HasExtension(t *testing.T) {
	d := XQuery()
	assert.True(t, d.HasExtension("xqy"))
	assert.True(t, d.HasExtension(".XQY"))
	assert.False(t, d.HasExtension("xq"))
	assert.False(t, d.HasExtension(""))
}

func TestRegistry_DefineIsIdempotent(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.DefineLanguage(XQuery()))
	require.NoError(t, r.DefineLanguage(XQuery()))
	assert.Len(t, r.All(), 1)

	changed := XQuery()
	changed.Name = "Other"
	err := r.DefineLanguage(changed)
	require.Error(t, err)
	assert.True(t, hinterrors.Is(err, hinterrors.LanguageConflict))

	got, ok := r.Language("xquery")
	require.True(t, ok)
	assert.Equal(t, "XQuery", got.Name)
}

func TestRegistry_RejectsMissingID(t *testing.T) {
	err := NewRegistry().DefineLanguage(Definition{Name: "nameless"})
	assert.True(t, hinterrors.Is(err, hinterrors.LanguageConflict))
}

func TestRegistry_ForExtension(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.DefineLanguage(XQuery()))
	require.NoError(t, r.DefineLanguage(Definition{ID: "xml", Name: "XML", FileExtensions: []string{"xml"}}))

	d, ok := r.ForExtension("XQY")
	require.True(t, ok)
	assert.Equal(t, "xquery", d.ID)

	_, ok = r.ForExtension("go")
	assert.False(t, ok)

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "xml", all[0].ID)
	assert.Equal(t, "xquery", all[1].ID)
}
