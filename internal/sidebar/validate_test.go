package sidebar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docSet is a Resolver backed by a set of ids.
type docSet map[string]bool

func (s docSet) Has(id string) bool { return s[id] }

func codes(findings []Finding) []string {
	var out []string
	for _, f := range findings {
		out = append(out, f.Code())
	}
	return out
}

func TestValidateClean(t *testing.T) {
	items := []Node{
		&Doc{ID: "docs/a"},
		&Category{Label: "Cat", Link: "docs/index", Items: []Node{&Doc{ID: "docs/b"}}},
		&Link{Label: "Home", Href: "https://deephaven.io"},
	}
	r := Validate(items, ValidateOptions{Resolver: docSet{"docs/a": true, "docs/b": true, "docs/index": true}})
	assert.Empty(t, r.Findings)
	assert.NoError(t, r.Err())
	assert.Equal(t, 3, r.Counts.Docs+r.Counts.Links)
}

func TestValidateUnresolved(t *testing.T) {
	items := []Node{
		&Category{Label: "Guides", Items: []Node{&Doc{ID: "docs/missing"}}},
		&Category{Label: "Linked", Link: "docs/no-header", Items: []Node{&Doc{ID: "docs/a"}}},
	}
	r := Validate(items, ValidateOptions{Resolver: docSet{"docs/a": true}})
	require.Len(t, r.Errors(), 2)

	var unresolved *UnresolvedReferenceError
	require.ErrorAs(t, r.Err(), &unresolved)
	assert.Equal(t, "docs/missing", unresolved.DocID)
	assert.Equal(t, []string{"Guides"}, unresolved.Path)
	assert.Equal(t, []string{"unresolved-reference", "unresolved-reference"}, codes(r.Errors()))
}

func TestValidateSkipsResolutionWithoutResolver(t *testing.T) {
	r := Validate([]Node{&Doc{ID: "docs/anything"}}, ValidateOptions{})
	assert.Empty(t, r.Findings)
}

func TestValidateDormantReferences(t *testing.T) {
	items := []Node{
		&Category{Label: "Later", Disabled: true, Items: []Node{&Doc{ID: "docs/not-written"}}},
	}
	r := Validate(items, ValidateOptions{Resolver: docSet{}})
	assert.Empty(t, r.Errors())

	r = Validate(items, ValidateOptions{Resolver: docSet{}, CheckDormant: true})
	assert.Len(t, r.Errors(), 1)
}

func TestValidateLinks(t *testing.T) {
	tests := []struct {
		href  string
		valid bool
	}{
		{"https://deephaven.io/core/client-api/python", true},
		{"http://example.com", true},
		{"HTTPS://EXAMPLE.COM/x", true},
		{"/docs/relative", false},
		{"deephaven.io/slack", false},
		{"ftp://files.example.com", false},
		{"https://", false},
		{"https://exa mple.com", false},
		{" https://example.com", false},
		{"mailto:team@example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			r := Validate([]Node{&Link{Label: "L", Href: tt.href}}, ValidateOptions{})
			if tt.valid {
				assert.Empty(t, r.Findings)
				return
			}
			require.Len(t, r.Errors(), 1)
			var invalid *InvalidLinkError
			require.ErrorAs(t, r.Err(), &invalid)
			assert.Equal(t, tt.href, invalid.Href)
			assert.NotEmpty(t, invalid.Reason)
		})
	}
}

func TestValidateAllowedSchemes(t *testing.T) {
	items := []Node{&Link{Label: "Mail", Href: "mailto:team@example.com"}}
	r := Validate(items, ValidateOptions{AllowedSchemes: []string{"https", "mailto"}})
	assert.Empty(t, r.Findings)
}

func TestValidateDuplicates(t *testing.T) {
	items := []Node{
		&Category{Label: "Group and aggregate", Items: []Node{&Doc{ID: "docs/partition-by"}}},
		&Category{Label: "Partitioned tables", Items: []Node{&Doc{ID: "docs/partition-by"}}},
		&Category{Label: "Other", Items: []Node{&Doc{ID: "docs/x"}, &Doc{ID: "docs/x"}}},
	}

	r := Validate(items, ValidateOptions{})
	assert.Empty(t, r.Errors())
	require.Len(t, r.Warnings(), 2)

	var dup *DuplicateReferenceError
	require.ErrorAs(t, r.Warnings()[0].Err, &dup)
	assert.Equal(t, "docs/partition-by", dup.DocID)
	assert.Equal(t, [][]string{{"Group and aggregate"}, {"Partitioned tables"}}, dup.Paths)

	strict := Validate(items, ValidateOptions{Strict: true, KnownDuplicates: []string{"docs/partition-by"}})
	require.Len(t, strict.Errors(), 1)
	require.Len(t, strict.Warnings(), 1)
	assert.Contains(t, strict.Errors()[0].Err.Error(), "docs/x")
}

func TestValidateDormantDuplicatesIgnored(t *testing.T) {
	items := []Node{
		&Doc{ID: "docs/a"},
		&Doc{ID: "docs/a", Disabled: true},
	}
	r := Validate(items, ValidateOptions{})
	assert.Empty(t, r.Findings)
}

func TestValidateEmptyCategory(t *testing.T) {
	items := []Node{
		&Category{Label: "Empty", Items: []Node{}},
		&Category{Label: "AllDormant", Items: []Node{&Doc{ID: "docs/a", Disabled: true}}},
		&Category{Label: "HeaderOnly", Link: "docs/h", Items: []Node{}},
	}
	r := Validate(items, ValidateOptions{})
	assert.Equal(t, []string{"empty-category", "empty-category"}, codes(r.Warnings()))
}

func TestValidateCycle(t *testing.T) {
	loop := &Category{Label: "Loop"}
	loop.Items = []Node{loop}

	r := Validate([]Node{loop}, ValidateOptions{})
	require.Len(t, r.Errors(), 1)
	assert.Equal(t, "cycle", r.Errors()[0].Code())
}

func TestFindingString(t *testing.T) {
	f := Finding{Severity: SeverityWarning, Err: &EmptyCategoryError{Label: "X", Path: nil}}
	assert.Equal(t, `warning [empty-category] category "X" in <root> has no active items`, f.String())
}
