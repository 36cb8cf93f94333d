package sidebar

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/sidenav/sidebars"
)

func loadCore(t *testing.T) *Sidebar {
	t.Helper()
	f, err := Parse(sidebars.Core)
	require.NoError(t, err)
	s, ok := f.Sidebar(sidebars.CoreName)
	require.True(t, ok)
	return s
}

func TestCoreStartsWithIntro(t *testing.T) {
	s := loadCore(t)
	require.NotEmpty(t, s.Items)

	doc, ok := s.Items[0].(*Doc)
	require.True(t, ok, "first item is %T", s.Items[0])
	assert.Equal(t, "docs/intro", doc.ID)
}

func TestCoreTopLevelOrder(t *testing.T) {
	s := loadCore(t)

	var labels []string
	for _, item := range s.Items {
		if c, ok := item.(*Category); ok {
			labels = append(labels, c.Label)
		}
	}
	assert.Equal(t, []string{
		"Getting Started",
		"User Guides",
		"Reference",
		"API documentation",
		"Cheat sheets",
		"Community questions",
		"Need help?",
	}, labels)
}

func TestCorePydocClientLink(t *testing.T) {
	s := loadCore(t)

	var found *Link
	require.NoError(t, Walk(s.Items, func(v Visit) error {
		if l, ok := v.Node.(*Link); ok && l.Label == "Pydoc (client)" {
			found = l
		}
		return nil
	}))
	require.NotNil(t, found)
	assert.Equal(t, "https://deephaven.io/core/client-api/python", found.Href)
}

func TestCoreLinksAreAbsolute(t *testing.T) {
	s := loadCore(t)

	links := 0
	require.NoError(t, Walk(s.Items, func(v Visit) error {
		l, ok := v.Node.(*Link)
		if !ok {
			return nil
		}
		links++
		u, err := url.Parse(l.Href)
		require.NoError(t, err, l.Href)
		assert.True(t, u.IsAbs(), l.Href)
		assert.NotEmpty(t, u.Host, l.Href)
		return nil
	}))
	assert.Equal(t, 10, links)

	r := Validate(s.Items, ValidateOptions{})
	assert.Empty(t, r.Errors())
}

func TestCoreKnownDuplicates(t *testing.T) {
	s := loadCore(t)
	r := Validate(s.Items, ValidateOptions{})

	var dups []string
	for _, w := range r.Warnings() {
		var dup *DuplicateReferenceError
		if assert.ErrorAs(t, w.Err, &dup) {
			dups = append(dups, dup.DocID)
			assert.Equal(t, [][]string{
				{"User Guides", "Table operations", "Group and aggregate"},
				{"User Guides", "Table operations", "Partitioned tables"},
			}, dup.Paths)
		}
	}
	assert.Equal(t, []string{
		"docs/how-to-guides/partition-by",
		"docs/how-to-guides/partition-transform",
	}, dups)

	strict := Validate(s.Items, ValidateOptions{Strict: true, KnownDuplicates: dups})
	assert.NoError(t, strict.Err())
}

func TestCoreCommunityQuestionsHeaderLink(t *testing.T) {
	s := loadCore(t)

	var community *Category
	for _, item := range s.Items {
		if c, ok := item.(*Category); ok && c.Label == "Community questions" {
			community = c
		}
	}
	require.NotNil(t, community)
	assert.Equal(t, KindCategoryWithLink, community.Kind())
	assert.Equal(t, "docs/reference/community-questions/community-questions", community.Link)

	var labels []string
	for _, item := range community.Items {
		labels = append(labels, item.DisplayLabel())
	}
	assert.Equal(t, "General", labels[0])
	assert.Equal(t, "Client APIs", labels[len(labels)-1])
	assert.Len(t, labels, 10)
}

func TestCoreDormantBusinessCalendar(t *testing.T) {
	s := loadCore(t)

	var dormant []string
	require.NoError(t, Walk(s.Items, func(v Visit) error {
		if c, ok := v.Node.(*Category); ok && !c.Enabled() {
			dormant = append(dormant, c.Label)
			assert.Equal(t, []string{"Reference", "Time operations", "calendar"}, v.Path()[len(v.Path())-3:])
		}
		return nil
	}))
	assert.Equal(t, []string{"BusinessCalendar", "BusinessPeriod", "BusinessSchedule"}, dormant)

	paths, err := Breadcrumbs(s.Items, "docs/reference/time/calendar/business-period/length")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCoreRoundTrip(t *testing.T) {
	f, err := Parse(sidebars.Core)
	require.NoError(t, err)

	data, err := Encode(f)
	require.NoError(t, err)
	again, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, f, again)
}

func TestCoreJSONOmitsDormant(t *testing.T) {
	f, err := Parse(sidebars.Core)
	require.NoError(t, err)

	data, err := EncodeJSON(f)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "BusinessCalendar")
	assert.NotContains(t, out, "business-period/length")
	assert.NotContains(t, out, `"enabled"`)
	assert.Contains(t, out, `"docs/intro"`)
}
