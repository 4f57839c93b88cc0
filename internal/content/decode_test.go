package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestDecodeItems_Array(t *testing.T) {
	data := []byte(`[
		{"title": "LangGraph 1.0", "summary": "Stable release", "source": "https://example.com/lg", "category": "Framework", "published_date": "2025-05-20"},
		{"title": "Agents 101", "summary": "A tutorial", "source": "https://example.com/t", "category": "tutorials"},
		{"title": "", "summary": "dropped", "category": "news"}
	]`)

	items, err := DecodeItems(data, fixedNow)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "LangGraph 1.0", items[0].Title)
	assert.Equal(t, CategoryFramework, items[0].Category)
	assert.Equal(t, time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), items[0].PublishedAt)

	assert.Equal(t, CategoryTutorial, items[1].Category)
	assert.Equal(t, fixedNow.Add(-DefaultAge), items[1].PublishedAt, "missing date defaults to 30 days ago")
}

func TestDecodeItems_WrappedObject(t *testing.T) {
	data := []byte(`{"items": [{"title": "Tool X", "category": "gadget"}]}`)

	items, err := DecodeItems(data, fixedNow)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, CategoryNews, items[0].Category, "unknown categories fall back to news")
}

func TestDecodeItems_Malformed(t *testing.T) {
	_, err := DecodeItems([]byte(`not json`), fixedNow)
	require.Error(t, err)

	_, err = DecodeItems(nil, fixedNow)
	require.Error(t, err)
}

func TestDecodeResearchItems_ForcesPaperCategory(t *testing.T) {
	data := []byte(`[{"title": "Reflexion", "summary": "s", "source": "https://arxiv.org/abs/1", "category": "Arxiv Paper", "findings": "agents improve", "published_date": "2025-04-01T08:00:00Z"}]`)

	papers, err := DecodeResearchItems(data, fixedNow)
	require.NoError(t, err)
	require.Len(t, papers, 1)
	assert.Equal(t, CategoryPaper, papers[0].Category)
	assert.Equal(t, "agents improve", papers[0].Findings)
	assert.Equal(t, 2025, papers[0].PublishedAt.Year())
}

func TestDecodeHeader(t *testing.T) {
	h, err := DecodeHeader([]byte(`{"title": "Agents Everywhere", "headlines": "Big week"}`))
	require.NoError(t, err)
	assert.Equal(t, Header{Title: "Agents Everywhere", Headline: "Big week"}, h)

	h, err = DecodeHeader([]byte(`{"title": "T", "headline": "alias"}`))
	require.NoError(t, err)
	assert.Equal(t, "alias", h.Headline)

	_, err = DecodeHeader([]byte(`{"headlines": "no title"}`))
	require.Error(t, err)
}

func TestCategory(t *testing.T) {
	assert.True(t, CategoryTool.Valid())
	assert.False(t, Category("blog").Valid())
	assert.Equal(t, "Framework", CategoryFramework.Title())
	assert.Equal(t, "", Category("").Title())
}

func TestContentItem_Validate(t *testing.T) {
	err := ContentItem{Title: "x", Category: "blog"}.Validate()
	require.ErrorIs(t, err, ErrInvalidItem)

	require.NoError(t, ContentItem{Title: "x", Category: CategoryNews}.Validate())
}
