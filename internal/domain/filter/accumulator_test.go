package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_ListFacet(t *testing.T) {
	p := New()

	require.NoError(t, p.Toggle("category-fiction", true))
	require.NoError(t, p.Toggle("category-poetry", true))
	assert.Equal(t, []string{"fiction", "poetry"}, p.List(FacetCategory))

	require.NoError(t, p.Toggle("category-fiction", false))
	assert.Equal(t, []string{"poetry"}, p.List(FacetCategory))

	require.NoError(t, p.Toggle("category-poetry", false))
	assert.False(t, p.Has(FacetCategory))
}

func TestToggle_UncheckAbsentValueIsNoop(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("author-Tolstoy", false))
	assert.Zero(t, p.Len())

	require.NoError(t, p.Toggle("author-Tolstoy", true))
	require.NoError(t, p.Toggle("author-Austen", false))
	assert.Equal(t, []string{"Tolstoy"}, p.List(FacetAuthor))
}

func TestToggle_DuplicateCheck(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("author-Tolstoy", true))
	require.NoError(t, p.Toggle("author-Tolstoy", true))
	assert.Equal(t, []string{"Tolstoy"}, p.List(FacetAuthor))
}

func TestToggle_ValueWithDash(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("author-Jean-Paul Sartre", true))
	assert.Equal(t, []string{"Jean-Paul Sartre"}, p.List(FacetAuthor))
}

func TestToggle_Range(t *testing.T) {
	p := New()

	require.NoError(t, p.Toggle("range-0,20", true))
	lo, _ := p.Scalar(KeyMinPrice)
	hi, _ := p.Scalar(KeyMaxPrice)
	assert.Equal(t, "0", lo)
	assert.Equal(t, "20", hi)
	assert.False(t, p.Has(FacetRange), "range键不应出现在参数中")

	// 后勾选的区间覆盖前一个
	require.NoError(t, p.Toggle("range-50,100", true))
	lo, _ = p.Scalar(KeyMinPrice)
	assert.Equal(t, "50", lo)

	require.NoError(t, p.Toggle("range-0,20", false))
	assert.False(t, p.Has(KeyMinPrice))
	assert.False(t, p.Has(KeyMaxPrice))
	assert.False(t, p.Has(FacetRange))
	assert.Zero(t, p.Len())
}

func TestToggle_RangeKeepsOtherFacets(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("category-fiction", true))
	require.NoError(t, p.Toggle("range-20,50", true))
	require.NoError(t, p.Toggle("range-20,50", false))

	assert.Equal(t, []string{FacetCategory}, p.Keys())
}

func TestToggle_InStock(t *testing.T) {
	p := New()

	require.NoError(t, p.Toggle("inStock-true", true))
	v, ok := p.Scalar(FacetInStock)
	require.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, p.Toggle("inStock-false", true))
	v, _ = p.Scalar(FacetInStock)
	assert.Equal(t, "false", v)

	// 取消的不是当前值，不影响
	require.NoError(t, p.Toggle("inStock-true", false))
	assert.True(t, p.Has(FacetInStock))

	require.NoError(t, p.Toggle("inStock-false", false))
	assert.False(t, p.Has(FacetInStock))
}

func TestToggle_Invalid(t *testing.T) {
	p := New()
	for _, encoded := range []string{"", "category", "-x", "category-", "sortBy-price", "searchTerm-x"} {
		assert.ErrorIs(t, p.Toggle(encoded, true), ErrInvalidFacet, encoded)
	}
	for _, encoded := range []string{"range-abc", "range-10", "range-50,20", "range--5,10"} {
		assert.ErrorIs(t, p.Toggle(encoded, true), ErrInvalidRange, encoded)
	}
	assert.Zero(t, p.Len())
}

func TestSearchAndSort(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("category-fiction", true))

	p.Search("  war and peace ")
	v, _ := p.Scalar(KeySearchTerm)
	assert.Equal(t, "war and peace", v)

	require.NoError(t, p.Sort("h-t-l"))
	by, _ := p.Scalar(KeySortBy)
	order, _ := p.Scalar(KeySortOrder)
	assert.Equal(t, "price", by)
	assert.Equal(t, "desc", order)

	require.NoError(t, p.Sort("l-t-h"))
	order, _ = p.Scalar(KeySortOrder)
	assert.Equal(t, "asc", order)

	assert.ErrorIs(t, p.Sort("newest"), ErrInvalidSort)
	order, _ = p.Scalar(KeySortOrder)
	assert.Equal(t, "asc", order)

	// 搜索和排序不会清掉已勾选的facet
	assert.Equal(t, []string{"fiction"}, p.List(FacetCategory))

	p.Search("   ")
	assert.False(t, p.Has(KeySearchTerm))
}

func TestEncode(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("category-fiction", true))
	require.NoError(t, p.Toggle("category-poetry", true))
	require.NoError(t, p.Toggle("range-0,20", true))
	p.Search("tolstoy")

	assert.Equal(t,
		"category=fiction&category=poetry&maxPrice=20&minPrice=0&searchTerm=tolstoy",
		p.Encode())

	p.Reset()
	assert.Equal(t, "", p.Encode())
}

func TestJSON(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("author-Austen", true))
	require.NoError(t, p.Toggle("inStock-true", true))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"author":["Austen"],"inStock":"true"}`, string(data))

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))
	assert.Equal(t, p.Encode(), restored.Encode())
	assert.Equal(t, []string{"Austen"}, restored.List(FacetAuthor))

	assert.Error(t, json.Unmarshal([]byte(`{"author":[1]}`), New()))
}

func TestClone(t *testing.T) {
	p := New()
	require.NoError(t, p.Toggle("author-Austen", true))

	c := p.Clone()
	require.NoError(t, c.Toggle("author-Tolstoy", true))

	assert.Equal(t, []string{"Austen"}, p.List(FacetAuthor))
	assert.Equal(t, []string{"Austen", "Tolstoy"}, c.List(FacetAuthor))
}
