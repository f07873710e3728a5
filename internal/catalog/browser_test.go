package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{ err error }

func (f failingSource) ListProducts(context.Context) ([]Product, error) { return nil, f.err }
func (f failingSource) GetProductBySlug(context.Context, string) (Product, error) {
	return Product{}, f.err
}
func (f failingSource) ListFeaturedProducts(context.Context, int) ([]Product, error) {
	return nil, f.err
}

func TestNewBrowserRequiresSource(t *testing.T) {
	_, err := NewBrowser(nil)
	require.Error(t, err)
}

func TestBrowserShop(t *testing.T) {
	ctx := context.Background()
	b, err := NewBrowser(NewStaticSource(SampleProducts()))
	require.NoError(t, err)

	spec := DefaultFilterSpec()
	spec.Category = "bottoms"
	spec.Sort = enums.SortPriceLowHigh
	res, err := b.Shop(ctx, spec, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"8", "2"}, ids(res.Page.Products))
	assert.Equal(t, 3, res.Page.Total)
	assert.Len(t, res.Facets.Categories, 4)
}

func TestBrowserProductNotFoundIsAbsent(t *testing.T) {
	ctx := context.Background()
	b, _ := NewBrowser(NewStaticSource(SampleProducts()))

	p, ok, err := b.Product(ctx, "cargo-joggers")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", p.ID)

	_, ok, err = b.Product(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBrowserPropagatesRemoteFailure(t *testing.T) {
	ctx := context.Background()
	boom := pkgerrors.Wrap(pkgerrors.CodeDependency, errors.New("timeout"), "list products")
	b, _ := NewBrowser(failingSource{err: boom})

	_, err := b.Shop(ctx, DefaultFilterSpec(), 1, 12)
	assert.True(t, pkgerrors.IsRemoteFailure(err))
	_, _, err = b.Product(ctx, "x")
	assert.True(t, pkgerrors.IsRemoteFailure(err))
}

func TestBrowserFeaturedAndRelated(t *testing.T) {
	ctx := context.Background()
	b, _ := NewBrowser(NewStaticSource(SampleProducts()))

	featured, err := b.Featured(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, ids(featured))

	jeans := SampleProducts()[4]
	related, err := b.Related(ctx, jeans, 4)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"2", "8"}, ids(related))
}
