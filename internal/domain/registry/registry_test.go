package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/navtree/internal/domain/entity"
)

func TestStaticScopeRegistry(t *testing.T) {
	scopes := NewStaticScopeRegistry(map[string][]string{
		"MainTabs":    {"home.root", "search.root"},
		"ProductFlow": {"product.detail"},
	})

	home := entity.Destination{Kind: "home.root"}
	product := entity.Destination{Kind: "product.detail"}

	assert.True(t, scopes.IsInScope("MainTabs", home))
	assert.False(t, scopes.IsInScope("MainTabs", product))
	assert.False(t, scopes.IsInScope("Unknown", home))

	scope, ok := scopes.ScopeKeyOf(product)
	require.True(t, ok)
	assert.Equal(t, "ProductFlow", scope)

	_, ok = scopes.ScopeKeyOf(entity.Destination{Kind: "nowhere"})
	assert.False(t, ok)
}

func TestPermissiveScopeRegistry(t *testing.T) {
	scopes := PermissiveScopeRegistry{}
	assert.True(t, scopes.IsInScope("anything", entity.Destination{Kind: "whatever"}))
}

func TestDeepLinkRegistry(t *testing.T) {
	links := NewDeepLinkRegistry()
	require.NoError(t, links.Register("app://products/{id}", func(args map[string]string) entity.Destination {
		return entity.Destination{Kind: "product.detail", Route: "products/{id}", Args: args}
	}))
	require.NoError(t, links.Register("app://home", func(map[string]string) entity.Destination {
		return entity.Destination{Kind: "home.root", Route: "home"}
	}))

	t.Run("placeholder capture", func(t *testing.T) {
		dest, ok := links.Resolve("app://products/42")
		require.True(t, ok)
		assert.Equal(t, "product.detail", dest.Kind)
		assert.Equal(t, "42", dest.Args["id"])
	})

	t.Run("literal match", func(t *testing.T) {
		dest, ok := links.Resolve("app://home")
		require.True(t, ok)
		assert.Equal(t, "home.root", dest.Kind)
	})

	t.Run("segment count mismatch", func(t *testing.T) {
		_, ok := links.Resolve("app://products/42/reviews")
		assert.False(t, ok)
	})

	t.Run("scheme mismatch", func(t *testing.T) {
		_, ok := links.Resolve("web://products/42")
		assert.False(t, ok)
	})

	t.Run("unparseable uri", func(t *testing.T) {
		_, ok := links.Resolve("not-a-uri")
		assert.False(t, ok)
	})

	t.Run("first registration wins", func(t *testing.T) {
		require.NoError(t, links.Register("app://products/{slug}", func(args map[string]string) entity.Destination {
			return entity.Destination{Kind: "product.other", Args: args}
		}))
		dest, ok := links.Resolve("app://products/42")
		require.True(t, ok)
		assert.Equal(t, "product.detail", dest.Kind)
	})

	t.Run("bad pattern", func(t *testing.T) {
		err := links.Register("no-scheme", func(map[string]string) entity.Destination {
			return entity.Destination{}
		})
		assert.ErrorIs(t, err, ErrBadPattern)
	})
}

func TestBackHandlerRegistryTopmostFirst(t *testing.T) {
	handlers := NewBackHandlerRegistry()

	var order []string
	removeFirst := handlers.Register(func() bool {
		order = append(order, "first")
		return false
	})
	handlers.Register(func() bool {
		order = append(order, "second")
		return true
	})

	assert.True(t, handlers.Handle())
	assert.Equal(t, []string{"second"}, order, "topmost handler short-circuits")

	order = nil
	removeFirst()
	removeFirst() // idempotent
	assert.Equal(t, 1, handlers.Len())

	handlers2 := NewBackHandlerRegistry()
	consumed := handlers2.Handle()
	assert.False(t, consumed, "no handlers, nothing consumed")
}

func TestStaticContainerAndPaneRoleRegistries(t *testing.T) {
	containers := NewStaticContainerRegistry(map[string]ContainerInfo{
		"product.flow": {ScopeKey: "ProductFlow", Build: func(key, parent entity.NodeKey, _ func() entity.NodeKey) entity.NavNode {
			return &entity.StackNode{NodeKey: key, Parent: parent}
		}},
	})

	info, ok := containers.ContainerInfoOf(entity.Destination{Kind: "product.flow"})
	require.True(t, ok)
	assert.Equal(t, "ProductFlow", info.ScopeKey)

	_, ok = containers.ContainerInfoOf(entity.Destination{Kind: "home.root"})
	assert.False(t, ok)

	roles := NewStaticPaneRoleRegistry(map[string]entity.PaneRole{
		"product.guide": entity.RoleSupporting,
	})
	role, ok := roles.RoleOf(entity.Destination{Kind: "product.guide"})
	require.True(t, ok)
	assert.Equal(t, entity.RoleSupporting, role)
	_, ok = roles.RoleOf(entity.Destination{Kind: "home.root"})
	assert.False(t, ok)
}
