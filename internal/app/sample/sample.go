// Package sample wires a complete navigator for the demo TUI, the replay
// command and the integration tests: a three-tab main container, a product
// flow container destination and a deep-link table. In a real host these
// tables come out of the code generator; here they are maintained by hand.
package sample

import (
	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/registry"
)

// Destination kinds.
const (
	KindHomeRoot      = "home.root"
	KindHomeDetail    = "home.detail"
	KindSearchRoot    = "search.root"
	KindProfileRoot   = "profile.root"
	KindSettings      = "settings"
	KindProductDetail = "product.detail"
	KindProductGuide  = "product.guide"
)

// Scope keys.
const (
	ScopeMainTabs    = "MainTabs"
	ScopeProductFlow = "ProductFlow"
)

// HomeRoot and friends build the demo destinations.
func HomeRoot() entity.Destination {
	return entity.Destination{Kind: KindHomeRoot, Route: "home"}
}

func HomeDetail(id string) entity.Destination {
	return entity.Destination{Kind: KindHomeDetail, Route: "home/{id}", Args: map[string]string{"id": id}}
}

func SearchRoot() entity.Destination {
	return entity.Destination{Kind: KindSearchRoot, Route: "search"}
}

func ProfileRoot() entity.Destination {
	return entity.Destination{Kind: KindProfileRoot, Route: "profile"}
}

func Settings() entity.Destination {
	return entity.Destination{Kind: KindSettings, Route: "settings"}
}

func ProductDetail(id string) entity.Destination {
	return entity.Destination{Kind: KindProductDetail, Route: "products/{id}", Args: map[string]string{"id": id}}
}

func ProductGuide(id string) entity.Destination {
	return entity.Destination{Kind: KindProductGuide, Route: "products/{id}/guide", Args: map[string]string{"id": id}}
}

// Scopes returns the scope membership table.
func Scopes() *registry.StaticScopeRegistry {
	return registry.NewStaticScopeRegistry(map[string][]string{
		ScopeMainTabs: {
			KindHomeRoot, KindHomeDetail, KindSearchRoot, KindProfileRoot, KindSettings,
		},
		ScopeProductFlow: {
			KindProductDetail, KindProductGuide,
		},
	})
}

// Containers returns the container declarations. The product detail
// destination is a container destination: navigated from outside the
// product flow, it materialises the flow container (a single-tab container
// seeded with the featured product screen) as a sibling of whatever
// container is currently active; navigated from inside, it pushes a plain
// screen.
func Containers() *registry.StaticContainerRegistry {
	return registry.NewStaticContainerRegistry(map[string]registry.ContainerInfo{
		KindProductDetail: {
			ScopeKey: ScopeProductFlow,
			Build:    buildProductFlow,
		},
	})
}

func buildProductFlow(key, parent entity.NodeKey, generateKey func() entity.NodeKey) entity.NavNode {
	stackKey := generateKey()
	screen := &entity.ScreenNode{
		NodeKey:     generateKey(),
		Parent:      stackKey,
		Destination: ProductDetail("featured"),
	}
	return &entity.TabNode{
		NodeKey: key,
		Parent:  parent,
		Stacks: []*entity.StackNode{{
			NodeKey:  stackKey,
			Parent:   key,
			Children: []entity.NavNode{screen},
		}},
		Items:             []entity.TabItem{{Label: "Products", Route: "products"}},
		ScopeKey:          ScopeProductFlow,
		WrapperKey:        "product-flow",
		ActiveStackIndex:  0,
		InitialStackIndex: 0,
	}
}

// DeepLinks returns the generated-style deep-link table.
func DeepLinks() *registry.DeepLinkRegistry {
	links := registry.NewDeepLinkRegistry()
	_ = links.Register("app://home", func(map[string]string) entity.Destination {
		return HomeRoot()
	})
	_ = links.Register("app://home/{id}", func(args map[string]string) entity.Destination {
		return HomeDetail(args["id"])
	})
	_ = links.Register("app://products/{id}", func(args map[string]string) entity.Destination {
		return ProductDetail(args["id"])
	})
	_ = links.Register("app://settings", func(map[string]string) entity.Destination {
		return Settings()
	})
	return links
}

// InitialTree builds the canonical starting tree: a root stack holding the
// main tab container with Home, Search and Profile tabs, one single-screen
// stack each.
func InitialTree(generateKey func() entity.NodeKey) entity.NavNode {
	rootKey := generateKey()
	tabKey := generateKey()

	tabs := []entity.Destination{HomeRoot(), SearchRoot(), ProfileRoot()}
	items := []entity.TabItem{
		{Label: "Home", Icon: "house", Route: "home"},
		{Label: "Search", Icon: "magnifier", Route: "search"},
		{Label: "Profile", Icon: "person", Route: "profile"},
	}

	stacks := make([]*entity.StackNode, len(tabs))
	for i, dest := range tabs {
		stackKey := generateKey()
		stacks[i] = &entity.StackNode{
			NodeKey: stackKey,
			Parent:  tabKey,
			Children: []entity.NavNode{&entity.ScreenNode{
				NodeKey:     generateKey(),
				Parent:      stackKey,
				Destination: dest,
			}},
		}
	}

	tab := &entity.TabNode{
		NodeKey:           tabKey,
		Parent:            rootKey,
		Stacks:            stacks,
		Items:             items,
		ScopeKey:          ScopeMainTabs,
		WrapperKey:        "main-tabs",
		ActiveStackIndex:  0,
		InitialStackIndex: 0,
	}

	return &entity.StackNode{
		NodeKey:  rootKey,
		Children: []entity.NavNode{tab},
	}
}
