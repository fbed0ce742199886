package service

import (
	"fmt"

	"github.com/bnema/navtree/internal/domain/entity"
	"github.com/bnema/navtree/internal/domain/registry"
)

// Shared fixtures for the mutator, resolver and diff tests.

func newKeyGen() func() entity.NodeKey {
	n := 0
	return func() entity.NodeKey {
		n++
		return entity.NodeKey(fmt.Sprintf("k%d", n))
	}
}

var (
	destHome    = entity.Destination{Kind: "home.root", Route: "home"}
	destDetail  = entity.Destination{Kind: "home.detail", Route: "home/{id}"}
	destSearch  = entity.Destination{Kind: "search.root", Route: "search"}
	destProfile = entity.Destination{Kind: "profile.root", Route: "profile"}
	destProduct = entity.Destination{Kind: "product.detail", Route: "products/{id}"}
	destGuide   = entity.Destination{Kind: "product.guide", Route: "guide"}
)

func mainScopes() *registry.StaticScopeRegistry {
	return registry.NewStaticScopeRegistry(map[string][]string{
		"MainTabs": {destHome.Kind, destDetail.Kind, destSearch.Kind, destProfile.Kind},
	})
}

func newTestMutator() *Mutator {
	return NewMutator(mainScopes(), registry.NoPaneRoles{}, newKeyGen())
}

// mainTabsTree builds the root stack holding a three-tab container with one
// single-screen stack each, active tab 0.
func mainTabsTree() *entity.StackNode {
	tabs := []struct {
		name string
		dest entity.Destination
	}{
		{"home", destHome},
		{"search", destSearch},
		{"profile", destProfile},
	}

	stacks := make([]*entity.StackNode, len(tabs))
	for i, tab := range tabs {
		stackKey := entity.NodeKey("st-" + tab.name)
		stacks[i] = &entity.StackNode{
			NodeKey: stackKey,
			Parent:  "tabs",
			Children: []entity.NavNode{&entity.ScreenNode{
				NodeKey:     entity.NodeKey("sc-" + tab.name),
				Parent:      stackKey,
				Destination: tab.dest,
			}},
		}
	}

	tab := &entity.TabNode{
		NodeKey:  "tabs",
		Parent:   "root",
		Stacks:   stacks,
		ScopeKey: "MainTabs",
		Items: []entity.TabItem{
			{Label: "Home", Route: "home"},
			{Label: "Search", Route: "search"},
			{Label: "Profile", Route: "profile"},
		},
	}

	return &entity.StackNode{
		NodeKey:  "root",
		Children: []entity.NavNode{tab},
	}
}

// paneTree builds a root stack holding a two-pane container: primary with a
// two-screen stack, supporting with one screen.
func paneTree(behavior entity.PaneBackBehavior) *entity.StackNode {
	primary := &entity.StackNode{
		NodeKey: "pst-primary",
		Parent:  "pane",
		Children: []entity.NavNode{
			&entity.ScreenNode{NodeKey: "psc-list", Parent: "pst-primary", Destination: destProduct},
			&entity.ScreenNode{NodeKey: "psc-detail", Parent: "pst-primary", Destination: destGuide},
		},
	}
	supporting := &entity.StackNode{
		NodeKey: "pst-supporting",
		Parent:  "pane",
		Children: []entity.NavNode{
			&entity.ScreenNode{NodeKey: "psc-side", Parent: "pst-supporting", Destination: destGuide},
		},
	}
	pane := &entity.PaneNode{
		NodeKey: "pane",
		Parent:  "root",
		Configurations: map[entity.PaneRole]entity.PaneConfiguration{
			entity.RolePrimary:    {Content: primary},
			entity.RoleSupporting: {Content: supporting},
		},
		ActiveRole:   entity.RolePrimary,
		BackBehavior: behavior,
	}
	return &entity.StackNode{
		NodeKey:  "root",
		Children: []entity.NavNode{pane},
	}
}
