package registry

import "github.com/bnema/navtree/internal/domain/entity"

// PaneRoleRegistry assigns destinations to pane roles. When a push happens
// inside a PaneNode, the role decides which pane's stack receives the
// destination; an unassigned destination goes to the active pane.
type PaneRoleRegistry interface {
	RoleOf(dest entity.Destination) (entity.PaneRole, bool)
}

// StaticPaneRoleRegistry is a table-driven PaneRoleRegistry keyed by
// destination kind.
type StaticPaneRoleRegistry struct {
	roles map[string]entity.PaneRole
}

// NewStaticPaneRoleRegistry builds a registry from destination kind to role.
func NewStaticPaneRoleRegistry(roles map[string]entity.PaneRole) *StaticPaneRoleRegistry {
	copied := make(map[string]entity.PaneRole, len(roles))
	for kind, role := range roles {
		copied[kind] = role
	}
	return &StaticPaneRoleRegistry{roles: copied}
}

func (r *StaticPaneRoleRegistry) RoleOf(dest entity.Destination) (entity.PaneRole, bool) {
	role, ok := r.roles[dest.Kind]
	return role, ok
}

// NoPaneRoles assigns no destinations to roles.
type NoPaneRoles struct{}

func (NoPaneRoles) RoleOf(entity.Destination) (entity.PaneRole, bool) { return "", false }
