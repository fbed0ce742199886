package registry

import "github.com/bnema/navtree/internal/domain/entity"

// ContainerFactory builds the container node for a destination that declares
// itself a container. The factory receives the fresh node key, the parent
// stack's key, and an ID generator for the container's inner nodes.
type ContainerFactory func(key, parent entity.NodeKey, generateKey func() entity.NodeKey) entity.NavNode

// ContainerInfo describes a destination that materialises as a container
// (TabNode or PaneNode) rather than a plain screen.
type ContainerInfo struct {
	// ScopeKey is the destination set the container will host.
	ScopeKey string
	// Build constructs the container node.
	Build ContainerFactory
}

// ContainerRegistry maps destinations to their container declarations.
type ContainerRegistry interface {
	// ContainerInfoOf returns the container declaration for a
	// destination, if it has one.
	ContainerInfoOf(dest entity.Destination) (ContainerInfo, bool)
}

// StaticContainerRegistry is a table-driven ContainerRegistry keyed by
// destination kind.
type StaticContainerRegistry struct {
	containers map[string]ContainerInfo
}

// NewStaticContainerRegistry builds a registry from destination kind to
// container info.
func NewStaticContainerRegistry(containers map[string]ContainerInfo) *StaticContainerRegistry {
	copied := make(map[string]ContainerInfo, len(containers))
	for kind, info := range containers {
		copied[kind] = info
	}
	return &StaticContainerRegistry{containers: copied}
}

func (r *StaticContainerRegistry) ContainerInfoOf(dest entity.Destination) (ContainerInfo, bool) {
	info, ok := r.containers[dest.Kind]
	return info, ok
}

// NoContainers is a ContainerRegistry with no container destinations.
type NoContainers struct{}

func (NoContainers) ContainerInfoOf(entity.Destination) (ContainerInfo, bool) {
	return ContainerInfo{}, false
}
