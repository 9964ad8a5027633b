package core

import "virsat-catia/internal/types"

// DeepChildren returns all descendants of root in depth-first pre-order.
// The root itself is not included.
func DeepChildren(root *types.StructuralElement) []*types.StructuralElement {
	if root == nil {
		return nil
	}
	var out []*types.StructuralElement
	var walk func(element *types.StructuralElement)
	walk = func(element *types.StructuralElement) {
		for _, child := range element.Children {
			if child == nil {
				continue
			}
			out = append(out, child)
			walk(child)
		}
	}
	walk(root)
	return out
}

// AllSupers resolves the transitive super elements of element, nearest
// first. References that do not resolve are skipped and cycles are cut.
func AllSupers(repo *types.Repository, element *types.StructuralElement) []*types.StructuralElement {
	if repo == nil || element == nil {
		return nil
	}
	visited := map[string]struct{}{element.UUID: {}}
	var out []*types.StructuralElement
	queue := append([]string(nil), element.SuperUUIDs...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, seen := visited[id]; seen {
			continue
		}
		visited[id] = struct{}{}
		super, ok := repo.Lookup(id)
		if !ok {
			continue
		}
		out = append(out, super)
		queue = append(queue, super.SuperUUIDs...)
	}
	return out
}

// DirectSupers resolves only the immediate super references of element.
func DirectSupers(repo *types.Repository, element *types.StructuralElement) []*types.StructuralElement {
	var out []*types.StructuralElement
	for _, id := range element.SuperUUIDs {
		if super, ok := repo.Lookup(id); ok {
			out = append(out, super)
		}
	}
	return out
}

// FindElement looks up a uuid below root, including root.
func FindElement(root *types.StructuralElement, uuid string) (*types.StructuralElement, bool) {
	if root == nil {
		return nil, false
	}
	if root.UUID == uuid {
		return root, true
	}
	for _, element := range DeepChildren(root) {
		if element.UUID == uuid {
			return element, true
		}
	}
	return nil, false
}
