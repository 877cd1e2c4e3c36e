package permission

import (
	"encoding/json"
	"fmt"
)

// MaxTreeDepth bounds how many levels BuildTree descends.
const MaxTreeDepth = 16

type TreeNode struct {
	ID       string
	Name     string
	Code     string
	ParentID *string
	Type     Type
	Endpoint *string
	Method   *string
	Submenus []*TreeNode
}

// MarshalJSON always emits submenus for menu nodes and never for other nodes.
func (n *TreeNode) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       string       `json:"id"`
		Name     string       `json:"name"`
		Code     string       `json:"code"`
		ParentID *string      `json:"parent_id"`
		Type     Type         `json:"type"`
		Endpoint *string      `json:"endpoint,omitempty"`
		Method   *string      `json:"method,omitempty"`
		Submenus *[]*TreeNode `json:"submenus,omitempty"`
	}{
		ID:       n.ID,
		Name:     n.Name,
		Code:     n.Code,
		ParentID: n.ParentID,
		Type:     n.Type,
		Endpoint: n.Endpoint,
		Method:   n.Method,
	}
	if n.Type == TypeMenu {
		submenus := n.Submenus
		if submenus == nil {
			submenus = []*TreeNode{}
		}
		out.Submenus = &submenus
	}
	return json.Marshal(out)
}

func newTreeNode(p Permission) *TreeNode {
	return &TreeNode{
		ID:       p.ID,
		Name:     p.Name,
		Code:     p.Code,
		ParentID: p.ParentID,
		Type:     p.Type,
		Endpoint: p.Endpoint,
		Method:   p.Method,
	}
}

func isRoot(p Permission) bool {
	return p.ParentID == nil || *p.ParentID == ""
}

// BuildTree nests a flat permission list under its menus.
//
// Sibling order follows the input order. A node whose parent is not part of
// the input is dropped together with its subtree. Children of non-menu nodes
// are not attached. Duplicate ids and parent cycles fail with
// ErrPermissionCycle; trees deeper than MaxTreeDepth fail with
// ErrPermissionTreeTooDeep.
func BuildTree(perms []Permission) ([]*TreeNode, error) {
	index := make(map[string]int, len(perms))
	for i, p := range perms {
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrPermissionCycle, p.ID)
		}
		index[p.ID] = i
	}

	// parent position per node, -1 for roots and dangling nodes
	parent := make([]int, len(perms))
	children := make(map[int][]int)
	var roots []int
	for i, p := range perms {
		parent[i] = -1
		if isRoot(p) {
			roots = append(roots, i)
			continue
		}
		j, ok := index[*p.ParentID]
		if !ok {
			continue
		}
		parent[i] = j
		children[j] = append(children[j], i)
	}

	if err := detectCycle(perms, parent); err != nil {
		return nil, err
	}

	type frame struct {
		node  *TreeNode
		idx   int
		depth int
	}

	tree := make([]*TreeNode, 0, len(roots))
	stack := make([]frame, 0, len(roots))
	for _, r := range roots {
		n := newTreeNode(perms[r])
		tree = append(tree, n)
		stack = append(stack, frame{node: n, idx: r, depth: 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth > MaxTreeDepth {
			return nil, fmt.Errorf("%w: %d levels at %s", ErrPermissionTreeTooDeep, f.depth, f.node.ID)
		}
		if !perms[f.idx].IsMenu() {
			continue
		}

		kids := children[f.idx]
		f.node.Submenus = make([]*TreeNode, 0, len(kids))
		for _, k := range kids {
			child := newTreeNode(perms[k])
			f.node.Submenus = append(f.node.Submenus, child)
			stack = append(stack, frame{node: child, idx: k, depth: f.depth + 1})
		}
	}

	return tree, nil
}

// detectCycle walks every parent chain once.
func detectCycle(perms []Permission, parent []int) error {
	const (
		unseen = iota
		onPath
		done
	)

	state := make([]uint8, len(perms))
	var path []int
	for i := range perms {
		path = path[:0]
		j := i
		for j >= 0 && state[j] == unseen {
			state[j] = onPath
			path = append(path, j)
			j = parent[j]
		}
		if j >= 0 && state[j] == onPath {
			return fmt.Errorf("%w: %s is its own ancestor", ErrPermissionCycle, perms[j].ID)
		}
		for _, k := range path {
			state[k] = done
		}
	}
	return nil
}

// CountNodes returns the number of nodes in the tree.
func CountNodes(tree []*TreeNode) int {
	count := 0
	stack := append([]*TreeNode(nil), tree...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, n.Submenus...)
	}
	return count
}

// FlattenEndpoints lists the endpoint+method pairs of the action nodes, first occurrence wins.
func FlattenEndpoints(perms []Permission) []Endpoint {
	seen := make(map[Endpoint]struct{})
	endpoints := make([]Endpoint, 0)
	for _, p := range perms {
		if p.IsMenu() || p.Endpoint == nil || p.Method == nil || *p.Endpoint == "" {
			continue
		}
		e := Endpoint{Path: NormalizeEndpoint(*p.Endpoint), Method: NormalizeMethod(*p.Method)}
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		endpoints = append(endpoints, e)
	}
	return endpoints
}
