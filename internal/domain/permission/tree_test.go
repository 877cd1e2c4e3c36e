package permission

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func menu(id string, parent *string) Permission {
	return Permission{ID: id, Name: id, Code: id, ParentID: parent, Type: TypeMenu}
}

func action(id string, parent *string, endpoint, method string) Permission {
	return Permission{ID: id, Name: id, Code: id, ParentID: parent, Type: TypeAction, Endpoint: ptr(endpoint), Method: ptr(method)}
}

func ids(nodes []*TreeNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func TestBuildTree_NestsMenusAndPreservesOrder(t *testing.T) {
	perms := []Permission{
		menu("payroll", nil),
		menu("employees", nil),
		action("payslip.list", ptr("payroll"), "/v1/payslips", "GET"),
		menu("employees.master", ptr("employees")),
		action("employee.list", ptr("employees"), "/v1/employees", "GET"),
		action("position.list", ptr("employees.master"), "/v1/positions", "GET"),
		action("payslip.create", ptr("payroll"), "/v1/payslips", "POST"),
	}

	tree, err := BuildTree(perms)
	require.NoError(t, err)

	assert.Equal(t, []string{"payroll", "employees"}, ids(tree))
	assert.Equal(t, []string{"payslip.list", "payslip.create"}, ids(tree[0].Submenus))
	assert.Equal(t, []string{"employees.master", "employee.list"}, ids(tree[1].Submenus))
	assert.Equal(t, []string{"position.list"}, ids(tree[1].Submenus[0].Submenus))
	assert.Equal(t, len(perms), CountNodes(tree))
}

func TestBuildTree_DropsDanglingParents(t *testing.T) {
	perms := []Permission{
		menu("root", nil),
		action("ok", ptr("root"), "/v1/a", "GET"),
		menu("orphan", ptr("missing")),
		action("orphan.child", ptr("orphan"), "/v1/b", "GET"),
	}

	tree, err := BuildTree(perms)
	require.NoError(t, err)

	assert.Equal(t, 2, CountNodes(tree))
	assert.Less(t, CountNodes(tree), len(perms))

	present := make(map[string]bool)
	for _, p := range perms {
		present[p.ID] = true
	}
	stack := append([]*TreeNode(nil), tree...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		assert.NotEqual(t, "orphan", n.ID)
		if n.ParentID != nil {
			assert.True(t, present[*n.ParentID], "parent %s of %s must be in the input", *n.ParentID, n.ID)
		}
		stack = append(stack, n.Submenus...)
	}
}

func TestBuildTree_ActionChildrenAreNotAttached(t *testing.T) {
	perms := []Permission{
		action("leaf", nil, "/v1/a", "GET"),
		action("under-leaf", ptr("leaf"), "/v1/b", "GET"),
	}

	tree, err := BuildTree(perms)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Nil(t, tree[0].Submenus)
}

func TestBuildTree_Cycles(t *testing.T) {
	cases := map[string][]Permission{
		"self parent": {menu("a", ptr("a"))},
		"two node loop": {
			menu("root", nil),
			menu("a", ptr("b")),
			menu("b", ptr("a")),
		},
		"loop below a dangling chain": {
			menu("x", ptr("y")),
			menu("y", ptr("z")),
			menu("z", ptr("x")),
			menu("tail", ptr("x")),
		},
		"duplicate id": {
			menu("a", nil),
			menu("a", nil),
		},
	}

	for name, perms := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := BuildTree(perms)
			assert.ErrorIs(t, err, ErrPermissionCycle)
		})
	}
}

func TestBuildTree_DepthLimit(t *testing.T) {
	chain := func(levels int) []Permission {
		perms := []Permission{menu("n0", nil)}
		for i := 1; i < levels; i++ {
			perms = append(perms, menu(fmt.Sprintf("n%d", i), ptr(fmt.Sprintf("n%d", i-1))))
		}
		return perms
	}

	tree, err := BuildTree(chain(MaxTreeDepth))
	require.NoError(t, err)
	assert.Equal(t, MaxTreeDepth, CountNodes(tree))

	_, err = BuildTree(chain(MaxTreeDepth + 1))
	assert.ErrorIs(t, err, ErrPermissionTreeTooDeep)
}

func TestBuildTree_Empty(t *testing.T) {
	tree, err := BuildTree(nil)
	require.NoError(t, err)
	assert.Empty(t, tree)

	data, err := json.Marshal(tree)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestTreeNode_MarshalJSON(t *testing.T) {
	tree, err := BuildTree([]Permission{
		menu("empty-menu", nil),
		action("leaf", nil, "/v1/payslips", "GET"),
	})
	require.NoError(t, err)

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 2)

	submenus, ok := decoded[0]["submenus"]
	assert.True(t, ok, "menu nodes always carry submenus")
	assert.Equal(t, []interface{}{}, submenus)

	_, ok = decoded[1]["submenus"]
	assert.False(t, ok, "action nodes carry no submenus")
	assert.Equal(t, "/v1/payslips", decoded[1]["endpoint"])
}

func TestFlattenEndpoints(t *testing.T) {
	perms := []Permission{
		menu("m", nil),
		action("a", ptr("m"), "/v1/employees/123", "get"),
		action("b", ptr("m"), "/v1/employees/:id", "GET"),
		action("c", ptr("m"), "/v1/payslips", "POST"),
		{ID: "no-endpoint", Type: TypeAction},
	}

	assert.Equal(t, []Endpoint{
		{Path: "/v1/employees/:id", Method: "GET"},
		{Path: "/v1/payslips", Method: "POST"},
	}, FlattenEndpoints(perms))
}
