package policy

import (
	"slices"
	"strings"

	"gin-user-rbac/internal/domain"
)

// Rule 路由的访问要求：Public 跳过所有检查；Roles 为空表示只需登录
type Rule struct {
	Method string
	Path   string
	Public bool
	Roles  []domain.Role
}

func (r Rule) Allows(role domain.Role) bool {
	return role != "" && slices.Contains(r.Roles, role)
}

// Table 启动时构建，之后只读
type Table struct {
	rules map[string]Rule
	order []string
}

func NewTable() *Table { return &Table{rules: map[string]Rule{}} }

func key(method, path string) string { return strings.ToUpper(method) + " " + path }

func (t *Table) Add(r Rule) {
	k := key(r.Method, r.Path)
	if _, ok := t.rules[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rules[k] = r
}

// Lookup path 是 gin 的路由模板（c.FullPath()），如 /user/:id
func (t *Table) Lookup(method, path string) (Rule, bool) {
	r, ok := t.rules[key(method, path)]
	return r, ok
}

func (t *Table) Rules() []Rule {
	out := make([]Rule, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.rules[k])
	}
	return out
}
