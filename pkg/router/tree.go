package router

// TreeNode is one registered route in declaration order.
type TreeNode struct {
	Key       string     `json:"key"`
	Segment   string     `json:"segment"`
	Component string     `json:"component,omitempty"`
	Type      string     `json:"$type,omitempty"`
	Children  []TreeNode `json:"children,omitempty"`
}

// Tree returns the registry as nested nodes, roots first.
func (g *Registry) Tree() []TreeNode {
	return g.nodes(g.roots)
}

func (g *Registry) nodes(keys []string) []TreeNode {
	if len(keys) == 0 {
		return nil
	}
	out := make([]TreeNode, 0, len(keys))
	for _, key := range keys {
		rec := g.records[key]
		out = append(out, TreeNode{
			Key:       rec.Key,
			Segment:   rec.Segment,
			Component: rec.Component,
			Type:      rec.Type,
			Children:  g.nodes(rec.Children),
		})
	}
	return out
}

// Walk calls fn for every node depth-first, passing the nesting depth.
// Returning false from fn skips that node's children.
func Walk(nodes []TreeNode, fn func(node TreeNode, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []TreeNode, depth int, fn func(TreeNode, int) bool) {
	for _, n := range nodes {
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}
