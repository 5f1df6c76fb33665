package ast

// Equal reports whether n and other render to the same statement tree:
// same header at every node, same block/object-ness, same children
// recursively. The source compares nodes by stringifying the whole
// subtree and diffing the result; this does the same comparison directly
// against the tree shape instead, so it works as a cmp.Comparer without
// round-tripping through text first (spec.md §9).
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Stmt.Header() != other.Stmt.Header() {
		return false
	}
	if n.Stmt.IsBlock() != other.Stmt.IsBlock() || n.IsObject != other.IsObject {
		return false
	}
	if len(n.Children) != len(other.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
