package xpath

import (
	"github.com/FrodeRanders/dicom-tools/model"
)

// SelectNodes evaluates the expression with ctx as the context node and
// returns the matching nodes in document order. Each node appears at
// most once. A nil context yields no matches.
func (e *Expr) SelectNodes(ctx model.Node) []model.Node {
	if ctx == nil {
		return nil
	}
	current := []model.Node{ctx}
	if e.absolute {
		current = []model.Node{rootOf(ctx)}
	}
	for i := range e.steps {
		current = applyStep(&e.steps[i], current)
		if len(current) == 0 {
			return nil
		}
	}
	return current
}

// SelectSingleNode returns the first match of SelectNodes, or nil.
func (e *Expr) SelectSingleNode(ctx model.Node) model.Node {
	nodes := e.SelectNodes(ctx)
	if len(nodes) == 0 {
		return nil
	}
	return nodes[0]
}

// SelectNodes compiles and evaluates expression in one call.
func SelectNodes(expression string, ctx model.Node) ([]model.Node, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return expr.SelectNodes(ctx), nil
}

// SelectSingleNode compiles and evaluates expression, returning the
// first match or nil.
func SelectSingleNode(expression string, ctx model.Node) (model.Node, error) {
	expr, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return expr.SelectSingleNode(ctx), nil
}

func rootOf(n model.Node) model.Node {
	elem, ok := n.(*model.Element)
	if !ok {
		if parent := n.Parent(); parent != nil {
			elem = parent
		} else {
			return n
		}
	}
	for elem.Owner != nil {
		elem = elem.Owner
	}
	return elem
}

func applyStep(s *step, context []model.Node) []model.Node {
	var out []model.Node
	seen := make(map[model.Node]bool)

	add := func(n model.Node) {
		if seen[n] {
			return
		}
		if !nameMatches(s, n) {
			return
		}
		for _, pred := range s.preds {
			if !evalPred(pred, n) {
				return
			}
		}
		seen[n] = true
		out = append(out, n)
	}

	for _, ctx := range context {
		// A '//' child step selects among all descendants. Taking the
		// child axis per expanded base would emit a context node's
		// children before its grandchildren; the single pre-order walk
		// keeps the candidates in document order across depths.
		if s.anywhere && s.axis == axisChild {
			for _, candidate := range descendants(ctx) {
				add(candidate)
			}
			continue
		}

		base := []model.Node{ctx}
		if s.anywhere {
			base = selfAndDescendants(ctx)
		}
		for _, b := range base {
			for _, candidate := range axisNodes(s.axis, b) {
				add(candidate)
			}
		}
	}
	return out
}

func nameMatches(s *step, n model.Node) bool {
	return s.wildcard || n.NodeName() == s.name
}

// axisNodes returns the nodes reachable from n along the axis, in
// document order (reverse document order for the ancestor and
// preceding-sibling axes, matching their direction).
func axisNodes(a axis, n model.Node) []model.Node {
	switch a {
	case axisSelf:
		return []model.Node{n}

	case axisChild:
		elem, ok := n.(*model.Element)
		if !ok {
			return nil
		}
		nodes := make([]model.Node, 0, len(elem.Children))
		for _, child := range elem.Children {
			nodes = append(nodes, child)
		}
		return nodes

	case axisAttribute:
		elem, ok := n.(*model.Element)
		if !ok {
			return nil
		}
		nodes := make([]model.Node, 0, len(elem.Attributes))
		for _, attr := range elem.Attributes {
			nodes = append(nodes, attr)
		}
		return nodes

	case axisParent:
		if parent := n.Parent(); parent != nil {
			return []model.Node{parent}
		}
		return nil

	case axisAncestor:
		var nodes []model.Node
		for parent := n.Parent(); parent != nil; parent = parent.Owner {
			nodes = append(nodes, parent)
		}
		return nodes

	case axisDescendantOrSelf:
		return selfAndDescendants(n)

	case axisFollowingSibling:
		_, after := siblings(n)
		return after

	case axisPrecedingSibling:
		before, _ := siblings(n)
		// Nearest sibling first.
		for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
			before[i], before[j] = before[j], before[i]
		}
		return before

	default:
		return nil
	}
}

// selfAndDescendants returns n followed by its element descendants in
// pre-order. Attributes are not descendants.
func selfAndDescendants(n model.Node) []model.Node {
	return append([]model.Node{n}, descendants(n)...)
}

// descendants returns n's element descendants in pre-order.
func descendants(n model.Node) []model.Node {
	elem, ok := n.(*model.Element)
	if !ok {
		return nil
	}
	var nodes []model.Node
	var walk func(e *model.Element)
	walk = func(e *model.Element) {
		for _, child := range e.Children {
			nodes = append(nodes, child)
			walk(child)
		}
	}
	walk(elem)
	return nodes
}

// siblings splits the parent's children around n. Attributes have no
// siblings.
func siblings(n model.Node) (before, after []model.Node) {
	elem, ok := n.(*model.Element)
	if !ok {
		return nil, nil
	}
	parent := elem.Owner
	if parent == nil {
		return nil, nil
	}
	found := false
	for _, child := range parent.Children {
		if child == elem {
			found = true
			continue
		}
		if found {
			after = append(after, child)
		} else {
			before = append(before, child)
		}
	}
	if !found {
		return nil, nil
	}
	return before, after
}

func evalPred(p predExpr, candidate model.Node) bool {
	switch pred := p.(type) {
	case *logicalExpr:
		if pred.op == "and" {
			return evalPred(pred.left, candidate) && evalPred(pred.right, candidate)
		}
		return evalPred(pred.left, candidate) || evalPred(pred.right, candidate)

	case *comparisonExpr:
		nodes := pred.path.SelectNodes(candidate)
		if !pred.hasLiteral {
			return len(nodes) > 0
		}
		for _, n := range nodes {
			if attr, ok := n.(*model.Attribute); ok && attr.Text == pred.literal {
				return true
			}
		}
		return false

	default:
		return false
	}
}
