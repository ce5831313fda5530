package internal

import "weak"

// Node carries the state shared by every signal: the current value, the
// declared value-type constraint, and the set of dependent functions.
//
// Dependents are held through weak pointers so a function is kept alive only
// by the references its callers hold. Stale entries are pruned whenever the
// set is walked.
type Node struct {
	value  any
	check  Checker
	doc    string
	height int
	owner  *Function // non-nil when this node belongs to a function
	subs   []weak.Pointer[Function]
}

// Doc returns the documentation string the signal was declared with.
func (n *Node) Doc() string { return n.doc }

// addSub registers f as a dependent of n, at most once.
func (n *Node) addSub(f *Function) {
	subs := n.subs[:0]
	seen := false
	for _, w := range n.subs {
		s := w.Value()
		if s == nil {
			continue
		}
		if s == f {
			seen = true
		}
		subs = append(subs, w)
	}
	if !seen {
		subs = append(subs, weak.Make(f))
	}
	n.subs = subs
}

// forEachSub walks the live dependents of n, dropping collected ones.
func (n *Node) forEachSub(fn func(*Function)) {
	subs := n.subs[:0]
	for _, w := range n.subs {
		s := w.Value()
		if s == nil {
			continue
		}
		subs = append(subs, w)
		fn(s)
	}
	n.subs = subs
}
