package folio

import (
	"iter"
	"maps"
	"slices"
	"strings"
)

// AccountSeparator separates the components of an account name.
const AccountSeparator = ":"

// Node is an account in the realization tree.
type Node struct {
	Account    string    // full account name, empty for the root
	Own        Inventory // lots posted directly to this account
	Cumulative Inventory // lots of this account and all its descendants
	children   map[string]*Node
}

// Name returns the last component of the account name.
func (n *Node) Name() string {
	i := strings.LastIndex(n.Account, AccountSeparator)
	return n.Account[i+1:]
}

// IsLeaf reports whether the node has no sub account.
func (n *Node) IsLeaf() bool { return len(n.children) == 0 }

// Children iterates over the direct sub accounts in name order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, name := range slices.Sorted(maps.Keys(n.children)) {
			if !yield(n.children[name]) {
				return
			}
		}
	}
}

// Walk iterates over the node and all its descendants, depth first, parents
// before children.
func (n *Node) Walk() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if !yield(n) {
		return false
	}
	for c := range n.Children() {
		if !c.walk(yield) {
			return false
		}
	}
	return true
}

// Tree is the realization of a ledger: the account hierarchy with the lots
// held in each account. It is immutable once built.
type Tree struct {
	root  *Node
	nodes map[string]*Node
}

// Realize builds the account tree of a ledger.
//
// Every posted account and all its ancestors get a node. Lots are first
// indexed on the account they were posted to, then folded bottom-up into the
// cumulative inventory of every ancestor.
func Realize(l *Ledger) *Tree {
	t := &Tree{
		root:  &Node{children: make(map[string]*Node)},
		nodes: make(map[string]*Node),
	}
	t.nodes[""] = t.root

	for tx := range l.Transactions() {
		for _, p := range tx.Postings {
			if p.Units == nil {
				continue // could not be inferred, reported by Ledger.Errors()
			}
			n := t.node(p.Account)
			n.Own.Add(p.Position())
		}
	}
	t.fold(t.root)
	return t
}

// node returns the node for account, creating it and its ancestors as needed.
func (t *Tree) node(account string) *Node {
	if n, ok := t.nodes[account]; ok {
		return n
	}
	parent := t.root
	if i := strings.LastIndex(account, AccountSeparator); i >= 0 {
		parent = t.node(account[:i])
	}
	n := &Node{Account: account, children: make(map[string]*Node)}
	parent.children[n.Name()] = n
	t.nodes[account] = n
	return n
}

// fold computes the cumulative inventory of n and all its descendants.
func (t *Tree) fold(n *Node) Inventory {
	cumulative := slices.Clone(n.Own)
	for c := range n.Children() {
		cumulative = cumulative.Merge(t.fold(c))
	}
	n.Cumulative = cumulative
	return cumulative
}

// Root returns the root node, whose children are the top level accounts.
func (t *Tree) Root() *Node { return t.root }

// Get returns the node of an account, or nil if the account has no lot and
// no sub account with lots.
func (t *Tree) Get(account string) *Node { return t.nodes[account] }
