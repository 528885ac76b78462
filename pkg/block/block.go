// Package block defines the document tree the macro engine rewrites.
//
// Every node implements Block. Children are owned by their parent; the
// parent link is a plain back-reference used for navigation and Replace.
package block

import "slices"

// Kind identifies the variant of a Block.
type Kind int

const (
	KindDocument Kind = iota
	KindParagraph
	KindHeading
	KindGroup
	KindList
	KindListItem
	KindVerbatim
	KindWord
	KindSpace
	KindNewLine
	KindMacro
	KindMacroMarker
)

var kindNames = [...]string{
	KindDocument:    "document",
	KindParagraph:   "paragraph",
	KindHeading:     "heading",
	KindGroup:       "group",
	KindList:        "list",
	KindListItem:    "listitem",
	KindVerbatim:    "verbatim",
	KindWord:        "word",
	KindSpace:       "space",
	KindNewLine:     "newline",
	KindMacro:       "macro",
	KindMacroMarker: "macromarker",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Block is a node of the document tree.
type Block interface {
	Kind() Kind
	// Parent returns the block holding this one, or nil for a root or a
	// detached block.
	Parent() Block
	// Children returns a copy of the ordered child sequence.
	Children() []Block

	base() *node
}

// node carries the tree links shared by every block.
type node struct {
	self     Block
	parent   Block
	children []Block
}

func (n *node) Parent() Block { return n.parent }

func (n *node) Children() []Block { return slices.Clone(n.children) }

func (n *node) base() *node { return n }

// init binds the node to its outer block and adopts children.
func (n *node) init(self Block, children []Block) {
	n.self = self
	n.children = make([]Block, 0, len(children))
	for _, c := range children {
		if c == nil {
			continue
		}
		c.base().parent = self
		n.children = append(n.children, c)
	}
}

// Append adds children at the end of parent's child sequence. Children must
// be detached.
func Append(parent Block, children ...Block) error {
	for _, c := range children {
		if c == nil {
			continue
		}
		if c.Parent() != nil {
			return ErrAttachedNode
		}
	}
	pn := parent.base()
	for _, c := range children {
		if c == nil {
			continue
		}
		c.base().parent = pn.self
		pn.children = append(pn.children, c)
	}
	return nil
}
