package block

import "errors"

var (
	// ErrDetachedNode is returned when a block that should sit in a tree
	// has no parent, or is not among its recorded parent's children.
	ErrDetachedNode = errors.New("block is detached from the tree")
	// ErrAttachedNode is returned when a block that should be fresh
	// already belongs to a parent.
	ErrAttachedNode = errors.New("block is already attached to a parent")
)

// Replace puts replacement at old's position in old's parent. old is
// detached afterwards.
func Replace(old, replacement Block) error {
	parent := old.Parent()
	if parent == nil {
		return ErrDetachedNode
	}
	if replacement.Parent() != nil {
		return ErrAttachedNode
	}

	pn := parent.base()
	idx := -1
	for i, c := range pn.children {
		if c == old {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrDetachedNode
	}

	pn.children[idx] = replacement
	replacement.base().parent = parent
	old.base().parent = nil
	return nil
}

// Walk visits root and its descendants in document order. Returning false
// from fn skips the children of the visited block.
func Walk(root Block, fn func(Block) bool) {
	if !fn(root) {
		return
	}
	for _, c := range root.base().children {
		Walk(c, fn)
	}
}

// FindByType returns the descendants of root matching match, in document
// order. root itself is never returned. With recursive false only the
// direct children are inspected.
func FindByType(root Block, match func(Block) bool, recursive bool) []Block {
	var found []Block
	for _, c := range root.base().children {
		if match(c) {
			found = append(found, c)
		}
		if recursive {
			found = append(found, FindByType(c, match, true)...)
		}
	}
	return found
}

// OfKind returns a predicate matching blocks of kind k.
func OfKind(k Kind) func(Block) bool {
	return func(b Block) bool { return b.Kind() == k }
}

// Collect returns every descendant of root with concrete type T, in
// document order.
func Collect[T Block](root Block, recursive bool) []T {
	var out []T
	for _, b := range FindByType(root, func(b Block) bool {
		_, ok := b.(T)
		return ok
	}, recursive) {
		out = append(out, b.(T))
	}
	return out
}

// MarkerDepth counts the MacroMarker ancestors of b, i.e. how many macro
// expansions produced it.
func MarkerDepth(b Block) int {
	depth := 0
	for p := b.Parent(); p != nil; p = p.Parent() {
		if p.Kind() == KindMacroMarker {
			depth++
		}
	}
	return depth
}

// Root follows parent links up to the top of b's tree.
func Root(b Block) Block {
	for b.Parent() != nil {
		b = b.Parent()
	}
	return b
}

// Index reports the position of b within its parent, or -1 when detached.
func Index(b Block) int {
	parent := b.Parent()
	if parent == nil {
		return -1
	}
	for i, c := range parent.base().children {
		if c == b {
			return i
		}
	}
	return -1
}
