package transform

import (
	"errors"

	"github.com/open-cli-collective/wikimacro/pkg/block"
)

var errNilBlock = errors.New("macro returned a nil block")

// substitute replaces m, a descendant of doc, by a marker holding generated,
// in the order given. Every generated subtree must be fresh: no block of it
// may already sit in doc, and each child must point back at the parent that
// lists it.
func substitute(doc block.Block, m *block.Macro, generated []block.Block) (*block.MacroMarker, error) {
	inTree := make(map[block.Block]struct{})
	block.Walk(doc, func(b block.Block) bool {
		inTree[b] = struct{}{}
		return true
	})

	seen := make(map[block.Block]struct{}, len(generated))
	for _, b := range generated {
		if b == nil {
			return nil, errNilBlock
		}
		if b.Parent() != nil {
			return nil, block.ErrAttachedNode
		}
		if err := checkFresh(b, inTree, seen); err != nil {
			return nil, err
		}
	}

	marker := block.NewMacroMarker(m.MacroCall, generated...)
	if err := block.Replace(m, marker); err != nil {
		return nil, err
	}
	return marker, nil
}

// checkFresh walks a generated subtree. Blocks reachable from the document,
// or seen twice, were reused by the macro; a child whose parent link points
// elsewhere was moved out of the subtree after being added.
func checkFresh(b block.Block, inTree, seen map[block.Block]struct{}) error {
	if _, ok := inTree[b]; ok {
		return block.ErrAttachedNode
	}
	if _, dup := seen[b]; dup {
		return block.ErrAttachedNode
	}
	seen[b] = struct{}{}

	for _, c := range b.Children() {
		if c.Parent() != b {
			return block.ErrDetachedNode
		}
		if err := checkFresh(c, inTree, seen); err != nil {
			return err
		}
	}
	return nil
}
