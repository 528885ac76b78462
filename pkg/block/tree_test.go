package block

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func words(bs []Block) []string {
	var out []string
	for _, b := range bs {
		if w, ok := b.(*Word); ok {
			out = append(out, w.Text)
		}
	}
	return out
}

func TestConstructors_SetParent(t *testing.T) {
	w := NewWord("hello")
	p := NewParagraph(w, NewSpace())
	doc := NewDocument(p)

	assert.Same(t, p, w.Parent())
	assert.Same(t, doc, p.Parent())
	assert.Nil(t, doc.Parent())
	assert.Len(t, p.Children(), 2)
}

func TestChildren_ReturnsCopy(t *testing.T) {
	p := NewParagraph(NewWord("a"))
	children := p.Children()
	children[0] = NewWord("b")

	assert.Equal(t, []string{"a"}, words(p.Children()))
}

func TestReplace(t *testing.T) {
	t.Run("takes the exact position", func(t *testing.T) {
		a, b, c := NewWord("a"), NewWord("b"), NewWord("c")
		p := NewParagraph(a, b, c)

		x := NewWord("x")
		require.NoError(t, Replace(b, x))

		assert.Equal(t, []string{"a", "x", "c"}, words(p.Children()))
		assert.Same(t, p, x.Parent())
		assert.Nil(t, b.Parent())
	})

	t.Run("root is detached", func(t *testing.T) {
		doc := NewDocument()
		err := Replace(doc, NewWord("x"))
		assert.ErrorIs(t, err, ErrDetachedNode)
	})

	t.Run("already replaced block is detached", func(t *testing.T) {
		a := NewWord("a")
		NewParagraph(a)
		require.NoError(t, Replace(a, NewWord("b")))

		err := Replace(a, NewWord("c"))
		assert.ErrorIs(t, err, ErrDetachedNode)
	})

	t.Run("replacement must be fresh", func(t *testing.T) {
		a := NewWord("a")
		other := NewWord("other")
		NewParagraph(a)
		NewParagraph(other)

		err := Replace(a, other)
		assert.ErrorIs(t, err, ErrAttachedNode)
		assert.NotNil(t, a.Parent())
	})
}

func TestFindByType_DocumentOrder(t *testing.T) {
	// doc
	//   p1: m1, marker(m2)
	//   m3
	m1 := NewMacro("m1", nil, true)
	m2 := NewMacro("m2", nil, true)
	m3 := NewMacro("m3", nil, false)
	marker := NewMacroMarker(MacroCall{ID: "outer"}, m2)
	doc := NewDocument(NewParagraph(m1, marker), m3)

	found := FindByType(doc, OfKind(KindMacro), true)
	require.Len(t, found, 3)
	assert.Equal(t, "m1", found[0].(*Macro).ID)
	assert.Equal(t, "m2", found[1].(*Macro).ID)
	assert.Equal(t, "m3", found[2].(*Macro).ID)

	shallow := FindByType(doc, OfKind(KindMacro), false)
	require.Len(t, shallow, 1)
	assert.Equal(t, "m3", shallow[0].(*Macro).ID)
}

func TestCollect(t *testing.T) {
	doc := NewDocument(
		NewParagraph(NewWord("a"), NewSpace(), NewWord("b")),
		NewGroup(nil, NewParagraph(NewWord("c"))),
	)

	got := Collect[*Word](doc, true)
	require.Len(t, got, 3)
	assert.Equal(t, "c", got[2].Text)
	assert.Empty(t, Collect[*Word](doc, false))
}

func TestWalk_Prune(t *testing.T) {
	doc := NewDocument(
		NewMacroMarker(MacroCall{ID: "m"}, NewWord("inside")),
		NewWord("outside"),
	)

	var seen []string
	Walk(doc, func(b Block) bool {
		if w, ok := b.(*Word); ok {
			seen = append(seen, w.Text)
		}
		return b.Kind() != KindMacroMarker
	})
	assert.Equal(t, []string{"outside"}, seen)
}

func TestMarkerDepth(t *testing.T) {
	inner := NewMacro("r", nil, false)
	NewDocument(
		NewMacroMarker(MacroCall{ID: "r"},
			NewGroup(nil,
				NewMacroMarker(MacroCall{ID: "r"}, inner))))

	assert.Equal(t, 2, MarkerDepth(inner))
	assert.Equal(t, 0, MarkerDepth(NewWord("alone")))
}

func TestAppend(t *testing.T) {
	p := NewParagraph(NewWord("a"))
	require.NoError(t, Append(p, NewSpace(), NewWord("b")))
	assert.Equal(t, []string{"a", "b"}, words(p.Children()))

	attached := NewWord("c")
	NewParagraph(attached)
	assert.ErrorIs(t, Append(p, attached), ErrAttachedNode)
}

func TestIndexAndRoot(t *testing.T) {
	b := NewWord("b")
	doc := NewDocument(NewParagraph(NewWord("a"), b))

	assert.Equal(t, 1, Index(b))
	assert.Same(t, doc, Root(b))
	assert.Equal(t, -1, Index(doc))
}

func TestMacro_ParamsAreCopied(t *testing.T) {
	params := map[string]string{"k": "v"}
	m := NewMacro("m", params, false)
	params["k"] = "changed"

	assert.Equal(t, "v", m.Params["k"])
	assert.False(t, m.HasContent)

	c := NewMacroWithContent("m", nil, "", false)
	assert.True(t, c.HasContent)
	assert.NotNil(t, c.Params)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "macromarker", KindMacroMarker.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a b", []string{"a", " ", "b"}},
		{"a \t  b", []string{"a", " ", "b"}},
		{" a ", []string{" ", "a", " "}},
		{"héllo wörld", []string{"héllo", " ", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got []string
			for _, b := range Words(tt.input) {
				switch v := b.(type) {
				case *Word:
					got = append(got, v.Text)
				case *Space:
					got = append(got, " ")
				}
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
