package engine

import (
	"strings"
	"testing"

	"github.com/dshills/loom/internal/engine/codec"
	"github.com/dshills/loom/internal/engine/position"
	"github.com/dshills/loom/internal/engine/tree"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupDocument(b *testing.B, paragraphs int) *Document {
	b.Helper()
	var sb strings.Builder
	sb.WriteString("<div>")
	for i := 0; i < paragraphs; i++ {
		sb.WriteString("<p>lorem <b>ipsum</b> dolor <i>sit</i> amet</p>")
	}
	sb.WriteString("</div>")
	return New(WithRoot(codec.MustParse(sb.String()).Root))
}

func benchParagraph(b *testing.B, d *Document, index int) *tree.Container {
	b.Helper()
	root, ok := d.Root().(tree.Parent)
	if !ok {
		b.Fatal("root is not a parent")
	}
	p, ok := root.Child(index).(*tree.Container)
	if !ok {
		b.Fatalf("child %d is not a container", index)
	}
	return p
}

// ============================================================================
// Traversal Benchmarks
// ============================================================================

func BenchmarkDocumentWalk(b *testing.B) {
	d := setupDocument(b, 100)
	r := position.In(d.Root())
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		w := r.Walk()
		for {
			if _, ok := w.Next(); !ok {
				break
			}
		}
	}
}

func BenchmarkDocumentStringify(b *testing.B) {
	d := setupDocument(b, 100)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = codec.Stringify(d.Root())
	}
}

// ============================================================================
// Structural Operation Benchmarks
// ============================================================================

func BenchmarkDocumentInsertRemove(b *testing.B) {
	d := setupDocument(b, 1)
	p := benchParagraph(b, d, 0)
	text, ok := p.Child(0).(*tree.Text)
	if !ok {
		b.Fatal("first child is not text")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		inserted, err := d.Insert(position.At(text, 3), tree.NewText("XY"))
		if err != nil {
			b.Fatal(err)
		}
		if _, _, err := d.Remove(inserted); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDocumentMove(b *testing.B) {
	d := setupDocument(b, 2)
	src := benchParagraph(b, d, 0)
	dst := benchParagraph(b, d, 1)
	span, ok := src.Child(1).(*tree.AttributeSpan)
	if !ok {
		b.Fatal("second child is not a span")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := d.Move(position.On(span), position.At(dst, 0)); err != nil {
			b.Fatal(err)
		}
		if _, err := d.Move(position.On(span), position.At(src, 1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDocumentRename(b *testing.B) {
	d := setupDocument(b, 1)
	p := benchParagraph(b, d, 0)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		h, err := d.Rename(p, "h1")
		if err != nil {
			b.Fatal(err)
		}
		p, err = d.Rename(h, "p")
		if err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Formatting Benchmarks
// ============================================================================

func BenchmarkDocumentWrapUnwrap(b *testing.B) {
	d := setupDocument(b, 1)
	r := position.In(benchParagraph(b, d, 0))
	template := tree.NewSpan("u")
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		wrapped, err := d.Wrap(r, template)
		if err != nil {
			b.Fatal(err)
		}
		r, err = d.Unwrap(wrapped, template)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Boundary Benchmarks
// ============================================================================

func BenchmarkDocumentBreakMerge(b *testing.B) {
	d := setupDocument(b, 1)
	p := benchParagraph(b, d, 0)
	span, ok := p.Child(1).(*tree.AttributeSpan)
	if !ok {
		b.Fatal("second child is not a span")
	}
	text, ok := span.Child(0).(*tree.Text)
	if !ok {
		b.Fatal("span child is not text")
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		at, err := d.BreakAt(position.At(text, 2))
		if err != nil {
			b.Fatal(err)
		}
		d.MergeAt(at)
	}
}

// ============================================================================
// Combined Workflow Benchmarks
// ============================================================================

func BenchmarkDocumentBuildWorkflow(b *testing.B) {
	// Simulates typical document assembly: insert structure, type text,
	// format a word, render.
	for i := 0; i < b.N; i++ {
		d := New()
		p := tree.NewContainer("p")
		if _, err := d.Insert(position.At(d.Root(), 0), p); err != nil {
			b.Fatal(err)
		}
		text := tree.NewText("lorem ipsum dolor sit amet")
		if _, err := d.Insert(position.At(p, 0), text); err != nil {
			b.Fatal(err)
		}
		bold := tree.NewSpan("b")
		r := position.NewRange(position.At(text, 6), position.At(text, 11))
		if _, err := d.Wrap(r, bold); err != nil {
			b.Fatal(err)
		}
		_ = codec.Stringify(d.Root())
	}
}

// ============================================================================
// Memory Benchmarks
// ============================================================================

func BenchmarkDocumentMemoryParse(b *testing.B) {
	markup := "<div>" + strings.Repeat("<p>lorem <b>ipsum</b> dolor</p>", 100) + "</div>"
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_ = New(WithRoot(codec.MustParse(markup).Root))
	}
}
