package tree

import "testing"

func TestSpanIdentityDeterministic(t *testing.T) {
	a := NewSpan("b")
	a.SetAttribute("data-x", "1")
	a.SetAttribute("href", "#")
	a.AddClass("two", "one")
	a.SetStyle("color", "red")
	a.SetStyle("border", "none")

	b := NewSpan("b")
	b.SetStyle("border", "none")
	b.AddClass("one")
	b.SetAttribute("href", "#")
	b.SetStyle("color", "red")
	b.SetAttribute("data-x", "1")
	b.AddClass("two")

	if a.Identity() != b.Identity() {
		t.Errorf("identities differ:\n a: %s\n b: %s", a.Identity(), b.Identity())
	}
	if !a.IsSimilar(b) {
		t.Error("spans with equal identity should be similar")
	}
}

func TestSpanIdentityInvalidation(t *testing.T) {
	s := NewSpan("b")
	base := s.Identity()

	tests := []struct {
		name   string
		mutate func()
	}{
		{"set attribute", func() { s.SetAttribute("data-x", "1") }},
		{"set style", func() { s.SetStyle("color", "red") }},
		{"add class", func() { s.AddClass("hot") }},
		{"set priority", func() { s.SetPriority(5) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := s.Identity()
			tt.mutate()
			if got := s.Identity(); got == before {
				t.Errorf("identity unchanged after mutation: %s", got)
			}
		})
	}

	if s.Identity() == base {
		t.Error("identity equals the initial one after mutations")
	}
}

func TestSpanIdentityCached(t *testing.T) {
	s := NewSpan("b")
	s.SetAttribute("data-x", "1")

	first := s.Identity()
	if second := s.Identity(); second != first {
		t.Errorf("repeated Identity() = %q, want %q", second, first)
	}
}

func TestSpanSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b func() *AttributeSpan
		want bool
	}{
		{
			"same name",
			func() *AttributeSpan { return NewSpan("b") },
			func() *AttributeSpan { return NewSpan("b") },
			true,
		},
		{
			"different name",
			func() *AttributeSpan { return NewSpan("b") },
			func() *AttributeSpan { return NewSpan("i") },
			false,
		},
		{
			"different priority",
			func() *AttributeSpan { return NewSpan("b") },
			func() *AttributeSpan { s := NewSpan("b"); s.SetPriority(5); return s },
			false,
		},
		{
			"different attribute value",
			func() *AttributeSpan { s := NewSpan("a"); s.SetAttribute("href", "#1"); return s },
			func() *AttributeSpan { s := NewSpan("a"); s.SetAttribute("href", "#2"); return s },
			false,
		},
		{
			"same classes different order",
			func() *AttributeSpan { s := NewSpan("b"); s.AddClass("x", "y"); return s },
			func() *AttributeSpan { s := NewSpan("b"); s.AddClass("y", "x"); return s },
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a().IsSimilar(tt.b()); got != tt.want {
				t.Errorf("IsSimilar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanNotSimilarToOtherKinds(t *testing.T) {
	s := NewSpan("b")
	if s.IsSimilar(NewContainer("b")) {
		t.Error("a span must not be similar to a container")
	}
	if s.IsSimilar(NewText("b")) {
		t.Error("a span must not be similar to a text node")
	}
}

func TestAttributeRouting(t *testing.T) {
	s := NewSpan("span")

	s.SetAttribute("class", "beta alpha")
	if !s.HasClass("alpha") || !s.HasClass("beta") {
		t.Error("class attribute should populate the class set")
	}
	if v, ok := s.Attribute("class"); !ok || v != "alpha beta" {
		t.Errorf(`Attribute("class") = %q, %v; want "alpha beta", true`, v, ok)
	}

	s.SetAttribute("style", "color: red; border: none")
	if v, ok := s.Style("color"); !ok || v != "red" {
		t.Errorf(`Style("color") = %q, %v; want "red", true`, v, ok)
	}
	if v, ok := s.Attribute("style"); !ok || v != "border:none;color:red" {
		t.Errorf(`Attribute("style") = %q, %v; want rendered styles, true`, v, ok)
	}

	// Routed keys never show up among the plain attributes.
	for _, k := range s.AttributeKeys() {
		if k == "class" || k == "style" {
			t.Errorf("routed key %q leaked into AttributeKeys()", k)
		}
	}

	if !s.RemoveAttribute("class") {
		t.Error(`RemoveAttribute("class") = false, want true`)
	}
	if len(s.ClassNames()) != 0 {
		t.Errorf("ClassNames() after removal = %v, want none", s.ClassNames())
	}
	if !s.RemoveAttribute("style") {
		t.Error(`RemoveAttribute("style") = false, want true`)
	}
	if s.HasAttribute("style") {
		t.Error("style attribute still present after removal")
	}
}

func TestContainerSimilarity(t *testing.T) {
	make1 := func() *Container {
		c := NewContainer("p")
		c.SetAttribute("data-x", "1")
		c.AddClass("note")
		c.SetStyle("margin", "0")
		return c
	}

	a, b := make1(), make1()
	if !a.IsSimilar(b) {
		t.Error("containers with the same shape should be similar")
	}

	b.SetStyle("margin", "1px")
	if a.IsSimilar(b) {
		t.Error("containers with different styles should not be similar")
	}
}

func TestDefaultPriority(t *testing.T) {
	if got := NewSpan("b").Priority(); got != DefaultPriority {
		t.Errorf("Priority() = %d, want %d", got, DefaultPriority)
	}
}
