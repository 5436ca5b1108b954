package mrkdwn

import (
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestRender(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{"empty", "", ""},
		{"plain text", "hello world", "<p>hello world</p>"},
		{"ampersand", "a & b", "<p>a &amp; b</p>"},
		{"script tag", "<script>alert(1)</script>", "<p>&lt;script&gt;alert(1)&lt;/script&gt;</p>"},
		{"two paragraphs", "one\ntwo", "<p>one</p><p>two</p>"},
		{"crlf", "one\r\ntwo\r\n", "<p>one</p><p>two</p>"},
		{"h1", "# Title", "<h1>Title</h1>"},
		{"h2", "## Sub", "<h2>Sub</h2>"},
		{"h3 is a paragraph", "### Deep", "<p>### Deep</p>"},
		{"header needs space", "#tag", "<p>#tag</p>"},
		{"header inline", "# *Big* news", "<h1><strong>Big</strong> news</h1>"},
		{"rule", "above\n---\nbelow", "<p>above</p><hr><p>below</p>"},
		{"long rule", "-----", "<hr>"},
		{"short dashes", "--", "<p>--</p>"},
		{"dash list", "- one\n- two", "<ul><li>one</li><li>two</li></ul>"},
		{"star list", "* one", "<ul><li>one</li></ul>"},
		{"star bold is not a list", "*one* two", "<p><strong>one</strong> two</p>"},
		{"list closed by paragraph", "- one\nafter", "<ul><li>one</li></ul><p>after</p>"},
		{"list closed by blank", "- one\n\n- two", "<ul><li>one</li></ul><ul><li>two</li></ul>"},
		{"quote", "> said it", "<blockquote><p>said it</p></blockquote>"},
		{"quote without space", ">said it", "<blockquote><p>said it</p></blockquote>"},
		{"quote paragraphs", "> a\n> b", "<blockquote><p>a</p><p>b</p></blockquote>"},
		{"quote closed by header", "> a\n# H", "<blockquote><p>a</p></blockquote><h1>H</h1>"},
		{
			"list and quote alternate",
			"- a\n> b\n- c\n> d",
			"<ul><li>a</li></ul><blockquote><p>b</p></blockquote><ul><li>c</li></ul><blockquote><p>d</p></blockquote>",
		},
		{"fence", "```\nx := 1\n```", "<pre><code>x := 1</code></pre>"},
		{"fence is verbatim", "```\n*no* <b>\n```\nafter", "<pre><code>*no* &lt;b&gt;</code></pre><p>after</p>"},
		{"fence keeps blank lines", "```\na\n\nb\n```", "<pre><code>a\n\nb</code></pre>"},
		{"fence keeps markers", "```\n- a\n> b\n# c\n```", "<pre><code>- a\n&gt; b\n# c</code></pre>"},
		{"unterminated fence", "```\ncode\n", "<pre><code>code</code></pre>"},
		{"empty fence", "```\n```", "<pre><code></code></pre>"},
		{"fence closes list", "- a\n```\nx\n```", "<ul><li>a</li></ul><pre><code>x</code></pre>"},
		{"rule closes quote", "> a\n---", "<blockquote><p>a</p></blockquote><hr>"},
		{
			"fixture",
			"# Title\n\n- one\n- two\n\n> said it",
			"<h1>Title</h1><ul><li>one</li><li>two</li></ul><blockquote><p>said it</p></blockquote>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := Render(tc.input); got != tc.expected {
				t.Errorf("Render(%q)\n got: %s\nwant: %s", tc.input, got, tc.expected)
			}
		})
	}
}

func TestInline(t *testing.T) {
	const a = `<a href="%s" target="_blank" rel="noopener noreferrer">`
	anchor := func(href string) string { return strings.Replace(a, "%s", href, 1) }

	testCases := []struct {
		description string
		input       string
		expected    string
	}{
		{"bold", "*bold*", "<strong>bold</strong>"},
		{"two bolds", "*a* and *b*", "<strong>a</strong> and <strong>b</strong>"},
		{"italic", "a _b_ c", "a <em>b</em> c"},
		{"snake case", "snake_case_word", "snake_case_word"},
		{"strike", "~gone~", "<del>gone</del>"},
		{"code", "run `make`", "run <code>make</code>"},
		{"unterminated bold", "*bold", "*bold"},
		{"unterminated code", "`code", "`code"},
		{"titled link", "<https://example.com|Example>", anchor("https://example.com") + "Example</a>"},
		{"titled link label emphasis", "<https://x.io|*hi*>", anchor("https://x.io") + "<strong>hi</strong></a>"},
		{"bare link", "<https://example.com>", anchor("https://example.com") + "https://example.com</a>"},
		{"bare link keeps underscores", "<https://example.com/_x_>", anchor("https://example.com/_x_") + "https://example.com/_x_</a>"},
		{"mailto", "<mailto:me@example.com|mail>", anchor("mailto:me@example.com") + "mail</a>"},
		{"query string", "<https://a.io/?a=1&b=2>", anchor("https://a.io/?a=1&amp;b=2") + "https://a.io/?a=1&amp;b=2</a>"},
		{"no scheme", "<example.com>", "&lt;example.com&gt;"},
		{"javascript scheme", "<javascript:alert(1)|x>", "&lt;javascript:alert(1)|x&gt;"},
		{"quote in url", `<https://x.io" onclick="y|z>`, `&lt;https://x.io" onclick="y|z&gt;`},
		{
			"stash markers in user text",
			"\ue0000\ue001 and \ue0001\ue001 <https://a.com|site>",
			"&#xE000;0&#xE001; and &#xE000;1&#xE001; " + anchor("https://a.com") + "site</a>",
		},
		{
			"two links",
			"<https://a.io|my_ link> and <https://b.io|x>",
			anchor("https://a.io") + "my_ link</a> and " + anchor("https://b.io") + "x</a>",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := Inline(Escape(tc.input)); got != tc.expected {
				t.Errorf("Inline(%q)\n got: %s\nwant: %s", tc.input, got, tc.expected)
			}
		})
	}
}

// The rule order is part of the dialect: links must be resolved before
// emphasis can touch their URLs.
func TestRuleOrder(t *testing.T) {
	wantInline := []string{"link", "autolink", "code", "bold", "italic", "strike"}
	if got := InlineRules(); !reflect.DeepEqual(got, wantInline) {
		t.Errorf("InlineRules() = %v, want %v", got, wantInline)
	}

	wantLines := []string{"fence", "blank", "rule", "quote", "list", "h2", "h1", "paragraph"}
	if got := Rules(); !reflect.DeepEqual(got, wantLines) {
		t.Errorf("Rules() = %v, want %v", got, wantLines)
	}
}

func TestRenderPlainTextIsWrapped(t *testing.T) {
	for _, s := range []string{"hello", "see you at 8", "plain words, nothing else", "a 1 b 2"} {
		if got, want := Render(s), "<p>"+s+"</p>"; got != want {
			t.Errorf("Render(%q) = %q, want %q", s, got, want)
		}
	}
}

func TestRenderNeverEmitsRawTags(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"# <script>x</script>",
		"- <img src=x onerror=alert(1)>",
		"> <iframe>",
		"```\n<script>\n```",
		"*<script>*",
		"<https://ok.io|<script>>",
	}
	for _, input := range inputs {
		out := Render(input)
		for _, n := range parseFragment(t, out) {
			walk(n, func(n *html.Node) {
				if n.Type == html.ElementNode {
					switch n.DataAtom {
					case atom.Script, atom.Img, atom.Iframe:
						t.Errorf("Render(%q) produced a <%s> element: %s", input, n.Data, out)
					}
				}
			})
		}
	}
}

func TestRenderCannotForgeAnchors(t *testing.T) {
	out := Render("\ue0000\ue001 and \ue0001\ue001 <https://a.com|site>")
	anchors := 0
	for _, n := range parseFragment(t, out) {
		anchors += countElements(n, atom.A)
	}
	if anchors != 1 {
		t.Errorf("expected exactly one anchor, got %d: %s", anchors, out)
	}
	if strings.Contains(out, "\ue000") || strings.Contains(out, "\ue001") {
		t.Errorf("raw stash markers leaked: %q", out)
	}
}

func TestRenderBlockExclusivity(t *testing.T) {
	var lines []string
	for i := 0; i < 6; i++ {
		if i%2 == 0 {
			lines = append(lines, "- item")
		} else {
			lines = append(lines, "> quote")
		}
	}
	out := Render(strings.Join(lines, "\n"))

	nodes := parseFragment(t, out)
	if len(nodes) != 6 {
		t.Fatalf("expected 6 top-level blocks, got %d: %s", len(nodes), out)
	}
	for i, n := range nodes {
		want := atom.Ul
		if i%2 == 1 {
			want = atom.Blockquote
		}
		if n.DataAtom != want {
			t.Errorf("block %d is <%s>, want <%s>", i, n.Data, want)
		}
		walk(n, func(c *html.Node) {
			if c == n || c.Type != html.ElementNode {
				return
			}
			if c.DataAtom == atom.Ul || c.DataAtom == atom.Blockquote {
				t.Errorf("block %d <%s> contains nested <%s>", i, n.Data, c.Data)
			}
		})
	}
}

func TestRenderFixtureStructure(t *testing.T) {
	nodes := parseFragment(t, Render("# Title\n\n- one\n- two\n\n> said it"))

	var tags []string
	for _, n := range nodes {
		tags = append(tags, n.Data)
	}
	if want := []string{"h1", "ul", "blockquote"}; !reflect.DeepEqual(tags, want) {
		t.Fatalf("top-level blocks = %v, want %v", tags, want)
	}
	if items := countElements(nodes[1], atom.Li); items != 2 {
		t.Errorf("list has %d items, want 2", items)
	}
	if paras := countElements(nodes[2], atom.P); paras != 1 {
		t.Errorf("blockquote has %d paragraphs, want 1", paras)
	}
}

func TestDisplay(t *testing.T) {
	r := NewRenderer(Options{})
	out, empty := r.Display("  \n\t ")
	if !empty || !strings.Contains(out, DefaultPlaceholder) {
		t.Errorf("Display(blank) = %q, %v", out, empty)
	}

	out, empty = r.Display("*hi*")
	if empty || out != "<p><strong>hi</strong></p>" {
		t.Errorf("Display(*hi*) = %q, %v", out, empty)
	}

	custom := NewRenderer(Options{Placeholder: "<none>"})
	if out, _ := custom.Display(""); out != `<p class="empty">&lt;none&gt;</p>` {
		t.Errorf("custom placeholder = %q", out)
	}
}

func parseFragment(t *testing.T, fragment string) []*html.Node {
	t.Helper()
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		t.Fatalf("ParseFragment(%q): %v", fragment, err)
	}
	return nodes
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func countElements(n *html.Node, a atom.Atom) int {
	count := 0
	walk(n, func(c *html.Node) {
		if c.Type == html.ElementNode && c.DataAtom == a {
			count++
		}
	})
	return count
}

func BenchmarkRender(b *testing.B) {
	doc := strings.Repeat("# Plan\n- *bring* snacks\n- _maybe_ games\n> see <https://example.com|the page>\n```\nraw\n```\n\n", 50)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Render(doc)
	}
}
