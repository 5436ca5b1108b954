// Package mrkdwn renders the chat markup dialect to an HTML fragment.
//
// The dialect is line oriented: fences (```), rules (---), quotes (>), bullets
// (- or *), headers (# and ##) and paragraphs, with inline *bold*, _italic_,
// ~strike~, `code` and <url|label> links. Input is HTML-escaped before any
// rule runs, so the fragment is safe to insert as is.
package mrkdwn

import (
	"strings"
)

const (
	fence    = "```"
	ruleRune = '-'
)

// block is the open multi-line container, if any.
type block int

const (
	blockNone block = iota
	blockList
	blockQuote
)

// state is the per-call parse state. Nothing survives a Render call.
type state struct {
	out    strings.Builder
	open   block
	inCode bool
	code   []string
}

func (s *state) closeBlock() {
	switch s.open {
	case blockList:
		s.out.WriteString("</ul>")
	case blockQuote:
		s.out.WriteString("</blockquote>")
	}
	s.open = blockNone
}

// enter opens b, closing any other container first.
func (s *state) enter(b block) {
	if s.open == b {
		return
	}
	s.closeBlock()
	switch b {
	case blockList:
		s.out.WriteString("<ul>")
	case blockQuote:
		s.out.WriteString("<blockquote>")
	}
	s.open = b
}

func (s *state) flushCode() {
	s.out.WriteString("<pre><code>")
	s.out.WriteString(strings.Join(s.code, "\n"))
	s.out.WriteString("</code></pre>")
	s.code = nil
	s.inCode = false
}

// lineRule classifies one escaped line outside code mode. match returns the
// content left after the marker.
type lineRule struct {
	name  string
	match func(line string) (string, bool)
	apply func(s *state, content string)
}

// lineRules are tried in order; the first match wins. The fence is handled
// before them because it is the only rule active inside a code block.
var lineRules = []lineRule{
	{
		name:  "blank",
		match: func(line string) (string, bool) { return "", strings.TrimSpace(line) == "" },
		apply: func(s *state, _ string) { s.closeBlock() },
	},
	{
		name:  "rule",
		match: matchRule,
		apply: func(s *state, _ string) {
			s.closeBlock()
			s.out.WriteString("<hr>")
		},
	},
	{
		name:  "quote",
		match: matchQuote,
		apply: func(s *state, content string) {
			s.enter(blockQuote)
			s.out.WriteString("<p>" + Inline(content) + "</p>")
		},
	},
	{
		name:  "list",
		match: matchBullet,
		apply: func(s *state, content string) {
			s.enter(blockList)
			s.out.WriteString("<li>" + Inline(content) + "</li>")
		},
	},
	{
		name:  "h2",
		match: prefixMatcher("## "),
		apply: heading("h2"),
	},
	{
		name:  "h1",
		match: prefixMatcher("# "),
		apply: heading("h1"),
	},
	{
		name:  "paragraph",
		match: func(line string) (string, bool) { return line, true },
		apply: func(s *state, content string) {
			s.closeBlock()
			s.out.WriteString("<p>" + Inline(content) + "</p>")
		},
	},
}

func heading(tag string) func(*state, string) {
	return func(s *state, content string) {
		s.closeBlock()
		s.out.WriteString("<" + tag + ">" + Inline(content) + "</" + tag + ">")
	}
}

func prefixMatcher(prefix string) func(string) (string, bool) {
	return func(line string) (string, bool) {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):], true
		}
		return "", false
	}
}

func matchRule(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return "", false
	}
	for _, r := range trimmed {
		if r != ruleRune {
			return "", false
		}
	}
	return "", true
}

// matchQuote sees "> text" as "&gt; text": escaping already happened.
func matchQuote(line string) (string, bool) {
	rest, ok := strings.CutPrefix(line, "&gt;")
	if !ok {
		return "", false
	}
	return strings.TrimPrefix(rest, " "), true
}

func matchBullet(line string) (string, bool) {
	if len(line) < 2 || (line[0] != '-' && line[0] != '*') {
		return "", false
	}
	if line[1] != ' ' && line[1] != '\t' {
		return "", false
	}
	return strings.TrimLeft(line[2:], " \t"), true
}

func isFence(line string) bool {
	return strings.TrimSpace(line) == fence
}

// Render converts markup to an HTML fragment. It never fails: constructs that
// do not close are emitted literally, and an unterminated fence runs to the
// end of the input.
func Render(markup string) string {
	markup = strings.ReplaceAll(markup, "\r\n", "\n")
	markup = strings.TrimSuffix(markup, "\n")
	if markup == "" {
		return ""
	}

	var s state
	for _, line := range strings.Split(Escape(markup), "\n") {
		if isFence(line) {
			if s.inCode {
				s.flushCode()
			} else {
				s.closeBlock()
				s.inCode = true
			}
			continue
		}
		if s.inCode {
			s.code = append(s.code, line)
			continue
		}
		for _, rule := range lineRules {
			if content, ok := rule.match(line); ok {
				rule.apply(&s, content)
				break
			}
		}
	}

	if s.inCode {
		s.flushCode()
	}
	s.closeBlock()
	return s.out.String()
}

// Rules returns the line rule names in priority order, fence first.
func Rules() []string {
	names := []string{"fence"}
	for _, rule := range lineRules {
		names = append(names, rule.name)
	}
	return names
}
