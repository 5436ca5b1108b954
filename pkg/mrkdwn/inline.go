package mrkdwn

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// escaper covers the metacharacters that can open markup, plus the stash
// markers so user text can never name a parked tag.
var escaper = strings.NewReplacer(
	"&", "&amp;", "<", "&lt;", ">", "&gt;",
	string(stashOpen), "&#xE000;", string(stashClose), "&#xE001;",
)

// Escape HTML-escapes &, < and >. The private-use runes U+E000 and U+E001
// become character references.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Link URLs need a scheme and may not hold quotes, whitespace or a raw
// ampersand, so nothing can leave the href attribute. Escaped ampersands from
// query strings are allowed.
const linkURL = `((?:https?://|mailto:)[^\s|"'&]*(?:&amp;[^\s|"'&]*)*)`

const anchorOpen = `<a href="%s" target="_blank" rel="noopener noreferrer">`

// Generated tags are parked behind private-use markers while later rules run,
// so emphasis never rewrites an href or the target attribute.
const (
	stashOpen  = '\uE000'
	stashClose = '\uE001'
)

var stashRef = regexp.MustCompile(string(stashOpen) + `(\d+)` + string(stashClose))

type stash []string

func (s *stash) park(markup string) string {
	*s = append(*s, markup)
	return string(stashOpen) + strconv.Itoa(len(*s)-1) + string(stashClose)
}

func (s stash) restore(text string) string {
	if len(s) == 0 {
		return text
	}
	return stashRef.ReplaceAllStringFunc(text, func(ref string) string {
		i, err := strconv.Atoi(ref[len(string(stashOpen)) : len(ref)-len(string(stashClose))])
		if err != nil || i >= len(s) {
			return ref
		}
		return s[i]
	})
}

// inlineRule is one substitution over already escaped text.
type inlineRule struct {
	name  string
	re    *regexp.Regexp
	apply func(groups []string, s *stash) string
}

func wrap(tag string) func([]string, *stash) string {
	return func(groups []string, _ *stash) string {
		return "<" + tag + ">" + groups[1] + "</" + tag + ">"
	}
}

// inlineRules run in this order. Links go first; the label of a titled link
// stays exposed to the emphasis rules, a bare link is parked whole.
var inlineRules = []inlineRule{
	{
		name: "link",
		re:   regexp.MustCompile(`&lt;` + linkURL + `\|(.+?)&gt;`),
		apply: func(groups []string, s *stash) string {
			return s.park(fmt.Sprintf(anchorOpen, groups[1])) + groups[2] + s.park("</a>")
		},
	},
	{
		name: "autolink",
		re:   regexp.MustCompile(`&lt;` + linkURL + `&gt;`),
		apply: func(groups []string, s *stash) string {
			return s.park(fmt.Sprintf(anchorOpen, groups[1]) + groups[1] + "</a>")
		},
	},
	{
		name:  "code",
		re:    regexp.MustCompile("`([^`]+)`"),
		apply: wrap("code"),
	},
	{
		name:  "bold",
		re:    regexp.MustCompile(`\*([^*]+)\*`),
		apply: wrap("strong"),
	},
	{
		// Word boundaries on both sides; underscores between word
		// characters (snake_case) never open or close.
		name:  "italic",
		re:    regexp.MustCompile(`\b_([^_]+)_\b`),
		apply: wrap("em"),
	},
	{
		name:  "strike",
		re:    regexp.MustCompile(`~([^~]+)~`),
		apply: wrap("del"),
	},
}

// Inline applies the inline rules, in order, to one escaped line.
func Inline(escaped string) string {
	var s stash
	for _, rule := range inlineRules {
		escaped = replaceSubmatches(rule.re, escaped, func(groups []string) string {
			return rule.apply(groups, &s)
		})
	}
	return s.restore(escaped)
}

// replaceSubmatches is ReplaceAllStringFunc with capture groups. Matching runs
// over the whole line so \b sees the real neighbours of every match.
func replaceSubmatches(re *regexp.Regexp, src string, fn func(groups []string) string) string {
	matches := re.FindAllStringSubmatchIndex(src, -1)
	if matches == nil {
		return src
	}
	var b strings.Builder
	last := 0
	for _, loc := range matches {
		groups := make([]string, len(loc)/2)
		for g := range groups {
			if loc[2*g] >= 0 {
				groups[g] = src[loc[2*g]:loc[2*g+1]]
			}
		}
		b.WriteString(src[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(src[last:])
	return b.String()
}

// InlineRules returns the inline rule names in application order.
func InlineRules() []string {
	names := make([]string, len(inlineRules))
	for i, rule := range inlineRules {
		names[i] = rule.name
	}
	return names
}
