package symbols

import (
	"sort"
	"strings"

	"github.com/bastiangx/glyphserve/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Entry is one glyph with its aliases.
// Codes[0] is the canonical code.
type Entry struct {
	Glyph    string   `yaml:"glyph" toml:"glyph" msgpack:"g"`
	Codes    []string `yaml:"codes" toml:"codes" msgpack:"c"`
	Keywords []string `yaml:"keywords,omitempty" toml:"keywords,omitempty" msgpack:"k,omitempty"`
}

// Code returns the canonical code, or "" for an entry without codes.
func (e Entry) Code() string {
	if len(e.Codes) == 0 {
		return ""
	}
	return e.Codes[0]
}

// Table is an immutable symbol table.
type Table struct {
	entries []Entry
	terms   [][]string // lowercased codes and keywords per entry
	index   *patricia.Trie
}

// NewTable builds the code index over entries.
// A code registered by more than one entry resolves to the last one.
func NewTable(entries []Entry) *Table {
	t := &Table{
		entries: make([]Entry, len(entries)),
		terms:   make([][]string, len(entries)),
		index:   patricia.NewTrie(),
	}
	copy(t.entries, entries)

	for i, e := range t.entries {
		terms := make([]string, 0, len(e.Codes)+len(e.Keywords))
		for _, code := range e.Codes {
			key := patricia.Prefix(code)
			if prev := t.index.Get(key); prev != nil {
				log.Debugf("code %q moved from entry %d to %d", code, prev.(int), i)
			}
			t.index.Set(key, i)
			terms = append(terms, strings.ToLower(code))
		}
		for _, kw := range e.Keywords {
			terms = append(terms, strings.ToLower(kw))
		}
		t.terms[i] = terms
	}
	return t
}

// Lookup returns the entry for an exact code.
func (t *Table) Lookup(code string) (Entry, bool) {
	if t == nil || code == "" {
		return Entry{}, false
	}
	item := t.index.Get(patricia.Prefix(code))
	if item == nil {
		return Entry{}, false
	}
	return t.entries[item.(int)], true
}

// Search returns the entries in table order where the trimmed, lowercased
// term is a substring of a code or keyword. An empty term matches nothing.
func (t *Table) Search(term string) []Entry {
	if t == nil {
		return nil
	}
	term = utils.NormalizeTerm(term)
	if term == "" {
		return nil
	}

	var results []Entry
	for i, terms := range t.terms {
		for _, candidate := range terms {
			if strings.Contains(candidate, term) {
				results = append(results, t.entries[i])
				break
			}
		}
	}
	return results
}

// Codes returns every indexed code in lexical order.
func (t *Table) Codes() []string {
	if t == nil {
		return nil
	}
	codes := make([]string, 0, len(t.entries))
	err := t.index.Visit(func(p patricia.Prefix, _ patricia.Item) error {
		codes = append(codes, string(p))
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting symbol index: %v", err)
	}
	sort.Strings(codes)
	return codes
}

// Entries returns a copy of the entries in load order.
func (t *Table) Entries() []Entry {
	if t == nil {
		return nil
	}
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Stats mirrors the completer stats map of the IPC server.
func (t *Table) Stats() map[string]int {
	if t == nil {
		return map[string]int{"entries": 0, "codes": 0}
	}
	return map[string]int{
		"entries": len(t.entries),
		"codes":   len(t.Codes()),
	}
}
