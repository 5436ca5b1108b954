/*
Package symbols holds the shortcode table: the static mapping from short codes
and keywords to the glyphs inserted by the autocomplete engine.

A Table is built once and is read-only afterwards, so one instance can be
shared by every engine in the process. Codes are indexed in a patricia trie for
exact lookups; keyword and substring search walks the entries in load order so
that candidate ordering stays stable.

Tables come from the builtin Default set or from files:

	table, err := symbols.LoadFile("emoji.yaml")

YAML, TOML and packed msgpack (.bin) files are supported, see DetectFormat.
*/
package symbols

// Lookuper resolves exact codes and searches by term.
type Lookuper interface {
	// Lookup returns the entry registered for code.
	Lookup(code string) (Entry, bool)

	// Search returns entries whose codes or keywords contain term.
	Search(term string) []Entry
}
