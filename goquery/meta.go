package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/mdparse"
)

var _ mdparse.MetaReader = (*MetaReader)(nil)

// metaSelector maps an element in the page head to a metadata key.
type metaSelector struct {
	Selector string
	Attr     string
	Key      string
}

// headSelectors are read in order. Later matches do not overwrite earlier
// ones, so the first non-empty value for a key wins.
var headSelectors = []metaSelector{
	{Selector: `meta[name="description"]`, Attr: "content", Key: "description"},
	{Selector: `meta[property="og:description"]`, Attr: "content", Key: "description"},
	{Selector: `meta[name="author"]`, Attr: "content", Key: "author"},
	{Selector: `meta[name="keywords"]`, Attr: "content", Key: "keywords"},
	{Selector: `meta[name="generator"]`, Attr: "content", Key: "generator"},
	{Selector: `link[rel="canonical"]`, Attr: "href", Key: "canonical"},
	{Selector: `html`, Attr: "lang", Key: "lang"},
}

// MetaReader reads page metadata from the HTML head. Keys follow front
// matter naming so that the values can seed a document's metadata.
type MetaReader struct{}

// NewMetaReader creates a new MetaReader.
func NewMetaReader() *MetaReader {
	return &MetaReader{}
}

// ReadMeta returns the title, description, canonical link and Open Graph
// properties found in html. Missing fields are omitted.
func (r *MetaReader) ReadMeta(html string) (map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, mdparse.Errorf(mdparse.EINVALID, "failed to parse HTML: %v", err)
	}

	meta := make(map[string]string)
	set := func(key, value string) {
		value = strings.Join(strings.Fields(value), " ")
		if value == "" {
			return
		}
		if _, ok := meta[key]; !ok {
			meta[key] = value
		}
	}

	set("title", doc.Find("head title").First().Text())
	doc.Find(`meta[property="og:title"]`).Each(func(_ int, sel *goquery.Selection) {
		set("title", sel.AttrOr("content", ""))
	})

	for _, s := range headSelectors {
		doc.Find(s.Selector).Each(func(_ int, sel *goquery.Selection) {
			set(s.Key, sel.AttrOr(s.Attr, ""))
		})
	}

	doc.Find(`meta[property^="og:"]`).Each(func(_ int, sel *goquery.Selection) {
		prop := sel.AttrOr("property", "")
		if prop == "og:title" || prop == "og:description" {
			return
		}
		set(strings.Replace(prop, ":", "_", 1), sel.AttrOr("content", ""))
	})

	return meta, nil
}
