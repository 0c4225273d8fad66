// Package extract selects parts of an html page by id, class and xpath-like paths and emits
// their cleaned, sanitized inner html.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/umputun/feedmaker/pkg/domain"
)

// Selectors defines which subtrees of a page are extracted
type Selectors struct {
	IDs     []string
	Classes []string
	Paths   []string
}

// Empty reports whether no selector is set, in this case the whole body is extracted
func (s Selectors) Empty() bool {
	return len(s.IDs) == 0 && len(s.Classes) == 0 && len(s.Paths) == 0
}

// Options for a single extraction
type Options struct {
	Encoding string // used when the page is not valid utf-8
	PageURL  string // base for relative img and a urls
	Sanitize bool   // run the result through the html sanitizer
}

// HTMLExtractor extracts and cleans html fragments
type HTMLExtractor struct {
	policy *bluemonday.Policy
}

// NewHTMLExtractor makes extractor with the sanitizing policy for feed content
func NewHTMLExtractor() *HTMLExtractor {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("target").OnElements("a")
	return &HTMLExtractor{policy: p}
}

var (
	reAltBr   = regexp.MustCompile(`alt="([^"]*)<br>([^"]*)"`)
	reBr      = regexp.MustCompile(`<br>`)
	reCtrl    = regexp.MustCompile("[\x01\x08]")
	reXMLDecl = regexp.MustCompile(`<\?xml[^>]+>`)
)

// Normalize applies textual fixes before parsing
func Normalize(s string) string {
	s = reAltBr.ReplaceAllString(s, `alt="$1 $2"`)
	s = reBr.ReplaceAllString(s, "<br/>")
	s = reCtrl.ReplaceAllString(s, "")
	return reXMLDecl.ReplaceAllString(s, "")
}

// Decode converts page bytes to a string. Valid utf-8 is used as is, otherwise the encoding hint
// is applied, and without a usable hint the encoding is sniffed from the content.
func Decode(data []byte, hint string) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	hint = strings.TrimSpace(hint)
	if hint != "" && !strings.EqualFold(hint, "utf-8") && !strings.EqualFold(hint, "utf8") {
		r, err := charset.NewReaderLabel(hint, bytes.NewReader(data))
		if err != nil {
			return "", fmt.Errorf("decode as %s: %w", hint, err)
		}
		res, err := io.ReadAll(r)
		if err != nil {
			return "", fmt.Errorf("decode as %s: %w", hint, err)
		}
		return string(res), nil
	}
	enc, _, _ := charset.DetermineEncoding(data, "text/html")
	res, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode detected encoding: %w", err)
	}
	return string(res), nil
}

// Extract returns inner html of the selected subtrees, ids first, then classes, then paths,
// each group in document order, every subtree emitted once. Empty selectors extract the whole body.
// Returns domain.ErrExtractionEmpty if nothing matched or the result is blank.
func (e *HTMLExtractor) Extract(data []byte, sel Selectors, opts Options) (string, error) {
	text, err := Decode(data, opts.Encoding)
	if err != nil {
		return "", err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Normalize(text)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	body := doc.Find("body").First()
	if body.Length() == 0 {
		return "", fmt.Errorf("no body: %w", domain.ErrExtractionEmpty)
	}

	var nodes []*html.Node
	if sel.Empty() {
		nodes = body.Nodes
	} else {
		nodes = e.selectNodes(doc, body.Nodes[0], sel)
	}
	if len(nodes) == 0 {
		return "", fmt.Errorf("no element matched %+v: %w", sel, domain.ErrExtractionEmpty)
	}

	var sb strings.Builder
	for _, n := range nodes {
		if isHidden(n) {
			continue
		}
		clean(goquery.NewDocumentFromNode(n).Selection, opts.PageURL)
		inner, err := innerHTML(n)
		if err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
		sb.WriteString(inner)
		sb.WriteString("\n")
	}

	res := sb.String()
	if opts.Sanitize {
		res = e.policy.Sanitize(res)
	}
	if strings.TrimSpace(res) == "" {
		return "", fmt.Errorf("blank content for %+v: %w", sel, domain.ErrExtractionEmpty)
	}
	return res, nil
}

// selectNodes collects matches in ids, classes, paths order, dropping repeated nodes
func (e *HTMLExtractor) selectNodes(doc *goquery.Document, body *html.Node, sel Selectors) []*html.Node {
	seen := map[*html.Node]bool{}
	var res []*html.Node
	add := func(nodes []*html.Node) {
		for _, n := range nodes {
			if seen[n] {
				continue
			}
			seen[n] = true
			res = append(res, n)
		}
	}

	all := doc.Find("*")
	for _, id := range sel.IDs {
		add(all.FilterFunction(func(_ int, s *goquery.Selection) bool {
			v, ok := s.Attr("id")
			return ok && v == id
		}).Nodes)
	}
	for _, class := range sel.Classes {
		add(all.FilterFunction(func(_ int, s *goquery.Selection) bool {
			return hasClass(s, class)
		}).Nodes)
	}
	var pathNodes []*html.Node
	for _, p := range sel.Paths {
		pathNodes = append(pathNodes, EvalPath(body, p)...)
	}
	add(sortDocOrder(body, pathNodes))
	return res
}

// hasClass matches a single class name against the class list, a name with spaces must equal the whole attribute
func hasClass(s *goquery.Selection, class string) bool {
	v, ok := s.Attr("class")
	if !ok {
		return false
	}
	if strings.ContainsAny(class, " \t") {
		return strings.Join(strings.Fields(v), " ") == strings.Join(strings.Fields(class), " ")
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
