package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// pathStep is one token of an element path: name, name[index] or *[@id="x"]
type pathStep struct {
	name  string
	index int // 1-based position among same-name siblings, 0 for all
	id    string
}

var rePathStep = regexp.MustCompile(`^(?:(\w+)(?:\[(\d+)\])?|\*\[@id=["']([\w-]+)["']\])$`)

func parseStep(token string) (pathStep, bool) {
	m := rePathStep.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return pathStep{}, false
	}
	if m[3] != "" {
		return pathStep{id: m[3]}, true
	}
	st := pathStep{name: strings.ToLower(m[1])}
	if m[2] != "" {
		st.index, _ = strconv.Atoi(m[2])
	}
	return st, true
}

// EvalPath evaluates an xpath-like element path against body. Leading "", html and body tokens are
// skipped, a "//" prefix matches the first step anywhere below body. A *[@id="x"] step matches the
// single descendant with this id, more than one match yields nothing.
func EvalPath(body *html.Node, path string) []*html.Node {
	path = strings.TrimSpace(path)
	anywhere := strings.HasPrefix(path, "//")
	tokens := strings.Split(path, "/")
	i := 0
	for i < len(tokens) && (tokens[i] == "" || tokens[i] == "html" || tokens[i] == "body") {
		i++
	}

	var steps []pathStep
	for _, t := range tokens[i:] {
		if t == "" {
			continue
		}
		st, ok := parseStep(t)
		if !ok {
			return nil
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil
	}

	current := []*html.Node{body}
	for n, st := range steps {
		var next []*html.Node
		for _, parent := range current {
			switch {
			case st.id != "":
				if found := findByID(parent, st.id); len(found) == 1 {
					next = append(next, found[0])
				}
			case n == 0 && anywhere:
				walkElements(parent, func(el *html.Node) {
					next = append(next, matchChildren(el, st)...)
				})
			default:
				next = append(next, matchChildren(parent, st)...)
			}
		}
		current = next
	}
	return current
}

// matchChildren returns element children of parent matching the step name and position
func matchChildren(parent *html.Node, st pathStep) []*html.Node {
	var res []*html.Node
	pos := 0
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != st.name {
			continue
		}
		pos++
		if st.index == 0 {
			res = append(res, c)
			continue
		}
		if pos == st.index {
			return append(res, c)
		}
	}
	return res
}

func findByID(root *html.Node, id string) []*html.Node {
	var res []*html.Node
	walkElements(root, func(el *html.Node) {
		if el == root {
			return
		}
		for _, a := range el.Attr {
			if a.Key == "id" && a.Val == id {
				res = append(res, el)
				return
			}
		}
	})
	return res
}

// walkElements calls fn for root and every element below it in document order
func walkElements(root *html.Node, fn func(*html.Node)) {
	if root.Type == html.ElementNode {
		fn(root)
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		walkElements(c, fn)
	}
}

// sortDocOrder returns unique nodes sorted by their pre-order position under root
func sortDocOrder(root *html.Node, nodes []*html.Node) []*html.Node {
	if len(nodes) < 2 {
		return nodes
	}
	order := map[*html.Node]int{}
	idx := 0
	walkElements(root, func(el *html.Node) {
		order[el] = idx
		idx++
	})
	seen := map[*html.Node]bool{}
	res := make([]*html.Node, 0, len(nodes))
	for _, n := range nodes {
		if !seen[n] {
			seen[n] = true
			res = append(res, n)
		}
	}
	sort.SliceStable(res, func(i, j int) bool { return order[res[i]] < order[res[j]] })
	return res
}
