package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/valorant-tools/skin-price-tracker/internal/models"
)

// Valid VP price range for a single skin. Numbers outside this window in a
// table cell are collector numbers, dates or other noise, not prices.
const (
	minSkinPriceVP = 800
	maxSkinPriceVP = 6000
)

var pricePattern = regexp.MustCompile(`(\d{1,2},\d{3}|\d{3,4})`)

// parseCatalog extracts skin entries from the wiki page HTML.
// The page lists purchasable skins in the second and third
// "wikitable sortable" tables; rows without a parsable name or price are
// skipped and counted as malformed rather than failing the whole scrape.
func parseCatalog(r io.Reader) (entries []models.SkinEntry, malformed int, err error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse html: %w", err)
	}

	tables := findNodes(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "table" &&
			hasClass(n, "wikitable") && hasClass(n, "sortable")
	})
	if len(tables) < 2 {
		return nil, 0, ErrTableNotFound
	}

	// Tables 2 and 3 hold the purchasable weapon skins; table 1 is the
	// edition/price legend.
	targets := tables[1:2]
	if len(tables) > 2 {
		targets = tables[1:3]
	}

	for _, table := range targets {
		rows := findNodes(table, func(n *html.Node) bool {
			return n.Type == html.ElementNode && n.Data == "tr"
		})
		for i, row := range rows {
			cells := childElements(row, "td")
			if len(cells) == 0 {
				// header row
				continue
			}
			price, ok := extractPrice(cells)
			if !ok {
				malformed++
				continue
			}
			entries = append(entries, models.SkinEntry{
				Name:    extractName(cells, i),
				PriceVP: price,
			})
		}
	}

	return entries, malformed, nil
}

// extractPrice pulls the VP price out of a table row's cells. The wiki
// marks the price cell with a data-sort-value attribute; when that is
// missing (static renderings drop it) any cell holding a number in the
// valid VP range is accepted.
func extractPrice(cells []*html.Node) (int, bool) {
	for _, cell := range cells {
		if _, ok := attrValue(cell, "data-sort-value"); !ok {
			continue
		}
		text := cleanPriceText(textContent(cell))
		price, err := strconv.Atoi(text)
		if err != nil || price < 0 {
			return 0, false
		}
		return price, true
	}

	for _, cell := range cells {
		match := pricePattern.FindString(textContent(cell))
		if match == "" {
			continue
		}
		price, err := strconv.Atoi(strings.ReplaceAll(match, ",", ""))
		if err != nil {
			continue
		}
		if price >= minSkinPriceVP && price <= maxSkinPriceVP {
			return price, true
		}
	}

	return 0, false
}

func extractName(cells []*html.Node, rowIndex int) string {
	name := strings.TrimSpace(textContent(cells[0]))
	if name == "" || name == "—" || name == "-" {
		return fmt.Sprintf("Skin_%d", rowIndex)
	}
	return name
}

func cleanPriceText(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\n', ',':
			return -1
		}
		return r
	}, s)
}

func findNodes(root *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

// childElements returns descendant elements of the given tag, in document order
func childElements(n *html.Node, tag string) []*html.Node {
	return findNodes(n, func(c *html.Node) bool {
		return c.Type == html.ElementNode && c.Data == tag
	})
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attrValue(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func attrValue(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for child := c.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
