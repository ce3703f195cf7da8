package visualization

import (
	"fmt"
	"html"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/netsleuth/mailgraph/pkg/graph"
)

const (
	nodeColor     = "#1f78b4"
	edgeColor     = "grey"
	minNodeRadius = 2.0
	maxNodeRadius = 40.0
)

// DisplayName humanises an email address for labelling: the local part with
// dots replaced by spaces and each word title-cased, so
// "jeff.skilling@enron.com" becomes "Jeff Skilling".
func DisplayName(address string) string {
	local := address
	if at := strings.IndexByte(address, '@'); at >= 0 {
		local = address[:at]
	}
	words := strings.Split(strings.ReplaceAll(local, ".", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		// Decode the first rune; byte slicing would split multibyte runes.
		first, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(w[size:])
	}
	return strings.Join(words, " ")
}

// RenderSVG writes the visual summary of the community core: low-alpha grey
// edges underneath, nodes sized by centrality, and bold labels for the
// nodes in labels. Positions must cover every node of g.
func RenderSVG(w io.Writer, g *graph.Directed, positions map[string]Position, centrality map[string]float64, labels []string, width, height float64, title string) error {
	if _, err := fmt.Fprintf(w,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n",
		width, height, width, height); err != nil {
		return fmt.Errorf("write svg header: %w", err)
	}

	if title != "" {
		fmt.Fprintf(w, `  <title>%s</title>`+"\n", html.EscapeString(title))
	}

	// Edges first so nodes draw on top
	fmt.Fprintln(w, `  <g stroke-opacity="0.05" stroke-width="0.5">`)
	for _, e := range g.Edges() {
		from, okFrom := positions[e.From]
		to, okTo := positions[e.To]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(w, `    <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s"/>`+"\n",
			from.X, from.Y, to.X, to.Y, edgeColor)
	}
	fmt.Fprintln(w, `  </g>`)

	// Nodes sized by centrality
	fmt.Fprintln(w, `  <g fill-opacity="0.8">`)
	for _, id := range g.Nodes() {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		radius := minNodeRadius + centrality[id]*(maxNodeRadius-minNodeRadius)
		fmt.Fprintf(w, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
			pos.X, pos.Y, radius, nodeColor)
	}
	fmt.Fprintln(w, `  </g>`)

	// Labels for the top nodes
	fmt.Fprintln(w, `  <g font-size="12" font-weight="bold" text-anchor="middle">`)
	for _, id := range labels {
		pos, ok := positions[id]
		if !ok {
			continue
		}
		fmt.Fprintf(w, `    <text x="%.2f" y="%.2f">%s</text>`+"\n",
			pos.X, pos.Y, html.EscapeString(DisplayName(id)))
	}
	fmt.Fprintln(w, `  </g>`)

	if _, err := fmt.Fprintln(w, `</svg>`); err != nil {
		return fmt.Errorf("write svg footer: %w", err)
	}
	return nil
}
