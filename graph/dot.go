package graph

import (
	"fmt"
	"io"
	"strconv"

	"github.com/awalterschulze/gographviz"
)

const graphName = "G"

// WriteDOT renders c as an undirected Graphviz graph.
//
// Every node is labelled with labels[i] when present, otherwise with its position, and
// carries its weight. Links without informative reads are omitted; the others are labelled
// "same/opposite" and drawn bold when opposite agreements dominate.
func WriteDOT(w io.Writer, c Container, labels []string) error {
	g := gographviz.NewGraph()
	if err := g.SetName(graphName); err != nil {
		return err
	}
	if err := g.SetDir(false); err != nil {
		return err
	}

	n := c.NumNodes()
	for i := range n {
		pos, err := c.Position(i)
		if err != nil {
			return err
		}
		weight, err := c.Weight(i)
		if err != nil {
			return err
		}
		label := strconv.Itoa(pos)
		if i < len(labels) {
			label = labels[i]
		}

		attrs := map[string]string{
			"label": strconv.Quote(fmt.Sprintf("%s w=%d", label, weight)),
			"shape": "box",
		}
		if err := g.AddNode(graphName, nodeName(i), attrs); err != nil {
			return err
		}
	}

	for a := range n {
		for b := a + 1; b < n; b++ {
			link, err := c.Link(a, b)
			if err != nil {
				return err
			}
			if link.Total() == 0 {
				continue
			}
			attrs := map[string]string{
				"label": strconv.Quote(fmt.Sprintf("%d/%d", link.Same(), link.Opposite())),
			}
			if link.Opposite() > link.Same() {
				attrs["style"] = "bold"
			}
			if err := g.AddEdge(nodeName(a), nodeName(b), false, attrs); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, g.String())

	return err
}

func nodeName(i int) string {
	return "n" + strconv.Itoa(i)
}
