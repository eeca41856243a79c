package spanrope

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

type nodeids struct {
	idTable map[uuid.UUID]int
	max     int
}

func newtable() nodeids {
	return nodeids{
		idTable: make(map[uuid.UUID]int),
		max:     1,
	}
}

func (ids nodeids) find(id uuid.UUID) int {
	return ids.idTable[id]
}

func (ids *nodeids) alloc(id uuid.UUID) int {
	if n := ids.find(id); n > 0 {
		return n
	}
	ids.idTable[id] = ids.max
	ids.max++
	return ids.max - 1
}

// Rope2Dot outputs the segment structure of a rope in Graphviz DOT format
// (for debugging purposes). It returns the first error of w, if any.
func Rope2Dot[K, V any](rope *Node[K, V], w io.Writer) error {
	if rope == nil {
		return fmt.Errorf("%w: nil node", ErrMalformed)
	}
	ids := newtable()
	nodelist, edgelist := "", ""
	err := rope.eachNode(func(node *Node[K, V], depth int) error {
		if err := node.interior.check(); err != nil {
			return fmt.Errorf("%w: node %s", err, node.id)
		}
		ID := ids.alloc(node.id)
		styles := nodeDotStyles(node.IsLeaf(), depth)
		if node.IsLeaf() {
			label := fmt.Sprintf("%s\n%d keys", node.rng, node.KeyCount())
			nodelist += fmt.Sprintf("\"%d\" [label=%s %s];\n", ID, dotQuote(label), styles)
			return nil
		}
		for _, child := range node.interior.segments {
			edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", ID, ids.alloc(child.id))
		}
		nodelist += fmt.Sprintf("\"%d\" [label=%s %s];\n", ID, dotQuote(node.rng.String()), styles)
		return nil
	})
	if err != nil {
		T().Errorf("rope DOT: %s", err.Error())
		return err
	}
	dw := dotWriter{w: w}
	dw.write("strict digraph {\n")
	dw.write("\tnode [fontname=Arial,fontsize=12];\n")
	dw.write(nodelist)
	dw.write(edgelist)
	dw.write("}\n")
	if dw.err != nil {
		T().Errorf("rope DOT: %s", dw.err.Error())
	}
	return dw.err
}

// dotWriter remembers the first write error and skips all writes after it.
type dotWriter struct {
	w   io.Writer
	err error
}

func (dw *dotWriter) write(s string) {
	if dw.err == nil {
		_, dw.err = io.WriteString(dw.w, s)
	}
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

// dotQuote returns s as a quoted DOT string. Line breaks become centered
// line breaks.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

func nodeDotStyles(isleaf bool, depth int) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
	} else {
		s += ",shape=ellipse"
	}
	s += fmt.Sprintf(",fillcolor=\"%s\"", hexcolors[min(depth, len(hexcolors)-1)])
	return s
}

var hexcolors = [...]string{"white", "#CCDDFF", "#AACCFF", "#88BBFF", "#66AAFF",
	"#4499FF", "#2288FF", "#0077FF", "#0066FF"}
