package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Stats summarizes the shape of a tree
type Stats struct {
	Nodes     int `yaml:"nodes"`
	Questions int `yaml:"questions"`
	Leaves    int `yaml:"leaves"`
	// Depth is the number of questions on the longest path
	Depth int `yaml:"depth"`
}

// Collect walks the tree and returns its stats
func Collect(root *Node) Stats {
	var s Stats
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil {
			return
		}
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
			if depth > s.Depth {
				s.Depth = depth
			}
			return
		}
		s.Questions++
		walk(n.yes, depth+1)
		walk(n.no, depth+1)
	}
	walk(root, 0)
	return s
}

// Leaves returns the guesses of all leaves, yes branches first
func Leaves(root *Node) []string {
	var out []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.IsLeaf() {
			out = append(out, n.guess)
			return
		}
		walk(n.yes)
		walk(n.no)
	}
	walk(root)
	return out
}

// View is the serializable form of a Node
type View struct {
	Question string `yaml:"question,omitempty"`
	Yes      *View  `yaml:"yes,omitempty"`
	No       *View  `yaml:"no,omitempty"`
	Guess    string `yaml:"guess,omitempty"`
}

// Export converts the tree into its serializable form
func Export(n *Node) *View {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return &View{Guess: n.guess}
	}
	return &View{
		Question: n.trait,
		Yes:      Export(n.yes),
		No:       Export(n.no),
	}
}

// WriteYAML writes the tree and its stats as a YAML document
func WriteYAML(w io.Writer, root *Node) error {
	doc := struct {
		Stats Stats `yaml:"stats"`
		Tree  *View `yaml:"tree"`
	}{
		Stats: Collect(root),
		Tree:  Export(root),
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return goerr.Wrap(err, "failed to encode tree")
	}
	if err := enc.Close(); err != nil {
		return goerr.Wrap(err, "failed to flush tree")
	}
	return nil
}

// WriteText writes the tree as an indented outline
func WriteText(w io.Writer, root *Node) error {
	var walk func(n *Node, depth int, label string) error
	walk = func(n *Node, depth int, label string) error {
		if n == nil {
			return nil
		}
		indent := strings.Repeat("  ", depth)
		if n.IsLeaf() {
			_, err := fmt.Fprintf(w, "%s%s-> %s\n", indent, label, n.guess)
			return err
		}
		if _, err := fmt.Fprintf(w, "%s%s%s?\n", indent, label, n.trait); err != nil {
			return err
		}
		if err := walk(n.yes, depth+1, "[yes] "); err != nil {
			return err
		}
		return walk(n.no, depth+1, "[no] ")
	}

	if err := walk(root, 0, ""); err != nil {
		return goerr.Wrap(err, "failed to write tree")
	}
	return nil
}
