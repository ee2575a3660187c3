package cinder

import (
	"bufio"
	"io"
)

// PrintTree writes an indented rendering of the tree rooted at n.
func PrintTree(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(n.String())
	bw.WriteByte('\n')
	printKids(bw, n, "")

	return bw.Flush()
}

func printKids(w *bufio.Writer, n *Node, prefix string) {
	for i, kid := range n.Kids {
		last := i == len(n.Kids)-1

		w.WriteString(prefix)
		w.WriteString("+--")
		w.WriteString(kid.String())
		w.WriteByte('\n')

		if last {
			printKids(w, kid, prefix+"   ")
		} else {
			printKids(w, kid, prefix+"|  ")
		}
	}
}
