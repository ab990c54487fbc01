// Package tree draws installed package trees with pterm.
package tree

import (
	"github.com/pterm/pterm"

	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui/styles"
)

// Node converts a package tree into pterm nodes: root, @namespace, package,
// version.
func Node(t *types.PackageTree) pterm.TreeNode {
	root := pterm.TreeNode{Text: styles.Render("Path", t.Path)}
	for _, ns := range t.Namespaces {
		nsNode := pterm.TreeNode{Text: styles.Render("Namespace", "@"+ns.Name)}
		for _, p := range ns.Packages {
			pkgNode := pterm.TreeNode{Text: styles.Render("Package", p.Name)}
			for _, v := range p.Versions {
				pkgNode.Children = append(pkgNode.Children, pterm.TreeNode{Text: styles.Render("Version", v)})
			}
			nsNode.Children = append(nsNode.Children, pkgNode)
		}
		root.Children = append(root.Children, nsNode)
	}
	return root
}

// Render returns the tree as a string.
func Render(t *types.PackageTree) (string, error) {
	return pterm.DefaultTree.WithRoot(Node(t)).Srender()
}
