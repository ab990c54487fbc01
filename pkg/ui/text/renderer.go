// Package text renders command results for people. Styling comes from the
// styles package and disappears when it is disabled.
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/typst-community/utpm/pkg/types"
	"github.com/typst-community/utpm/pkg/ui/styles"
	"github.com/typst-community/utpm/pkg/ui/tree"
)

// Renderer writes human readable output
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders any result type as text
func (r *Renderer) RenderResult(result interface{}) error {
	var b strings.Builder
	var err error

	switch v := result.(type) {
	case *types.LinkResult:
		link(&b, v)
	case *types.InitResult:
		initialized(&b, v)
	case *types.InstallResult:
		install(&b, v)
	case *types.DependenciesResult:
		dependencies(&b, v)
	case *types.BumpResult:
		bump(&b, v)
	case *types.SyncResult:
		sync(&b, v)
	case *types.CloneResult:
		clone(&b, v)
	case *types.PublishResult:
		publish(&b, v)
	case *types.MetadataResult:
		metadata(&b, v)
	case *types.TestResult:
		test(&b, v)
	case *types.ListResult:
		err = list(&b, v)
	case *types.PathResult:
		fmt.Fprintln(&b, v.Path)
	case *types.UnlinkResult:
		unlink(&b, v)
	case *types.BulkDeleteResult:
		bulkDelete(&b, v)
	case *types.GetResult:
		get(&b, v)
	case *types.GenConfigResult:
		genConfig(&b, v)
	default:
		fmt.Fprintf(&b, "%+v\n", result)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(r.output, b.String())
	return err
}

// RenderError renders an error in the Error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", styles.Render("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func dryRun(b *strings.Builder, on bool) {
	if on {
		fmt.Fprintln(b, styles.Render("DryRunBanner", "[dry-run] nothing was written"))
	}
}

func link(b *strings.Builder, v *types.LinkResult) {
	dryRun(b, v.DryRun)
	how := "copied"
	if v.Symlink {
		how = "symlinked"
	}
	if v.Replaced {
		fmt.Fprintf(b, "%s %s\n", styles.Render("Warning", "Replaced"), styles.Render("Package", v.Spec))
	}
	fmt.Fprintf(b, "Project %s to: %s\n", how, styles.Render("Path", v.Destination))
	fmt.Fprintln(b, "Try importing with:")
	fmt.Fprintf(b, "  %s\n", styles.Render("Code", v.Import))
}

func initialized(b *strings.Builder, v *types.InitResult) {
	dryRun(b, v.DryRun)
	if !v.Created {
		fmt.Fprintf(b, "%s %s already exists, use --force to overwrite it\n",
			styles.Render("Warning", "!"), styles.Render("Path", v.Path))
		return
	}
	fmt.Fprintf(b, "%s File created to %s\n", styles.Render("Success", "✓"), styles.Render("Path", v.Path))
	for _, f := range v.Files {
		fmt.Fprintf(b, "  + %s\n", styles.Render("Path", f))
	}
}

func install(b *strings.Builder, v *types.InstallResult) {
	dryRun(b, v.DryRun)
	if len(v.Packages) == 0 {
		fmt.Fprintln(b, styles.Render("Muted", "Nothing to install"))
		return
	}
	for _, p := range v.Packages {
		if p.Skipped {
			fmt.Fprintf(b, "%s %s\n", styles.Render("Muted", "~"), styles.Render("Package", p.Spec))
			continue
		}
		fmt.Fprintf(b, "%s %s\n", styles.Render("Success", "+"), styles.Render("Package", p.Spec))
	}
}

func dependencies(b *strings.Builder, v *types.DependenciesResult) {
	dryRun(b, v.DryRun)
	verb := "Added"
	if v.Action == types.DependencyRemoved {
		verb = "Removed"
	}
	for _, uri := range v.Changed {
		fmt.Fprintf(b, "%s %s\n", verb, styles.Render("Package", uri))
	}
	for _, uri := range v.Missing {
		fmt.Fprintf(b, "%s %s (not found)\n", styles.Render("Warning", "Can't remove"), uri)
	}
	if len(v.Changed) == 0 && len(v.Missing) == 0 {
		fmt.Fprintln(b, styles.Render("Muted", "Nothing has changed"))
	}
	if v.Install != nil {
		install(b, v.Install)
	}
}

func bump(b *strings.Builder, v *types.BumpResult) {
	dryRun(b, v.DryRun)
	fmt.Fprintf(b, "New version: %s %s\n", styles.Render("Version", v.To), styles.Render("Muted", "(was "+v.From+")"))
	for _, f := range v.Files {
		fmt.Fprintf(b, "  %s %s\n", styles.Render("Path", f.Path), styles.Render("Muted", fmt.Sprintf("(%d)", f.Replacements)))
	}
}

func sync(b *strings.Builder, v *types.SyncResult) {
	dryRun(b, v.DryRun)
	if v.Outdated() == 0 {
		fmt.Fprintf(b, "%s All imports are up to date\n", styles.Render("Success", "✓"))
		return
	}
	arrow := "->"
	if v.Check {
		arrow = "can be updated to"
	}
	for _, f := range v.Files {
		fmt.Fprintf(b, "%s\n", styles.Render("Path", f.Path))
		for _, u := range f.Updates {
			fmt.Fprintf(b, "  %s:%s %s %s\n",
				styles.Render("Package", u.Package), u.From, arrow, styles.Render("Version", u.To))
		}
	}
}

func clone(b *strings.Builder, v *types.CloneResult) {
	dryRun(b, v.DryRun)
	if v.Downloaded {
		fmt.Fprintf(b, "%s %s downloaded to %s\n", styles.Render("Success", "+"),
			styles.Render("Package", v.Spec), styles.Render("Path", v.Source))
	} else {
		fmt.Fprintf(b, "Package %s found locally at %s\n", styles.Render("Package", v.Spec), styles.Render("Path", v.Source))
	}
	if v.DownloadOnly || v.Destination == "" {
		return
	}
	how := "copied"
	if v.Symlink {
		how = "symlinked"
	}
	fmt.Fprintf(b, "%s %s to %s\n", styles.Render("Success", "✓"), how, styles.Render("Path", v.Destination))
}

func publish(b *strings.Builder, v *types.PublishResult) {
	dryRun(b, v.DryRun)
	fmt.Fprintf(b, "%d files copied to %s\n", len(v.Files), styles.Render("Path", v.PackagePath))
	if v.Prepared {
		fmt.Fprintf(b, "%s %s is ready to be submitted\n", styles.Render("Success", "✓"), styles.Render("Package", v.Spec))
		return
	}
	if v.Commit != "" {
		fmt.Fprintf(b, "Pushed %s to %s\n", styles.Render("Muted", v.Commit), styles.Render("Path", v.Fork))
	}
	if v.PullRequest != "" {
		fmt.Fprintf(b, "%s Pull request opened: %s\n", styles.Render("Success", "✓"), v.PullRequest)
	}
}

func metadata(b *strings.Builder, v *types.MetadataResult) {
	if len(v.Fields) == 1 {
		f := v.Fields[0]
		if !f.Set {
			fmt.Fprintf(b, "Field '%s' is not set\n", f.Name)
			return
		}
		fmt.Fprintln(b, f.Value)
		return
	}
	for _, f := range v.Fields {
		if !f.Set {
			continue
		}
		fmt.Fprintf(b, "%s: %s\n", styles.Render("Bold", f.Name), f.Value)
	}
}

func test(b *strings.Builder, v *types.TestResult) {
	dryRun(b, v.DryRun)
	cmd := strings.TrimSpace(v.Runner + " " + strings.Join(v.Args, " "))
	if v.DryRun {
		fmt.Fprintf(b, "Would run %s in %s\n", styles.Render("Code", cmd), styles.Render("Path", v.Dir))
		return
	}
	fmt.Fprintf(b, "%s All tests passed! %s\n", styles.Render("Success", "✓"), styles.Render("Muted", "("+cmd+")"))
}

func list(b *strings.Builder, v *types.ListResult) error {
	for _, t := range v.Trees {
		if v.Tree {
			out, err := tree.Render(t)
			if err != nil {
				return err
			}
			b.WriteString(out)
			continue
		}
		fmt.Fprintln(b, styles.Render("Header", t.Path))
		if t.Count() == 0 {
			fmt.Fprintln(b, styles.Render("Muted", "  no packages"))
		}
		for _, ns := range t.Namespaces {
			for _, p := range ns.Packages {
				for _, ver := range p.Versions {
					fmt.Fprintf(b, "  %s%s:%s\n",
						styles.Render("Namespace", "@"+ns.Name+"/"),
						styles.Render("Package", p.Name),
						styles.Render("Version", ver))
				}
			}
		}
	}
	return nil
}

func unlink(b *strings.Builder, v *types.UnlinkResult) {
	dryRun(b, v.DryRun)
	if !v.Removed {
		fmt.Fprintln(b, styles.Render("Muted", "Nothing removed"))
		return
	}
	fmt.Fprintf(b, "%s %s removed\n", styles.Render("Success", "-"), styles.Render("Package", v.Target))
}

func bulkDelete(b *strings.Builder, v *types.BulkDeleteResult) {
	for _, f := range v.Failures {
		fmt.Fprintf(b, "%s %s: %s\n", styles.Render("Error", "X"), f.Name, f.Error)
	}
	fmt.Fprintf(b, "%d/%d successful\n", v.Succeeded, v.Total)
}

func get(b *strings.Builder, v *types.GetResult) {
	for _, name := range v.Missing {
		fmt.Fprintf(b, "%s Package not found: %s\n", styles.Render("Warning", "!"), name)
	}
	for _, p := range v.Packages {
		fmt.Fprintf(b, "%s:%s", styles.Render("Package", p.Name), styles.Render("Version", p.Version))
		if p.Description != "" {
			fmt.Fprintf(b, " %s", styles.Render("Muted", "- "+p.Description))
		}
		fmt.Fprintln(b)
		if len(p.Authors) > 0 {
			fmt.Fprintf(b, "  authors: %s\n", strings.Join(p.Authors, ", "))
		}
		if p.License != "" {
			fmt.Fprintf(b, "  license: %s\n", p.License)
		}
		if p.Repository != "" {
			fmt.Fprintf(b, "  repository: %s\n", p.Repository)
		}
	}
}

func genConfig(b *strings.Builder, v *types.GenConfigResult) {
	dryRun(b, v.DryRun)
	if v.Path == "" {
		b.WriteString(v.Content)
		return
	}
	if v.Written {
		fmt.Fprintf(b, "%s Config written to %s\n", styles.Render("Success", "✓"), styles.Render("Path", v.Path))
		return
	}
	fmt.Fprintf(b, "Would write config to %s\n", styles.Render("Path", v.Path))
}
