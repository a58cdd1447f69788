package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/layout"
	"github.com/matzehuels/resumake/pkg/render/sink"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// layoutCommand prints how the current template arranges the sections.
func (c *CLI) layoutCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show the sections of each template region",
		Long: `Show the sections of each template region.

Positions are printed as region:index, the form accepted by 'resumake move'.
Fixed regions are placed by the template and cannot be rearranged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEditor(c.docPath, c.Logger)
			if err != nil {
				return err
			}
			if asJSON {
				data, err := sink.RenderJSON(e.View())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			printLayout(e.Policy(), e.Sections(), e.Selected())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the region tree as JSON")
	return cmd
}

func printLayout(p template.Policy, seq []section.Section, selected string) {
	printKeyValue("Template", fmt.Sprintf("%s (%s)", p.Template, p.Family))
	fmt.Fprintln(out)

	c := layout.Classify(p, seq)
	for _, rl := range c.Regions {
		lines := make([]string, len(rl.Sections))
		for i, s := range rl.Sections {
			lines[i] = regionLine(rl.Region, i, s, s.ID == selected)
		}
		printRegion(string(rl.Region.ID), !rl.Region.Draggable, lines)
	}
	if len(c.Excluded) > 0 {
		lines := make([]string, len(c.Excluded))
		for i, s := range c.Excluded {
			lines[i] = StyleDim.Render(fmt.Sprintf("%s  %s", short(s.ID), s.Title))
		}
		printRegion("not shown", true, lines)
	}
}

func regionLine(r template.Region, i int, s section.Section, selected bool) string {
	marker := " "
	if selected {
		marker = StyleHighlight.Render(iconSelected)
	}
	pos := "   "
	if r.Draggable {
		pos = fmt.Sprintf("%s:%d", r.ID, i)
	}
	return fmt.Sprintf("%s %-9s %s  %s", marker, StyleDim.Render(pos), StyleValue.Render(s.Title), StyleDim.Render(short(s.ID)))
}

// moveCommand applies one drag-and-drop move from the command line.
func (c *CLI) moveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move FROM TO",
		Short: "Move a section between region positions",
		Long: `Move the section at FROM to TO. Both are region:index positions as
printed by 'resumake layout', for example:

  resumake move left:1 right:0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := layout.ParseRegionRef(args[0])
			if err != nil {
				return err
			}
			to, err := layout.ParseRegionRef(args[1])
			if err != nil {
				return err
			}
			m := layout.Move{From: from, To: to}
			return c.editDocument(func(e *editor.Editor) error {
				res, err := e.Move(cmd.Context(), m)
				if err != nil {
					return err
				}
				if !res.Applied {
					return errors.New(errors.ErrCodeInvalidMove, "%s", res.Reason)
				}
				printSuccess("Moved %s", m)
				printLayout(e.Policy(), e.Sections(), e.Selected())
				return nil
			})
		},
	}
}
