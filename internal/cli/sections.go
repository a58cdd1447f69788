package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/errors"
	pkgio "github.com/matzehuels/resumake/pkg/io"
	"github.com/matzehuels/resumake/pkg/section"
	"github.com/matzehuels/resumake/pkg/template"
)

// shortID is the number of id characters shown in listings.
const shortID = 8

// =============================================================================
// init
// =============================================================================

func (c *CLI) initCommand() *cobra.Command {
	var tmpl string
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new, empty resume document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if fileExists(c.docPath) && !force {
				return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", c.docPath)
			}
			doc := c.Config.newDocument()
			if tmpl != "" {
				doc.Template = template.ID(strings.ToLower(tmpl))
			}
			if err := doc.Normalize(); err != nil {
				return err
			}
			if err := pkgio.Export(doc, c.docPath); err != nil {
				return err
			}
			printSuccess("Created %s", c.docPath)
			printDetail("Template: %s", doc.Template)
			printNextStep("Add a section", "resumake add name")
			return nil
		},
	}

	cmd.Flags().StringVarP(&tmpl, "template", "t", "", "template: "+strings.Join(template.Names(), ", "))
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")
	return cmd
}

// =============================================================================
// add / remove / select
// =============================================================================

func (c *CLI) addCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "add TYPE",
		Short:     "Append a section from the palette",
		Long:      "Append a section from the palette and select it.\n\nTypes: " + typeList(),
		Args:      cobra.ExactArgs(1),
		ValidArgs: typeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := section.ParseType(args[0])
			if err != nil {
				return err
			}
			return c.editDocument(func(e *editor.Editor) error {
				sec, err := e.Add(cmd.Context(), t)
				if err != nil {
					return err
				}
				printSuccess("Added %s %s", sec.Title, StyleDim.Render(short(sec.ID)))
				return nil
			})
		},
	}
}

func (c *CLI) removeCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a section",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.editDocument(func(e *editor.Editor) error {
				sec, err := resolveSection(e, args[0])
				if err != nil {
					return err
				}
				if err := e.Remove(cmd.Context(), sec.ID); err != nil {
					return err
				}
				printSuccess("Removed %s %s", sec.Title, StyleDim.Render(short(sec.ID)))
				return nil
			})
		},
	}
}

func (c *CLI) selectCommand() *cobra.Command {
	var clearSel bool

	cmd := &cobra.Command{
		Use:   "select [ID]",
		Short: "Select a section for editing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !clearSel {
				return errors.New(errors.ErrCodeInvalidInput, "give a section id or --clear")
			}
			return c.editDocument(func(e *editor.Editor) error {
				if clearSel {
					printInfo("Selection cleared")
					return e.Select(cmd.Context(), "")
				}
				sec, err := resolveSection(e, args[0])
				if err != nil {
					return err
				}
				if err := e.Select(cmd.Context(), sec.ID); err != nil {
					return err
				}
				printSuccess("Selected %s %s", sec.Title, StyleDim.Render(short(sec.ID)))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&clearSel, "clear", false, "clear the selection")
	return cmd
}

// =============================================================================
// set
// =============================================================================

type setOpts struct {
	title     string
	content   string
	jobs      []string
	schools   []string
	clearJobs bool
	clearEdu  bool
}

func (c *CLI) setCommand() *cobra.Command {
	var opts setOpts

	cmd := &cobra.Command{
		Use:   "set [ID]",
		Short: "Edit a section's title, content or entries",
		Long: `Edit a section. Without an ID the selected section is edited.

Entries replace the section's whole list:
  --job "Role|Company|2024-03"            (experience, repeatable)
  --school "Degree|School|2019|82%"       (education, repeatable)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := opts.patch(cmd)
			if err != nil {
				return err
			}
			if p.Empty() {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change (see --help)")
			}
			return c.editDocument(func(e *editor.Editor) error {
				ref := e.Selected()
				if len(args) == 1 {
					ref = args[0]
				}
				if ref == "" {
					return errors.New(errors.ErrCodeInvalidInput, "no section selected")
				}
				sec, err := resolveSection(e, ref)
				if err != nil {
					return err
				}
				updated, err := e.Update(cmd.Context(), sec.ID, p)
				if err != nil {
					return err
				}
				printSuccess("Updated %s %s", updated.Title, StyleDim.Render(short(updated.ID)))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.title, "title", "", "section title")
	cmd.Flags().StringVar(&opts.content, "content", "", "section text")
	cmd.Flags().StringArrayVar(&opts.jobs, "job", nil, `job entry "Role|Company|Date"`)
	cmd.Flags().StringArrayVar(&opts.schools, "school", nil, `school entry "Degree|School|Year|Grade"`)
	cmd.Flags().BoolVar(&opts.clearJobs, "clear-jobs", false, "remove all job entries")
	cmd.Flags().BoolVar(&opts.clearEdu, "clear-schools", false, "remove all school entries")
	return cmd
}

// patch builds a section patch from the flags that were actually given, so
// an explicit empty --content clears content while an absent flag leaves it
// alone.
func (o setOpts) patch(cmd *cobra.Command) (section.Patch, error) {
	var p section.Patch
	if cmd.Flags().Changed("title") {
		p.Title = section.String(o.title)
	}
	if cmd.Flags().Changed("content") {
		p.Content = section.String(o.content)
	}
	if len(o.jobs) > 0 || o.clearJobs {
		jobs := []section.Job{}
		for _, s := range o.jobs {
			j, err := parseJob(s)
			if err != nil {
				return p, err
			}
			jobs = append(jobs, j)
		}
		p.Jobs = &jobs
	}
	if len(o.schools) > 0 || o.clearEdu {
		schools := []section.School{}
		for _, s := range o.schools {
			sc, err := parseSchool(s)
			if err != nil {
				return p, err
			}
			schools = append(schools, sc)
		}
		p.Schools = &schools
	}
	return p, nil
}

func parseJob(s string) (section.Job, error) {
	f := splitFields(s)
	if len(f) < 2 || len(f) > 3 {
		return section.Job{}, errors.New(errors.ErrCodeInvalidInput, "invalid job %q (want Role|Company|Date)", s)
	}
	j := section.Job{Role: f[0], Company: f[1]}
	if len(f) == 3 {
		j.Date = f[2]
	}
	return j, nil
}

func parseSchool(s string) (section.School, error) {
	f := splitFields(s)
	if len(f) < 2 || len(f) > 4 {
		return section.School{}, errors.New(errors.ErrCodeInvalidInput, "invalid school %q (want Degree|School|Year|Grade)", s)
	}
	sc := section.School{Degree: f[0], School: f[1]}
	if len(f) > 2 {
		sc.Year = f[2]
	}
	if len(f) > 3 {
		sc.Grade = f[3]
	}
	return sc, nil
}

func splitFields(s string) []string {
	parts := strings.Split(s, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// =============================================================================
// sections
// =============================================================================

func (c *CLI) sectionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "sections",
		Aliases: []string{"ls"},
		Short:   "List sections in document order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEditor(c.docPath, c.Logger)
			if err != nil {
				return err
			}
			secs := e.Sections()
			if len(secs) == 0 {
				printInfo("No sections yet")
				printNextStep("Add one", "resumake add name")
				return nil
			}
			selected := e.Selected()
			for i, s := range secs {
				fmt.Fprintln(out, sectionLine(i+1, s, s.ID == selected))
			}
			return nil
		},
	}
}

func sectionLine(pos int, s section.Section, selected bool) string {
	marker := " "
	if selected {
		marker = StyleHighlight.Render(iconSelected)
	}
	line := fmt.Sprintf("%s %2d  %s  %-10s %s", marker, pos, StyleDim.Render(short(s.ID)), s.Type, StyleValue.Render(s.Title))
	if sum := summary(s); sum != "" {
		line += "  " + StyleDim.Render(sum)
	}
	return line
}

// summary is a one-line description of a section's content.
func summary(s section.Section) string {
	switch s.Kind() {
	case section.KindJobs:
		return plural(len(s.Jobs), "job")
	case section.KindSchools:
		return plural(len(s.Schools), "school")
	}
	text := strings.Join(strings.Fields(s.Content), " ")
	if r := []rune(text); len(r) > 40 {
		text = string(r[:39]) + "…"
	}
	return text
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// =============================================================================
// Section references
// =============================================================================

// resolveSection finds a section by full id, unique id prefix or 1-based
// position in document order.
func resolveSection(e *editor.Editor, ref string) (section.Section, error) {
	ref = strings.TrimSpace(ref)
	if s, ok := e.Get(ref); ok {
		return s, nil
	}
	secs := e.Sections()
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(secs) {
			return section.Section{}, errors.New(errors.ErrCodeNotFound, "no section at position %d", n)
		}
		return secs[n-1], nil
	}
	var match []section.Section
	for _, s := range secs {
		if ref != "" && strings.HasPrefix(s.ID, ref) {
			match = append(match, s)
		}
	}
	switch len(match) {
	case 0:
		return section.Section{}, errors.New(errors.ErrCodeNotFound, "section not found: %q", ref)
	case 1:
		return match[0], nil
	}
	return section.Section{}, errors.New(errors.ErrCodeInvalidInput, "section id %q is ambiguous", ref)
}

func short(id string) string {
	if len(id) > shortID {
		return id[:shortID]
	}
	return id
}

func typeNames() []string {
	names := make([]string, len(section.Types))
	for i, t := range section.Types {
		names[i] = string(t)
	}
	return names
}

func typeList() string { return strings.Join(typeNames(), ", ") }
