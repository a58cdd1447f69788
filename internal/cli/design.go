package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/editor"
	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/render/styles"
	"github.com/matzehuels/resumake/pkg/template"
)

// =============================================================================
// template
// =============================================================================

func (c *CLI) templateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "template [ID]",
		Short:     "Show or switch the resume template",
		Long:      "Without an argument, list the templates. With one, switch to it.\nSwitching only regroups sections; none is changed or dropped.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: template.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				e, err := loadEditor(c.docPath, c.Logger)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, templateTable(e.Policy().Template))
				return nil
			}
			id := template.ID(strings.ToLower(strings.TrimSpace(args[0])))
			return c.editDocument(func(e *editor.Editor) error {
				if err := e.SetTemplate(cmd.Context(), id); err != nil {
					return err
				}
				printSuccess("Template set to %s", id)
				return nil
			})
		},
	}
}

// templateTable renders the template list, marking current.
func templateTable(current template.ID) string {
	var rows [][]string
	for _, id := range template.IDs {
		p := template.MustLookup(id)
		marker := ""
		if id == current {
			marker = iconSelected
		}
		rows = append(rows, []string{marker, string(id), string(p.Family), regionSummary(p)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Template", "Family", "Regions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if row >= 0 && row < len(template.IDs) && template.IDs[row] == current {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}

func regionSummary(p template.Policy) string {
	parts := make([]string, len(p.Regions))
	for i, r := range p.Regions {
		parts[i] = string(r.ID)
		if !r.Draggable {
			parts[i] += "*"
		}
	}
	return strings.Join(parts, " ")
}

// =============================================================================
// style
// =============================================================================

type styleOpts struct {
	size, font, color string
	theme             string
	leftBG, leftText  string
	photo             string
	noPhoto           bool
}

func (c *CLI) styleCommand() *cobra.Command {
	var opts styleOpts

	cmd := &cobra.Command{
		Use:   "style",
		Short: "Show or change fonts, colors, theme and photo",
		Long: fmt.Sprintf(`Without flags, print the current settings.

Font sizes: %s
Fonts:      %s
Themes:     %s`,
			strings.Join(styles.FontSizes, ", "),
			strings.Join(styles.FontNames(), ", "),
			strings.Join(styles.ThemeNames(), ", ")),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !anyChanged(cmd, styleFlags...) {
				e, err := loadEditor(c.docPath, c.Logger)
				if err != nil {
					return err
				}
				printStyles(e)
				return nil
			}
			return c.editDocument(func(e *editor.Editor) error {
				if err := opts.apply(cmd, e); err != nil {
					return err
				}
				printSuccess("Styles updated")
				printStyles(e)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&opts.size, "size", "", "font size: "+strings.Join(styles.FontSizes, ", "))
	cmd.Flags().StringVar(&opts.font, "font", "", "font family: "+strings.Join(styles.FontNames(), ", "))
	cmd.Flags().StringVar(&opts.color, "color", "", "text color (#rgb or #rrggbb)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme: "+strings.Join(styles.ThemeNames(), ", "))
	cmd.Flags().StringVar(&opts.leftBG, "left-bg", "", "left column background (two-column)")
	cmd.Flags().StringVar(&opts.leftText, "left-text", "", "left column text color (two-column)")
	cmd.Flags().StringVar(&opts.photo, "photo", "", "photo file path or http(s) URL")
	cmd.Flags().BoolVar(&opts.noPhoto, "no-photo", false, "remove the photo")
	return cmd
}

var styleFlags = []string{"size", "font", "color", "theme", "left-bg", "left-text", "photo", "no-photo"}

func anyChanged(cmd *cobra.Command, names ...string) bool {
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			return true
		}
	}
	return false
}

func (o styleOpts) apply(cmd *cobra.Command, e *editor.Editor) error {
	changed := cmd.Flags().Changed
	if o.noPhoto && changed("photo") {
		return errors.New(errors.ErrCodeInvalidInput, "--photo and --no-photo are mutually exclusive")
	}
	flag := func(name string, v *string) *string {
		if changed(name) {
			return v
		}
		return nil
	}
	set := editor.Settings{
		FontSize:       flag("size", &o.size),
		FontFamily:     flag("font", &o.font),
		Color:          flag("color", &o.color),
		Theme:          flag("theme", &o.theme),
		LeftBackground: flag("left-bg", &o.leftBG),
		LeftText:       flag("left-text", &o.leftText),
		Photo:          flag("photo", &o.photo),
	}
	if o.noPhoto {
		set.Photo = new(string)
	}
	return e.ApplySettings(cmd.Context(), set)
}

func printStyles(e *editor.Editor) {
	doc := e.Document()
	printKeyValue("Template", string(doc.Template))
	printKeyValue("Theme", doc.Theme)
	printKeyValue("Font", doc.Styles.FontName())
	printKeyValue("Size", doc.Styles.FontSize)
	printKeyValue("Color", doc.Styles.Color)
	printKeyValue("Left column", doc.LeftColumn.Background+" / "+doc.LeftColumn.Text)
	photo := doc.Photo
	if photo == "" {
		photo = "none"
	}
	printKeyValue("Photo", photo)
}
