package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/resumake/pkg/errors"
	"github.com/matzehuels/resumake/pkg/section"
)

// checkCommand runs the contact format checks over the document.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check contact sections for malformed emails and phone numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEditor(c.docPath, c.Logger)
			if err != nil {
				return err
			}
			problems := 0
			checked := 0
			for _, s := range e.Sections() {
				if s.Type != section.TypeContact {
					continue
				}
				checked++
				if err := errors.ValidateContact(s.Content); err != nil {
					problems++
					printWarning("%s %s: %s", s.Title, short(s.ID), errors.UserMessage(err))
				}
			}
			switch {
			case checked == 0:
				printInfo("No contact sections")
			case problems == 0:
				printSuccess("%s look fine", plural(checked, "contact section"))
			default:
				return errors.New(errors.ErrCodeInvalidContact, "%s with problems", plural(problems, "contact section"))
			}
			return nil
		},
	}
}
