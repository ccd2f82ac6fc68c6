package commands

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shellforge/shellforge"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <request.yaml>",
		Short: "Check a request file without generating geometry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := loadRequest(args[0])
			if err != nil {
				return err
			}
			if err := shellforge.Validate(req); err != nil {
				var verrs shellforge.ValidationErrors
				if errors.As(err, &verrs) {
					for _, fe := range verrs {
						log.Error().Str("field", fe.Field).Msg(fe.Msg)
					}
					return fmt.Errorf("%d validation errors", len(verrs))
				}
				return err
			}
			log.Info().Str("file", args[0]).Msg("Request is valid")
			return nil
		},
	}
}
