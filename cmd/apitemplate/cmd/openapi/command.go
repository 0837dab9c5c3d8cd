// Package openapi provides the command that prints the generated API document.
package openapi

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/apitemplate/cmd/application"
	"github.com/agentstation/apitemplate/internal/server"
	"github.com/agentstation/apitemplate/pkg/errors"
)

// NewCommand creates the openapi command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the generated API document",
		Long: `Print the API document served at /swagger/v1/swagger.json.

The document is generated from the same route table the server uses,
with descriptions from the comments file merged in.`,
		Example: `  apitemplate openapi > swagger.json
  apitemplate openapi --format yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := cmd.Flags().GetString("format")
			if err != nil {
				return err
			}
			return run(cmd, app, format)
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Output format: json or yaml")
	return cmd
}

func run(cmd *cobra.Command, app application.Application, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != "json" && format != "yaml" && format != "yml" {
		return errors.NewValidationError("format", format, "must be json or yaml")
	}

	srv, err := server.New(app.Config(), *app.Logger(), server.WithBaseDir(app.BaseDir()))
	if err != nil {
		return err
	}

	data := srv.Document().JSON
	if format != "json" {
		data = srv.Document().YAML
	}

	out := cmd.OutOrStdout()
	if _, err := out.Write(data); err != nil {
		return errors.WrapResource("write", "document", format, err)
	}
	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, _ = out.Write([]byte("\n"))
	}
	return nil
}
