package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapviz/internal/cli/output"
	"github.com/leapstack-labs/leapviz/pkg/core"
)

// NewModulesCommand creates the modules command.
func NewModulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modules [name]",
		Short: "List or describe module types",
		Long: `List the module types known to the local runtime, or describe the inputs
and outputs of one module type.`,
		Example: `  # List module types
  leapviz modules

  # Describe the query module
  leapviz modules viz_data_query`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cc, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				return listModules(cc)
			}
			return describeModule(cc, args[0])
		},
	}
}

func listModules(cc *CommandContext) error {
	var infos []*core.ModuleTypeInfo
	for _, name := range cc.Registry.Names() {
		info, err := cc.Registry.Info(name)
		if err != nil {
			return err
		}
		infos = append(infos, info)
	}

	r := cc.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(infos)
	}

	rows := make([][]any, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []any{info.TypeName, info.Doc})
	}
	r.Heading("Modules")
	r.Table([]string{"Name", "Description"}, rows)
	return nil
}

func describeModule(cc *CommandContext, name string) error {
	info, err := cc.Registry.Info(name)
	if err != nil {
		return err
	}

	r := cc.Renderer
	if r.Mode() == output.ModeJSON {
		return r.JSON(info)
	}

	r.Heading(info.TypeName)
	r.Println(info.Doc)
	r.Println()
	r.Table([]string{"Input", "Type", "Description"}, fieldRows(info.InputsSchema))
	r.Table([]string{"Output", "Type", "Description"}, fieldRows(info.OutputsSchema))
	return nil
}

func fieldRows(fields []core.FieldSchema) [][]any {
	rows := make([][]any, 0, len(fields))
	for _, f := range fields {
		rows = append(rows, []any{f.Name, f.Type, f.Doc})
	}
	return rows
}
