package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/bondpick/internal/formatter"
	"github.com/oakwood-commons/bondpick/pkg/catalog"
)

// whereFieldSuggestions are the record fields visible to --where expressions.
var whereFieldSuggestions = []string{
	"_.id", "_.description", "_.isin", "_.issuer", "_.maturity", "_.currency",
}

func completeWhere(_ *cobra.Command, _ []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	out := make([]cobra.Completion, 0, len(whereFieldSuggestions))
	for _, s := range whereFieldSuggestions {
		if strings.HasPrefix(s, toComplete) {
			out = append(out, s)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

func completeOutput(_ *cobra.Command, _ []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
	out := make([]cobra.Completion, len(formatter.Formats))
	for i, f := range formatter.Formats {
		out[i] = string(f)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeDescription offers the descriptions of the built-in inventory (or
// --catalog when already given) that start with the typed prefix.
func completeDescription(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cat := catalog.Default()
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		loaded, err := catalog.LoadFile(path)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		cat = loaded
	}
	var out []cobra.Completion
	for _, in := range cat.All() {
		if strings.HasPrefix(in.Description, toComplete) {
			out = append(out, cobra.CompletionWithDesc(in.Description, in.ID+" "+in.ISIN))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func init() { //nolint:gochecknoinits
	_ = rootCmd.RegisterFlagCompletionFunc("where", completeWhere)
	_ = rootCmd.RegisterFlagCompletionFunc("output", completeOutput)
	_ = rootCmd.MarkPersistentFlagFilename("catalog", "yaml", "yml", "json", "toml")
	_ = rootCmd.MarkPersistentFlagFilename("config-file", "yaml", "yml")
	selectCmd.ValidArgsFunction = completeDescription
}
