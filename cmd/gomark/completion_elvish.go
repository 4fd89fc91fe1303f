package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// generateElvishCompletion writes a minimal elvish completer. cobra has
// no built-in elvish generator (only bash/zsh/fish/powershell); this
// mirrors its GenFishCompletion shape closely enough for elvish's
// argument-less, all-flags style of completion.
func generateElvishCompletion(root *cobra.Command, w io.Writer) error {
	fmt.Fprintf(w, "edit:completion:arg-completer[%s] = [@words]{\n", root.Name())
	fmt.Fprintf(w, "  put %s\n", flagCompletionList(root))
	fmt.Fprintln(w, "}")
	return nil
}

func flagCompletionList(root *cobra.Command) string {
	list := ""
	root.Flags().VisitAll(func(f *pflag.Flag) {
		list += "--" + f.Name + " "
	})
	return list
}
