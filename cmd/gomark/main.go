// Command gomark converts an HTML document or fragment to Markdown.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/dpotapov/gomark"
	"github.com/dpotapov/gomark/cmd/gomark/internal/logging"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type runFlags struct {
	output          string
	url             string
	extractHeadings bool
	extractLinks    bool
	extractImages   bool
	extractJSONLD   bool
	frontmatter     bool
	generateMan     string
	generateCompletion string
}

func newRootCmd() *cobra.Command {
	logCfg := logging.NewConfig()
	rf := &runFlags{}

	cmd := &cobra.Command{
		Use:           "gomark [flags] <file|->",
		Short:         "Convert HTML to Markdown",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.MaximumNArgs(1),
	}

	opts := registerFlags(cmd.Flags())
	logCfg.RegisterFlags(cmd.Flags())

	cmd.Flags().StringVarP(&rf.output, "output", "o", "", "output file path (default stdout)")
	cmd.Flags().StringVar(&rf.url, "url", "", "fetch input from this URL instead of a file/stdin")
	cmd.Flags().BoolVar(&rf.extractHeadings, "extract-headings", false, "collect emitted headings (requires --with-metadata)")
	cmd.Flags().BoolVar(&rf.extractLinks, "extract-links", false, "collect <a> elements (requires --with-metadata)")
	cmd.Flags().BoolVar(&rf.extractImages, "extract-images", false, "collect <img> elements (requires --with-metadata)")
	cmd.Flags().BoolVar(&rf.extractJSONLD, "extract-jsonld", false, "collect application/ld+json script bodies (requires --with-metadata)")
	cmd.Flags().BoolVar(&rf.frontmatter, "frontmatter", false, "emit a YAML frontmatter block instead of a JSON {markdown,metadata} envelope (requires --with-metadata)")
	cmd.Flags().StringVar(&rf.generateMan, "generate-man", "", "write a man page (section 1) to this directory and exit")
	cmd.Flags().StringVar(&rf.generateCompletion, "generate-completion", "", "write a shell completion script to stdout and exit: bash, zsh, fish, powershell, elvish")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd, args, rf, opts, logCfg)
	}

	registerCompletions(cmd)

	return cmd
}

func run(cmd *cobra.Command, args []string, rf *runFlags, opts *cliOptions, logCfg *logging.Config) error {
	if rf.generateCompletion != "" {
		return generateCompletion(cmd, rf.generateCompletion, os.Stdout)
	}
	if rf.generateMan != "" {
		return generateMan(cmd, rf.generateMan)
	}

	logger, err := logCfg.NewLogger(os.Stderr)
	if err != nil {
		return err
	}

	gmOpts, err := opts.toOptions()
	if err != nil {
		return err
	}

	if (rf.extractHeadings || rf.extractLinks || rf.extractImages || rf.extractJSONLD || rf.frontmatter) && !gmOpts.ExtractMetadata {
		return fmt.Errorf("--extract-* and --frontmatter require --with-metadata")
	}

	html, err := readInput(args, rf.url)
	if err != nil {
		return err
	}

	var metadata *gomark.MetadataCollector
	convertOpts := []gomark.Option{gomark.WithLogger(logger)}
	if gmOpts.ExtractMetadata {
		metadata = &gomark.MetadataCollector{
			WantsHead:     true,
			WantsHeadings: rf.extractHeadings,
			WantsLinks:    rf.extractLinks,
			WantsImages:   rf.extractImages,
			WantsJSONLD:   rf.extractJSONLD,
		}
		convertOpts = append(convertOpts, gomark.WithMetadataCollector(metadata))
	}

	markdown, err := gomark.Convert(html, gmOpts, convertOpts...)
	if err != nil {
		return err
	}

	output, err := renderOutput(markdown, gmOpts, metadata, rf.frontmatter)
	if err != nil {
		return err
	}

	return writeOutput(rf.output, output)
}

// renderOutput implements spec.md §6's output-format rule: plain
// Markdown by default; a YAML frontmatter block prepended when
// requested and metadata was collected (suppressed under
// convert_as_inline per the Open Question resolution, DESIGN.md); the
// combined JSON envelope otherwise whenever a metadata collector ran.
func renderOutput(markdown string, opts *gomark.Options, metadata *gomark.MetadataCollector, wantFrontmatter bool) (string, error) {
	if metadata == nil {
		return markdown, nil
	}
	if wantFrontmatter {
		if opts.ConvertAsInline {
			return markdown, nil
		}
		fm, err := buildFrontmatter(metadata.Head)
		if err != nil {
			return "", fmt.Errorf("build frontmatter: %w", err)
		}
		return fm + markdown, nil
	}

	envelope := struct {
		Markdown string                    `json:"markdown"`
		Metadata *gomark.MetadataCollector `json:"metadata"`
	}{Markdown: markdown, Metadata: metadata}

	out, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata envelope: %w", err)
	}
	return string(out) + "\n", nil
}

// readInput resolves the CLI's three input modes (spec.md §6): --url,
// a positional file path, "-"/no-argument stdin when a pipe is
// attached. go-isatty distinguishes a piped stdin from an interactive
// terminal with nothing to read.
func readInput(args []string, url string) (string, error) {
	if url != "" {
		return fetchURL(url)
	}

	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	if path != "-" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return string(data), nil
	}

	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return "", fmt.Errorf("no input: pass a file path, --url, or pipe HTML on stdin")
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

func generateCompletion(cmd *cobra.Command, shell string, w io.Writer) error {
	root := cmd.Root()
	switch shell {
	case "bash":
		return root.GenBashCompletionV2(w, true)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	case "elvish":
		return generateElvishCompletion(root, w)
	default:
		return fmt.Errorf("--generate-completion must be one of: bash, zsh, fish, powershell, elvish")
	}
}

func generateMan(cmd *cobra.Command, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	header := &doc.GenManHeader{Title: "GOMARK", Section: "1"}
	return doc.GenManTree(cmd.Root(), header, dir)
}

func registerCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("generate-completion",
		cobra.FixedCompletions([]string{"bash", "zsh", "fish", "powershell", "elvish"}, cobra.ShellCompDirectiveNoFileComp))
}
