package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/codebugger/internal/analysis"
	"github.com/codebugger/internal/config"
	"github.com/codebugger/internal/logging"
	"github.com/codebugger/internal/review"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("75"))
	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)
)

// AnalyzeCommand returns the analyze command
func AnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyse a Python file with the configured model",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Aliases: []string{"k"},
				Usage:   "Analysis kind: bugs, explain, optimize, edge-cases, tests or chat",
				Value:   "bugs",
			},
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Usage:   "Model to use (defaults to ai.default_model)",
			},
			&cli.StringFlag{
				Name:    "question",
				Aliases: []string{"q"},
				Usage:   "Question to ask when --kind is chat",
			},
			&cli.StringFlag{
				Name:  "session",
				Usage: "Conversation session for --kind chat",
				Value: "cli",
			},
			&cli.BoolFlag{
				Name:    "dry-run",
				Aliases: []string{"d"},
				Usage:   "Print the classification and prompt without calling the model",
			},
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print the model output without markdown rendering",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Word wrap width for rendered output",
				Value: 100,
			},
		},
		ArgsUsage: "FILE (use - for stdin)",
		Action:    runAnalyze,
	}
}

func readSource(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(name)
	return string(data), err
}

func runAnalyze(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("missing required argument: FILE")
	}
	kind, err := analysis.ParseKind(c.String("kind"))
	if err != nil {
		return err
	}
	if kind == analysis.KindConversational && strings.TrimSpace(c.String("question")) == "" {
		return fmt.Errorf("--question is required for chat")
	}

	code, err := readSource(c.Args().Get(0))
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Setup(cfg.Log.Level, cfg.Log.Pretty); err != nil {
		return err
	}

	a, err := newApp(c.Context, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	req := review.Request{
		Kind:      kind,
		Code:      code,
		Model:     c.String("model"),
		Question:  c.String("question"),
		SessionID: c.String("session"),
	}
	out := c.App.Writer

	if c.Bool("dry-run") {
		prepared, err := a.reviews.Prepare(c.Context, req)
		if err != nil {
			return err
		}
		category := "plain"
		if prepared.Classification != nil {
			category = prepared.Classification.Category.String()
		}
		fmt.Fprintln(out, headerStyle.Render(review.OpName(kind)+" (dry run)"))
		fmt.Fprintln(out, metaStyle.Render(fmt.Sprintf("model %s · category %s · %s of source",
			prepared.Model, category, humanize.Bytes(uint64(len(code))))))
		fmt.Fprintln(out, promptStyle.Render(prepared.Prompt))
		return nil
	}

	result, err := a.reviews.Run(c.Context, req)
	if err != nil {
		return err
	}

	category := "plain"
	if result.Classification != nil {
		category = result.Classification.Category.String()
	}
	fmt.Fprintln(out, headerStyle.Render(review.OpName(kind)))
	fmt.Fprintln(out, metaStyle.Render(fmt.Sprintf("model %s · category %s · %.1fs",
		result.Model, category, result.Duration.Seconds())))

	if c.Bool("raw") {
		fmt.Fprintln(out, result.Output)
		return nil
	}
	rendered, err := renderMarkdown(result.Output, c.Int("width"))
	if err != nil {
		fmt.Fprintln(out, result.Output)
		return nil
	}
	fmt.Fprint(out, rendered)
	return nil
}

func renderMarkdown(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
