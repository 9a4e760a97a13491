package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"textpanel/app"
	"textpanel/config"
	"textpanel/document"
	"textpanel/inspect"
	"textpanel/log"
	"textpanel/panel"
	"textpanel/prompt"
	"textpanel/screen"
	"textpanel/store"
	"textpanel/ui"
	"textpanel/ui/layout"
)

// cli holds the persistent flags shared by every command.
type cli struct {
	width       int
	autoWidth   bool
	color       string
	borderColor string
	viewsDir    string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "textpanel",
		Short:         "textpanel - draw fixed-width bordered text panels in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.IntVarP(&c.width, "width", "w", 0, "Panel width (2-200). Defaults to default_width from the config")
	flags.BoolVar(&c.autoWidth, "auto-width", false, "Shrink panels that would not fit the terminal")
	flags.StringVarP(&c.color, "color", "c", "", "Default color for every line (e.g. CYAN)")
	flags.StringVar(&c.borderColor, "border-color", "", "Color of the panel walls")
	flags.StringVar(&c.viewsDir, "views-dir", "", "Directory holding saved views")

	root.AddCommand(
		c.renderCmd(),
		c.showCmd(),
		c.viewsCmd(),
		c.deleteCmd(),
		c.checkCmd(),
		c.menuCmd(),
		c.loadingCmd(),
		c.inspectCmd(),
		c.debugCmd(),
		versionCmd(),
	)
	return root
}

// config loads the config file once and applies flag overrides.
func (c *cli) config() *config.Config {
	if c.cfg != nil {
		return c.cfg
	}

	cfg := config.LoadConfig()
	if c.color != "" {
		cfg.DefaultColor = c.color
	}
	if c.borderColor != "" {
		cfg.BorderColor = c.borderColor
	}
	if c.viewsDir != "" {
		cfg.ViewsDir = c.viewsDir
	}
	c.cfg = cfg
	return cfg
}

// terminalSize returns the size of stdout, or zeros when it is not a
// terminal.
func terminalSize() (int, int) {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0, 0
	}
	w, h, err := term.GetSize(fd)
	if err != nil {
		log.WarningLog.Printf("failed to get terminal size: %v", err)
		return 0, 0
	}
	return w, h
}

func isInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// panelWidth picks the width for a new panel: the flag, then preferred,
// then the configured default.
func (c *cli) panelWidth(preferred int) int {
	w := c.width
	if w == 0 {
		w = preferred
	}
	if w == 0 {
		w = c.config().DefaultWidth
	}
	if c.autoWidth {
		tw, _ := terminalSize()
		w = layout.Fit(w, tw)
	}
	return w
}

func (c *cli) scrollLines() int {
	if n := c.config().ScrollLines; n > 0 {
		return n
	}
	_, th := terminalSize()
	return layout.ScrollLines(th)
}

func (c *cli) store() (*store.FileStore, error) {
	return store.New(c.config().ViewsDir)
}

func (c *cli) compose(path string) (*app.Layout, *document.Builder, error) {
	l, err := app.LoadLayout(path)
	if err != nil {
		return nil, nil, err
	}

	cfg := c.config()
	d := app.Defaults{
		Width:        c.panelWidth(l.Width),
		DefaultColor: cfg.DefaultColor,
		BorderColor:  cfg.BorderColor,
	}
	if c.width != 0 || c.autoWidth {
		l.Width = d.Width
	}
	if c.color != "" {
		l.DefaultColor = c.color
	}
	if c.borderColor != "" {
		l.BorderColor = c.borderColor
	}

	b, err := app.Compose(l, d)
	if err != nil {
		return nil, nil, err
	}
	return l, b, nil
}

func (c *cli) renderCmd() *cobra.Command {
	var (
		save    bool
		name    string
		deploy  bool
		outline bool
	)

	cmd := &cobra.Command{
		Use:   "render <layout.toml>",
		Short: "Draw a panel from a TOML layout file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outline {
				l, err := app.LoadLayout(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), app.Outline(l))
				return nil
			}

			_, b, err := c.compose(args[0])
			if err != nil {
				return err
			}

			if name != "" {
				b.View().SetName(name)
			}
			v, err := b.SaveAndReturn()
			if err != nil {
				return err
			}

			if save {
				s, err := c.store()
				if err != nil {
					return err
				}
				if err := s.SaveView(v, b.Width()); err != nil {
					return err
				}
				defer fmt.Fprintln(cmd.ErrOrStderr(), ui.Status(panel.StatusSuccess, "saved view "+v.Name()))
			}

			if deploy {
				return v.Deploy(cmd.OutOrStdout(), c.scrollLines())
			}
			_, err = io.WriteString(cmd.OutOrStdout(), v.Get())
			return err
		},
	}

	cmd.Flags().BoolVarP(&save, "save", "s", false, "Save the panel as a view")
	cmd.Flags().StringVar(&name, "name", "", "Name of the saved view. Defaults to the layout name, or a generated one")
	cmd.Flags().BoolVarP(&deploy, "deploy", "d", false, "Scroll the terminal clear before printing")
	cmd.Flags().BoolVar(&outline, "outline", false, "List the layout blocks instead of drawing them")
	return cmd
}

func (c *cli) showCmd() *cobra.Command {
	var (
		copyText bool
		deploy   bool
	)

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a saved view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.store()
			if err != nil {
				return err
			}
			v, err := s.LoadView(args[0])
			if err != nil {
				return err
			}

			if copyText {
				if err := clipboard.WriteAll(v.Get()); err != nil {
					return fmt.Errorf("failed to copy view: %w", err)
				}
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Status(panel.StatusSuccess, "copied "+v.Name()+" to the clipboard"))
			}

			if deploy {
				return v.Deploy(cmd.OutOrStdout(), c.scrollLines())
			}
			_, err = io.WriteString(cmd.OutOrStdout(), v.Get())
			return err
		},
	}

	cmd.Flags().BoolVar(&copyText, "copy", false, "Copy the view text to the clipboard")
	cmd.Flags().BoolVarP(&deploy, "deploy", "d", false, "Scroll the terminal clear before printing")
	return cmd
}

const viewNameColumn = 24

var nameCell = lipgloss.NewStyle().Width(viewNameColumn + ui.SpaceSM)

func (c *cli) viewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List saved views",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.store()
			if err != nil {
				return err
			}
			entries, err := s.List()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, ui.TextStyles.Muted.Render("no saved views in "+s.Dir()))
				return nil
			}

			for _, e := range entries {
				name := truncate.StringWithTail(e.Name, viewNameColumn, "…")
				fmt.Fprintf(out, "%s%s%s\n",
					nameCell.Render(name),
					fmt.Sprintf("%3d×%-4d", e.Width, e.Lines),
					ui.TextStyles.Muted.Render(strings.Repeat(" ", ui.SpaceXS)+ui.FormatRelativeTime(e.UpdatedAt)))
			}
			return nil
		},
	}
}

func (c *cli) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>...",
		Short: "Delete saved views",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.store()
			if err != nil {
				return err
			}
			for _, name := range args {
				if err := s.Delete(name); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Status(panel.StatusSuccess, "deleted "+name))
			}
			return nil
		},
	}
}

func (c *cli) checkCmd() *cobra.Command {
	var fromView, show bool

	cmd := &cobra.Command{
		Use:   "check <layout.toml | name>",
		Short: "Verify on an emulated terminal that every line has the panel width",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				text  string
				width int
			)

			if fromView {
				s, err := c.store()
				if err != nil {
					return err
				}
				v, err := s.LoadView(args[0])
				if err != nil {
					return err
				}
				text = v.Get()
				width = c.width
				if width == 0 {
					width = widestLine(text)
				}
			} else {
				_, b, err := c.compose(args[0])
				if err != nil {
					return err
				}
				text, width = b.Render(), b.Width()
			}

			report, err := screen.Check(text, width)
			if err != nil {
				return err
			}
			if show {
				fmt.Fprintln(cmd.OutOrStdout(), report.Screen.Render())
			}
			if !report.OK() {
				fmt.Fprint(cmd.OutOrStdout(), report.String())
				return fmt.Errorf("%w: %d rows do not fill the panel", panel.ErrWidth, len(report.Mismatches))
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Status(panel.StatusSuccess, report.String()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&fromView, "view", false, "Check a saved view instead of a layout file")
	cmd.Flags().BoolVar(&show, "show", false, "Print the panel as the emulated terminal displays it")
	return cmd
}

// widestLine returns the visible width of the widest line of text.
func widestLine(text string) int {
	w := 0
	for _, line := range strings.Split(text, "\n") {
		if n := panel.TextWidth(line); n > w {
			w = n
		}
	}
	return w
}

func (c *cli) menuCmd() *cobra.Command {
	var (
		title    string
		numbered bool
	)

	cmd := &cobra.Command{
		Use:   "menu <item>...",
		Short: "Ask the user to pick one of the items and print the choice",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			width := c.panelWidth(0)

			var (
				n   int
				err error
			)
			if numbered || !isInteractive() {
				n, err = c.chooseNumbered(cmd, title, width, args)
			} else {
				n, err = ui.RunPicker(title, args, width)
			}
			if err != nil {
				if errors.Is(err, ui.ErrCancelled) || errors.Is(err, prompt.ErrNoInput) {
					log.InfoLog.Printf("menu closed without a choice: %v", err)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", n, args[n-1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Header drawn above the options")
	cmd.Flags().BoolVar(&numbered, "numbered", false, "Always read the choice as a typed number")
	return cmd
}

func (c *cli) chooseNumbered(cmd *cobra.Command, title string, width int, items []string) (int, error) {
	m, err := ui.NewMenu(title, width, items...)
	if err != nil {
		return 0, err
	}
	if fg := c.config().DefaultColor; fg != "" {
		m.WithColor(fg)
	}

	// the menu goes to stderr so stdout carries only the answer
	p := prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr()).WithWrap(width)
	return m.Choose(p, cmd.ErrOrStderr())
}

func (c *cli) loadingCmd() *cobra.Command {
	var (
		ticks    int
		interval time.Duration
		colored  bool
	)

	cmd := &cobra.Command{
		Use:   "loading [message]",
		Short: "Play a loading bar",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			}

			b, err := document.New(c.panelWidth(0))
			if err != nil {
				return err
			}
			if interval == 0 {
				interval = c.config().LoadingInterval()
			}

			if colored {
				return b.ColoredLoader(cmd.OutOrStdout(), message, ticks, interval, c.config().DefaultColor)
			}
			return b.Loader(cmd.OutOrStdout(), message, ticks, interval)
		},
	}

	cmd.Flags().IntVarP(&ticks, "ticks", "n", 10, "Number of bar cells")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Delay between frames. Defaults to loading_interval_ms from the config")
	cmd.Flags().BoolVar(&colored, "colored", false, "Draw the bar between walls in color")
	return cmd
}

func (c *cli) inspectCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <layout.toml>",
		Short: "Describe the entries of a composed panel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, b, err := c.compose(args[0])
			if err != nil {
				return err
			}

			tw, th := terminalSize()
			snap := inspect.NewSnapshot().
				WithTerminal(tw, th).
				WithLayout(layout.ComputeConstraints(tw, th)).
				WithComponents(b.InspectNode())
			if err := inspect.WriteSnapshot(snap); err != nil {
				log.WarningLog.Printf("failed to write inspection snapshot: %v", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(snap, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), snap.ToText())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	return cmd
}

func (c *cli) debugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Fprintf(out, "Log: %s\n", log.FileName())
			if path := inspect.GetInspectFile(); path != "" {
				fmt.Fprintf(out, "Inspect: %s\n", path)
			}

			tw, th := terminalSize()
			cons := layout.ComputeConstraints(tw, th)
			fmt.Fprintf(out, "Terminal: %dx%d (%s, panel width %d)\n", tw, th, cons.Mode, cons.PanelWidth)
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of textpanel",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "textpanel version %s\n", version)
		},
	}
}
