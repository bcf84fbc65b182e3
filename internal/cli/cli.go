// Package cli builds the image-edit command tree.
//
// The root command is the editor itself: it reads --input, applies every
// requested tool in a fixed order and writes --output. "serve" runs the
// MCP server over stdio and "version" prints build information.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ironsheep/image-edit-tools/internal/envconfig"
	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
	"github.com/ironsheep/image-edit-tools/internal/pipeline"
	"github.com/ironsheep/image-edit-tools/internal/runner"
	"github.com/ironsheep/image-edit-tools/internal/server"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("image-edit %s\n  Build time: %s\n  Git commit: %s\n", b.Version, b.BuildTime, b.GitCommit)
}

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// NewCLI returns the root command.
func NewCLI(info BuildInfo) *cobra.Command {
	// stdout carries results and, under serve, the protocol.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	cobra.EnableCommandSorting = false

	var input, output string
	opts := params.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "image-edit --input PATH --output PATH [flags]",
		Short: "Apply a fixed sequence of edits to an image",
		Long: `Apply a fixed sequence of edits to an image.

Tools always run in this order, whatever the order of the flags:
crop, resize, rotate, filter, brightness (and exposure), contrast,
saturation, temperature, blur, heal, brush, sharpen, text, bg-remove,
clone, sticker.`,
		Version:       info.Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, expandHome(input), expandHome(output), opts)
		},
	}
	rootCmd.SetVersionTemplate(info.String())

	addEditFlags(rootCmd.Flags(), &input, &output, &opts)
	for _, name := range []string{"input", "output"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}

	envVars := envconfig.AsMap()
	appendEnvDocs(rootCmd, []envconfig.EnvVar{envVars["IMAGE_EDIT_DEBUG"]})

	serveCmd := newServeCmd(info)
	appendEnvDocs(serveCmd, []envconfig.EnvVar{
		envVars["IMAGE_EDIT_DEBUG"],
		envVars["IMAGE_EDIT_TIMEOUT"],
		envVars["IMAGE_EDIT_BINARY"],
	})

	rootCmd.AddCommand(serveCmd, newVersionCmd(info))
	return rootCmd
}

func addEditFlags(fs *pflag.FlagSet, input, output *string, o *params.Options) {
	fs.StringVarP(input, "input", "i", "", "Input image path")
	fs.StringVarP(output, "output", "o", "", "Output image path; the extension selects the format")

	fs.StringVar(&o.Crop, "crop", o.Crop, "Crop to left,top,right,bottom")
	fs.StringVar(&o.Resize, "resize", o.Resize, "Resize to width,height")
	fs.Float64Var(&o.Rotate, "rotate", o.Rotate, "Rotate counter-clockwise by degrees, expanding the canvas")
	fs.StringVar(&o.Filter, "filter", o.Filter, "Color preset: "+presetList())

	fs.Float64Var(&o.Brightness, "brightness", o.Brightness, "Brightness factor")
	fs.Float64Var(&o.Exposure, "exposure", o.Exposure, "Exposure in stops, -2.0 .. 2.0")
	fs.Float64Var(&o.Contrast, "contrast", o.Contrast, "Contrast factor")
	fs.Float64Var(&o.Saturation, "saturation", o.Saturation, "Saturation factor")
	fs.IntVar(&o.Temperature, "temperature", o.Temperature, "Warm (+) or cool (-) shift, -100 .. 100")
	fs.Float64Var(&o.Blur, "blur", o.Blur, "Gaussian blur radius")

	fs.StringArrayVar(&o.Heal, "heal", nil, "Heal a spot at x,y,radius (repeatable)")
	fs.StringArrayVar(&o.Brush, "brush", nil, "Paint a dab at x,y,size,color (repeatable)")

	fs.Float64Var(&o.Sharpen, "sharpen", o.Sharpen, "Sharpness factor")

	fs.StringVar(&o.Text, "text", o.Text, "Text to draw")
	fs.StringVar(&o.TextPos, "text-pos", o.TextPos, "Text position x,y")
	fs.IntVar(&o.TextSize, "text-size", o.TextSize, "Text size")
	fs.StringVar(&o.TextColor, "text-color", o.TextColor, "Text color #rrggbb")

	fs.IntVar(&o.BackgroundRemove, "bg-remove", o.BackgroundRemove, "Make near-white pixels transparent, 0-255")
	fs.StringArrayVar(&o.Clone, "clone", nil, "Copy sx,sy,w,h to dx,dy (repeatable)")

	fs.StringVar(&o.Sticker, "sticker", o.Sticker, "Sticker text")
	fs.StringVar(&o.StickerPos, "sticker-pos", o.StickerPos, "Sticker position x,y")
	fs.IntVar(&o.StickerSize, "sticker-size", o.StickerSize, "Sticker size")
	fs.IntVar(&o.StickerOpacity, "sticker-opacity", o.StickerOpacity, "Sticker opacity 0-100")

	fs.SortFlags = false
}

func runEdit(cmd *cobra.Command, input, output string, opts params.Options) error {
	e := &pipeline.Executor{Debug: envconfig.Debug()}
	res, err := e.Edit(input, output, opts)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved edited image: %s\n", res.Output)
	return nil
}

func newServeCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server on stdin and stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Stop on SIGINT or SIGTERM, killing an edit in progress.
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			r, err := runner.New()
			if err != nil {
				return err
			}
			if envconfig.Debug() {
				log.Printf("image-edit-tools %s (built %s, commit %s), editor %s", info.Version, info.BuildTime, info.GitCommit, r.Binary)
			}
			err = server.New(r, info.Version).Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), info.String())
		},
	}
}

// Execute runs cmd and reports any error on its error stream, followed by
// a hint when one applies. It returns the process exit code.
func Execute(ctx context.Context, cmd *cobra.Command) int {
	c, err := cmd.ExecuteContextC(ctx)
	if err == nil {
		return 0
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintf(w, "Error: %v\n", err)
	if tip := tipFor(err, c == cmd); tip != "" {
		fmt.Fprintf(w, "Tip: %s\n", tip)
	}
	return 1
}

// tipFor returns a usage hint for err. Errors without a specific hint get
// a pointer to --help when they came from the edit command itself.
func tipFor(err error, edit bool) string {
	var (
		parseErr  *params.ParseError
		validErr  *params.ValidationError
		decodeErr *imaging.DecodeError
		ioErr     *imaging.IOError
	)
	switch {
	case errors.As(err, &parseErr):
		return "check format for crop/resize/text-pos/sticker-pos/heal/brush/clone values."
	case errors.As(err, &validErr):
		if validErr.Option == "text-size" || validErr.Option == "sticker-size" {
			return fmt.Sprintf("text-size and sticker-size must be at most %d.", params.MaxTextSize)
		}
		return "filter must be one of " + presetList() + "; colors are #rgb, #rrggbb or #rrggbbaa."
	case errors.As(err, &decodeErr):
		if decodeErr.Reason == "input file not found" {
			return "use a real file path from your system."
		}
		return "input must be a PNG, JPEG, GIF, BMP, TIFF or WebP image."
	case errors.As(err, &ioErr):
		return "check that the output directory is writable and the extension is .png, .jpg, .gif, .bmp or .tif."
	case edit:
		return "run 'image-edit --help' for usage."
	}
	return ""
}

func presetList() string {
	names := make([]string, len(params.Presets))
	for i, p := range params.Presets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
