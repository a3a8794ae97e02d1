package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-edit-mcp/internal/detection"
	"github.com/ironsheep/image-edit-mcp/internal/editor"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

// trimBoxOutput adds a readable status next to the numeric result.
type trimBoxOutput struct {
	detection.TrimBox
	Status string `json:"status"`
}

func newTrimBoxOutput(box detection.TrimBox) trimBoxOutput {
	return trimBoxOutput{TrimBox: box, Status: box.Result.String()}
}

// optionalInt returns nil unless the flag was given.
func optionalInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

func optionalBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func addQualityFlag(cmd *cobra.Command) {
	cmd.Flags().Int("quality", 0, "JPEG quality 0-100 or PNG compression 0-9 (default from config)")
}

func addSaveFlags(cmd *cobra.Command) {
	addQualityFlag(cmd)
	cmd.Flags().String("type", "", "Output format: png, jpeg or gif (default: source format)")
}

func saveOptions(cmd *cobra.Command) editor.SaveOptions {
	newType, _ := cmd.Flags().GetString("type")
	return editor.SaveOptions{
		Quality: optionalInt(cmd, "quality"),
		NewType: newType,
	}
}

func addResampleFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("resample", true, "Smooth interpolation (default from config)")
}

func addResizeFlags(cmd *cobra.Command) {
	addSaveFlags(cmd)
	addResampleFlag(cmd)
	cmd.Flags().Bool("white-background", false, "Flatten transparency onto white")
}

func resizeOptions(cmd *cobra.Command) editor.ResizeOptions {
	whiteBackground, _ := cmd.Flags().GetBool("white-background")
	background, _ := cmd.Flags().GetString("background")
	return editor.ResizeOptions{
		SaveOptions:     saveOptions(cmd),
		Resample:        optionalBool(cmd, "resample"),
		WhiteBackground: whiteBackground,
		BackgroundColor: background,
	}
}

func getInt(cmd *cobra.Command, name string) int {
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func getString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}

func mustRequire(cmd *cobra.Command, names ...string) {
	for _, name := range names {
		cobra.CheckErr(cmd.MarkFlagRequired(name))
	}
}

// === Format and orientation ===

func (a *app) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert SRC DEST",
		Short: "Re-encode an image in the format named by DEST's extension",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Convert(args[0], args[1], optionalInt(cmd, "quality"))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	addQualityFlag(cmd)
	return cmd
}

func (a *app) newFlipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flip SRC DEST",
		Short: "Mirror an image vertically or horizontally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Flip(args[0], args[1], getString(cmd, "direction"), saveOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().StringP("direction", "d", "", "vertical (v, y) or horizontal (h, x)")
	addSaveFlags(cmd)
	mustRequire(cmd, "direction")
	return cmd
}

func (a *app) newRotateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rotate SRC DEST",
		Short: "Rotate counter-clockwise by degrees, or cw/ccw for a quarter turn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Rotate(args[0], args[1], getString(cmd, "angle"), getString(cmd, "background"), saveOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String("angle", "", "Degrees counter-clockwise, cw or ccw (default 270)")
	cmd.Flags().String("background", "", "Fill color for exposed corners (default from config)")
	addSaveFlags(cmd)
	return cmd
}

func (a *app) newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "filter SRC DEST NAME",
		Short:     "Apply a named filter",
		Args:      cobra.ExactArgs(3),
		ValidArgs: imaging.FilterNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			advanced, _ := cmd.Flags().GetBool("advanced")
			spec := imaging.FilterSpec{
				Name:      args[2],
				Level:     getInt(cmd, "level"),
				Red:       getInt(cmd, "red"),
				Green:     getInt(cmd, "green"),
				Blue:      getInt(cmd, "blue"),
				Alpha:     getInt(cmd, "alpha"),
				BlockSize: getInt(cmd, "block-size"),
				Advanced:  advanced,
			}
			res, err := a.ed.Filter(args[0], args[1], spec, saveOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("level", 0, "brightness, contrast or smooth level; blur/sketch passes")
	cmd.Flags().Int("red", 0, "colorize red shift")
	cmd.Flags().Int("green", 0, "colorize green shift")
	cmd.Flags().Int("blue", 0, "colorize blue shift")
	cmd.Flags().Int("alpha", 0, "colorize transparency 0-127")
	cmd.Flags().Int("block-size", 0, "pixelate tile size")
	cmd.Flags().Bool("advanced", false, "pixelate by averaging each tile")
	addSaveFlags(cmd)
	return cmd
}

// === Resizing ===

func (a *app) newResizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize SRC DEST",
		Short: "Scale to an exact width and height",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Resize(args[0], args[1], getInt(cmd, "width"), getInt(cmd, "height"), resizeOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("width", 0, "New width in pixels")
	cmd.Flags().Int("height", 0, "New height in pixels")
	addResizeFlags(cmd)
	mustRequire(cmd, "width", "height")
	return cmd
}

func (a *app) newResizeWidthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize-width SRC DEST",
		Short: "Scale to a width, keeping the aspect ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.ResizeToWidth(args[0], args[1], getInt(cmd, "width"), resizeOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("width", 0, "New width in pixels")
	addResizeFlags(cmd)
	mustRequire(cmd, "width")
	return cmd
}

func (a *app) newResizeHeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resize-height SRC DEST",
		Short: "Scale to a height, keeping the aspect ratio",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.ResizeToHeight(args[0], args[1], getInt(cmd, "height"), resizeOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("height", 0, "New height in pixels")
	addResizeFlags(cmd)
	mustRequire(cmd, "height")
	return cmd
}

func (a *app) newShrinkFitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shrink-fit SRC DEST",
		Short: "Shrink to fit within a box; smaller images are left alone",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.ShrinkToFit(args[0], args[1], getInt(cmd, "max-width"), getInt(cmd, "max-height"), resizeOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("max-width", 0, "Maximum width in pixels")
	cmd.Flags().Int("max-height", 0, "Maximum height in pixels")
	addResizeFlags(cmd)
	mustRequire(cmd, "max-width", "max-height")
	return cmd
}

func (a *app) newShrinkSquareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shrink-square SRC DEST",
		Short: "Fit into a padded square canvas",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.ShrinkToSquare(args[0], args[1], getInt(cmd, "size"), resizeOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("size", 0, "Side length in pixels")
	cmd.Flags().String("background", "", "Padding color (default from config)")
	addResizeFlags(cmd)
	mustRequire(cmd, "size")
	return cmd
}

func (a *app) newTrimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim SRC",
		Short: "Remove the uniform border, rewriting SRC in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, box, err := a.ed.ShrinkToNonBackground(args[0], optionalInt(cmd, "quality"), getString(cmd, "background"))
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]interface{}{
				"result":   res,
				"trim_box": newTrimBoxOutput(box),
			})
		},
	}
	cmd.Flags().String("background", "", "Border color (default: top-left pixel)")
	cmd.Flags().Int("quality", 0, "Encoder quality (default 100, clamped per format)")
	return cmd
}

func (a *app) newTrimSquareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim-square SRC DEST",
		Short: "Trim SRC in place, then fit it into a square written to DEST",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.ShrinkToSquareNonBackground(args[0], args[1], getInt(cmd, "size"), editor.ResizeOptions{
				SaveOptions: saveOptions(cmd),
				Resample:    optionalBool(cmd, "resample"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("size", 0, "Side length in pixels")
	addSaveFlags(cmd)
	addResampleFlag(cmd)
	mustRequire(cmd, "size")
	return cmd
}

// === Cropping ===

func (a *app) newCropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crop SRC DEST",
		Short: "Cut out a rectangle given by corners or a named region",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Crop(args[0], args[1], editor.CropOptions{
				SaveOptions: saveOptions(cmd),
				X1:          getInt(cmd, "x1"),
				Y1:          getInt(cmd, "y1"),
				X2:          getInt(cmd, "x2"),
				Y2:          getInt(cmd, "y2"),
				Region:      getString(cmd, "region"),
				NewWidth:    getInt(cmd, "new-width"),
				NewHeight:   getInt(cmd, "new-height"),
				Resample:    optionalBool(cmd, "resample"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	for _, name := range []string{"x1", "y1", "x2", "y2"} {
		cmd.Flags().Int(name, 0, "Corner coordinate")
	}
	cmd.Flags().String("region", "", "Named region instead of coordinates (top-left, left-half, center, ...)")
	cmd.Flags().Int("new-width", 0, "Output width (default: crop width)")
	cmd.Flags().Int("new-height", 0, "Output height (default: crop height)")
	addSaveFlags(cmd)
	addResampleFlag(cmd)
	return cmd
}

func (a *app) newSquareCropCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "square-crop SRC DEST",
		Short: "Trim the longer side equally to make a square",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.SquareCrop(args[0], args[1], getInt(cmd, "size"), saveOptions(cmd))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().Int("size", 0, "Output side length (default: shorter side)")
	addSaveFlags(cmd)
	return cmd
}

// === Overlays ===

func (a *app) newWatermarkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watermark SRC DEST WATERMARK",
		Short: "Overlay another image at an anchor position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Watermark(args[0], args[1], args[2], editor.WatermarkOptions{
				SaveOptions: saveOptions(cmd),
				Anchor:      getString(cmd, "anchor"),
				Opacity:     optionalInt(cmd, "opacity"),
				Margin:      optionalInt(cmd, "margin"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String("anchor", "", "Placement (default center)")
	cmd.Flags().Int("opacity", 0, "Overlay opacity 0-100 (default from config)")
	cmd.Flags().Int("margin", 0, "Distance from the anchored edges (default from config)")
	addSaveFlags(cmd)
	return cmd
}

func (a *app) newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text SRC DEST TEXT",
		Short: "Draw text at an anchor position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Text(args[0], args[1], editor.TextOptions{
				SaveOptions:   saveOptions(cmd),
				Text:          args[2],
				FontFile:      getString(cmd, "font"),
				Size:          getInt(cmd, "size"),
				Color:         getString(cmd, "color"),
				Anchor:        getString(cmd, "anchor"),
				Margin:        optionalInt(cmd, "margin"),
				ShadowColor:   getString(cmd, "shadow-color"),
				ShadowOffsetX: getInt(cmd, "shadow-x"),
				ShadowOffsetY: getInt(cmd, "shadow-y"),
			})
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String("font", "", "TrueType/OpenType font file (default from config, else Go Regular)")
	cmd.Flags().Int("size", 0, "Font size in pixels (default from config)")
	cmd.Flags().String("color", "", "Text color (default from config)")
	cmd.Flags().String("anchor", "", "Placement (default center)")
	cmd.Flags().Int("margin", 0, "Distance from the anchored edges")
	cmd.Flags().String("shadow-color", "", "Shadow color; omit for no shadow")
	cmd.Flags().Int("shadow-x", 0, "Shadow X offset")
	cmd.Flags().Int("shadow-y", 0, "Shadow Y offset")
	addSaveFlags(cmd)
	return cmd
}

// === Inspection ===

func (a *app) newColorAtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color-at PATH X Y",
		Short: "Print the color of one pixel",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: x: %v", imaging.ErrInvalidArgument, err)
			}
			y, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("%w: y: %v", imaging.ErrInvalidArgument, err)
			}
			res, err := a.ed.ColorAt(args[0], x, y)
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}

func (a *app) newTrimBoxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trim-box PATH",
		Short: "Print the bounding box of non-background content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			box, err := a.ed.TrimBox(args[0], getString(cmd, "background"))
			if err != nil {
				return err
			}
			return printJSON(cmd, newTrimBoxOutput(box))
		},
	}
	cmd.Flags().String("background", "", "Background color (default: top-left pixel)")
	return cmd
}

func (a *app) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info PATH",
		Short: "Print dimensions, format and file size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.ed.Info(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
}
