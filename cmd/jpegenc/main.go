// Command jpegenc encodes images as baseline JPEG files.
//
// It accepts PNG, GIF and JPEG input, optionally downscales oversized
// images and writes a grayscale or 4:2:0 color JFIF stream, printing a
// summary or a JSON analysis report.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/vearutop/jpegenc"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fail(err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("jpegenc", flag.ContinueOnError)
	inPath := fs.String("input", "", "input image file (PNG, GIF or JPEG)")
	outPath := fs.String("output", "", "output JPEG file path")
	quality := fs.Int("quality", jpegenc.DefaultQuality, "quality in [1,100], higher is better")
	format := fs.String("format", "auto", "encoding format: grayscale | color_420 | auto")
	jsonOut := fs.Bool("json", false, "print a JSON analysis report to stdout")
	maxDim := fs.Int("max-dim", 0, "downscale input so neither dimension exceeds this, 0 keeps original size")
	fs.SetOutput(os.Stderr)

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		fs.Usage()

		return fmt.Errorf("missing required -input or -output")
	}

	f, err := jpegenc.ParseFormat(*format)
	if err != nil {
		return err
	}

	src, err := loadImage(*inPath, *maxDim)
	if err != nil {
		return err
	}

	img, err := jpegenc.FromImage(src)
	if err != nil {
		return err
	}

	res, err := jpegenc.EncodeFile(img, *outPath, &jpegenc.Options{
		Quality:         *quality,
		Format:          f,
		CollectAnalysis: *jsonOut,
	})
	if err != nil {
		return err
	}

	if *jsonOut {
		out, err := res.Analysis.JSON()
		if err != nil {
			return err
		}
		fmt.Println(string(out))

		return nil
	}

	fmt.Printf("Encoded %s (%dx%d) -> %s\n%s",
		*inPath, res.OriginalWidth, res.OriginalHeight, *outPath, res)

	return nil
}

func loadImage(path string, maxDim int) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if maxDim > 0 {
		b := m.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			m = resize.Thumbnail(uint(maxDim), uint(maxDim), m, resize.Lanczos3)
		}
	}

	return m, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
