package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	draw9 "9fans.net/go/draw"
	"9fans.net/go/plan9"
	"9fans.net/go/plan9/client"
	"9fans.net/go/plumb"
	"github.com/go-logr/logr"
	xdraw "golang.org/x/image/draw"

	"github.com/anastasop/photostack"
	"github.com/anastasop/photostack/render"
)

const (
	progName = "photostack"

	darkgrey = draw9.Color(uint32(0x666666FF))

	upArrowKey    = 61454
	downArrowKey  = 128
	leftArrowKey  = 61457
	rightArrowKey = 61458
	escKey        = 27
)

var (
	windowSizeFlag = flag.String("w", "800x600", "set window size")
	photoSizeFlag  = flag.String("i", "320x240", "set photo size")
	configFile     = flag.String("c", "", "read the stack configuration from YAML `file`")
	silent         = flag.Bool("q", false, "silent mode, do not log anything")
	verbose        = flag.Bool("v", false, "verbose mode, log the stack and the cache")
	fast           = flag.Bool("f", false, "choose fast over best algorithms for scaling")
	pageSize       = flag.Int("p", 8, "set the page size of the photo cache")
)

var (
	acceptedFormats = []string{".gif", ".jpg", ".jpeg", ".png", ".webp"}

	background = image.NewUniform(color.RGBA{0x66, 0x66, 0x66, 0xff})

	plumber *client.Fid
	logger  = logr.Discard()
)

type DisplayControl struct {
	display *draw9.Display
	errch   chan error
	mctl    *draw9.Mousectl
	kctl    *draw9.Keyboardctl
	bgColor *draw9.Image
}

func usage() {
	fmt.Fprintf(os.Stderr, `usage: %s [-f|-q|-v] [-c config.yaml] [file|dir]..

%s shows photos as a stack. Drag the top photo away to see the next one.

Flags:
`, progName, progName)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	lg, sync, err := newLogger(*verbose, *silent)
	if err != nil {
		log.Fatalf("cannot create logger: %v", err)
	}
	defer sync()
	logger = lg

	windowSize, ok := stringToPoint(*windowSizeFlag)
	if !ok {
		log.Fatalf("cannot compute window size from %s", *windowSizeFlag)
	}
	photoSize, ok := stringToPoint(*photoSizeFlag)
	if !ok {
		log.Fatalf("cannot compute photo size from %s", *photoSizeFlag)
	}

	var opts []photostack.Option
	if *configFile != "" {
		if opts, err = loadConfig(*configFile); err != nil {
			log.Fatal(err)
		}
	}

	scaler := xdraw.Scaler(xdraw.CatmullRom)
	renderer := render.New()
	if *fast {
		scaler = xdraw.BiLinear
		renderer = render.NewFast()
	}

	var photos []*Photo
	for _, p := range flag.Args() {
		photos = append(photos, addImagesOfPath(p)...)
	}
	if len(photos) == 0 {
		os.Exit(0)
	}
	logger.Info("photos found", "count", len(photos))

	connectToPlumber()
	dctl := connectToDisplay(windowSize)
	dctl.cls()

	album := NewAlbum(photos, photoSize, *pageSize, scaler, logger.WithName("album"))
	sv := NewStackView(album, dctl.display.Image.Bounds(), renderer, logger, opts...)
	sv.Connect(dctl)
	sv.Handle()
	sv.Free()
}

// isImageFile checks the file suffix to check if it is an image.
func isImageFile(name string) bool {
	return slices.Contains(acceptedFormats, strings.ToLower(filepath.Ext(name)))
}

// addImagesOfPath adds the image at path, descending it if a directory.
func addImagesOfPath(name string) []*Photo {
	info, err := os.Stat(name)
	if err != nil {
		logger.Error(err, "cannot stat file")
		return nil
	}
	if info.IsDir() {
		return scanForImages(name)
	}
	if !info.Mode().IsRegular() {
		logger.Info("ignoring special file", "path", name)
		return nil
	}
	if !isImageFile(name) {
		return nil
	}
	return []*Photo{NewPhoto(name)}
}

// scanForImages walks dir and adds the images found.
func scanForImages(dir string) []*Photo {
	var photos []*Photo

	walkFn := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			logger.Info("ignoring special file", "path", path)
			return nil
		}
		if !isImageFile(path) {
			return nil
		}
		photos = append(photos, NewPhoto(path))
		return nil
	}

	if err := filepath.WalkDir(dir, walkFn); err != nil {
		logger.Error(err, "scan for images", "dir", dir)
	}

	return photos
}

func connectToDisplay(dims image.Point) *DisplayControl {
	errch := make(chan error)
	disp, err := draw9.Init(errch, "", progName, fmt.Sprintf("%dx%d", dims.X, dims.Y))
	if err != nil {
		log.Fatalf("display: cannot connect: %v", err)
	}
	kctl := disp.InitKeyboard()
	mctl := disp.InitMouse()

	return &DisplayControl{
		display: disp,
		errch:   errch,
		mctl:    mctl,
		kctl:    kctl,
		bgColor: disp.AllocImageMix(darkgrey, darkgrey),
	}
}

func (dctl *DisplayControl) cls() {
	dctl.display.Image.Draw(dctl.display.Image.Bounds(), dctl.bgColor, nil, image.Point{})
	dctl.display.Flush()
}

func connectToPlumber() {
	var err error
	plumber, err = plumb.Open("send", plan9.OWRITE|plan9.OCEXEC)
	if err != nil {
		logger.Info("plumber not available", "err", err.Error())
	}
}

func plumbImage(s string) {
	if plumber == nil {
		logger.Info("plumber not available")
		return
	}

	m := plumb.Message{
		Src:  progName,
		Dir:  filepath.Dir(s),
		Type: "text",
		Data: []byte(s),
	}
	if err := m.Send(plumber); err != nil {
		logger.Error(err, "plumber")
	}
}

func stringToPoint(s string) (image.Point, bool) {
	fields := strings.Split(s, "x")
	if len(fields) != 2 {
		return image.Point{}, false
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil || x <= 0 {
		return image.Point{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil || y <= 0 {
		return image.Point{}, false
	}
	return image.Pt(x, y), true
}
