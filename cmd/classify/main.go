// Command classify runs the disease classifier over image files or
// directories from the command line.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/agrovision-ai/go-crops/classes"
	"github.com/agrovision-ai/go-crops/images"
	"github.com/agrovision-ai/go-crops/inference"
	"github.com/agrovision-ai/go-crops/util"
)

func main() {
	checkpoint := flag.String("checkpoint", "models/checkpoint.json", "ONNX graph or checkpoint manifest")
	classPath := flag.String("classes", "models/classes.json", "class label file")
	libPath := flag.String("ort-lib", "", "override ONNX Runtime shared library path")
	backend := flag.String("backend", "auto", "execution provider: auto, cuda, coreml, cpu")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: classify [flags] <image-or-directory> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	set, err := classes.Load(*classPath)
	if err != nil {
		slog.Error("loading class labels", "error", err)
		os.Exit(1)
	}

	classifier, err := inference.NewClassifier(inference.Config{
		CheckpointPath: *checkpoint,
		SharedLibPath:  *libPath,
		Backend:        inference.Backend(*backend),
		Preprocess:     images.DefaultConfig(),
	}, set)
	if err != nil {
		slog.Error("loading model", "error", err)
		os.Exit(1)
	}
	defer classifier.Close()

	failed := 0
	for _, arg := range flag.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			slog.Error("stat failed", "path", arg, "error", err)
			failed++
			continue
		}

		if info.IsDir() {
			files, err := util.LoadDirectoryImageFiles(arg)
			if err != nil {
				slog.Error("reading directory", "path", arg, "error", err)
				failed++
				continue
			}
			for _, file := range files {
				if !classifyOne(classifier, images.BytesSource(file.Path, file.Data)) {
					failed++
				}
			}
			continue
		}

		if !classifyOne(classifier, images.FileSource(arg)) {
			failed++
		}
	}

	if failed > 0 {
		os.Exit(1)
	}
}

// classifyOne prints the prediction for one image. A failure is reported
// and the run continues with the next image.
func classifyOne(classifier *inference.Classifier, src images.Source) bool {
	result, err := classifier.Predict(src)
	if err != nil {
		slog.Error("classification failed", "image", src.Name(), "error", err)
		return false
	}

	fmt.Printf("%s: %s (%.2f%%)\n", src.Name(), result.PredictedClass, result.Confidence)
	for _, label := range classifier.Classes().Labels() {
		fmt.Printf("    %-20s %6.2f%%\n", label, result.Probabilities[label])
	}
	return true
}
