package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/critpath/pkg/errors"
	"github.com/matzehuels/critpath/pkg/pipeline"
)

// readNetlist loads a netlist file.
func readNetlist(path string) (string, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(errors.ErrCodeFileNotFound, err, "netlist %s", path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, etc.), it strips that extension.
// This is used when generating multiple files (e.g., circuit.svg, circuit.dot).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifacts writes rendered artifacts to disk, one file per format.
// With a single format and an explicit output path, the artifact goes to
// that exact path; otherwise paths are derived from the input name.
func writeArtifacts(result *pipeline.Result, formats []string, input, output string) error {
	base := basePath(output, input)

	for _, format := range formats {
		path := base + "." + format
		if len(formats) == 1 && output != "" {
			path = output
		}

		out, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := out.Write(result.Artifacts[format]); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}

		label := path
		if result.CacheHits[format] {
			label = fmt.Sprintf("%s (%s)", path, iconCached)
		}
		printFile(label)
	}
	return nil
}
