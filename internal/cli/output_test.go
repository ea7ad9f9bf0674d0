package cli

import (
	"testing"

	"github.com/matzehuels/critpath/pkg/errors"
)

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{name: "DerivedFromInput", output: "", input: "circuit1.txt", want: "circuit1"},
		{name: "OutputWithFormatExt", output: "out.svg", input: "circuit1.txt", want: "out"},
		{name: "OutputWithOtherExt", output: "out.data", input: "circuit1.txt", want: "out.data"},
		{name: "OutputWithoutExt", output: "diagram", input: "circuit1.txt", want: "diagram"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestReadNetlistMissing(t *testing.T) {
	_, err := readNetlist("does/not/exist.txt")
	if err == nil {
		t.Fatal("readNetlist succeeded for missing file")
	}
	if got := errors.GetCode(err); got != errors.ErrCodeFileNotFound {
		t.Errorf("error code = %s, want FILE_NOT_FOUND", got)
	}
}
