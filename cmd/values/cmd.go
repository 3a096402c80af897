// Package values prints the distinct values of a catalog field.
package values

import (
	"fmt"
	"io"
	"os"

	"github.com/jhaapala/libris/internal/catalog"
	"github.com/jhaapala/libris/internal/config"
)

// ValuesCmd represents the values command
type ValuesCmd struct {
	Field string `arg:"" help:"Field to list: title, author, language or tags" enum:"title,author,language,tags"`
}

func (v *ValuesCmd) Run() error {
	return ValuesFunc(Options{
		DataFile: config.DataFile,
		Field:    v.Field,
		Out:      os.Stdout,
	})
}

var ValuesFunc = Values

// Options holds configuration for the values command.
type Options struct {
	DataFile string
	Field    string
	Out      io.Writer
}

// Values loads the catalog and prints the field's distinct values, one
// per line, sorted ascending.
func Values(opts Options) error {
	c, err := catalog.Load(opts.DataFile)
	if err != nil {
		return err
	}

	for _, value := range c.UniqueValues(opts.Field) {
		fmt.Fprintln(opts.Out, value)
	}
	return nil
}
