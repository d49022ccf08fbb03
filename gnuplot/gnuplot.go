// Copyright 2021 Daniel Erat <dan@erat.org>.
// All rights reserved.

// Package gnuplot makes it slightly easier to generate plots using gnuplot.
package gnuplot

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
)

// Available reports whether a gnuplot executable can be found in $PATH.
func Available() bool {
	_, err := exec.LookPath("gnuplot")
	return err == nil
}

// ExecTemplate executes the supplied Go template and data to write a .gnuplot file,
// which it then passes to gnuplot. If persist is true, gnuplot is run with -p so
// interactive plot windows outlive the gnuplot process.
func ExecTemplate(tmpl string, data interface{}, persist bool) error {
	// Execute the template to write the .gnuplot file.
	gf, err := os.CreateTemp("", "gnuplot.")
	if err != nil {
		return err
	}
	defer os.Remove(gf.Name())

	terr := template.Must(template.New("").Parse(tmpl)).Execute(gf, data)
	cerr := gf.Close()
	if terr != nil {
		return terr
	}
	if cerr != nil {
		return cerr
	}

	args := []string{gf.Name()}
	if persist {
		args = append([]string{"-p"}, args...)
	}
	if err := exec.Command("gnuplot", args...).Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) != 0 {
			return fmt.Errorf("%v: %q", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return err
	}
	return nil
}

// WriteData creates a temp file holding tab-separated data for gnuplot:
// a header line with column names followed by one line per row. Missing
// values should be passed as "?", which gnuplot skips. The file's path
// is returned; the caller is responsible for removing it.
func WriteData(header []string, rows [][]string) (string, error) {
	f, err := os.CreateTemp("", "gnuplot.data.")
	if err != nil {
		return "", err
	}

	var werr error
	write := func(cols []string) {
		if werr == nil {
			_, werr = fmt.Fprintln(f, strings.Join(cols, "\t"))
		}
	}
	write(header)
	for _, r := range rows {
		write(r)
	}

	cerr := f.Close()
	if werr != nil {
		os.Remove(f.Name())
		return "", werr
	}
	if cerr != nil {
		os.Remove(f.Name())
		return "", cerr
	}
	return f.Name(), nil
}
