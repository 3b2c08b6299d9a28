package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Porizovatel/kulda/pkg/commands/root"
)

var (
	version string = "snapshot"
	commit  string = "unknown"
	date    string = "unknown"
)

func main() {
	cmd := root.New()
	cmd.Version = fmt.Sprintf("%s-%s (built %s)", version, commit, date)
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, root.ErrCheckFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
