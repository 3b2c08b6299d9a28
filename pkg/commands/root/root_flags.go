package root

import (
	"github.com/Porizovatel/kulda/pkg/commands/flags"
)

var rootFlags = flags.Merge(
	flags.EnvFlags(),
	flags.CheckFlags(),
	flags.ContainerFlags(),
	flags.LogFlags(),
)
