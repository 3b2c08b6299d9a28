package flags

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagValue represents a single flag definition with metadata
type FlagValue struct {
	Shorthand    string
	Kind         string
	DefaultValue any
	NoOptDefault string
	Usage        string
}

// FlagValues is a map of flag names to their definitions
type FlagValues map[string]FlagValue

// Register adds all flags in the set to the given pflag.FlagSet
func (f FlagValues) Register(flagSet *pflag.FlagSet, sort bool) {
	for flagName, flag := range f {
		flag.BuildFlag(flagSet, flagName)
	}
	flagSet.SortFlags = sort
}

// BuildFlag creates a pflag from the FlagValue definition
func (f *FlagValue) BuildFlag(flagSet *pflag.FlagSet, flagName string) {
	switch f.Kind {
	case "bool":
		flagSet.BoolP(flagName, f.Shorthand, f.DefaultValue.(bool), f.Usage)
	case "int":
		flagSet.IntP(flagName, f.Shorthand, f.DefaultValue.(int), f.Usage)
	case "string":
		flagSet.StringP(flagName, f.Shorthand, f.DefaultValue.(string), f.Usage)
	case "duration":
		flagSet.DurationP(flagName, f.Shorthand, f.DefaultValue.(time.Duration), f.Usage)
	}

	if f.NoOptDefault != "" {
		flag := flagSet.Lookup(flagName)
		flag.NoOptDefVal = f.NoOptDefault
	}
}

// Merge combines multiple FlagValues maps into one
func Merge(flagSets ...FlagValues) FlagValues {
	result := make(FlagValues)
	for _, fs := range flagSets {
		for k, v := range fs {
			result[k] = v
		}
	}
	return result
}

// BindFlags binds all command flags to v, so each flag is also readable from
// its environment variable.
func BindFlags(cmd *cobra.Command, v *viper.Viper) {
	bindFlagSet := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = v.BindPFlag(f.Name, f)
		})
	}

	bindFlagSet(cmd.Flags())
	bindFlagSet(cmd.PersistentFlags())
}

// LogFlags returns flags for the log sinks
func LogFlags() FlagValues {
	return FlagValues{
		"log-file": {
			Kind:         "string",
			DefaultValue: "influxdb_check.log",
			Usage:        "append log lines to this file (empty to disable)",
		},
		"log-level": {
			Kind:         "string",
			DefaultValue: "info",
			Usage:        "log level (debug|info|warn|error)",
		},
		"log-format": {
			Kind:         "string",
			DefaultValue: "text",
			Usage:        "log format (text|json)",
		},
	}
}

// EnvFlags returns flags for reading the env file
func EnvFlags() FlagValues {
	return FlagValues{
		"env-file": {
			Shorthand:    "e",
			Kind:         "string",
			DefaultValue: ".env",
			Usage:        "env file holding the connection settings",
		},
		"url-key": {
			Kind:         "string",
			DefaultValue: "VITE_INFLUXDB_URL",
			Usage:        "env file key holding the InfluxDB URL",
		},
		"token-key": {
			Kind:         "string",
			DefaultValue: "VITE_INFLUXDB_TOKEN",
			Usage:        "env file key holding the InfluxDB token",
		},
		"malformed-lines": {
			Kind:         "string",
			DefaultValue: "skip-and-warn",
			Usage:        "handling of env file lines without '=' (fail|skip|skip-and-warn)",
		},
	}
}

// CheckFlags returns flags tuning the individual checks
func CheckFlags() FlagValues {
	return FlagValues{
		"default-port": {
			Kind:         "int",
			DefaultValue: 8086,
			Usage:        "port used when the URL has none",
		},
		"port-timeout": {
			Kind:         "duration",
			DefaultValue: 5 * time.Second,
			Usage:        "TCP connect timeout",
		},
		"cors-timeout": {
			Kind:         "duration",
			DefaultValue: 5 * time.Second,
			Usage:        "CORS preflight request timeout",
		},
		"ping-path": {
			Kind:         "string",
			DefaultValue: "/api/v2/ping",
			Usage:        "path receiving the CORS preflight",
		},
		"origin": {
			Kind:         "string",
			DefaultValue: "http://localhost:5173",
			Usage:        "Origin sent with the CORS preflight",
		},
		"health": {
			Kind:         "bool",
			DefaultValue: true,
			Usage:        "query the InfluxDB /health endpoint",
		},
		"health-timeout": {
			Kind:         "duration",
			DefaultValue: 5 * time.Second,
			Usage:        "InfluxDB health request timeout",
		},
		"metrics-file": {
			Kind:         "string",
			DefaultValue: "",
			Usage:        "write check results to this Prometheus textfile",
		},
	}
}

// ContainerFlags returns flags for the container status lookup
func ContainerFlags() FlagValues {
	return FlagValues{
		"container-filter": {
			Kind:         "string",
			DefaultValue: "influxdb",
			Usage:        "container name substring to look for",
		},
		"container-runtime": {
			Kind:         "string",
			DefaultValue: "cli",
			Usage:        "container status backend (cli|engine)",
		},
		"container-binary": {
			Kind:         "string",
			DefaultValue: "docker",
			Usage:        "container CLI used by the cli backend",
		},
		"container-timeout": {
			Kind:         "duration",
			DefaultValue: 10 * time.Second,
			Usage:        "container status lookup timeout",
		},
	}
}
