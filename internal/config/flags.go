package config

import (
	"flag"
	"os"
)

// parses CLI flags for the migrate command
func ParseMigrateFlags() MigrateFlags {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	direction := fs.String("direction", "up", "migration direction: up or down")
	steps := fs.Int("steps", 0, "number of steps to apply (0 = all)")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return MigrateFlags{Direction: *direction, Steps: *steps}
}
