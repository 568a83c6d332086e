// Package flagx helps config stages parse only the flags they own.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args belonging to the allowed flags,
// keeping each flag's value when it is passed as a separate argument.
// Both "-f value" and "--flag=value" forms are recognized. Everything else
// is dropped, so one flag.FlagSet can parse without tripping over flags
// that belong to another config stage.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	var out []string
	for i := 0; i < len(args); i++ {
		arg := args[i]

		name := arg
		if eq := strings.Index(arg, "="); eq >= 0 {
			name = arg[:eq]
		}
		if _, ok := allowed[name]; !ok {
			continue
		}

		out = append(out, arg)
		// "-f value": the value travels as the next argument.
		if !strings.Contains(arg, "=") && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}
	return out
}

// JsonConfigFlags scans os.Args for the config-file flags (-c/-config) and
// returns the path, or "" when absent. It uses its own FlagSet so it can run
// before any other flag parsing.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"})

	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	var path string
	fs.StringVar(&path, "c", "", "path to JSON config file")
	fs.StringVar(&path, "config", "", "path to JSON config file")
	_ = fs.Parse(args)
	return path
}
