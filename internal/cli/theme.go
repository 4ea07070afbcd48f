package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"arxml-inspect/internal/app"
	"arxml-inspect/internal/types"
)

const defaultTheme = "dark"

// theme holds the glyphs used to draw trees and port markers.
type theme struct {
	Name          string
	Branch        string
	Last          string
	Pipe          string
	Space         string
	Provided      string
	Required      string
	Bidirectional string
	Warning       string
}

var themes = map[string]theme{
	"dark": {
		Name: "dark", Branch: "├── ", Last: "└── ", Pipe: "│   ", Space: "    ",
		Provided: "▶", Required: "◀", Bidirectional: "◆", Warning: "⚠",
	},
	"light": {
		Name: "light", Branch: "├── ", Last: "└── ", Pipe: "│   ", Space: "    ",
		Provided: "▷", Required: "◁", Bidirectional: "◇", Warning: "!",
	},
	"plain": {
		Name: "plain", Branch: "|-- ", Last: "`-- ", Pipe: "|   ", Space: "    ",
		Provided: "[P]", Required: "[R]", Bidirectional: "[PR]", Warning: "!",
	},
}

func themeByName(name string) (theme, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = defaultTheme
	}
	th, ok := themes[key]
	if !ok {
		names := make([]string, 0, len(themes))
		for known := range themes {
			names = append(names, known)
		}
		sort.Strings(names)
		return theme{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown theme %q, expected one of %s", name, strings.Join(names, ", ")))
	}
	return th, nil
}

// resolveTheme picks the flag or environment theme first and falls back
// to the one saved in the user configuration.
func resolveTheme(cmd *cobra.Command, service app.Service) (theme, error) {
	var value string
	if cmd != nil {
		value, _ = cmd.Flags().GetString("theme")
	}
	name := resolveString(cmd, value, "theme", "theme")
	if name == "" {
		cfg, err := service.Config.Load()
		if err != nil {
			log.Warn().Err(err).Msg("using default theme")
		} else {
			name = cfg.Theme
		}
	}
	return themeByName(name)
}

func (t theme) direction(port *types.Port) string {
	if port.Bidirectional {
		return t.Bidirectional
	}
	if port.Direction == types.PortDirectionProvided {
		return t.Provided
	}
	return t.Required
}
