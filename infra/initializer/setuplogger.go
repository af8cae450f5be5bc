package initializer

import (
	"log/slog"
	"os"

	"github.com/amirasaad/payportal/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

type levelStyle struct {
	icon  string
	color lipgloss.AdaptiveColor
}

var levelStyles = map[log.Level]levelStyle{
	log.DebugLevel: {"DBG", lipgloss.AdaptiveColor{Light: "#7E57C2", Dark: "#B39DDB"}},
	log.InfoLevel:  {"INF", lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#04B575"}},
	log.WarnLevel:  {"WRN", lipgloss.AdaptiveColor{Light: "#D98E04", Dark: "#F5C542"}},
	log.ErrorLevel: {"ERR", lipgloss.AdaptiveColor{Light: "#D7263D", Dark: "#FF6B6B"}},
}

// setupLogger builds the process-wide slog logger on top of charmbracelet/log.
func setupLogger(cfg *config.Log) *slog.Logger {
	styles := log.DefaultStyles()
	for level, ls := range levelStyles {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(ls.icon).
			Bold(true).
			Padding(0, 1).
			Foreground(ls.color)
	}
	muted := levelStyles[log.DebugLevel].color
	for _, key := range []string{"prefix", "caller", "time", "context", "transactionID", "userID", "ip"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(muted)
	}
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelStyles[log.ErrorLevel].color)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
