package log

import (
	"io"
	"os"

	"github.com/commonpot/commonpot-go-node/config"
	tmflags "github.com/tendermint/tendermint/libs/cli/flags"
	"github.com/tendermint/tendermint/libs/log"
)

// NewLogger builds a logger from the node config, panics on bad settings.
func NewLogger(cfg *config.Config) log.Logger {
	var dest io.Writer = os.Stdout

	if cfg.LogPath != "stdout" {
		file, err := os.OpenFile(cfg.LogPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			panic(err)
		}

		dest = file
	}

	var logger log.Logger

	switch cfg.LogFormat {
	case config.LogFormatJSON:
		logger = log.NewTMJSONLogger(log.NewSyncWriter(dest))
	case config.LogFormatPlain:
		logger = log.NewTMLogger(log.NewSyncWriter(dest))
	default:
		panic("unsupported log format")
	}

	logger, err := tmflags.ParseLogLevel(cfg.LogLevel, logger, "info")
	if err != nil {
		panic(err)
	}

	return logger
}
