package common

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Laisky/zap"

	"github.com/handboekai/handboek-api/common/config"
	"github.com/handboekai/handboek-api/common/logger"
	"github.com/handboekai/handboek-api/common/random"
)

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	LogDir       = flag.String("log-dir", "./logs", "specify the log directory")
)

func Init() {
	flag.Parse()

	if *PrintVersion {
		fmt.Println(Version)
		os.Exit(0)
	}

	if config.ShareLinkSecret == "" {
		logger.Logger.Warn("SHARE_LINK_SECRET not set, using a random value; share links will not survive restarts")
		config.ShareLinkSecret = random.GetRandomString(32)
	}

	if *LogDir != "" {
		expanded, err := filepath.Abs(*LogDir)
		if err != nil {
			logger.Logger.Fatal("failed to get absolute log dir", zap.Error(err))
		}
		if err = os.MkdirAll(expanded, 0o777); err != nil {
			logger.Logger.Fatal("failed to create log dir", zap.Error(err))
		}
		logger.LogDir = expanded
		*LogDir = expanded
	}
}
