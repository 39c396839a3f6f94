package cli

import (
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/bmcmahen/panresponder/utils"
)

const defaultServerAddress = "localhost:12700"

// Config holds the file-backed defaults; command-line flags override it
type Config struct {
	// Listen is the server's default listen address
	Listen string

	// EnableCORS allows cross-origin requests to the server
	EnableCORS bool

	// EnableMouse makes replayed and fed recognizers accept mouse events
	EnableMouse bool

	// HistorySize caps the server's recent-gesture ring; 0 uses the
	// built-in default
	HistorySize int
}

var config = Config{
	Listen: defaultServerAddress,
}

// loadConfig reads ~/.panresponder.ini if present. A missing or broken
// config file is not an error, the defaults just stand.
func loadConfig() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return
	}

	path := filepath.Join(homeDir, ".panresponder.ini")
	iniConfig, err := ini.Load(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Verbose("Failed to read %s: %v", path, err)
		}
		return
	}

	serverSection := iniConfig.Section("server")
	if listen := serverSection.Key("listen").String(); listen != "" {
		config.Listen = listen
	}
	config.EnableCORS = serverSection.Key("cors").MustBool(config.EnableCORS)

	engineSection := iniConfig.Section("engine")
	config.EnableMouse = engineSection.Key("enable_mouse").MustBool(config.EnableMouse)
	config.HistorySize = engineSection.Key("history_size").MustInt(config.HistorySize)
}
