// Package config provides configuration parsing for webcomp projects.
//
// The configuration is stored in webcomp.json, webcomp.yaml or webcomp.yml
// at the project root. A missing file means the defaults.
//
// # Configuration File Structure
//
//	{
//	  "name": "shop",
//	  "router": {
//	    "mode": "history",
//	    "root": "/app",
//	    "skipInitial": false
//	  },
//	  "element": {
//	    "useShadow": "open"
//	  },
//	  "dev": {
//	    "port": 3000,
//	    "host": "localhost",
//	    "static": "public",
//	    "hotReload": true,
//	    "metrics": true
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	logger := cfg.Logger(os.Stderr)
package config
