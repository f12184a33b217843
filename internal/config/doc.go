// Package config provides configuration parsing for servoload.
//
// The configuration is stored in servoload.json in the working directory.
// This package handles loading, saving, and validating configuration.
// Command-line flags override anything read from the file.
//
// # Configuration File Structure
//
//	{
//	  "base": "https://example.com/",
//	  "serve": {
//	    "addr": ":8080"
//	  },
//	  "loader": {
//	    "maxDepth": 8,
//	    "timeout": "30s",
//	    "s3Region": "us-east-1"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Base:", cfg.Base)
package config
