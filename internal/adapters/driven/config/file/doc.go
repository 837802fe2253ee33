// Package file provides file-based implementations of driven port interfaces.
//
// ConfigStore keeps application settings in ~/.maktaba/config.toml.
package file
