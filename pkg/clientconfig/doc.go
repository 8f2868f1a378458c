// Package clientconfig resolves and parses the optional client
// configuration file.
//
// The configuration adjusts logging and core loader behavior without code
// changes. It is looked up from an explicit path, the MINICORE_CONFIG_FILE
// environment variable, the working directory, and the home directory, in
// that order. A missing file is not an error.
package clientconfig
