// Package lib holds modules that do not fit strictly into
// other layers.
//
// It contains the HTML page renderer (page), the form client
// used by the CLI (formclient) and small shared helpers (utils).
package lib
