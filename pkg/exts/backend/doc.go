// Package backend holds the modules operating the bot itself.
package backend
