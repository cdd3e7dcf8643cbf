// Package exts holds the command modules of the bot. Each file of a category
// directory is a module named exts.<category>.<file name>.
package exts
