// Package utils holds utility modules.
package utils
