// Package fun holds the entertainment modules.
package fun
