// Package xccdf parses XCCDF scan result documents and scores them by STIG category.
//
// Every function in this package is pure: it reads its arguments and returns fresh
// values, so it is safe to call from multiple goroutines.
package xccdf
