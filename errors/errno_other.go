//go:build !unix && !windows

package errors

func errnoName(error) string { return "" }

func isCrossDevice(error) bool { return false }
