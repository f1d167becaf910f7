//go:build !orbpprof

package main

func StartPprof() {
	WarnLogger.Print("pprof needs the orbpprof build tag")
}
