package main

import (
	. "github.com/saylorsolutions/modmake"
)

const (
	forgerVersion = "0.1.0"
)

func main() {
	b := NewBuild()
	b.Generate().DependsOnRunner("tidy", "", Go().ModTidy())

	forger := NewAppBuild("forger", "cmd/forger", forgerVersion)
	forger.Build(func(gb *GoBuild) {
		gb.
			StripDebugSymbols().
			SetVariable("main", "version", forgerVersion).
			CgoEnabled(false)
	})
	forger.Variant("windows", "amd64")
	forger.Variant("linux", "amd64")
	forger.Variant("linux", "arm64")
	forger.Variant("darwin", "amd64")
	forger.Variant("darwin", "arm64")
	forger.Variant("android", "arm64")
	b.ImportApp(forger)

	b.Execute()
}
