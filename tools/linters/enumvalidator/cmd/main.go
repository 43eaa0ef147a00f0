package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"joywork.app/api/tools/linters/enumvalidator"
)

func main() {
	singlechecker.Main(enumvalidator.Analyzer)
}
