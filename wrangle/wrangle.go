package main

import (
	"log"

	"github.com/davecgh/go-spew/spew"
	"github.com/xyproto/env/v2"

	"github.com/apparentlymart/firm-be-meta/bespec"
	"github.com/apparentlymart/firm-be-meta/sparc"
)

var architectures = map[string]func() (*bespec.Export, error){
	sparc.Arch: sparc.Spec,
}

func main() {
	archName := env.Str("BESPEC_ARCH", sparc.Arch)
	outDir := env.Str("BESPEC_OUT", "generated/c")

	load, ok := architectures[archName]
	if !ok {
		log.Fatalf("unknown architecture %q", archName)
	}
	exp, err := load()
	if err != nil {
		log.Fatalf("failed to load %s description: %s", archName, err)
	}

	if env.Bool("BESPEC_DUMP") {
		spew.Dump(exp)
	}
	if err := generateCFragments(outDir, exp); err != nil {
		log.Fatal(err)
	}
	log.Printf("wrote %s fragments for %d opcodes to %s", exp.Arch, len(exp.Nodes), outDir)
}
