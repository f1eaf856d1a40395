// Command docdiff builds content-addressed Merkle commitments over two
// versions of a JSON or XML document and prints the change set between
// them.
//
//	docdiff -kind json old.json new.json
//	docdiff -kind xml old.xml new.xml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/certen/docmerkle/internal/doclog"
	"github.com/certen/docmerkle/pkg/build"
)

func main() {
	kindFlag := flag.String("kind", "json", "document kind: json or xml")
	logFormat := flag.String("log-format", "text", "log format: text or json")
	flag.Parse()

	log := doclog.New(doclog.Config{Format: *logFormat, Output: os.Stderr})

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: docdiff [-kind json|xml] old-file new-file")
		os.Exit(2)
	}

	kind := build.JSON
	if *kindFlag == "xml" {
		kind = build.XML
	} else if *kindFlag != "json" {
		log.Error("unknown document kind", "kind", *kindFlag)
		os.Exit(2)
	}

	oldData, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Error("reading old document", "path", flag.Arg(0), "err", err)
		os.Exit(1)
	}
	newData, err := os.ReadFile(flag.Arg(1))
	if err != nil {
		log.Error("reading new document", "path", flag.Arg(1), "err", err)
		os.Exit(1)
	}

	oldResult, err := build.Build(oldData, kind)
	if err != nil {
		log.Error("building old document", "err", err)
		os.Exit(1)
	}
	newResult, err := build.Build(newData, kind)
	if err != nil {
		log.Error("building new document", "err", err)
		os.Exit(1)
	}

	payload := build.ToPayload(oldResult, newResult, true, kind)
	log.Info("build complete", "build_id", payload.BuildID, "root_old", payload.RootOld, "root_new", payload.RootNew)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		log.Error("encoding payload", "err", err)
		os.Exit(1)
	}
}
