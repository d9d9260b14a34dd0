// Command example compiles the bundled template and prints the generated
// render function.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/neurodance/blazor/razor"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	f, err := os.Open("hello.razor")
	if err != nil {
		logger.Error("open template", "err", err)
		os.Exit(1)
	}
	defer f.Close()

	reg := razor.NewTagSet("Counter")
	res, err := razor.Compile(f, "hello.razor", &razor.Options{Components: reg})
	if err != nil {
		logger.Error("compile", "err", err)
		os.Exit(1)
	}
	for _, nd := range res.Diags {
		logger.Warn("diagnostic",
			"kind", nd.Diag.Kind.String(),
			"detail", nd.Diag.Detail,
			"context", razor.DiagContext(res.Doc, nd.Node))
	}

	out, err := razor.EmitGo(res.Doc, reg, "RenderHello")
	if err != nil {
		logger.Error("emit", "err", err)
		os.Exit(1)
	}
	fmt.Print(out)
}
