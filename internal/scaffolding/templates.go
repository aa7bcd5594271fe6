package scaffolding

import "text/template"

// manifestTemplate is the default cedar.toml written into new projects.
var manifestTemplate = template.Must(template.New("manifest").Parse(`[meta]
name = "{{ .Name }}"
version = "{{ .Version }}"

[build]
compiler = "{{ .Compiler }}"
cflags = [{{ range $i, $f := .CFlags }}{{ if $i }}, {{ end }}"{{ $f }}"{{ end }}]
`))

// mainTemplate is the starter program so a fresh project builds immediately.
var mainTemplate = template.Must(template.New("main").Parse(`#include <stdio.h>

int main(void) {
	printf("Hello from {{ .Name }}!\n");
	return 0;
}
`))

const gitignoreContent = `# Build output
build/
`
