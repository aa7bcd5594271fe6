package toolchain

// Invocation is a fully assembled compiler command: the program to spawn and
// its ordered argument list. It exists only for the duration of one build.
type Invocation struct {
	Program string
	Args    []string
}

// BuildInvocation assembles the compiler command for one build. Argument
// order is contractual: source files first (discovery order), then include
// files, then the manifest cflags verbatim, then the output flag pair. The
// builder performs no filesystem access.
func BuildInvocation(compiler string, srcFiles, includeFiles, cflags []string, outputPath string) (Invocation, error) {
	tc, err := Resolve(compiler)
	if err != nil {
		return Invocation{}, err
	}

	args := make([]string, 0, len(srcFiles)+len(includeFiles)+len(cflags)+2)
	args = append(args, srcFiles...)
	args = append(args, includeFiles...)
	args = append(args, cflags...)
	args = append(args, "-o", outputPath)

	return Invocation{
		Program: tc.Program(),
		Args:    args,
	}, nil
}
