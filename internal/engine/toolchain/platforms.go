package toolchain

type unixPlatform struct {
	name string
}

func (p unixPlatform) Name() string { return p.name }

func (p unixPlatform) RuntimeDirFlags(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		out = append(out, "-Wl,-rpath,"+dir)
	}
	return out
}

// Windows resolves DLLs through PATH, so no runtime flags exist.
type windowsPlatform struct{}

func (windowsPlatform) Name() string { return "Windows" }

func (windowsPlatform) RuntimeDirFlags([]string) []string { return nil }
