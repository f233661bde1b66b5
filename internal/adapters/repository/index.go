package repository

// IndexFile is the content of the repository index.yaml.
//
//	recipes:
//	  - ref: zlib/1.2.13
//	    path: zlib/1.2.13/recipe.yaml
//	    binaries: [5ab84d6acfe1f23c4fae0ab88f26e3a396351ac9]
//
// Entries for the same reference are successive revisions, latest last.
type IndexFile struct {
	Recipes []EntryDTO `yaml:"recipes"`
}

// EntryDTO is one recipe revision of the index.
type EntryDTO struct {
	Ref string `yaml:"ref"`
	// Path is relative to the repository root.
	Path string `yaml:"path"`
	// Revision defaults to the content hash of the manifest.
	Revision string   `yaml:"revision"`
	Binaries []string `yaml:"binaries"`
}
