// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/keel/internal/core/domain"
)

// Oracle answers availability questions about recipes and binaries.
//
//go:generate go run go.uber.org/mock/mockgen -source=oracle.go -destination=mocks/mock_oracle.go -package=mocks
type Oracle interface {
	// ListVersions returns the known versions of the package named by ref,
	// ignoring ref's version and revision. The order is unspecified.
	ListVersions(ctx context.Context, ref domain.Reference) ([]string, error)

	// RecipeFor loads the recipe of a pinned reference. A reference without
	// revision resolves to the latest revision.
	RecipeFor(ctx context.Context, ref domain.Reference) (Recipe, error)

	// BinaryExists reports whether a prebuilt binary can be downloaded.
	BinaryExists(ctx context.Context, bref domain.BinaryReference) (bool, error)

	// LatestRevision returns the newest revision of a pinned reference.
	LatestRevision(ctx context.Context, ref domain.Reference) (string, error)
}

// PackageCache is the local store of installed binaries.
type PackageCache interface {
	// Has reports whether the binary is already installed locally.
	Has(ctx context.Context, bref domain.BinaryReference) (bool, error)
}
