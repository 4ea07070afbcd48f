package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"arxml-inspect/internal/types"
)

var validComponentTypes = func() map[types.ComponentType]struct{} {
	valid := map[types.ComponentType]struct{}{}
	for _, kind := range AllComponentTypes() {
		valid[kind] = struct{}{}
	}
	return valid
}()

// VerifyModel checks the structural invariants of a built document: path
// derivation, sibling uniqueness, closed enumerations and back-references.
func VerifyModel(ctx context.Context, doc types.Document) error {
	if doc.Root == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("document has no root package")
	}
	if doc.Root.Path != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("root package path must be empty")
	}
	var failure error
	WalkPackages(doc.Root, func(pkg *types.Package) {
		if failure != nil {
			return
		}
		failure = verifyPackage(ctx, pkg)
	})
	if failure != nil {
		return failure
	}
	log.Ctx(ctx).Debug().Str("source", doc.SourcePath).Msg("model verified")
	return nil
}

func verifyPackage(ctx context.Context, pkg *types.Package) error {
	seen := map[string]struct{}{}
	for _, child := range pkg.Packages {
		assert.NotEmpty(ctx, child.ShortName, "package short name must be set")
		if child.Path != JoinPath(pkg.Path, child.ShortName) {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("package %s has path %s, expected %s", child.ShortName, child.Path, JoinPath(pkg.Path, child.ShortName)))
		}
		if _, dup := seen[child.ShortName]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg(fmt.Sprintf("duplicate sibling package %s under %q", child.ShortName, pkg.Path))
		}
		seen[child.ShortName] = struct{}{}
	}
	for _, comp := range pkg.Components {
		if err := verifyComponent(comp, pkg.Path); err != nil {
			return err
		}
	}
	return nil
}

func verifyComponent(comp *types.Component, pkgPath string) error {
	if comp.PackagePath != pkgPath {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("component %s points to package %s, owned by %s", comp.ShortName, comp.PackagePath, pkgPath))
	}
	if _, ok := validComponentTypes[comp.Type]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("component %s has invalid type %s", comp.Path, comp.Type))
	}
	for _, port := range comp.Ports {
		if port.Direction != types.PortDirectionProvided && port.Direction != types.PortDirectionRequired {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("port %s of %s has invalid direction %s", port.ShortName, comp.Path, port.Direction))
		}
	}
	return nil
}
