package core

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"virsat-catia/internal/types"
)

type ExportResult struct {
	Document types.Document
	// Geometry lists every exported visualisation that references a
	// geometry file. Copying the files is left to the caller.
	Geometry []*types.Visualisation
}

type Exporter struct {
	// GeometryFilesPath is the directory the caller copies geometry files
	// into. It prefixes the stlPath of exported records.
	GeometryFilesPath string
}

func NewExporter(geometryFilesPath string) Exporter {
	return Exporter{GeometryFilesPath: geometryFilesPath}
}

func (e Exporter) Transform(ctx context.Context, repo *types.Repository, root *types.StructuralElement) ExportResult {
	collector := geometryCollector{seen: map[*types.Visualisation]struct{}{}}
	result := ExportResult{Document: types.Document{Parts: []*types.Record{}}}
	if root == nil {
		return result
	}

	elements := append([]*types.StructuralElement{root}, DeepChildren(root)...)
	result.Document.Parts = e.transformParts(e.definitionsOf(repo, elements), &collector)

	annotated := false
	for _, element := range elements {
		if element.Visualisation != nil {
			annotated = true
			break
		}
	}
	if annotated || len(result.Document.Parts) > 0 {
		result.Document.Products = e.transformProduct(repo, root, &collector)
	}
	result.Geometry = collector.items

	log.Ctx(ctx).Debug().
		Str("root", root.UUID).
		Int("parts", len(result.Document.Parts)).
		Int("geometry", len(result.Geometry)).
		Bool("products", result.Document.Products != nil).
		Msg("model exported")
	return result
}

// definitionsOf returns element definitions found in elements or among
// their supers, in first-seen order.
func (e Exporter) definitionsOf(repo *types.Repository, elements []*types.StructuralElement) []*types.StructuralElement {
	seen := map[string]struct{}{}
	var out []*types.StructuralElement
	add := func(element *types.StructuralElement) {
		if element.Kind != types.ElementKindElementDefinition {
			return
		}
		if _, ok := seen[element.UUID]; ok {
			return
		}
		seen[element.UUID] = struct{}{}
		out = append(out, element)
	}
	for _, element := range elements {
		add(element)
		for _, super := range AllSupers(repo, element) {
			add(super)
		}
	}
	return out
}

func (e Exporter) transformParts(definitions []*types.StructuralElement, collector *geometryCollector) []*types.Record {
	parts := []*types.Record{}
	for _, definition := range definitions {
		vis := definition.Visualisation
		if vis == nil {
			continue
		}
		part := e.transformElement(definition)
		part.Color = types.IntPtr(vis.Color)
		part.LengthX = types.FloatPtr(vis.SizeX)
		part.LengthY = types.FloatPtr(vis.SizeY)
		part.LengthZ = types.FloatPtr(vis.SizeZ)
		part.Radius = types.FloatPtr(vis.Radius)
		part.Shape = types.StringPtr(string(vis.Shape))
		part.STLPath = e.stlPath(vis)
		collector.add(vis)
		parts = append(parts, part)
	}
	return parts
}

func (e Exporter) transformProduct(repo *types.Repository, element *types.StructuralElement, collector *geometryCollector) *types.Record {
	product := e.transformElement(element)
	if vis := element.Visualisation; vis != nil {
		product.PosX = types.FloatPtr(vis.PositionX)
		product.PosY = types.FloatPtr(vis.PositionY)
		product.PosZ = types.FloatPtr(vis.PositionZ)
		product.RotX = types.FloatPtr(vis.RotationX)
		product.RotY = types.FloatPtr(vis.RotationY)
		product.RotZ = types.FloatPtr(vis.RotationZ)
		product.Shape = types.StringPtr(string(vis.Shape))
		product.STLPath = e.stlPath(vis)
		collector.add(vis)
		for _, super := range AllSupers(repo, element) {
			if super.Kind == types.ElementKindElementDefinition {
				product.PartUUID = types.StringPtr(super.UUID)
				product.PartName = types.StringPtr(super.Name)
				break
			}
		}
	}
	for _, child := range element.Children {
		if child == nil {
			continue
		}
		product.Children = append(product.Children, e.transformProduct(repo, child, collector))
	}
	return product
}

func (e Exporter) transformElement(element *types.StructuralElement) *types.Record {
	return &types.Record{
		UUID: element.UUID,
		Name: types.StringPtr(element.Name),
	}
}

func (e Exporter) stlPath(vis *types.Visualisation) *string {
	if vis.GeometryFile == "" {
		return nil
	}
	name := filepath.Base(filepath.FromSlash(vis.GeometryFile))
	if e.GeometryFilesPath == "" {
		return types.StringPtr(name)
	}
	return types.StringPtr(filepath.Join(e.GeometryFilesPath, name))
}

type geometryCollector struct {
	seen  map[*types.Visualisation]struct{}
	items []*types.Visualisation
}

func (c *geometryCollector) add(vis *types.Visualisation) {
	if vis == nil || vis.GeometryFile == "" {
		return
	}
	if _, ok := c.seen[vis]; ok {
		return
	}
	c.seen[vis] = struct{}{}
	c.items = append(c.items, vis)
}
