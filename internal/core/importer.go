package core

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"virsat-catia/internal/ports"
	"virsat-catia/internal/types"
)

const (
	sectionParts    = "parts"
	sectionProducts = "products"
)

type Importer struct {
	Storage ports.GeometryStoragePort
	NewUUID func() string
}

func NewImporter(storage ports.GeometryStoragePort) Importer {
	return Importer{Storage: storage, NewUUID: uuid.NewString}
}

// Transform builds one composite command that applies the document to the
// mapped elements. Records without a mapped element are ignored. A record
// that lacks a required field contributes no edits and makes the whole
// command non-executable; the remaining records are still processed.
func (i Importer) Transform(ctx context.Context, doc types.Document, mapping types.Mapping) types.ImportCommand {
	b := &commandBuilder{
		importer: i,
		ctx:      ctx,
		created:  map[string]struct{}{},
		cmd:      types.ImportCommand{Executable: true},
	}
	for _, part := range doc.Parts {
		if part == nil {
			continue
		}
		b.updateFromPart(mapping[part.UUID], part)
	}
	for _, product := range doc.ProductRecords() {
		b.updateFromProduct(mapping[product.UUID], product)
	}
	log.Ctx(ctx).Debug().
		Int("edits", len(b.cmd.Edits)).
		Int("failures", len(b.cmd.Failures)).
		Bool("executable", b.cmd.Executable).
		Msg("import command assembled")
	return b.cmd
}

type commandBuilder struct {
	importer Importer
	ctx      context.Context
	created  map[string]struct{}
	cmd      types.ImportCommand
}

type field struct {
	key     string
	present bool
}

func (b *commandBuilder) updateFromPart(element *types.StructuralElement, part *types.Record) {
	if element == nil {
		return
	}
	missing := missingFields([]field{
		{"lengthX", part.LengthX != nil},
		{"lengthY", part.LengthY != nil},
		{"lengthZ", part.LengthZ != nil},
		{"radius", part.Radius != nil},
		{"color", part.Color != nil},
		{"shape", part.Shape != nil},
	})
	if !b.checkRecord(sectionParts, part, missing) {
		return
	}

	edits := b.visualisationFor(element)
	edits = append(edits, nameEdit(element, part)...)
	edits = append(edits,
		numberEdit(element, types.NumberFieldSizeX, *part.LengthX),
		numberEdit(element, types.NumberFieldSizeY, *part.LengthY),
		numberEdit(element, types.NumberFieldSizeZ, *part.LengthZ),
		numberEdit(element, types.NumberFieldRadius, *part.Radius),
		types.Edit{Kind: types.EditKindSetShape, ElementUUID: element.UUID, Text: *part.Shape},
		types.Edit{Kind: types.EditKindSetColor, ElementUUID: element.UUID, Integer: *part.Color},
	)
	edits = append(edits, b.geometryEdit(element, part)...)
	b.cmd.Edits = append(b.cmd.Edits, edits...)
}

func (b *commandBuilder) updateFromProduct(element *types.StructuralElement, product *types.Record) {
	if element == nil || !hasVisualisationProductFields(product) {
		return
	}
	missing := missingFields([]field{
		{"posX", product.PosX != nil},
		{"posY", product.PosY != nil},
		{"posZ", product.PosZ != nil},
		{"rotX", product.RotX != nil},
		{"rotY", product.RotY != nil},
		{"rotZ", product.RotZ != nil},
		{"shape", product.Shape != nil},
	})
	if !b.checkRecord(sectionProducts, product, missing) {
		return
	}

	edits := b.visualisationFor(element)
	edits = append(edits, nameEdit(element, product)...)
	edits = append(edits,
		numberEdit(element, types.NumberFieldPositionX, *product.PosX),
		numberEdit(element, types.NumberFieldPositionY, *product.PosY),
		numberEdit(element, types.NumberFieldPositionZ, *product.PosZ),
		numberEdit(element, types.NumberFieldRotationX, *product.RotX),
		numberEdit(element, types.NumberFieldRotationY, *product.RotY),
		numberEdit(element, types.NumberFieldRotationZ, *product.RotZ),
		types.Edit{Kind: types.EditKindSetShape, ElementUUID: element.UUID, Text: *product.Shape},
	)
	edits = append(edits, b.geometryEdit(element, product)...)
	b.cmd.Edits = append(b.cmd.Edits, edits...)
}

// checkRecord records a failure for an incomplete or malformed record and
// reports whether the record can be imported.
func (b *commandBuilder) checkRecord(section string, record *types.Record, missing []string) bool {
	reason := ""
	if len(missing) > 0 {
		reason = "could not load all required properties"
	} else if shape := types.Shape(*record.Shape); !shape.Valid() {
		reason = fmt.Sprintf("unknown shape %q", *record.Shape)
	}
	if reason == "" {
		return true
	}
	log.Ctx(b.ctx).Error().
		Str("uuid", record.UUID).
		Str("section", section).
		Strs("missing", missing).
		Msg("catia import: " + reason)
	b.cmd.Failures = append(b.cmd.Failures, types.RecordFailure{
		UUID:    record.UUID,
		Section: section,
		Missing: missing,
		Reason:  reason,
	})
	b.cmd.Executable = false
	return false
}

// visualisationFor returns the edit creating the element's visualisation
// when it has none and no earlier record of this command created one.
func (b *commandBuilder) visualisationFor(element *types.StructuralElement) []types.Edit {
	if element.Visualisation != nil {
		return nil
	}
	if _, ok := b.created[element.UUID]; ok {
		return nil
	}
	b.created[element.UUID] = struct{}{}
	return []types.Edit{{
		Kind:        types.EditKindAddVisualisation,
		ElementUUID: element.UUID,
		Visualisation: &types.Visualisation{
			UUID:  b.importer.NewUUID(),
			Shape: types.ShapeNone,
		},
	}}
}

func (b *commandBuilder) geometryEdit(element *types.StructuralElement, record *types.Record) []types.Edit {
	if types.Shape(*record.Shape) != types.ShapeGeometry || record.STLPath == nil {
		return nil
	}
	logger := log.Ctx(b.ctx).With().
		Str("uuid", element.UUID).
		Str("source", *record.STLPath).
		Logger()
	if b.importer.Storage == nil {
		logger.Error().Msg("catia import: no geometry storage configured")
		return nil
	}
	ref, err := b.importer.Storage.Store(element, *record.STLPath)
	if err != nil {
		logger.Error().Err(err).Msg("catia import: failed to copy geometry file")
		return nil
	}
	return []types.Edit{{Kind: types.EditKindSetGeometryFile, ElementUUID: element.UUID, Text: ref}}
}

func nameEdit(element *types.StructuralElement, record *types.Record) []types.Edit {
	if record.Name == nil {
		return nil
	}
	return []types.Edit{{Kind: types.EditKindSetName, ElementUUID: element.UUID, Text: *record.Name}}
}

func numberEdit(element *types.StructuralElement, name types.NumberField, value float64) types.Edit {
	return types.Edit{Kind: types.EditKindSetNumber, ElementUUID: element.UUID, Field: name, Number: value}
}

func hasVisualisationProductFields(product *types.Record) bool {
	return product.PosX != nil || product.PosY != nil || product.PosZ != nil ||
		product.RotX != nil || product.RotY != nil || product.RotZ != nil ||
		product.Shape != nil
}

func missingFields(fields []field) []string {
	var missing []string
	for _, f := range fields {
		if !f.present {
			missing = append(missing, f.key)
		}
	}
	return missing
}
