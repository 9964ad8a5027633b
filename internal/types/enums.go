package types

type ElementKind string

const (
	ElementKindProductTree          ElementKind = "ProductTree"
	ElementKindProductTreeDomain    ElementKind = "ProductTreeDomain"
	ElementKindElementDefinition    ElementKind = "ElementDefinition"
	ElementKindConfigurationTree    ElementKind = "ConfigurationTree"
	ElementKindElementConfiguration ElementKind = "ElementConfiguration"
	ElementKindAssemblyTree         ElementKind = "AssemblyTree"
	ElementKindElementOccurence     ElementKind = "ElementOccurence"
)

var validElementKinds = map[ElementKind]struct{}{
	ElementKindProductTree:          {},
	ElementKindProductTreeDomain:    {},
	ElementKindElementDefinition:    {},
	ElementKindConfigurationTree:    {},
	ElementKindElementConfiguration: {},
	ElementKindAssemblyTree:         {},
	ElementKindElementOccurence:     {},
}

func (k ElementKind) Valid() bool {
	_, ok := validElementKinds[k]
	return ok
}

type Shape string

const (
	ShapeNone     Shape = "NONE"
	ShapeBox      Shape = "BOX"
	ShapeSphere   Shape = "SPHERE"
	ShapeCylinder Shape = "CYLINDER"
	ShapeCone     Shape = "CONE"
	ShapeGeometry Shape = "GEOMETRY"
)

var validShapes = map[Shape]struct{}{
	ShapeNone:     {},
	ShapeBox:      {},
	ShapeSphere:   {},
	ShapeCylinder: {},
	ShapeCone:     {},
	ShapeGeometry: {},
}

func (s Shape) Valid() bool {
	_, ok := validShapes[s]
	return ok
}

type EditKind string

const (
	EditKindSetName          EditKind = "set-name"
	EditKindAddVisualisation EditKind = "add-visualisation"
	EditKindSetNumber        EditKind = "set-number"
	EditKindSetColor         EditKind = "set-color"
	EditKindSetShape         EditKind = "set-shape"
	EditKindSetGeometryFile  EditKind = "set-geometry-file"
)

// NumberField names a floating point property of a Visualisation.
type NumberField string

const (
	NumberFieldPositionX NumberField = "positionX"
	NumberFieldPositionY NumberField = "positionY"
	NumberFieldPositionZ NumberField = "positionZ"
	NumberFieldRotationX NumberField = "rotationX"
	NumberFieldRotationY NumberField = "rotationY"
	NumberFieldRotationZ NumberField = "rotationZ"
	NumberFieldSizeX     NumberField = "sizeX"
	NumberFieldSizeY     NumberField = "sizeY"
	NumberFieldSizeZ     NumberField = "sizeZ"
	NumberFieldRadius    NumberField = "radius"
)
