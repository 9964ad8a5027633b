package types

// Visualisation holds the geometry and appearance annotation of a
// structural element. Inherited annotations are copies of a super
// element's annotation and are refreshed by the inheritance copier until
// they are edited locally.
type Visualisation struct {
	UUID         string  `yaml:"uuid"`
	Shape        Shape   `yaml:"shape"`
	Color        int64   `yaml:"color"`
	PositionX    float64 `yaml:"position_x"`
	PositionY    float64 `yaml:"position_y"`
	PositionZ    float64 `yaml:"position_z"`
	RotationX    float64 `yaml:"rotation_x"`
	RotationY    float64 `yaml:"rotation_y"`
	RotationZ    float64 `yaml:"rotation_z"`
	SizeX        float64 `yaml:"size_x"`
	SizeY        float64 `yaml:"size_y"`
	SizeZ        float64 `yaml:"size_z"`
	Radius       float64 `yaml:"radius"`
	GeometryFile string  `yaml:"geometry_file,omitempty"`
	Inherited    bool    `yaml:"inherited,omitempty"`
	SuperUUID    string  `yaml:"super_uuid,omitempty"`
}

func (v *Visualisation) Clone() *Visualisation {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

// Number returns a pointer to the floating point property named by field,
// or nil for an unknown field.
func (v *Visualisation) Number(field NumberField) *float64 {
	switch field {
	case NumberFieldPositionX:
		return &v.PositionX
	case NumberFieldPositionY:
		return &v.PositionY
	case NumberFieldPositionZ:
		return &v.PositionZ
	case NumberFieldRotationX:
		return &v.RotationX
	case NumberFieldRotationY:
		return &v.RotationY
	case NumberFieldRotationZ:
		return &v.RotationZ
	case NumberFieldSizeX:
		return &v.SizeX
	case NumberFieldSizeY:
		return &v.SizeY
	case NumberFieldSizeZ:
		return &v.SizeZ
	case NumberFieldRadius:
		return &v.Radius
	}
	return nil
}

type StructuralElement struct {
	UUID          string               `yaml:"uuid"`
	Name          string               `yaml:"name"`
	Kind          ElementKind          `yaml:"kind"`
	SuperUUIDs    []string             `yaml:"supers,omitempty"`
	Visualisation *Visualisation       `yaml:"visualisation,omitempty"`
	Children      []*StructuralElement `yaml:"children,omitempty"`
}

// Repository is the root of a model file. The index is not serialized and
// must be rebuilt with Reindex after the tree changes shape.
type Repository struct {
	APIVersion   string               `yaml:"api_version"`
	Name         string               `yaml:"name"`
	RootEntities []*StructuralElement `yaml:"root_entities"`

	index map[string]*StructuralElement
}

func (r *Repository) Reindex() {
	r.index = map[string]*StructuralElement{}
	var walk func(elements []*StructuralElement)
	walk = func(elements []*StructuralElement) {
		for _, element := range elements {
			if element == nil {
				continue
			}
			r.index[element.UUID] = element
			walk(element.Children)
		}
	}
	walk(r.RootEntities)
}

func (r *Repository) Lookup(uuid string) (*StructuralElement, bool) {
	if r.index == nil {
		r.Reindex()
	}
	element, ok := r.index[uuid]
	return element, ok
}

// Elements returns every element of the repository in pre-order.
func (r *Repository) Elements() []*StructuralElement {
	var out []*StructuralElement
	var walk func(elements []*StructuralElement)
	walk = func(elements []*StructuralElement) {
		for _, element := range elements {
			if element == nil {
				continue
			}
			out = append(out, element)
			walk(element.Children)
		}
	}
	walk(r.RootEntities)
	return out
}
