package types

// Document is the JSON exchange format shared with CATIA. Parts is always
// written, Products is omitted when absent. Consumers treat an absent
// product section differently from an empty one.
type Document struct {
	Parts    []*Record `json:"parts"`
	Products *Record   `json:"products,omitempty"`
}

// Record is a part or product entry. Every optional field is a pointer
// because field presence, not value, decides how a record is imported.
type Record struct {
	UUID     string    `json:"uuid"`
	Name     *string   `json:"name,omitempty"`
	PartUUID *string   `json:"partUuid,omitempty"`
	PartName *string   `json:"partName,omitempty"`
	Color    *int64    `json:"color,omitempty"`
	LengthX  *float64  `json:"lengthX,omitempty"`
	LengthY  *float64  `json:"lengthY,omitempty"`
	LengthZ  *float64  `json:"lengthZ,omitempty"`
	Radius   *float64  `json:"radius,omitempty"`
	PosX     *float64  `json:"posX,omitempty"`
	PosY     *float64  `json:"posY,omitempty"`
	PosZ     *float64  `json:"posZ,omitempty"`
	RotX     *float64  `json:"rotX,omitempty"`
	RotY     *float64  `json:"rotY,omitempty"`
	RotZ     *float64  `json:"rotZ,omitempty"`
	Shape    *string   `json:"shape,omitempty"`
	STLPath  *string   `json:"stlPath,omitempty"`
	Children []*Record `json:"children,omitempty"`
}

// AllRecords returns parts in list order followed by the product tree in
// depth-first pre-order.
func (d Document) AllRecords() []*Record {
	out := make([]*Record, 0, len(d.Parts))
	for _, part := range d.Parts {
		if part != nil {
			out = append(out, part)
		}
	}
	return append(out, d.ProductRecords()...)
}

// ProductRecords returns the product tree in depth-first pre-order.
func (d Document) ProductRecords() []*Record {
	var out []*Record
	var walk func(record *Record)
	walk = func(record *Record) {
		if record == nil {
			return
		}
		out = append(out, record)
		for _, child := range record.Children {
			walk(child)
		}
	}
	walk(d.Products)
	return out
}

// Mapping associates document record ids with model elements.
type Mapping map[string]*StructuralElement

// StringPtr, FloatPtr and IntPtr build optional record fields.
func StringPtr(value string) *string { return &value }

func FloatPtr(value float64) *float64 { return &value }

func IntPtr(value int64) *int64 { return &value }
