package pklvalue

// ExportKind tags the shape of an Exported structure, independent of the
// originating Value's Kind (several Kinds export to the same shape — List
// and Set both export as ExportList, for instance).
type ExportKind uint8

const (
	ExportNull ExportKind = iota
	ExportScalar
	ExportQuantity // Duration/DataSize: numeric Scalar + Unit
	ExportRegex    // source pattern string, in Scalar
	ExportList
	ExportMap
	ExportObject
)

// ExportedEntry is one (key, value) pair in an ExportMap or one property in
// an ExportObject's ordered property map.
type ExportedEntry struct {
	Key   Exported
	Value Exported
}

// ExportedClassInfo carries the class-info a Typed object's export includes.
type ExportedClassInfo struct {
	ModuleURI     string
	QualifiedName string
}

// Exported is the language-neutral structure every Value.Export()
// produces: scalar, ordered map of properties, list, set, map, object
// with class info, null, regex pattern string, duration/data-size
// numeric+unit.
type Exported struct {
	Kind ExportKind

	// Scalar holds bool/int64/float64/string/[]byte for ExportScalar, the
	// numeric magnitude for ExportQuantity, or the source pattern for
	// ExportRegex.
	Scalar any

	// Unit is set only for ExportQuantity (e.g. "min", "mb").
	Unit string

	// Elements is set only for ExportList (covers List and Set, and the
	// elements of a Listing).
	Elements []Exported

	// Entries is set only for ExportMap (covers Map and a Mapping's
	// entries) or ExportObject (a Typed/Dynamic's ordered property map;
	// Key.Scalar holds the property name as a string in that case).
	Entries []ExportedEntry

	// ModuleURI/Class are set only for ExportObject.
	ModuleURI string
	Class     *ExportedClassInfo
}
