package entities

// PartNumber identifies a supplier-specific SKU
type PartNumber string

// UnitOfMeasure is the unit a demand quantity is expressed in
type UnitOfMeasure string

const (
	UOMEach     UnitOfMeasure = "EA"
	UOMKilogram UnitOfMeasure = "KG"
)

// TransportMode identifies a transport mode for inbound shipments
type TransportMode string

const (
	ModeOcean TransportMode = "OCEAN"
	ModeAir   TransportMode = "AIR"
	ModeTruck TransportMode = "TRUCK"
	ModeRail  TransportMode = "RAIL"
)

// SKU represents a supplier-specific part with its planning defaults
type SKU struct {
	PartNumber    PartNumber
	Description   string
	DefaultOrigin string // country of origin code
	UnitOfMeasure UnitOfMeasure
}
