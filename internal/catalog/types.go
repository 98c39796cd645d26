package catalog

// All linear dimensions are meters and all masses kilograms unless a field
// name says otherwise.

type Material struct {
	ID            string  `yaml:"id" json:"id"`
	Name          string  `yaml:"name" json:"name"`
	Density       float64 `yaml:"density_kg_m3" json:"density_kg_m3"`
	YieldStrength float64 `yaml:"yield_strength_mpa" json:"yield_strength_mpa"`
	MaxTemp       float64 `yaml:"max_temp_c" json:"max_temp_c"`
	CostPerKg     float64 `yaml:"cost_per_kg_usd" json:"cost_per_kg_usd"`
}

type GeoPoint struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}

type NoseParams struct {
	Length       float64 `yaml:"length" json:"length"`
	BaseDiameter float64 `yaml:"base_diameter" json:"base_diameter"`
	TipDiameter  float64 `yaml:"tip_diameter" json:"tip_diameter"`
	ShapeFactor  float64 `yaml:"shape_factor" json:"shape_factor"`
	TPSThickness float64 `yaml:"tps_thickness" json:"tps_thickness"`
	Material     string  `yaml:"material" json:"material"`
}

type PayloadParams struct {
	Length        float64 `yaml:"length" json:"length"`
	Diameter      float64 `yaml:"diameter" json:"diameter"`
	WallThickness float64 `yaml:"wall_thickness" json:"wall_thickness"`
	Material      string  `yaml:"material" json:"material"`
}

type GuidanceParams struct {
	Length        float64 `yaml:"length" json:"length"`
	Diameter      float64 `yaml:"diameter" json:"diameter"`
	SensorWindows int     `yaml:"sensor_windows" json:"sensor_windows"`
	Material      string  `yaml:"material" json:"material"`
}

type MotorParams struct {
	Stage              int     `yaml:"stage" json:"stage"`
	Length             float64 `yaml:"length" json:"length"`
	Diameter           float64 `yaml:"diameter" json:"diameter"`
	NozzleExitDiameter float64 `yaml:"nozzle_exit_diameter" json:"nozzle_exit_diameter"`
	GrainPoints        int     `yaml:"grain_points" json:"grain_points"`
	Material           string  `yaml:"material" json:"material"`
}

type FinParams struct {
	Count       int     `yaml:"count" json:"count"`
	Span        float64 `yaml:"span" json:"span"`
	RootChord   float64 `yaml:"root_chord" json:"root_chord"`
	Thickness   float64 `yaml:"thickness" json:"thickness"`
	MountRadius float64 `yaml:"mount_radius" json:"mount_radius"`
	Material    string  `yaml:"material" json:"material"`
}

type AntennaParams struct {
	Band     string  `yaml:"band" json:"band"`
	Count    int     `yaml:"count" json:"count"`
	Width    float64 `yaml:"width" json:"width"`
	Height   float64 `yaml:"height" json:"height"`
	Depth    float64 `yaml:"depth" json:"depth"`
	Station  float64 `yaml:"station" json:"station"`
	Material string  `yaml:"material" json:"material"`
}

// ImprovementClaim records a claimed metric improvement. Percent must equal
// (Baseline-Optimized)/Baseline*100; validation enforces the identity.
type ImprovementClaim struct {
	Metric    string  `yaml:"metric" json:"metric"`
	Baseline  float64 `yaml:"baseline" json:"baseline"`
	Optimized float64 `yaml:"optimized" json:"optimized"`
	Percent   float64 `yaml:"percent" json:"percent"`
}

const (
	ClassBoostGlide = "boost-glide"
	ClassBallistic  = "ballistic"
	ClassCruise     = "cruise"
)

type System struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Class     string   `yaml:"class" json:"class"`
	Length    float64  `yaml:"length" json:"length"`
	Diameter  float64  `yaml:"diameter" json:"diameter"`
	RangeKm   float64  `yaml:"range_km" json:"range_km"`
	SpeedMach float64  `yaml:"speed_mach" json:"speed_mach"`
	PayloadKg float64  `yaml:"payload_kg" json:"payload_kg"`
	DataLinks []string `yaml:"data_links" json:"data_links"`

	Nose     NoseParams         `yaml:"nose" json:"nose"`
	Payload  PayloadParams      `yaml:"payload" json:"payload"`
	Guidance GuidanceParams     `yaml:"guidance" json:"guidance"`
	Motors   []MotorParams      `yaml:"motors" json:"motors"`
	Fins     FinParams          `yaml:"fins" json:"fins"`
	Antennas []AntennaParams    `yaml:"antennas" json:"antennas"`
	Claims   []ImprovementClaim `yaml:"claims" json:"claims"`
}

const (
	SideBlue = "blue"
	SideRed  = "red"
)

const (
	KindSurface   = "surface"
	KindSubmarine = "submarine"
	KindAircraft  = "aircraft"
)

type Asset struct {
	ID        string   `yaml:"id" json:"id"`
	Name      string   `yaml:"name" json:"name"`
	Side      string   `yaml:"side" json:"side"`
	Kind      string   `yaml:"kind" json:"kind"`
	Location  GeoPoint `yaml:"location" json:"location"`
	SpeedKts  float64  `yaml:"speed_kts" json:"speed_kts"`
	Systems   []string `yaml:"systems" json:"systems"`
	HomeBase  string   `yaml:"home_base" json:"home_base"`
	DataLinks []string `yaml:"data_links" json:"data_links"`
	Status    string   `yaml:"status" json:"status"`
}

type Base struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Side         string   `yaml:"side" json:"side"`
	Location     GeoPoint `yaml:"location" json:"location"`
	Capabilities []string `yaml:"capabilities" json:"capabilities"`
}

const (
	EnvStrait    = "strait"
	EnvLittoral  = "littoral"
	EnvOpenWater = "open-water"
)

type Scenario struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Location    GeoPoint `yaml:"location" json:"location"`
	Environment string   `yaml:"environment" json:"environment"`
	TimeFrame   string   `yaml:"time_frame" json:"time_frame"`
	BlueForces  []string `yaml:"blue_forces" json:"blue_forces"`
	RedForces   []string `yaml:"red_forces" json:"red_forces"`
}

// Catalog is the single source of truth for every builder and report.
// Slices keep load order so generated output is stable; maps are lookup
// indexes built at load time.
type Catalog struct {
	Materials []*Material
	Systems   []*System
	Assets    []*Asset
	Bases     []*Base
	Scenarios []*Scenario

	materialsByID map[string]*Material
	systemsByID   map[string]*System
	assetsByID    map[string]*Asset
	basesByID     map[string]*Base
	scenariosByID map[string]*Scenario
}
