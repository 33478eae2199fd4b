package config

// DefaultSkipLines is the size of the leading declaration block in the
// Tribes 2 dump. It contains no registration calls and trips up the
// boundary matcher with ambiguous partial syntax, so it is skipped before
// any matching begins.
const DefaultSkipLines = 33350

// defaultGlobalFunctionSubs lists the subroutines that register global
// script functions. Call sites take the form sub_######(...).
var defaultGlobalFunctionSubs = []string{"426650", "426590", "4265D0", "426550", "426610"}

// defaultTypeMethodSubs lists the subroutines that register type-bound
// methods; the registration signature differs slightly from the global one.
var defaultTypeMethodSubs = []string{"426450", "426510", "426450", "425960"}

// defaultDatablockPropertySubs lists the subroutines that register static
// datablock fields.
var defaultDatablockPropertySubs = []string{"423F20"}

// defaultGlobalValueSubs lists the subroutines that register globally
// addressable variables.
var defaultGlobalValueSubs = []string{"4263B0"}

// defaultDatablockTypes maps the address of a registering subroutine to
// the datablock type it constructs. Multiple entry points may construct
// the same type, so several addresses can share one name.
var defaultDatablockTypes = map[string]string{
	"61E7A0": "ExplosionData",
	"5B4F60": "WaterBlockData",
	"612400": "WheeledVehicleData",
	"6161E0": "HoverVehicleData",
	"5CE810": "PlayerData",
	"6034C0": "ItemData",
	"69C170": "TriggerData",
	"50DC70": "AudioProfileData",
	"62B3C0": "LinearProjectile",
	"60F820": "FlyingVehicleData",
	"6370D0": "SeekingProjectileData",
	"69B0F0": "PrecipitationData",
	"641480": "SniperProjectileData",
	"66A270": "SensorData",

	"6303F0": "GrenadeProjectileData",
	"6333D0": "GrenadeProjectileData",

	"694B40": "TracerProjectileData",
	"6470D0": "TargetProjectileData",

	"653E10": "TurretData",
	"654AE0": "TurretData",
	"5E4C20": "TurretData", // Camera?

	"654330": "TurretImageData", // TurretData?

	"64E2B0": "LightningData",
	"627150": "LightningData",

	"621DF0": "ParticleEmitterData",
	"622E60": "ParticleData",

	"644910": "ELFProjectileData",
	"64A860": "ELFProjectileData",

	"5F4D90": "ShapeBaseImageData",

	"602940": "StaticShapeData",
	"66B000": "SpawnSphere",

	"6099E0": "VehicleData",

	"47D880": "AI Task?",

	"63D870": "LinearFlareData",

	"59A870": "TerrainData",
	"68C4B0": "ShockwaveData",

	"4B5840": "CorpseData",

	"619B30": "Sky",
	"5AB310": "Sky",

	"68AAA0": "PhysicalZone",

	"626240": "Debris",
	"684000": "Debris",

	"6751A0": "ForceFieldBareData",

	"631A50": "ProjectileData", // Base?
	"69AF10": "FireballAtmosphere",
}

// defaultPrimitiveTypes labels the small integer type codes carried by
// global value registrations. Indexed by code; unknown codes stay Unknown.
var defaultPrimitiveTypes = []string{
	"Unknown",
	"Integer",
	"Unknown",
	"Boolean",
	"Unknown",
	"Float",
	"Unknown",
}

// defaultInheritance maps type names to their ordered ancestor chains.
// Consumed only by the renderer; the core neither produces nor validates it.
var defaultInheritance = map[string][]string{
	"HTTPObject":         {"HTTPObject", "TCPObject", "SimObject"},
	"FileObject":         {"FileObject", "SimObject"},
	"Item":               {"Item", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"SceneObject":        {"SceneObject", "NetObject", "SimObject"},
	"Player":             {"Player", "Player", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"DebugView":          {"DebugView", "GuiTextCtrl", "GuiControl", "SimGroup", "SimSet", "SimObject"},
	"GameBase":           {"GameBase", "SceneObject", "NetObject", "SimObject"},
	"SimpleNetObject":    {"SimpleNetObject", "SimObject"},
	"SimObject":          {"SimObject"},
	"Canvas":             {"Canvas", "GuiCanvas", "GuiControl", "SimGroup", "SimSet", "SimObject"},
	"GuiCanvas":          {"GuiCanvas", "GuiControl", "SimGroup", "SimSet", "SimObject"},
	"AIObjectiveQ":       {"AIObjectiveQ", "SimSet", "SimObject"},
	"ForceFieldBare":     {"ForceFieldBare", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"PhysicalZone":       {"PhysicalZone", "SceneObject", "NetObject", "SimObject"},
	"AIConnection":       {"AIConnection", "GameConnection", "GameConnection", "GameConnection", "NetConnection", "SimGroup", "SimSet", "SimObject"},
	"Turret":             {"Turret", "StaticShape", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"TerrainBlock":       {"TerrainBlock", "SceneObject", "NetObject", "SimObject"},
	"PlayerData":         {"PlayerData", "ShapeBaseData", "GameBaseData", "SimDataBlock", "SimObject"},
	"InheriorInstance":   {"InteriorInstance", "SceneObject", "NetObject", "SimObject"},
	"StaticShape":        {"StaticShape", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"Trigger":            {"Trigger", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"WaterBlock":         {"WaterBlock", "SceneObject", "NetObject", "SimObject"},
	"FireballAtmosphere": {"FireballAtmosphere", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"MissionArea":        {"MissionArea", "NetObject", "SimObject"},
	"TSStatic":           {"TSStatic", "SceneObject", "NetObject", "SimObject"},

	// Projectile types
	"LinearProjectile":  {"LinearProjectile", "Projectile", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"EnergyProjectile":  {"EnergyProjectile", "GrenadeProjectile", "Projectile", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"GrenadeProjectile": {"GrenadeProjectile", "Projectile", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"TargetProjectile":  {"TargetProjectile", "Projectile", "GameBase", "SceneObject", "NetObject", "SimObject"},

	// Vehicle types
	"HoverVehicle":   {"HoverVehicle", "Vehicle", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"FlyingVehicle":  {"FlyingVehicle", "Vehicle", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},
	"WheeledVehicle": {"WheeledVehicle", "Vehicle", "ShapeBase", "GameBase", "SceneObject", "NetObject", "SimObject"},

	// Datablock types
	"HoverVehicleData":       {"HoverVehicleData", "VehicleData", "ShapeBaseData", "GameBaseData", "SimDataBlock", "SimObject"},
	"FlyingVehicleData":      {"FlyingVehicleData", "VehicleData", "ShapeBaseData", "GameBaseData", "SimDataBlock", "SimObject"},
	"WheeledVehicleData":     {"WheeledVehicleData", "VehicleData", "ShapeBaseData", "GameBaseData", "SimDataBlock", "SimObject"},
	"ForceFieldBareData":     {"ForceFieldBareData", "GameBaseData", "SimDataBlock", "SimObject"},
	"LinearProjectileData":   {"LinearProjectileData", "ProjectileData", "GameBaseData", "SimDataBlock", "SimObject"},
	"EnergyProjectileData":   {"EnergyProjectileData", "GrenadeProjectileData", "ProjectileData", "GameBaseData", "SimDataBlock", "SimObject"},
	"GrenadeProjectileData":  {"GrenadeProjectileData", "ProjectileData", "GameBaseData", "SimDataBlock", "SimObject"},
	"FireballAtmosphereData": {"FireballAtmosphereData", "GameBaseData", "SimDataBlock", "SimObject"},
	"TargetProjectileData":   {"TargetProjectileData", "ProjectileData", "GameBaseData", "SimDataBlock", "SimObject"},
}
