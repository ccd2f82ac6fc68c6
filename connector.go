package shellforge

import "sort"

// ConnectorProfile is the fixed opening size for one connector type.
// Round connectors set Diameter and leave Width/Height zero.
type ConnectorProfile struct {
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	Diameter float64 `json:"diameter,omitempty"`
}

// Round reports whether the profile is a circular bore.
func (p ConnectorProfile) Round() bool { return p.Diameter > 0 }

// Connector opening sizes in millimeters, including printing
// clearance.
var connectorProfiles = map[ConnectorType]ConnectorProfile{
	USBA:       {Width: 13, Height: 6.5},
	USBC:       {Width: 9.3, Height: 3.8},
	MicroUSB:   {Width: 8, Height: 3.5},
	MiniUSB:    {Width: 8.5, Height: 4.5},
	HDMI:       {Width: 16, Height: 7.5},
	MiniHDMI:   {Width: 11.5, Height: 5.5},
	Jack35:     {Diameter: 6.5},
	BarrelJack: {Diameter: 8.5},
	RJ45:       {Width: 16.5, Height: 13.5},
}

// Profile returns the opening size for the connector type.
func (c ConnectorType) Profile() ConnectorProfile {
	return connectorProfiles[c]
}

// ConnectorTypes lists every supported connector type sorted by name.
func ConnectorTypes() []ConnectorType {
	types := make([]ConnectorType, 0, len(connectorProfiles))
	for c := range connectorProfiles {
		types = append(types, c)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })
	return types
}
