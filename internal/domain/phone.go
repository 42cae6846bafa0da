package domain

import (
	"strings"
)

// PhoneBuilder defines every configuration step for a phone product.
// Concrete builders decide what product the steps produce.
type PhoneBuilder interface {
	SetSimType(simType string)
	SetNetworkConnection(networkConnection string)
	SetCountry(country string)
	SetRoaming(roaming string)
}

// phoneSpec holds the values shared by every phone product.
type phoneSpec struct {
	simType           string
	networkConnection string
	country           string
	roaming           string
}

func (s *phoneSpec) SetSimType(simType string)                     { s.simType = simType }
func (s *phoneSpec) SetNetworkConnection(networkConnection string) { s.networkConnection = networkConnection }
func (s *phoneSpec) SetCountry(country string)                     { s.country = country }
func (s *phoneSpec) SetRoaming(roaming string)                     { s.roaming = roaming }

// Phone is a configured handset.
type Phone struct {
	spec phoneSpec
}

// SimType returns the SIM configuration, e.g. "Dual".
func (p *Phone) SimType() string { return p.spec.simType }

// NetworkConnection returns the network availability.
func (p *Phone) NetworkConnection() string { return p.spec.networkConnection }

// Country returns the country of manufacture.
func (p *Phone) Country() string { return p.spec.country }

// Roaming returns the roaming policy.
func (p *Phone) Roaming() string { return p.spec.roaming }

// PhoneManual is the printed manual that ships with a phone.
type PhoneManual struct {
	spec phoneSpec
}

// Describe renders the manual text, one newline-terminated line per property.
func (m *PhoneManual) Describe() string {
	var sb strings.Builder

	sb.WriteString("Mobile is " + m.spec.simType + "\n")
	sb.WriteString("With network connection " + m.spec.networkConnection + "\n")
	sb.WriteString("With roaming " + m.spec.roaming + "\n")
	sb.WriteString("Manufactured in " + m.spec.country + "\n")

	return sb.String()
}

// DevicePhoneBuilder builds Phone values.
type DevicePhoneBuilder struct {
	phoneSpec
}

// Result returns the phone assembled from the steps applied so far.
func (b *DevicePhoneBuilder) Result() *Phone {
	return &Phone{spec: b.phoneSpec}
}

// ManualBuilder builds PhoneManual values.
type ManualBuilder struct {
	phoneSpec
}

// Result returns the manual assembled from the steps applied so far.
func (b *ManualBuilder) Result() *PhoneManual {
	return &PhoneManual{spec: b.phoneSpec}
}

// PhonePreset names a Director construction sequence.
type PhonePreset string

// Supported presets.
const (
	PresetAndroid PhonePreset = "android"
	PresetIPhone  PhonePreset = "iphone"
)

// PhonePresets lists every supported preset.
var PhonePresets = []PhonePreset{PresetAndroid, PresetIPhone}

// ParsePhonePreset resolves a preset name, ignoring case and surrounding space.
func ParsePhonePreset(name string) (PhonePreset, error) {
	preset := PhonePreset(strings.ToLower(strings.TrimSpace(name)))
	for _, p := range PhonePresets {
		if p == preset {
			return p, nil
		}
	}

	return "", NewNotFoundError("phone preset", name)
}

// Director applies building steps in a fixed order. It works with any
// PhoneBuilder, so it does not know which product is being built.
type Director struct{}

// ConstructAndroidPhone configures a dual-SIM phone made in India.
func (Director) ConstructAndroidPhone(b PhoneBuilder) {
	b.SetSimType("Dual")
	b.SetNetworkConnection("Available")
	b.SetCountry("India")
	b.SetRoaming("Allowed")
}

// ConstructIPhone configures a single-SIM phone made in the USA.
func (Director) ConstructIPhone(b PhoneBuilder) {
	b.SetSimType("Single")
	b.SetNetworkConnection("Available")
	b.SetCountry("USA")
	b.SetRoaming("Not Allowed")
}

// Construct runs the sequence for preset against b.
func (d Director) Construct(preset PhonePreset, b PhoneBuilder) error {
	switch preset {
	case PresetAndroid:
		d.ConstructAndroidPhone(b)
	case PresetIPhone:
		d.ConstructIPhone(b)
	default:
		return NewValidationError("preset", "unknown phone preset "+string(preset))
	}

	return nil
}
