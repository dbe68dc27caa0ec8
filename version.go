package wizium

// Version identifies a build of this module using semantic-version-like
// fields: Major changes break compatibility, Minor adds features without
// breaking it, Release is a fix or small enhancement.
type Version struct {
	Major   int32
	Minor   int32
	Release int32
}

var currentVersion = Version{Major: 1, Minor: 0, Release: 0}

// GetVersion returns the version of this module.
func GetVersion() Version {
	return currentVersion
}
